package application

import (
	"context"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
)

// AuthorizeAdmin permits only approved admin callers. It reads the identity
// placed on ctx by the authentication step and never touches a store.
func AuthorizeAdmin(ctx context.Context) error {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return newError(ErrUnauthenticated, "User not authenticated")
	}
	if id.Role != model.RoleAdmin {
		return newError(ErrForbidden, "Admin role required")
	}
	if !id.IsAdminApproved {
		return newError(ErrForbidden, "Admin approval pending")
	}
	return nil
}
