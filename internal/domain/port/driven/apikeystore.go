package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
)

// Sentinel errors returned by APIKeyStore implementations.
var (
	// ErrAPIKeyNotFound indicates no key matched the lookup.
	ErrAPIKeyNotFound = errors.New("api key not found")

	// ErrAPIKeyAlreadyExists indicates the key string is already stored.
	ErrAPIKeyAlreadyExists = errors.New("api key already exists")
)

// APIKeyStore defines the driven port for API key persistence.
type APIKeyStore interface {
	// Create stores a new key and returns it as persisted (ID and CreatedAt set).
	// Returns ErrAPIKeyAlreadyExists if the key string is taken.
	Create(ctx context.Context, key model.APIKey) (*model.APIKey, error)

	// GetByKey returns the key record. Returns ErrAPIKeyNotFound if absent.
	GetByKey(ctx context.Context, key string) (*model.APIKey, error)

	// ApproveAdmin sets is_admin_approved on an admin-role key and returns the
	// updated record. Returns ErrAPIKeyNotFound if no admin key matches.
	ApproveAdmin(ctx context.Context, key string) (*model.APIKey, error)
}
