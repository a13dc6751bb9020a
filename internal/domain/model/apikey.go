package model

import (
	"fmt"
	"time"
)

// Role is the access tier an API key grants.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ErrInvalidRole is returned by ParseRole for anything other than "user" or "admin".
var ErrInvalidRole = fmt.Errorf("role must be either %q or %q", RoleUser, RoleAdmin)

// ParseRole converts a raw role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// APIKey is a persisted bearer credential. IsAdminApproved only matters for
// admin keys; IsSuperAdmin is provisioned out of band and never set over HTTP.
type APIKey struct {
	ID              int64
	Key             string
	Role            Role
	CreatedAt       time.Time
	IsAdminApproved bool
	IsSuperAdmin    bool
}

// Identity is the resolved caller attached to an authenticated request.
type Identity struct {
	Key             string
	Role            Role
	IsAdminApproved bool
}

// Identity returns the request identity for this key.
func (k APIKey) Identity() Identity {
	return Identity{
		Key:             k.Key,
		Role:            k.Role,
		IsAdminApproved: k.IsAdminApproved,
	}
}
