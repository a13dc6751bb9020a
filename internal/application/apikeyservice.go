package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/port/driven"
)

// keyBytes is the amount of randomness in an issued key (hex-encoded to 64 chars).
const keyBytes = 32

// APIKeyService issues, resolves and approves API keys.
type APIKeyService struct {
	store  driven.APIKeyStore
	logger *slog.Logger
	newKey func() (string, error)
}

// NewAPIKeyService creates an APIKeyService backed by store.
func NewAPIKeyService(store driven.APIKeyStore, logger *slog.Logger) *APIKeyService {
	return &APIKeyService{
		store:  store,
		logger: logger,
		newKey: generateKey,
	}
}

// IssueKey creates and stores a new key for rawRole ("user" or "admin").
// Admin keys start unapproved.
func (s *APIKeyService) IssueKey(ctx context.Context, rawRole string) (*model.APIKey, error) {
	if rawRole == "" {
		return nil, newError(ErrInvalidArgument, "Please specify a role for API key (user or admin)")
	}
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return nil, newError(ErrInvalidArgument, `Invalid role. Role must be either "user" or "admin"`)
	}

	key, err := s.newKey()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	created, err := s.store.Create(ctx, model.APIKey{Key: key, Role: role})
	if err != nil {
		return nil, fmt.Errorf("issue %s key: %w", role, err)
	}

	s.logger.Info("api key issued", "role", role, "id", created.ID)
	return created, nil
}

// Authenticate resolves a presented key to the caller's identity.
func (s *APIKeyService) Authenticate(ctx context.Context, key string) (model.Identity, error) {
	if key == "" {
		return model.Identity{}, newError(ErrUnauthenticated, "API Key is required")
	}

	k, err := s.store.GetByKey(ctx, key)
	if errors.Is(err, driven.ErrAPIKeyNotFound) {
		return model.Identity{}, newError(ErrUnauthenticated, "Invalid API Key")
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("authenticate: %w", err)
	}

	return k.Identity(), nil
}

// ApproveAdmin marks adminKey approved on behalf of a super admin. This is
// the only path that sets the approval flag.
func (s *APIKeyService) ApproveAdmin(ctx context.Context, superAdminKey, adminKey string) (*model.APIKey, error) {
	if superAdminKey == "" || adminKey == "" {
		return nil, newError(ErrInvalidArgument, "Missing API key(s)")
	}

	super, err := s.store.GetByKey(ctx, superAdminKey)
	if err != nil && !errors.Is(err, driven.ErrAPIKeyNotFound) {
		return nil, fmt.Errorf("load super admin key: %w", err)
	}
	if super == nil || !super.IsSuperAdmin {
		return nil, newError(ErrUnauthenticated, "Invalid or missing super admin API key")
	}

	approved, err := s.store.ApproveAdmin(ctx, adminKey)
	if errors.Is(err, driven.ErrAPIKeyNotFound) {
		return nil, newError(ErrNotFound, "Admin key not found. Please register for an admin key")
	}
	if err != nil {
		return nil, fmt.Errorf("approve admin key: %w", err)
	}

	s.logger.Info("admin key approved", "id", approved.ID, "approved_by", super.ID)
	return approved, nil
}

// AdminApprovalStatus returns the admin key record so callers can check
// whether it has been approved yet.
func (s *APIKeyService) AdminApprovalStatus(ctx context.Context, adminKey string) (*model.APIKey, error) {
	if adminKey == "" {
		return nil, newError(ErrInvalidArgument, "Please provide an admin API Key")
	}

	k, err := s.store.GetByKey(ctx, adminKey)
	if err != nil && !errors.Is(err, driven.ErrAPIKeyNotFound) {
		return nil, fmt.Errorf("load admin key: %w", err)
	}
	if k == nil || k.Role != model.RoleAdmin {
		return nil, newError(ErrUnauthenticated, "Invalid admin API Key")
	}

	return k, nil
}

// ProvisionSuperAdmin creates an approved admin key that may approve other
// admins. It is only reachable from the provision command.
func (s *APIKeyService) ProvisionSuperAdmin(ctx context.Context) (*model.APIKey, error) {
	key, err := s.newKey()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	created, err := s.store.Create(ctx, model.APIKey{
		Key:             key,
		Role:            model.RoleAdmin,
		IsAdminApproved: true,
		IsSuperAdmin:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("provision super admin key: %w", err)
	}

	s.logger.Info("super admin key provisioned", "id", created.ID)
	return created, nil
}

func generateKey() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
