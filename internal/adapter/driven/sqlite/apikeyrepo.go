package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.APIKeyStore = (*APIKeyRepo)(nil)

// APIKeyRepo is the SQLite implementation of the APIKeyStore port interface.
type APIKeyRepo struct {
	db *DB
}

// NewAPIKeyRepo creates a new APIKeyRepo backed by the given DB.
func NewAPIKeyRepo(db *DB) *APIKeyRepo {
	return &APIKeyRepo{db: db}
}

const apiKeyColumns = `id, key, role, created_at, is_admin_approved, is_super_admin`

// Create inserts a new key. A zero CreatedAt is replaced with the current time.
func (r *APIKeyRepo) Create(ctx context.Context, key model.APIKey) (*model.APIKey, error) {
	const query = `
		INSERT INTO api_keys (key, role, created_at, is_admin_approved, is_super_admin)
		VALUES (?, ?, ?, ?, ?)
	`

	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}
	key.CreatedAt = key.CreatedAt.UTC()

	result, err := r.db.Writer.ExecContext(ctx, query,
		key.Key, string(key.Role), formatTime(key.CreatedAt),
		boolToInt(key.IsAdminApproved), boolToInt(key.IsSuperAdmin),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, fmt.Errorf("create api key: %w", driven.ErrAPIKeyAlreadyExists)
		}
		return nil, fmt.Errorf("create api key: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read api key id: %w", err)
	}
	key.ID = id

	return &key, nil
}

// GetByKey returns the record for key or driven.ErrAPIKeyNotFound.
func (r *APIKeyRepo) GetByKey(ctx context.Context, key string) (*model.APIKey, error) {
	const query = `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key = ?`

	k, err := scanAPIKey(r.db.Reader.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, driven.ErrAPIKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get api key: %w", err)
	}

	return k, nil
}

// ApproveAdmin flips is_admin_approved on an admin key and reads it back in
// the same transaction.
func (r *APIKeyRepo) ApproveAdmin(ctx context.Context, key string) (*model.APIKey, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const update = `UPDATE api_keys SET is_admin_approved = 1 WHERE key = ? AND role = 'admin'`
	result, err := tx.ExecContext(ctx, update, key)
	if err != nil {
		return nil, fmt.Errorf("approve admin key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return nil, driven.ErrAPIKeyNotFound
	}

	const query = `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key = ?`
	k, err := scanAPIKey(tx.QueryRowContext(ctx, query, key))
	if err != nil {
		return nil, fmt.Errorf("reload approved key: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit admin approval: %w", err)
	}

	return k, nil
}

func scanAPIKey(s scanner) (*model.APIKey, error) {
	var (
		k          model.APIKey
		role       string
		createdAt  string
		approved   int
		superAdmin int
	)

	if err := s.Scan(&k.ID, &k.Key, &role, &createdAt, &approved, &superAdmin); err != nil {
		return nil, err
	}

	var err error
	k.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	k.Role = model.Role(role)
	k.IsAdminApproved = approved != 0
	k.IsSuperAdmin = superAdmin != 0

	return &k, nil
}
