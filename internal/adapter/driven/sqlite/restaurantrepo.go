package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RestaurantStore = (*RestaurantRepo)(nil)

// RestaurantRepo is the SQLite implementation of the RestaurantStore port interface.
type RestaurantRepo struct {
	db  *DB
	now func() time.Time
}

// NewRestaurantRepo creates a new RestaurantRepo backed by the given DB.
func NewRestaurantRepo(db *DB) *RestaurantRepo {
	return &RestaurantRepo{db: db, now: time.Now}
}

const restaurantColumns = `
	id, arabic_name, english_name, phone, type, address, place_id,
	google_rating, price_per_person, directions, google_reviews,
	created_at, updated_at`

// missingDataPredicate mirrors model.Restaurant.HasMissingData.
const missingDataPredicate = `
	phone = '-1' OR type = '-1' OR address = '-1' OR place_id = '-1'
	OR directions = '-1' OR google_reviews = '-1' OR google_rating = -1`

// Create inserts a restaurant, assigning a UUID when ID is empty.
func (r *RestaurantRepo) Create(ctx context.Context, rest model.Restaurant) (*model.Restaurant, error) {
	const query = `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if rest.ID == "" {
		rest.ID = uuid.NewString()
	}
	now := r.now().UTC()
	rest.CreatedAt = now
	rest.UpdatedAt = now

	if _, err := r.db.Writer.ExecContext(ctx, query, restaurantArgs(rest)...); err != nil {
		return nil, fmt.Errorf("create restaurant %s: %w", rest.ID, err)
	}

	return &rest, nil
}

// ListAll returns every restaurant ordered by creation time.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	const query = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY created_at, id`
	return r.list(ctx, query)
}

// ListWithMissingData returns restaurants with at least one unknown enrichment field.
func (r *RestaurantRepo) ListWithMissingData(ctx context.Context) ([]model.Restaurant, error) {
	const query = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE ` + missingDataPredicate + ` ORDER BY created_at, id`
	return r.list(ctx, query)
}

// Update reads, patches, validates and rewrites a restaurant in one transaction.
func (r *RestaurantRepo) Update(
	ctx context.Context,
	id string,
	patch model.RestaurantPatch,
	validate func(*model.Restaurant) error,
) (*model.Restaurant, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rest, err := getRestaurant(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	rest.Apply(patch)
	if validate != nil {
		if err := validate(rest); err != nil {
			return nil, err
		}
	}
	rest.UpdatedAt = r.now().UTC()

	const query = `
		UPDATE restaurants SET
			arabic_name = ?, english_name = ?, phone = ?, type = ?, address = ?,
			place_id = ?, google_rating = ?, price_per_person = ?, directions = ?,
			google_reviews = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, query,
		rest.ArabicName, rest.EnglishName, rest.Phone, rest.Type, rest.Address,
		rest.PlaceID, rest.GoogleRating, rest.PricePerPerson, rest.Directions,
		rest.GoogleReviews, formatTime(rest.UpdatedAt), id,
	); err != nil {
		return nil, fmt.Errorf("update restaurant %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit restaurant %s: %w", id, err)
	}

	return rest, nil
}

// Delete removes a restaurant and returns the removed record.
func (r *RestaurantRepo) Delete(ctx context.Context, id string) (*model.Restaurant, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rest, err := getRestaurant(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete restaurant %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit restaurant delete %s: %w", id, err)
	}

	return rest, nil
}

func (r *RestaurantRepo) list(ctx context.Context, query string) ([]model.Restaurant, error) {
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []model.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, *rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}

	return restaurants, nil
}

func getRestaurant(ctx context.Context, tx *sql.Tx, id string) (*model.Restaurant, error) {
	const query = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`

	rest, err := scanRestaurant(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("restaurant %s: %w", id, driven.ErrRestaurantNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}

	return rest, nil
}

func restaurantArgs(r model.Restaurant) []any {
	return []any{
		r.ID, r.ArabicName, r.EnglishName, r.Phone, r.Type, r.Address, r.PlaceID,
		r.GoogleRating, r.PricePerPerson, r.Directions, r.GoogleReviews,
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	}
}

func scanRestaurant(s scanner) (*model.Restaurant, error) {
	var (
		r                    model.Restaurant
		createdAt, updatedAt string
	)

	err := s.Scan(
		&r.ID, &r.ArabicName, &r.EnglishName, &r.Phone, &r.Type, &r.Address, &r.PlaceID,
		&r.GoogleRating, &r.PricePerPerson, &r.Directions, &r.GoogleReviews,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &r, nil
}
