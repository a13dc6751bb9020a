package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
)

// ErrRestaurantNotFound indicates no restaurant has the requested id.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantStore defines the driven port for restaurant persistence.
// Update and Delete return ErrRestaurantNotFound for unknown ids.
type RestaurantStore interface {
	Create(ctx context.Context, r model.Restaurant) (*model.Restaurant, error)
	ListAll(ctx context.Context) ([]model.Restaurant, error)
	ListWithMissingData(ctx context.Context) ([]model.Restaurant, error)

	// Update applies patch to the stored record, runs validate on the result
	// and writes it back atomically. An error from validate aborts the write
	// and is returned unchanged.
	Update(ctx context.Context, id string, patch model.RestaurantPatch, validate func(*model.Restaurant) error) (*model.Restaurant, error)

	// Delete removes the record and returns it as it was before deletion.
	Delete(ctx context.Context, id string) (*model.Restaurant, error)
}
