package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/port/driven"
)

// RestaurantService manages restaurant records and their enrichment.
type RestaurantService struct {
	store    driven.RestaurantStore
	enricher driven.Enricher
	logger   *slog.Logger
}

// NewRestaurantService creates a RestaurantService with the required dependencies.
func NewRestaurantService(store driven.RestaurantStore, enricher driven.Enricher, logger *slog.Logger) *RestaurantService {
	return &RestaurantService{
		store:    store,
		enricher: enricher,
		logger:   logger,
	}
}

// Create validates the names, looks up enrichment data by Arabic name and
// stores the merged record. Enrichment output replaces every enrichment field
// the caller sent, including when the lookup came back as sentinels.
func (s *RestaurantService) Create(ctx context.Context, in model.RestaurantInput) (*model.Restaurant, error) {
	in = sanitizeInput(in)

	r := model.Restaurant{
		ArabicName:  in.ArabicName,
		EnglishName: in.EnglishName,
	}
	if err := r.Validate(); err != nil {
		return nil, newError(ErrValidation, err.Error())
	}

	// TODO: let caller-supplied fields win over sentinel enrichment values once
	// API consumers agree on the merge order; today the lookup always overrides.
	r.Enrichment = s.enricher.Lookup(ctx, in.ArabicName)
	if discarded := suppliedEnrichmentFields(in); len(discarded) > 0 {
		s.logger.Debug("caller enrichment fields replaced by lookup",
			"arabic_name", in.ArabicName,
			"fields", discarded,
		)
	}

	created, err := s.store.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	return created, nil
}

// ListAll returns every restaurant.
func (s *RestaurantService) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return nonNil(restaurants), nil
}

// ListWithMissingData returns restaurants with at least one unknown enrichment field.
func (s *RestaurantService) ListWithMissingData(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.store.ListWithMissingData(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants with missing data: %w", err)
	}
	return nonNil(restaurants), nil
}

// Update applies a partial update and revalidates the record.
func (s *RestaurantService) Update(ctx context.Context, id string, patch model.RestaurantPatch) (*model.Restaurant, error) {
	canonical, err := parseRestaurantID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, canonical, sanitizePatch(patch), func(r *model.Restaurant) error {
		if err := r.Validate(); err != nil {
			return newError(ErrValidation, err.Error())
		}
		return nil
	})
	if errors.Is(err, driven.ErrRestaurantNotFound) {
		return nil, newError(ErrNotFound, "Restaurant not found")
	}
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("update restaurant %s: %w", canonical, err)
	}

	return updated, nil
}

// Delete removes a restaurant and returns the removed record.
func (s *RestaurantService) Delete(ctx context.Context, id string) (*model.Restaurant, error) {
	canonical, err := parseRestaurantID(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.Delete(ctx, canonical)
	if errors.Is(err, driven.ErrRestaurantNotFound) {
		return nil, newError(ErrNotFound, "Restaurant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("delete restaurant %s: %w", canonical, err)
	}

	s.logger.Info("restaurant deleted", "id", canonical)
	return deleted, nil
}

func parseRestaurantID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", newError(ErrInvalidArgument, "Invalid restaurant id")
	}
	return parsed.String(), nil
}

func suppliedEnrichmentFields(in model.RestaurantInput) []string {
	var fields []string
	add := func(name string, set bool) {
		if set {
			fields = append(fields, name)
		}
	}

	add("phone", in.Phone != nil)
	add("type", in.Type != nil)
	add("address", in.Address != nil)
	add("place_id", in.PlaceID != nil)
	add("google_rating", in.GoogleRating != nil)
	add("price_per_person", in.PricePerPerson != nil)
	add("directions", in.Directions != nil)
	add("google_reviews", in.GoogleReviews != nil)

	return fields
}

func nonNil(rs []model.Restaurant) []model.Restaurant {
	if rs == nil {
		return []model.Restaurant{}
	}
	return rs
}
