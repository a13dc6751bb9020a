package application_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/port/driven"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// memAPIKeyStore is an in-memory driven.APIKeyStore.
type memAPIKeyStore struct {
	mu      sync.Mutex
	keys    map[string]model.APIKey
	nextID  int64
	creates int
	err     error
}

func newMemAPIKeyStore(seed ...model.APIKey) *memAPIKeyStore {
	s := &memAPIKeyStore{keys: map[string]model.APIKey{}}
	for _, k := range seed {
		s.nextID++
		k.ID = s.nextID
		s.keys[k.Key] = k
	}
	return s
}

func (s *memAPIKeyStore) Create(_ context.Context, k model.APIKey) (*model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.keys[k.Key]; ok {
		return nil, driven.ErrAPIKeyAlreadyExists
	}
	s.creates++
	s.nextID++
	k.ID = s.nextID
	s.keys[k.Key] = k
	return &k, nil
}

func (s *memAPIKeyStore) GetByKey(_ context.Context, key string) (*model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	k, ok := s.keys[key]
	if !ok {
		return nil, driven.ErrAPIKeyNotFound
	}
	return &k, nil
}

func (s *memAPIKeyStore) ApproveAdmin(_ context.Context, key string) (*model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	k, ok := s.keys[key]
	if !ok || k.Role != model.RoleAdmin {
		return nil, driven.ErrAPIKeyNotFound
	}
	k.IsAdminApproved = true
	s.keys[key] = k
	return &k, nil
}

// mockRestaurantStore records calls and returns canned results.
type mockRestaurantStore struct {
	created     *model.Restaurant
	list        []model.Restaurant
	updateID    string
	updatePatch model.RestaurantPatch
	existing    *model.Restaurant
	err         error
}

func (m *mockRestaurantStore) Create(_ context.Context, r model.Restaurant) (*model.Restaurant, error) {
	if m.err != nil {
		return nil, m.err
	}
	r.ID = "2f1c6a9e-2b1d-4a53-9c1e-4b8f5a0e7d11"
	m.created = &r
	return &r, nil
}

func (m *mockRestaurantStore) ListAll(_ context.Context) ([]model.Restaurant, error) {
	return m.list, m.err
}

func (m *mockRestaurantStore) ListWithMissingData(_ context.Context) ([]model.Restaurant, error) {
	return m.list, m.err
}

func (m *mockRestaurantStore) Update(
	_ context.Context,
	id string,
	patch model.RestaurantPatch,
	validate func(*model.Restaurant) error,
) (*model.Restaurant, error) {
	m.updateID = id
	m.updatePatch = patch
	if m.err != nil {
		return nil, m.err
	}
	if m.existing == nil {
		return nil, driven.ErrRestaurantNotFound
	}
	r := *m.existing
	r.Apply(patch)
	if err := validate(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (m *mockRestaurantStore) Delete(_ context.Context, id string) (*model.Restaurant, error) {
	m.updateID = id
	if m.err != nil {
		return nil, m.err
	}
	if m.existing == nil {
		return nil, driven.ErrRestaurantNotFound
	}
	return m.existing, nil
}

// stubEnricher returns a fixed enrichment and records the looked-up name.
type stubEnricher struct {
	result model.Enrichment
	names  []string
}

func (e *stubEnricher) Lookup(_ context.Context, name string) model.Enrichment {
	e.names = append(e.names, name)
	return e.result
}
