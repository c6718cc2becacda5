package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// MockCamionStore implements store.CamionStore for testing.
type MockCamionStore struct {
	ListFn    func(ctx context.Context) ([]domain.Camion, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Camion, error)
	CreateFn  func(ctx context.Context, camion *domain.Camion) (*domain.Camion, error)
	UpdateFn  func(ctx context.Context, id int64, camion *domain.Camion) (*domain.Camion, error)
	DeleteFn  func(ctx context.Context, id int64) (*domain.Camion, error)
	SearchFn  func(ctx context.Context, term string) ([]domain.Camion, error)

	Camiones map[int64]*domain.Camion
	NextID   int64
}

var _ store.CamionStore = (*MockCamionStore)(nil)

// NewMockCamionStore creates a mock store with initialized defaults.
func NewMockCamionStore() *MockCamionStore {
	return &MockCamionStore{
		Camiones: make(map[int64]*domain.Camion),
		NextID:   1,
	}
}

func (m *MockCamionStore) sorted() []domain.Camion {
	out := make([]domain.Camion, 0, len(m.Camiones))
	for _, c := range m.Camiones {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out
}

func (m *MockCamionStore) List(ctx context.Context) ([]domain.Camion, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.sorted(), nil
}

func (m *MockCamionStore) GetByID(ctx context.Context, id int64) (*domain.Camion, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	c, ok := m.Camiones[id]
	if !ok {
		return nil, store.ErrCamionNotFound
	}
	copia := *c
	return &copia, nil
}

func (m *MockCamionStore) Create(ctx context.Context, camion *domain.Camion) (*domain.Camion, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, camion)
	}
	copia := *camion
	copia.ID = m.NextID
	m.NextID++
	m.Camiones[copia.ID] = &copia
	result := copia
	return &result, nil
}

func (m *MockCamionStore) Update(ctx context.Context, id int64, camion *domain.Camion) (*domain.Camion, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, camion)
	}
	if _, ok := m.Camiones[id]; !ok {
		return nil, store.ErrCamionNotFound
	}
	copia := *camion
	copia.ID = id
	m.Camiones[id] = &copia
	result := copia
	return &result, nil
}

func (m *MockCamionStore) Delete(ctx context.Context, id int64) (*domain.Camion, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	c, ok := m.Camiones[id]
	if !ok {
		return nil, store.ErrCamionNotFound
	}
	copia := *c
	delete(m.Camiones, id)
	return &copia, nil
}

func (m *MockCamionStore) Search(ctx context.Context, term string) ([]domain.Camion, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	lower := strings.ToLower(term)
	var out []domain.Camion
	for _, c := range m.sorted() {
		if strings.Contains(strings.ToLower(c.Nombre), lower) {
			out = append(out, c)
		}
	}
	return out, nil
}
