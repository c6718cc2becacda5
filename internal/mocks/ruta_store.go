package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// MockRutaStore implements store.RutaStore for testing.
type MockRutaStore struct {
	ListFn    func(ctx context.Context) ([]domain.Ruta, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Ruta, error)
	CreateFn  func(ctx context.Context, ruta *domain.Ruta) (*domain.Ruta, error)
	UpdateFn  func(ctx context.Context, id int64, ruta *domain.Ruta) (*domain.Ruta, error)
	DeleteFn  func(ctx context.Context, id int64) (*domain.Ruta, error)
	SearchFn  func(ctx context.Context, term string) ([]domain.Ruta, error)

	Rutas  map[int64]*domain.Ruta
	NextID int64
}

var _ store.RutaStore = (*MockRutaStore)(nil)

// NewMockRutaStore creates a mock store with initialized defaults.
func NewMockRutaStore() *MockRutaStore {
	return &MockRutaStore{
		Rutas:  make(map[int64]*domain.Ruta),
		NextID: 1,
	}
}

func (m *MockRutaStore) sorted() []domain.Ruta {
	out := make([]domain.Ruta, 0, len(m.Rutas))
	for _, r := range m.Rutas {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out
}

func (m *MockRutaStore) List(ctx context.Context) ([]domain.Ruta, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.sorted(), nil
}

func (m *MockRutaStore) GetByID(ctx context.Context, id int64) (*domain.Ruta, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	r, ok := m.Rutas[id]
	if !ok {
		return nil, store.ErrRutaNotFound
	}
	copia := *r
	return &copia, nil
}

func (m *MockRutaStore) Create(ctx context.Context, ruta *domain.Ruta) (*domain.Ruta, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ruta)
	}
	copia := *ruta
	copia.ID = m.NextID
	m.NextID++
	m.Rutas[copia.ID] = &copia
	result := copia
	return &result, nil
}

func (m *MockRutaStore) Update(ctx context.Context, id int64, ruta *domain.Ruta) (*domain.Ruta, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, ruta)
	}
	if _, ok := m.Rutas[id]; !ok {
		return nil, store.ErrRutaNotFound
	}
	copia := *ruta
	copia.ID = id
	m.Rutas[id] = &copia
	result := copia
	return &result, nil
}

func (m *MockRutaStore) Delete(ctx context.Context, id int64) (*domain.Ruta, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	r, ok := m.Rutas[id]
	if !ok {
		return nil, store.ErrRutaNotFound
	}
	copia := *r
	delete(m.Rutas, id)
	return &copia, nil
}

func (m *MockRutaStore) Search(ctx context.Context, term string) ([]domain.Ruta, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	lower := strings.ToLower(term)
	var out []domain.Ruta
	for _, r := range m.sorted() {
		if strings.Contains(strings.ToLower(r.Nombre), lower) {
			out = append(out, r)
		}
	}
	return out, nil
}
