package mocks

import (
	"context"
	"sort"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// MockRepartoStore implements store.RepartoStore for testing. Links
// mirrors the reparto_cliente join table for the by-cliente read.
type MockRepartoStore struct {
	ListFn          func(ctx context.Context) ([]domain.Reparto, error)
	GetByIDFn       func(ctx context.Context, id int64) (*domain.Reparto, error)
	CreateFn        func(ctx context.Context, reparto *domain.Reparto) (*domain.Reparto, error)
	UpdateFn        func(ctx context.Context, id int64, reparto *domain.Reparto) (*domain.Reparto, error)
	DeleteFn        func(ctx context.Context, id int64) (*domain.Reparto, error)
	ListByClienteFn func(ctx context.Context, clienteID int64) ([]domain.Reparto, error)
	ListByCamionFn  func(ctx context.Context, camionID int64) ([]domain.Reparto, error)
	ListByRutaFn    func(ctx context.Context, rutaID int64) ([]domain.Reparto, error)

	Repartos map[int64]*domain.Reparto
	Links    []RepartoClienteLink
	NextID   int64
}

// RepartoClienteLink is one association row in the mock join table.
type RepartoClienteLink struct {
	RepartoID int64
	ClienteID int64
}

var _ store.RepartoStore = (*MockRepartoStore)(nil)

// NewMockRepartoStore creates a mock store with initialized defaults.
func NewMockRepartoStore() *MockRepartoStore {
	return &MockRepartoStore{
		Repartos: make(map[int64]*domain.Reparto),
		NextID:   1,
	}
}

func (m *MockRepartoStore) sorted() []domain.Reparto {
	out := make([]domain.Reparto, 0, len(m.Repartos))
	for _, r := range m.Repartos {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *MockRepartoStore) List(ctx context.Context) ([]domain.Reparto, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.sorted(), nil
}

func (m *MockRepartoStore) GetByID(ctx context.Context, id int64) (*domain.Reparto, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	r, ok := m.Repartos[id]
	if !ok {
		return nil, store.ErrRepartoNotFound
	}
	copia := *r
	return &copia, nil
}

func (m *MockRepartoStore) Create(ctx context.Context, reparto *domain.Reparto) (*domain.Reparto, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, reparto)
	}
	copia := *reparto
	copia.ID = m.NextID
	m.NextID++
	m.Repartos[copia.ID] = &copia
	result := copia
	return &result, nil
}

func (m *MockRepartoStore) Update(ctx context.Context, id int64, reparto *domain.Reparto) (*domain.Reparto, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, reparto)
	}
	if _, ok := m.Repartos[id]; !ok {
		return nil, store.ErrRepartoNotFound
	}
	copia := *reparto
	copia.ID = id
	m.Repartos[id] = &copia
	result := copia
	return &result, nil
}

func (m *MockRepartoStore) Delete(ctx context.Context, id int64) (*domain.Reparto, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	r, ok := m.Repartos[id]
	if !ok {
		return nil, store.ErrRepartoNotFound
	}
	copia := *r
	delete(m.Repartos, id)
	return &copia, nil
}

func (m *MockRepartoStore) ListByCliente(ctx context.Context, clienteID int64) ([]domain.Reparto, error) {
	if m.ListByClienteFn != nil {
		return m.ListByClienteFn(ctx, clienteID)
	}
	var out []domain.Reparto
	for _, r := range m.sorted() {
		for _, link := range m.Links {
			if link.RepartoID == r.ID && link.ClienteID == clienteID {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (m *MockRepartoStore) ListByCamion(ctx context.Context, camionID int64) ([]domain.Reparto, error) {
	if m.ListByCamionFn != nil {
		return m.ListByCamionFn(ctx, camionID)
	}
	var out []domain.Reparto
	for _, r := range m.sorted() {
		if r.CamionID == camionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRepartoStore) ListByRuta(ctx context.Context, rutaID int64) ([]domain.Reparto, error) {
	if m.ListByRutaFn != nil {
		return m.ListByRutaFn(ctx, rutaID)
	}
	var out []domain.Reparto
	for _, r := range m.sorted() {
		if r.RutaID == rutaID {
			out = append(out, r)
		}
	}
	return out, nil
}
