package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// MockClienteStore implements store.ClienteStore for testing.
type MockClienteStore struct {
	ListFn        func(ctx context.Context) ([]domain.Cliente, error)
	ListActivosFn func(ctx context.Context) ([]domain.Cliente, error)
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Cliente, error)
	GetByCodigoFn func(ctx context.Context, codigo string) (*domain.Cliente, error)
	GetByRutFn    func(ctx context.Context, rut string) (*domain.Cliente, error)
	CreateFn      func(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error)
	UpdateFn      func(ctx context.Context, id int64, cliente *domain.Cliente) (*domain.Cliente, error)
	DeleteFn      func(ctx context.Context, id int64) (*domain.Cliente, error)
	SearchFn      func(ctx context.Context, term string) ([]domain.Cliente, error)

	Clientes map[int64]*domain.Cliente
	NextID   int64
}

var _ store.ClienteStore = (*MockClienteStore)(nil)

// NewMockClienteStore creates a mock store with initialized defaults.
func NewMockClienteStore() *MockClienteStore {
	return &MockClienteStore{
		Clientes: make(map[int64]*domain.Cliente),
		NextID:   1,
	}
}

func (m *MockClienteStore) sorted() []domain.Cliente {
	out := make([]domain.Cliente, 0, len(m.Clientes))
	for _, c := range m.Clientes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RazonSocial < out[j].RazonSocial })
	return out
}

func (m *MockClienteStore) List(ctx context.Context) ([]domain.Cliente, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.sorted(), nil
}

func (m *MockClienteStore) ListActivos(ctx context.Context) ([]domain.Cliente, error) {
	if m.ListActivosFn != nil {
		return m.ListActivosFn(ctx)
	}
	var out []domain.Cliente
	for _, c := range m.sorted() {
		if c.Estado == domain.EstadoActivo {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockClienteStore) GetByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	c, ok := m.Clientes[id]
	if !ok {
		return nil, store.ErrClienteNotFound
	}
	copia := *c
	return &copia, nil
}

func (m *MockClienteStore) GetByCodigo(ctx context.Context, codigo string) (*domain.Cliente, error) {
	if m.GetByCodigoFn != nil {
		return m.GetByCodigoFn(ctx, codigo)
	}
	for _, c := range m.Clientes {
		if c.CodigoAlte != nil && *c.CodigoAlte == codigo {
			copia := *c
			return &copia, nil
		}
	}
	return nil, store.ErrClienteNotFound
}

func (m *MockClienteStore) GetByRut(ctx context.Context, rut string) (*domain.Cliente, error) {
	if m.GetByRutFn != nil {
		return m.GetByRutFn(ctx, rut)
	}
	for _, c := range m.Clientes {
		if c.Rut != nil && *c.Rut == rut {
			copia := *c
			return &copia, nil
		}
	}
	return nil, store.ErrClienteNotFound
}

func (m *MockClienteStore) Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, cliente)
	}
	copia := *cliente
	copia.ID = m.NextID
	m.NextID++
	m.Clientes[copia.ID] = &copia
	result := copia
	return &result, nil
}

func (m *MockClienteStore) Update(ctx context.Context, id int64, cliente *domain.Cliente) (*domain.Cliente, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, cliente)
	}
	if _, ok := m.Clientes[id]; !ok {
		return nil, store.ErrClienteNotFound
	}
	copia := *cliente
	copia.ID = id
	m.Clientes[id] = &copia
	result := copia
	return &result, nil
}

func (m *MockClienteStore) Delete(ctx context.Context, id int64) (*domain.Cliente, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	c, ok := m.Clientes[id]
	if !ok {
		return nil, store.ErrClienteNotFound
	}
	c.Estado = domain.EstadoInactivo
	copia := *c
	return &copia, nil
}

func (m *MockClienteStore) Search(ctx context.Context, term string) ([]domain.Cliente, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	lower := strings.ToLower(term)
	var out []domain.Cliente
	for _, c := range m.sorted() {
		if strings.Contains(strings.ToLower(c.RazonSocial), lower) ||
			strings.Contains(strings.ToLower(c.Nombre), lower) ||
			(c.CodigoAlte != nil && strings.Contains(strings.ToLower(*c.CodigoAlte), lower)) {
			out = append(out, c)
		}
	}
	return out, nil
}
