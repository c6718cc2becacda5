package mocks

import (
	"context"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// MockRepartoClienteStore implements store.RepartoClienteStore for
// testing. Rows keeps every inserted pair, duplicates included, so
// tests can assert the non-idempotent add behavior.
type MockRepartoClienteStore struct {
	AddFn               func(ctx context.Context, repartoID, clienteID int64) error
	RemoveFn            func(ctx context.Context, repartoID, clienteID int64) error
	ClientesByRepartoFn func(ctx context.Context, repartoID int64) ([]domain.Cliente, error)
	RepartosByClienteFn func(ctx context.Context, clienteID int64) ([]domain.Reparto, error)

	Rows     []RepartoClienteLink
	Clientes map[int64]*domain.Cliente
	Repartos map[int64]*domain.Reparto
}

var _ store.RepartoClienteStore = (*MockRepartoClienteStore)(nil)

// NewMockRepartoClienteStore creates a mock store with initialized
// defaults.
func NewMockRepartoClienteStore() *MockRepartoClienteStore {
	return &MockRepartoClienteStore{
		Clientes: make(map[int64]*domain.Cliente),
		Repartos: make(map[int64]*domain.Reparto),
	}
}

func (m *MockRepartoClienteStore) Add(ctx context.Context, repartoID, clienteID int64) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, repartoID, clienteID)
	}
	m.Rows = append(m.Rows, RepartoClienteLink{RepartoID: repartoID, ClienteID: clienteID})
	return nil
}

func (m *MockRepartoClienteStore) Remove(ctx context.Context, repartoID, clienteID int64) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, repartoID, clienteID)
	}
	out := m.Rows[:0]
	for _, row := range m.Rows {
		if row.RepartoID != repartoID || row.ClienteID != clienteID {
			out = append(out, row)
		}
	}
	m.Rows = out
	return nil
}

func (m *MockRepartoClienteStore) ClientesByReparto(ctx context.Context, repartoID int64) ([]domain.Cliente, error) {
	if m.ClientesByRepartoFn != nil {
		return m.ClientesByRepartoFn(ctx, repartoID)
	}
	var out []domain.Cliente
	seen := make(map[int64]bool)
	for _, row := range m.Rows {
		if row.RepartoID != repartoID || seen[row.ClienteID] {
			continue
		}
		seen[row.ClienteID] = true
		if c, ok := m.Clientes[row.ClienteID]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MockRepartoClienteStore) RepartosByCliente(ctx context.Context, clienteID int64) ([]domain.Reparto, error) {
	if m.RepartosByClienteFn != nil {
		return m.RepartosByClienteFn(ctx, clienteID)
	}
	var out []domain.Reparto
	seen := make(map[int64]bool)
	for _, row := range m.Rows {
		if row.ClienteID != clienteID || seen[row.RepartoID] {
			continue
		}
		seen[row.RepartoID] = true
		if r, ok := m.Repartos[row.RepartoID]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}
