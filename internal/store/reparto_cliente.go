package store

import (
	"context"

	"github.com/fmardones/reparto-api/internal/domain"
)

// RepartoClienteStore manages the reparto↔cliente association rows.
//
// Add is NOT idempotent: the join table carries no uniqueness constraint,
// so repeated calls insert duplicate rows. Remove of an absent pair is not
// an error. Callers inserting several clientes do so one row at a time with
// no atomicity across the sequence.
type RepartoClienteStore interface {
	// Add inserts one association row for the pair.
	Add(ctx context.Context, repartoID, clienteID int64) error

	// Remove deletes the matching pair if present.
	Remove(ctx context.Context, repartoID, clienteID int64) error

	// ClientesByReparto returns the clientes linked to the reparto.
	ClientesByReparto(ctx context.Context, repartoID int64) ([]domain.Cliente, error)

	// RepartosByCliente returns the repartos linked to the cliente.
	RepartosByCliente(ctx context.Context, clienteID int64) ([]domain.Reparto, error)
}
