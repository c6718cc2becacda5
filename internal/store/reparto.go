package store

import (
	"context"

	"github.com/fmardones/reparto-api/internal/domain"
)

// RepartoStore defines the interface for reparto data persistence.
// All list reads join in the camion and ruta names and order by id
// descending (most recent first).
type RepartoStore interface {
	// List returns all repartos.
	List(ctx context.Context) ([]domain.Reparto, error)

	// GetByID retrieves a reparto by ID.
	// Returns ErrRepartoNotFound if the reparto does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Reparto, error)

	// Create inserts a new reparto and returns it with the assigned ID.
	// The camion and ruta must already exist; existence checks run at the
	// handler layer before this call.
	Create(ctx context.Context, reparto *domain.Reparto) (*domain.Reparto, error)

	// Update replaces the camion and ruta references of an existing reparto.
	// Returns ErrRepartoNotFound if the reparto does not exist.
	Update(ctx context.Context, id int64, reparto *domain.Reparto) (*domain.Reparto, error)

	// Delete hard-deletes a reparto. Returns the deleted reparto, or
	// ErrRepartoNotFound if it does not exist.
	Delete(ctx context.Context, id int64) (*domain.Reparto, error)

	// ListByCliente returns repartos related to the cliente through the
	// reparto_cliente join table.
	ListByCliente(ctx context.Context, clienteID int64) ([]domain.Reparto, error)

	// ListByCamion returns repartos assigned to the camion.
	ListByCamion(ctx context.Context, camionID int64) ([]domain.Reparto, error)

	// ListByRuta returns repartos assigned to the ruta.
	ListByRuta(ctx context.Context, rutaID int64) ([]domain.Reparto, error)
}
