package store

import (
	"context"

	"github.com/fmardones/reparto-api/internal/domain"
)

// CamionStore defines the interface for camion data persistence.
type CamionStore interface {
	// List returns all camiones ordered alphabetically by nombre.
	List(ctx context.Context) ([]domain.Camion, error)

	// GetByID retrieves a camion by ID.
	// Returns ErrCamionNotFound if the camion does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Camion, error)

	// Create inserts a new camion and returns it with the assigned ID.
	Create(ctx context.Context, camion *domain.Camion) (*domain.Camion, error)

	// Update replaces the nombre of an existing camion.
	// Returns ErrCamionNotFound if the camion does not exist.
	Update(ctx context.Context, id int64, camion *domain.Camion) (*domain.Camion, error)

	// Delete hard-deletes a camion. Referential checks against repartos are
	// the caller's responsibility. Returns the deleted camion, or
	// ErrCamionNotFound if it does not exist.
	Delete(ctx context.Context, id int64) (*domain.Camion, error)

	// Search returns camiones whose nombre contains the term
	// (case-insensitive), ordered by nombre.
	Search(ctx context.Context, term string) ([]domain.Camion, error)
}
