package store

import (
	"context"

	"github.com/fmardones/reparto-api/internal/domain"
)

// RutaStore defines the interface for ruta data persistence.
type RutaStore interface {
	// List returns all rutas ordered alphabetically by nombre.
	List(ctx context.Context) ([]domain.Ruta, error)

	// GetByID retrieves a ruta by ID.
	// Returns ErrRutaNotFound if the ruta does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Ruta, error)

	// Create inserts a new ruta and returns it with the assigned ID.
	Create(ctx context.Context, ruta *domain.Ruta) (*domain.Ruta, error)

	// Update replaces the nombre of an existing ruta.
	// Returns ErrRutaNotFound if the ruta does not exist.
	Update(ctx context.Context, id int64, ruta *domain.Ruta) (*domain.Ruta, error)

	// Delete hard-deletes a ruta unconditionally. Returns the deleted ruta,
	// or ErrRutaNotFound if it does not exist.
	Delete(ctx context.Context, id int64) (*domain.Ruta, error)

	// Search returns rutas whose nombre contains the term
	// (case-insensitive), ordered by nombre.
	Search(ctx context.Context, term string) ([]domain.Ruta, error)
}
