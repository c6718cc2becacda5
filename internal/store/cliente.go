package store

import (
	"context"

	"github.com/fmardones/reparto-api/internal/domain"
)

// ClienteStore defines the interface for cliente data persistence.
type ClienteStore interface {
	// List returns all clientes ordered alphabetically by razonsocial.
	List(ctx context.Context) ([]domain.Cliente, error)

	// ListActivos returns only clientes with estado 'Activo', ordered by
	// razonsocial.
	ListActivos(ctx context.Context) ([]domain.Cliente, error)

	// GetByID retrieves a cliente by ID.
	// Returns ErrClienteNotFound if the cliente does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Cliente, error)

	// GetByCodigo retrieves a cliente by its alternate code.
	// Returns ErrClienteNotFound if no cliente carries the code.
	GetByCodigo(ctx context.Context, codigoAlte string) (*domain.Cliente, error)

	// GetByRut retrieves a cliente by tax id.
	// Returns ErrClienteNotFound if no cliente carries the rut.
	GetByRut(ctx context.Context, rut string) (*domain.Cliente, error)

	// Create inserts a new cliente and returns it with the assigned ID.
	Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error)

	// Update replaces all mutable fields of an existing cliente.
	// Returns ErrClienteNotFound if the cliente does not exist.
	Update(ctx context.Context, id int64, cliente *domain.Cliente) (*domain.Cliente, error)

	// Delete soft-deletes a cliente by flipping its estado to 'Inactivo'.
	// The row is never removed. Returns the updated cliente, or
	// ErrClienteNotFound if it does not exist.
	Delete(ctx context.Context, id int64) (*domain.Cliente, error)

	// Search returns clientes whose razonsocial, nombre or codigoalte
	// contains the term (case-insensitive), ordered by razonsocial.
	Search(ctx context.Context, term string) ([]domain.Cliente, error)
}
