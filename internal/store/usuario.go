package store

import (
	"context"

	"github.com/fmardones/reparto-api/internal/domain"
)

// UsuarioStore defines the interface for usuario data persistence.
// Read paths never return the password hash except GetByUsername, which is
// used by the login flow to verify credentials.
type UsuarioStore interface {
	// List returns all usuarios ordered alphabetically by username, without
	// password hashes.
	List(ctx context.Context) ([]domain.Usuario, error)

	// GetByID retrieves a usuario by ID, without the password hash.
	// Returns ErrUsuarioNotFound if the usuario does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Usuario, error)

	// GetByUsername retrieves a usuario by username INCLUDING the password
	// hash, for credential verification.
	// Returns ErrUsuarioNotFound if the usuario does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.Usuario, error)

	// GetByEmail retrieves a usuario by email, without the password hash.
	// Returns ErrUsuarioNotFound if the usuario does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Usuario, error)

	// Create inserts a new usuario. The caller provides the already-hashed
	// password in HashedPassword. Returns the created usuario without the
	// hash.
	Create(ctx context.Context, usuario *domain.Usuario) (*domain.Usuario, error)

	// Update replaces username, email and nombre_completo; when
	// HashedPassword is non-empty the stored hash is replaced too.
	// Returns ErrUsuarioNotFound if the usuario does not exist.
	Update(ctx context.Context, id int64, usuario *domain.Usuario) (*domain.Usuario, error)

	// UpdatePassword replaces only the stored password hash.
	// Returns ErrUsuarioNotFound if the usuario does not exist.
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) (*domain.Usuario, error)

	// Delete hard-deletes a usuario. Returns the deleted usuario, or
	// ErrUsuarioNotFound if it does not exist.
	Delete(ctx context.Context, id int64) (*domain.Usuario, error)

	// Search returns usuarios whose username contains the term
	// (case-insensitive), ordered by username, without password hashes.
	Search(ctx context.Context, term string) ([]domain.Usuario, error)
}
