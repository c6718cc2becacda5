package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/platform/logger"
	"github.com/fmardones/reparto-api/internal/store"
)

const usuarioColumns = "id, username, email, nombre_completo, created_at"

// UsuarioStore implements store.UsuarioStore backed by PostgreSQL. Every
// read path except GetByUsername omits the password hash.
type UsuarioStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUsuarioStore creates a PostgreSQL implementation of store.UsuarioStore.
func NewUsuarioStore(db store.DBTX, logger *slog.Logger) *UsuarioStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UsuarioStore{
		db:     db,
		logger: logger.With(slog.String("component", "usuario_store")),
	}
}

var _ store.UsuarioStore = (*UsuarioStore)(nil)

func scanUsuario(row interface{ Scan(dest ...any) error }) (*domain.Usuario, error) {
	var u domain.Usuario
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.NombreCompleto, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UsuarioStore) queryUsuarios(ctx context.Context, query string, args ...any) ([]domain.Usuario, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	usuarios := []domain.Usuario{}
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// List implements store.UsuarioStore.List.
func (s *UsuarioStore) List(ctx context.Context) ([]domain.Usuario, error) {
	usuarios, err := s.queryUsuarios(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios ORDER BY username`)
	if err != nil {
		return nil, store.NewStoreError("usuarios", "obtener", err)
	}
	return usuarios, nil
}

// GetByID implements store.UsuarioStore.GetByID.
func (s *UsuarioStore) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id)

	usuario, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUsuarioNotFound
		}
		return nil, store.NewStoreError("usuario", "obtener", err)
	}
	return usuario, nil
}

// GetByUsername implements store.UsuarioStore.GetByUsername. The returned
// usuario includes the password hash for credential verification.
func (s *UsuarioStore) GetByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, nombre_completo, password, created_at
		 FROM usuarios WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.Email, &u.NombreCompleto, &u.HashedPassword, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUsuarioNotFound
		}
		return nil, store.NewStoreError("usuario por username", "obtener", err)
	}
	return &u, nil
}

// GetByEmail implements store.UsuarioStore.GetByEmail.
func (s *UsuarioStore) GetByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1`, email)

	usuario, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUsuarioNotFound
		}
		return nil, store.NewStoreError("usuario por email", "obtener", err)
	}
	return usuario, nil
}

// Create implements store.UsuarioStore.Create.
func (s *UsuarioStore) Create(ctx context.Context, usuario *domain.Usuario) (*domain.Usuario, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO usuarios (username, email, password, nombre_completo)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+usuarioColumns,
		usuario.Username, usuario.Email, usuario.HashedPassword, usuario.NombreCompleto)

	created, err := scanUsuario(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, store.ErrUsernameExists
		}
		log.Error("failed to create usuario",
			slog.String("error", err.Error()),
			slog.String("username", usuario.Username))
		return nil, store.NewStoreError("usuario", "crear", err)
	}

	log.Info("usuario created successfully",
		slog.Int64("usuario_id", created.ID),
		slog.String("username", created.Username))
	return created, nil
}

// Update implements store.UsuarioStore.Update.
func (s *UsuarioStore) Update(ctx context.Context, id int64, usuario *domain.Usuario) (*domain.Usuario, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row *sql.Row
	if usuario.HashedPassword != "" {
		row = s.db.QueryRowContext(ctx,
			`UPDATE usuarios
			 SET username = $1, password = $2, email = $3, nombre_completo = $4
			 WHERE id = $5
			 RETURNING `+usuarioColumns,
			usuario.Username, usuario.HashedPassword, usuario.Email, usuario.NombreCompleto, id)
	} else {
		row = s.db.QueryRowContext(ctx,
			`UPDATE usuarios
			 SET username = $1, email = $2, nombre_completo = $3
			 WHERE id = $4
			 RETURNING `+usuarioColumns,
			usuario.Username, usuario.Email, usuario.NombreCompleto, id)
	}

	updated, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUsuarioNotFound
		}
		if IsUniqueViolation(err) {
			return nil, store.ErrUsernameExists
		}
		log.Error("failed to update usuario",
			slog.String("error", err.Error()),
			slog.Int64("usuario_id", id))
		return nil, store.NewStoreError("usuario", "actualizar", err)
	}

	log.Info("usuario updated successfully", slog.Int64("usuario_id", id))
	return updated, nil
}

// UpdatePassword implements store.UsuarioStore.UpdatePassword.
func (s *UsuarioStore) UpdatePassword(ctx context.Context, id int64, hashedPassword string) (*domain.Usuario, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`UPDATE usuarios SET password = $1 WHERE id = $2 RETURNING `+usuarioColumns,
		hashedPassword, id)

	updated, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUsuarioNotFound
		}
		log.Error("failed to update password",
			slog.String("error", err.Error()),
			slog.Int64("usuario_id", id))
		return nil, store.NewStoreError("contraseña", "cambiar", err)
	}

	log.Info("password updated successfully", slog.Int64("usuario_id", id))
	return updated, nil
}

// Delete implements store.UsuarioStore.Delete.
func (s *UsuarioStore) Delete(ctx context.Context, id int64) (*domain.Usuario, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`DELETE FROM usuarios WHERE id = $1 RETURNING `+usuarioColumns, id)

	deleted, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUsuarioNotFound
		}
		log.Error("failed to delete usuario",
			slog.String("error", err.Error()),
			slog.Int64("usuario_id", id))
		return nil, store.NewStoreError("usuario", "eliminar", err)
	}

	log.Info("usuario deleted", slog.Int64("usuario_id", id))
	return deleted, nil
}

// Search implements store.UsuarioStore.Search.
func (s *UsuarioStore) Search(ctx context.Context, term string) ([]domain.Usuario, error) {
	usuarios, err := s.queryUsuarios(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE username ILIKE $1 ORDER BY username`,
		"%"+term+"%")
	if err != nil {
		return nil, store.NewStoreError("usuarios", "buscar", err)
	}
	return usuarios, nil
}
