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

// RutaStore implements store.RutaStore backed by PostgreSQL.
type RutaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRutaStore creates a PostgreSQL implementation of store.RutaStore.
func NewRutaStore(db store.DBTX, logger *slog.Logger) *RutaStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RutaStore{
		db:     db,
		logger: logger.With(slog.String("component", "ruta_store")),
	}
}

var _ store.RutaStore = (*RutaStore)(nil)

func (s *RutaStore) queryRutas(ctx context.Context, query string, args ...any) ([]domain.Ruta, error) {
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

	rutas := []domain.Ruta{}
	for rows.Next() {
		var r domain.Ruta
		if err := rows.Scan(&r.ID, &r.Nombre); err != nil {
			return nil, err
		}
		rutas = append(rutas, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rutas, nil
}

// List implements store.RutaStore.List.
func (s *RutaStore) List(ctx context.Context) ([]domain.Ruta, error) {
	rutas, err := s.queryRutas(ctx, `SELECT id, nombre FROM rutas ORDER BY nombre`)
	if err != nil {
		return nil, store.NewStoreError("rutas", "obtener", err)
	}
	return rutas, nil
}

// GetByID implements store.RutaStore.GetByID.
func (s *RutaStore) GetByID(ctx context.Context, id int64) (*domain.Ruta, error) {
	var r domain.Ruta
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre FROM rutas WHERE id = $1`, id).Scan(&r.ID, &r.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRutaNotFound
		}
		return nil, store.NewStoreError("ruta", "obtener", err)
	}
	return &r, nil
}

// Create implements store.RutaStore.Create.
func (s *RutaStore) Create(ctx context.Context, ruta *domain.Ruta) (*domain.Ruta, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created domain.Ruta
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO rutas (nombre) VALUES ($1) RETURNING id, nombre`,
		ruta.Nombre).Scan(&created.ID, &created.Nombre)
	if err != nil {
		log.Error("failed to create ruta",
			slog.String("error", err.Error()),
			slog.String("nombre", ruta.Nombre))
		return nil, store.NewStoreError("ruta", "crear", err)
	}

	log.Info("ruta created successfully", slog.Int64("ruta_id", created.ID))
	return &created, nil
}

// Update implements store.RutaStore.Update.
func (s *RutaStore) Update(ctx context.Context, id int64, ruta *domain.Ruta) (*domain.Ruta, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated domain.Ruta
	err := s.db.QueryRowContext(ctx,
		`UPDATE rutas SET nombre = $1 WHERE id = $2 RETURNING id, nombre`,
		ruta.Nombre, id).Scan(&updated.ID, &updated.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRutaNotFound
		}
		log.Error("failed to update ruta",
			slog.String("error", err.Error()),
			slog.Int64("ruta_id", id))
		return nil, store.NewStoreError("ruta", "actualizar", err)
	}

	log.Info("ruta updated successfully", slog.Int64("ruta_id", id))
	return &updated, nil
}

// Delete implements store.RutaStore.Delete.
func (s *RutaStore) Delete(ctx context.Context, id int64) (*domain.Ruta, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted domain.Ruta
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM rutas WHERE id = $1 RETURNING id, nombre`,
		id).Scan(&deleted.ID, &deleted.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRutaNotFound
		}
		log.Error("failed to delete ruta",
			slog.String("error", err.Error()),
			slog.Int64("ruta_id", id))
		return nil, store.NewStoreError("ruta", "eliminar", err)
	}

	log.Info("ruta deleted", slog.Int64("ruta_id", id))
	return &deleted, nil
}

// Search implements store.RutaStore.Search.
func (s *RutaStore) Search(ctx context.Context, term string) ([]domain.Ruta, error) {
	rutas, err := s.queryRutas(ctx,
		`SELECT id, nombre FROM rutas WHERE nombre ILIKE $1 ORDER BY nombre`,
		"%"+term+"%")
	if err != nil {
		return nil, store.NewStoreError("rutas", "buscar", err)
	}
	return rutas, nil
}
