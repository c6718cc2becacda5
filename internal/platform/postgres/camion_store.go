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

// CamionStore implements store.CamionStore backed by PostgreSQL.
type CamionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCamionStore creates a PostgreSQL implementation of store.CamionStore.
func NewCamionStore(db store.DBTX, logger *slog.Logger) *CamionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CamionStore{
		db:     db,
		logger: logger.With(slog.String("component", "camion_store")),
	}
}

var _ store.CamionStore = (*CamionStore)(nil)

func (s *CamionStore) queryCamiones(ctx context.Context, query string, args ...any) ([]domain.Camion, error) {
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

	camiones := []domain.Camion{}
	for rows.Next() {
		var c domain.Camion
		if err := rows.Scan(&c.ID, &c.Nombre); err != nil {
			return nil, err
		}
		camiones = append(camiones, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return camiones, nil
}

// List implements store.CamionStore.List.
func (s *CamionStore) List(ctx context.Context) ([]domain.Camion, error) {
	camiones, err := s.queryCamiones(ctx,
		`SELECT id, nombre FROM camiones ORDER BY nombre`)
	if err != nil {
		return nil, store.NewStoreError("camiones", "obtener", err)
	}
	return camiones, nil
}

// GetByID implements store.CamionStore.GetByID.
func (s *CamionStore) GetByID(ctx context.Context, id int64) (*domain.Camion, error) {
	var c domain.Camion
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre FROM camiones WHERE id = $1`, id).Scan(&c.ID, &c.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCamionNotFound
		}
		return nil, store.NewStoreError("camión", "obtener", err)
	}
	return &c, nil
}

// Create implements store.CamionStore.Create.
func (s *CamionStore) Create(ctx context.Context, camion *domain.Camion) (*domain.Camion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created domain.Camion
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO camiones (nombre) VALUES ($1) RETURNING id, nombre`,
		camion.Nombre).Scan(&created.ID, &created.Nombre)
	if err != nil {
		log.Error("failed to create camion",
			slog.String("error", err.Error()),
			slog.String("nombre", camion.Nombre))
		return nil, store.NewStoreError("camión", "crear", err)
	}

	log.Info("camion created successfully", slog.Int64("camion_id", created.ID))
	return &created, nil
}

// Update implements store.CamionStore.Update.
func (s *CamionStore) Update(ctx context.Context, id int64, camion *domain.Camion) (*domain.Camion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated domain.Camion
	err := s.db.QueryRowContext(ctx,
		`UPDATE camiones SET nombre = $1 WHERE id = $2 RETURNING id, nombre`,
		camion.Nombre, id).Scan(&updated.ID, &updated.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCamionNotFound
		}
		log.Error("failed to update camion",
			slog.String("error", err.Error()),
			slog.Int64("camion_id", id))
		return nil, store.NewStoreError("camión", "actualizar", err)
	}

	log.Info("camion updated successfully", slog.Int64("camion_id", id))
	return &updated, nil
}

// Delete implements store.CamionStore.Delete.
func (s *CamionStore) Delete(ctx context.Context, id int64) (*domain.Camion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted domain.Camion
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM camiones WHERE id = $1 RETURNING id, nombre`,
		id).Scan(&deleted.ID, &deleted.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCamionNotFound
		}
		if IsForeignKeyViolation(err) {
			return nil, store.ErrReferenced
		}
		log.Error("failed to delete camion",
			slog.String("error", err.Error()),
			slog.Int64("camion_id", id))
		return nil, store.NewStoreError("camión", "eliminar", err)
	}

	log.Info("camion deleted", slog.Int64("camion_id", id))
	return &deleted, nil
}

// Search implements store.CamionStore.Search.
func (s *CamionStore) Search(ctx context.Context, term string) ([]domain.Camion, error) {
	camiones, err := s.queryCamiones(ctx,
		`SELECT id, nombre FROM camiones WHERE nombre ILIKE $1 ORDER BY nombre`,
		"%"+term+"%")
	if err != nil {
		return nil, store.NewStoreError("camiones", "buscar", err)
	}
	return camiones, nil
}
