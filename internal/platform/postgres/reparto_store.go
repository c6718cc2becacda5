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

// repartoSelect joins in the camion and ruta names for every read path.
const repartoSelect = `
	SELECT
		r.id, r.camion_id, r.ruta_id,
		cam.nombre AS camion_nombre,
		ru.nombre AS ruta_nombre
	FROM repartos r
	LEFT JOIN camiones cam ON r.camion_id = cam.id
	LEFT JOIN rutas ru ON r.ruta_id = ru.id`

// RepartoStore implements store.RepartoStore backed by PostgreSQL.
type RepartoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRepartoStore creates a PostgreSQL implementation of store.RepartoStore.
func NewRepartoStore(db store.DBTX, logger *slog.Logger) *RepartoStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RepartoStore{
		db:     db,
		logger: logger.With(slog.String("component", "reparto_store")),
	}
}

var _ store.RepartoStore = (*RepartoStore)(nil)

func scanReparto(row interface{ Scan(dest ...any) error }) (*domain.Reparto, error) {
	var r domain.Reparto
	err := row.Scan(&r.ID, &r.CamionID, &r.RutaID, &r.CamionNombre, &r.RutaNombre)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RepartoStore) queryRepartos(ctx context.Context, query string, args ...any) ([]domain.Reparto, error) {
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

	repartos := []domain.Reparto{}
	for rows.Next() {
		r, err := scanReparto(rows)
		if err != nil {
			return nil, err
		}
		repartos = append(repartos, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return repartos, nil
}

// List implements store.RepartoStore.List.
func (s *RepartoStore) List(ctx context.Context) ([]domain.Reparto, error) {
	repartos, err := s.queryRepartos(ctx, repartoSelect+` ORDER BY r.id DESC`)
	if err != nil {
		return nil, store.NewStoreError("repartos", "obtener", err)
	}
	return repartos, nil
}

// GetByID implements store.RepartoStore.GetByID.
func (s *RepartoStore) GetByID(ctx context.Context, id int64) (*domain.Reparto, error) {
	row := s.db.QueryRowContext(ctx, repartoSelect+` WHERE r.id = $1`, id)

	reparto, err := scanReparto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRepartoNotFound
		}
		return nil, store.NewStoreError("reparto", "obtener", err)
	}
	return reparto, nil
}

// Create implements store.RepartoStore.Create.
func (s *RepartoStore) Create(ctx context.Context, reparto *domain.Reparto) (*domain.Reparto, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created domain.Reparto
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO repartos (camion_id, ruta_id) VALUES ($1, $2)
		 RETURNING id, camion_id, ruta_id`,
		reparto.CamionID, reparto.RutaID).
		Scan(&created.ID, &created.CamionID, &created.RutaID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, store.ErrInvalidReference
		}
		log.Error("failed to create reparto",
			slog.String("error", err.Error()),
			slog.Int64("camion_id", reparto.CamionID),
			slog.Int64("ruta_id", reparto.RutaID))
		return nil, store.NewStoreError("reparto", "crear", err)
	}

	log.Info("reparto created successfully", slog.Int64("reparto_id", created.ID))
	return &created, nil
}

// Update implements store.RepartoStore.Update.
func (s *RepartoStore) Update(ctx context.Context, id int64, reparto *domain.Reparto) (*domain.Reparto, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated domain.Reparto
	err := s.db.QueryRowContext(ctx,
		`UPDATE repartos SET camion_id = $1, ruta_id = $2 WHERE id = $3
		 RETURNING id, camion_id, ruta_id`,
		reparto.CamionID, reparto.RutaID, id).
		Scan(&updated.ID, &updated.CamionID, &updated.RutaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRepartoNotFound
		}
		if IsForeignKeyViolation(err) {
			return nil, store.ErrInvalidReference
		}
		log.Error("failed to update reparto",
			slog.String("error", err.Error()),
			slog.Int64("reparto_id", id))
		return nil, store.NewStoreError("reparto", "actualizar", err)
	}

	log.Info("reparto updated successfully", slog.Int64("reparto_id", id))
	return &updated, nil
}

// Delete implements store.RepartoStore.Delete.
func (s *RepartoStore) Delete(ctx context.Context, id int64) (*domain.Reparto, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted domain.Reparto
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM repartos WHERE id = $1 RETURNING id, camion_id, ruta_id`,
		id).Scan(&deleted.ID, &deleted.CamionID, &deleted.RutaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRepartoNotFound
		}
		log.Error("failed to delete reparto",
			slog.String("error", err.Error()),
			slog.Int64("reparto_id", id))
		return nil, store.NewStoreError("reparto", "eliminar", err)
	}

	log.Info("reparto deleted", slog.Int64("reparto_id", id))
	return &deleted, nil
}

// ListByCliente implements store.RepartoStore.ListByCliente through the
// reparto_cliente join table.
func (s *RepartoStore) ListByCliente(ctx context.Context, clienteID int64) ([]domain.Reparto, error) {
	repartos, err := s.queryRepartos(ctx,
		repartoSelect+`
		 JOIN reparto_cliente rc ON rc.reparto_id = r.id
		 WHERE rc.cliente_id = $1
		 ORDER BY r.id DESC`,
		clienteID)
	if err != nil {
		return nil, store.NewStoreError("repartos por cliente", "obtener", err)
	}
	return repartos, nil
}

// ListByCamion implements store.RepartoStore.ListByCamion.
func (s *RepartoStore) ListByCamion(ctx context.Context, camionID int64) ([]domain.Reparto, error) {
	repartos, err := s.queryRepartos(ctx,
		repartoSelect+` WHERE r.camion_id = $1 ORDER BY r.id DESC`, camionID)
	if err != nil {
		return nil, store.NewStoreError("repartos por camión", "obtener", err)
	}
	return repartos, nil
}

// ListByRuta implements store.RepartoStore.ListByRuta.
func (s *RepartoStore) ListByRuta(ctx context.Context, rutaID int64) ([]domain.Reparto, error) {
	repartos, err := s.queryRepartos(ctx,
		repartoSelect+` WHERE r.ruta_id = $1 ORDER BY r.id DESC`, rutaID)
	if err != nil {
		return nil, store.NewStoreError("repartos por ruta", "obtener", err)
	}
	return repartos, nil
}
