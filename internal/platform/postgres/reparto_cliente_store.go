package postgres

import (
	"context"
	"log/slog"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/platform/logger"
	"github.com/fmardones/reparto-api/internal/store"
)

// RepartoClienteStore implements store.RepartoClienteStore backed by
// PostgreSQL. The join table has no uniqueness constraint, so Add inserts
// duplicate rows when called twice with the same pair.
type RepartoClienteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRepartoClienteStore creates a PostgreSQL implementation of
// store.RepartoClienteStore.
func NewRepartoClienteStore(db store.DBTX, logger *slog.Logger) *RepartoClienteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RepartoClienteStore{
		db:     db,
		logger: logger.With(slog.String("component", "reparto_cliente_store")),
	}
}

var _ store.RepartoClienteStore = (*RepartoClienteStore)(nil)

// Add implements store.RepartoClienteStore.Add.
func (s *RepartoClienteStore) Add(ctx context.Context, repartoID, clienteID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reparto_cliente (reparto_id, cliente_id) VALUES ($1, $2)`,
		repartoID, clienteID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrInvalidReference
		}
		log.Error("failed to add cliente to reparto",
			slog.String("error", err.Error()),
			slog.Int64("reparto_id", repartoID),
			slog.Int64("cliente_id", clienteID))
		return store.NewStoreError("cliente al reparto", "agregar", err)
	}

	log.Info("cliente added to reparto",
		slog.Int64("reparto_id", repartoID),
		slog.Int64("cliente_id", clienteID))
	return nil
}

// Remove implements store.RepartoClienteStore.Remove. Removing an absent
// pair is not an error.
func (s *RepartoClienteStore) Remove(ctx context.Context, repartoID, clienteID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM reparto_cliente WHERE reparto_id = $1 AND cliente_id = $2`,
		repartoID, clienteID)
	if err != nil {
		log.Error("failed to remove cliente from reparto",
			slog.String("error", err.Error()),
			slog.Int64("reparto_id", repartoID),
			slog.Int64("cliente_id", clienteID))
		return store.NewStoreError("cliente del reparto", "eliminar", err)
	}

	return nil
}

// ClientesByReparto implements store.RepartoClienteStore.ClientesByReparto.
func (s *RepartoClienteStore) ClientesByReparto(ctx context.Context, repartoID int64) ([]domain.Cliente, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.codigoalte, c.razonsocial, c.nombre, c.direccion,
		        c.telefono, c.rut, c.estado, c.longitud, c.latitud
		 FROM reparto_cliente rc
		 JOIN clientes c ON rc.cliente_id = c.id
		 WHERE rc.reparto_id = $1`,
		repartoID)
	if err != nil {
		return nil, store.NewStoreError("clientes del reparto", "obtener", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	clientes := []domain.Cliente{}
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, store.NewStoreError("clientes del reparto", "obtener", err)
		}
		clientes = append(clientes, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("clientes del reparto", "obtener", err)
	}
	return clientes, nil
}

// RepartosByCliente implements store.RepartoClienteStore.RepartosByCliente.
func (s *RepartoClienteStore) RepartosByCliente(ctx context.Context, clienteID int64) ([]domain.Reparto, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.camion_id, r.ruta_id
		 FROM reparto_cliente rc
		 JOIN repartos r ON rc.reparto_id = r.id
		 WHERE rc.cliente_id = $1`,
		clienteID)
	if err != nil {
		return nil, store.NewStoreError("repartos del cliente", "obtener", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	repartos := []domain.Reparto{}
	for rows.Next() {
		var r domain.Reparto
		if err := rows.Scan(&r.ID, &r.CamionID, &r.RutaID); err != nil {
			return nil, store.NewStoreError("repartos del cliente", "obtener", err)
		}
		repartos = append(repartos, r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("repartos del cliente", "obtener", err)
	}
	return repartos, nil
}
