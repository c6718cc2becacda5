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

const clienteColumns = "id, codigoalte, razonsocial, nombre, direccion, telefono, rut, estado, longitud, latitud"

// ClienteStore implements store.ClienteStore backed by PostgreSQL.
type ClienteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewClienteStore creates a PostgreSQL implementation of store.ClienteStore.
// The connection (or transaction) is managed by the caller.
func NewClienteStore(db store.DBTX, logger *slog.Logger) *ClienteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ClienteStore{
		db:     db,
		logger: logger.With(slog.String("component", "cliente_store")),
	}
}

var _ store.ClienteStore = (*ClienteStore)(nil)

func scanCliente(row interface{ Scan(dest ...any) error }) (*domain.Cliente, error) {
	var c domain.Cliente
	err := row.Scan(
		&c.ID,
		&c.CodigoAlte,
		&c.RazonSocial,
		&c.Nombre,
		&c.Direccion,
		&c.Telefono,
		&c.Rut,
		&c.Estado,
		&c.Longitud,
		&c.Latitud,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClienteStore) queryClientes(ctx context.Context, query string, args ...any) ([]domain.Cliente, error) {
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

	clientes := []domain.Cliente{}
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, err
		}
		clientes = append(clientes, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clientes, nil
}

// List implements store.ClienteStore.List.
func (s *ClienteStore) List(ctx context.Context) ([]domain.Cliente, error) {
	clientes, err := s.queryClientes(ctx,
		`SELECT `+clienteColumns+` FROM clientes ORDER BY razonsocial`)
	if err != nil {
		return nil, store.NewStoreError("clientes", "obtener", err)
	}
	return clientes, nil
}

// ListActivos implements store.ClienteStore.ListActivos.
func (s *ClienteStore) ListActivos(ctx context.Context) ([]domain.Cliente, error) {
	clientes, err := s.queryClientes(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE estado = $1 ORDER BY razonsocial`,
		domain.EstadoActivo)
	if err != nil {
		return nil, store.NewStoreError("clientes activos", "obtener", err)
	}
	return clientes, nil
}

// GetByID implements store.ClienteStore.GetByID.
func (s *ClienteStore) GetByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id)

	cliente, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClienteNotFound
		}
		return nil, store.NewStoreError("cliente", "obtener", err)
	}
	return cliente, nil
}

// GetByCodigo implements store.ClienteStore.GetByCodigo.
func (s *ClienteStore) GetByCodigo(ctx context.Context, codigoAlte string) (*domain.Cliente, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE codigoalte = $1`, codigoAlte)

	cliente, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClienteNotFound
		}
		return nil, store.NewStoreError("cliente por código", "obtener", err)
	}
	return cliente, nil
}

// GetByRut implements store.ClienteStore.GetByRut.
func (s *ClienteStore) GetByRut(ctx context.Context, rut string) (*domain.Cliente, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE rut = $1`, rut)

	cliente, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClienteNotFound
		}
		return nil, store.NewStoreError("cliente por RUT", "obtener", err)
	}
	return cliente, nil
}

// Create implements store.ClienteStore.Create.
func (s *ClienteStore) Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO clientes
		 (codigoalte, razonsocial, nombre, direccion, telefono, rut, estado, longitud, latitud)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+clienteColumns,
		cliente.CodigoAlte,
		cliente.RazonSocial,
		cliente.Nombre,
		cliente.Direccion,
		cliente.Telefono,
		cliente.Rut,
		cliente.Estado,
		cliente.Longitud,
		cliente.Latitud,
	)

	created, err := scanCliente(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, store.ErrCodigoAlteExists
		}
		log.Error("failed to create cliente",
			slog.String("error", err.Error()),
			slog.String("razonsocial", cliente.RazonSocial))
		return nil, store.NewStoreError("cliente", "crear", err)
	}

	log.Info("cliente created successfully",
		slog.Int64("cliente_id", created.ID),
		slog.String("razonsocial", created.RazonSocial))
	return created, nil
}

// Update implements store.ClienteStore.Update.
func (s *ClienteStore) Update(ctx context.Context, id int64, cliente *domain.Cliente) (*domain.Cliente, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`UPDATE clientes
		 SET codigoalte = $1, razonsocial = $2, nombre = $3, direccion = $4,
		     telefono = $5, rut = $6, estado = $7, longitud = $8, latitud = $9
		 WHERE id = $10
		 RETURNING `+clienteColumns,
		cliente.CodigoAlte,
		cliente.RazonSocial,
		cliente.Nombre,
		cliente.Direccion,
		cliente.Telefono,
		cliente.Rut,
		cliente.Estado,
		cliente.Longitud,
		cliente.Latitud,
		id,
	)

	updated, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClienteNotFound
		}
		log.Error("failed to update cliente",
			slog.String("error", err.Error()),
			slog.Int64("cliente_id", id))
		return nil, store.NewStoreError("cliente", "actualizar", err)
	}

	log.Info("cliente updated successfully", slog.Int64("cliente_id", id))
	return updated, nil
}

// Delete implements store.ClienteStore.Delete. The row stays; only the
// estado flips to Inactivo.
func (s *ClienteStore) Delete(ctx context.Context, id int64) (*domain.Cliente, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`UPDATE clientes SET estado = $1 WHERE id = $2 RETURNING `+clienteColumns,
		domain.EstadoInactivo, id)

	deleted, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClienteNotFound
		}
		log.Error("failed to delete cliente",
			slog.String("error", err.Error()),
			slog.Int64("cliente_id", id))
		return nil, store.NewStoreError("cliente", "eliminar", err)
	}

	log.Info("cliente soft-deleted", slog.Int64("cliente_id", id))
	return deleted, nil
}

// Search implements store.ClienteStore.Search.
func (s *ClienteStore) Search(ctx context.Context, term string) ([]domain.Cliente, error) {
	clientes, err := s.queryClientes(ctx,
		`SELECT `+clienteColumns+` FROM clientes
		 WHERE razonsocial ILIKE $1 OR nombre ILIKE $1 OR codigoalte ILIKE $1
		 ORDER BY razonsocial`,
		"%"+term+"%")
	if err != nil {
		return nil, store.NewStoreError("clientes", "buscar", err)
	}
	return clientes, nil
}
