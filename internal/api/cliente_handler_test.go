package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/mocks"
)

func newClienteRouter(store *mocks.MockClienteStore) *chi.Mux {
	h := NewClienteHandler(store, nil)
	r := chi.NewRouter()
	r.Get("/api/clientes", h.List)
	r.Get("/api/clientes/activos", h.ListActivos)
	r.Get("/api/clientes/search", h.Search)
	r.Get("/api/clientes/{id}", h.Get)
	r.Post("/api/clientes", h.Create)
	r.Put("/api/clientes/{id}", h.Update)
	r.Delete("/api/clientes/{id}", h.Delete)
	return r
}

func seedCliente(store *mocks.MockClienteStore, razonSocial, nombre string, estado string) *domain.Cliente {
	c, _ := store.Create(nil, &domain.Cliente{
		RazonSocial: razonSocial,
		Nombre:      nombre,
		Direccion:   "Av. Siempre Viva 123",
		Estado:      estado,
	})
	stored := store.Clientes[c.ID]
	return stored
}

func TestClienteHandler_CreateValidation(t *testing.T) {
	store := mocks.NewMockClienteStore()
	router := newClienteRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/clientes", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.ElementsMatch(t, []string{
		"El campo 'razonsocial' es obligatorio",
		"El campo 'nombre' es obligatorio",
		"El campo 'direccion' es obligatorio",
	}, env.Errors)
}

func TestClienteHandler_CreateDefaultsEstadoActivo(t *testing.T) {
	store := mocks.NewMockClienteStore()
	router := newClienteRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/clientes", map[string]any{
		"razonsocial": "Comercial Sur SpA",
		"nombre":      "Comercial Sur",
		"direccion":   "Ruta 5 Sur km 10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Cliente creado exitosamente", env.Message)

	var created domain.Cliente
	decodeData(t, env, &created)
	assert.Equal(t, domain.EstadoActivo, created.Estado)
	assert.NotZero(t, created.ID)
}

func TestClienteHandler_CreateDuplicateRut(t *testing.T) {
	store := mocks.NewMockClienteStore()
	rut := "76123456-7"
	existing := seedCliente(store, "Existente Ltda", "Existente", domain.EstadoActivo)
	existing.Rut = &rut

	router := newClienteRouter(store)
	rec := doRequest(t, router, http.MethodPost, "/api/clientes", map[string]any{
		"razonsocial": "Nuevo SpA",
		"nombre":      "Nuevo",
		"direccion":   "Calle 1",
		"rut":         rut,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Ya existe un cliente con ese RUT", env.Error)
}

func TestClienteHandler_CreateDuplicateCodigo(t *testing.T) {
	store := mocks.NewMockClienteStore()
	codigo := "CLI-001"
	existing := seedCliente(store, "Existente Ltda", "Existente", domain.EstadoActivo)
	existing.CodigoAlte = &codigo

	router := newClienteRouter(store)
	rec := doRequest(t, router, http.MethodPost, "/api/clientes", map[string]any{
		"razonsocial": "Nuevo SpA",
		"nombre":      "Nuevo",
		"direccion":   "Calle 1",
		"codigoalte":  codigo,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ya existe un cliente con ese código alternativo", decodeEnvelope(t, rec).Error)
}

func TestClienteHandler_GetNotFound(t *testing.T) {
	router := newClienteRouter(mocks.NewMockClienteStore())

	rec := doRequest(t, router, http.MethodGet, "/api/clientes/99", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cliente no encontrado", decodeEnvelope(t, rec).Error)
}

func TestClienteHandler_GetInvalidID(t *testing.T) {
	router := newClienteRouter(mocks.NewMockClienteStore())

	rec := doRequest(t, router, http.MethodGet, "/api/clientes/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El ID debe ser un número entero válido", decodeEnvelope(t, rec).Error)
}

func TestClienteHandler_SoftDelete(t *testing.T) {
	store := mocks.NewMockClienteStore()
	seedCliente(store, "Borrable SpA", "Borrable", domain.EstadoActivo)
	router := newClienteRouter(store)

	rec := doRequest(t, router, http.MethodDelete, "/api/clientes/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Cliente eliminado exitosamente", env.Message)

	var deleted domain.Cliente
	decodeData(t, env, &deleted)
	assert.Equal(t, domain.EstadoInactivo, deleted.Estado)

	// Still visible by id and in the full list...
	rec = doRequest(t, router, http.MethodGet, "/api/clientes/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/clientes", nil)
	env = decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	// ...but gone from the activos listing.
	rec = doRequest(t, router, http.MethodGet, "/api/clientes/activos", nil)
	env = decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)
}

func TestClienteHandler_SearchCaseInsensitive(t *testing.T) {
	store := mocks.NewMockClienteStore()
	seedCliente(store, "Distribuidora Andina", "Andina", domain.EstadoActivo)
	seedCliente(store, "Transportes del Maule", "Maule", domain.EstadoActivo)
	router := newClienteRouter(store)

	rec := doRequest(t, router, http.MethodGet, "/api/clientes/search?q=ANDINA", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, "ANDINA", env.SearchTerm)
}

func TestClienteHandler_SearchMissingTerm(t *testing.T) {
	router := newClienteRouter(mocks.NewMockClienteStore())

	rec := doRequest(t, router, http.MethodGet, "/api/clientes/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Término de búsqueda requerido", decodeEnvelope(t, rec).Error)
}

func TestClienteHandler_UpdateNotFoundBeforeValidation(t *testing.T) {
	router := newClienteRouter(mocks.NewMockClienteStore())

	// Invalid body against a missing id: the 404 wins.
	rec := doRequest(t, router, http.MethodPut, "/api/clientes/5", map[string]any{})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cliente no encontrado", decodeEnvelope(t, rec).Error)
}

func TestClienteHandler_UpdateKeepsOwnRut(t *testing.T) {
	store := mocks.NewMockClienteStore()
	rut := "76123456-7"
	existing := seedCliente(store, "Titular SpA", "Titular", domain.EstadoActivo)
	existing.Rut = &rut
	router := newClienteRouter(store)

	// Re-sending the cliente's own RUT must not trip the duplicate check.
	rec := doRequest(t, router, http.MethodPut, "/api/clientes/1", map[string]any{
		"razonsocial": "Titular SpA",
		"nombre":      "Titular Renombrado",
		"direccion":   "Calle Nueva 45",
		"rut":         rut,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cliente actualizado exitosamente", decodeEnvelope(t, rec).Message)
}
