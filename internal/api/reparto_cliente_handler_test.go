package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/mocks"
)

func newRepartoClienteRouter(store *mocks.MockRepartoClienteStore) *chi.Mux {
	h := NewRepartoClienteHandler(store, nil)
	r := chi.NewRouter()
	r.Post("/api/reparto-cliente/add", h.AddCliente)
	r.Post("/api/reparto-cliente/remove", h.RemoveCliente)
	r.Get("/api/reparto-cliente/reparto/{reparto_id}", h.GetClientes)
	r.Get("/api/reparto-cliente/cliente/{cliente_id}", h.GetRepartos)
	return r
}

func TestRepartoClienteHandler_AddSingle(t *testing.T) {
	store := mocks.NewMockRepartoClienteStore()
	router := newRepartoClienteRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/reparto-cliente/add",
		map[string]any{"reparto_id": 1, "cliente_id": 7})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Cliente *int64 `json:"cliente"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Cliente agregado al reparto", resp.Message)
	require.NotNil(t, resp.Cliente)
	assert.Equal(t, int64(7), *resp.Cliente)
	require.Len(t, store.Rows, 1)
}

func TestRepartoClienteHandler_AddArray(t *testing.T) {
	store := mocks.NewMockRepartoClienteStore()
	router := newRepartoClienteRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/reparto-cliente/add",
		map[string]any{"reparto_id": 1, "cliente_id": []int64{7, 8, 9}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message  string  `json:"message"`
		Clientes []int64 `json:"clientes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Clientes agregados al reparto", resp.Message)
	assert.Equal(t, []int64{7, 8, 9}, resp.Clientes)
	assert.Len(t, store.Rows, 3)
}

func TestRepartoClienteHandler_AddDuplicateInsertsTwoRows(t *testing.T) {
	store := mocks.NewMockRepartoClienteStore()
	router := newRepartoClienteRouter(store)

	body := map[string]any{"reparto_id": 1, "cliente_id": 7}
	rec := doRequest(t, router, http.MethodPost, "/api/reparto-cliente/add", body)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodPost, "/api/reparto-cliente/add", body)
	require.Equal(t, http.StatusOK, rec.Code)

	// No uniqueness on the pair: both inserts land.
	assert.Len(t, store.Rows, 2)
}

func TestRepartoClienteHandler_RemoveAbsentPairSucceeds(t *testing.T) {
	store := mocks.NewMockRepartoClienteStore()
	router := newRepartoClienteRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/reparto-cliente/remove",
		map[string]any{"reparto_id": 1, "cliente_id": 99})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Cliente eliminado del reparto", env.Message)
}

func TestRepartoClienteHandler_GetClientes(t *testing.T) {
	store := mocks.NewMockRepartoClienteStore()
	store.Clientes[7] = &domain.Cliente{ID: 7, RazonSocial: "Andina SpA", Nombre: "Andina", Estado: domain.EstadoActivo}
	store.Rows = []mocks.RepartoClienteLink{{RepartoID: 1, ClienteID: 7}}
	router := newRepartoClienteRouter(store)

	rec := doRequest(t, router, http.MethodGet, "/api/reparto-cliente/reparto/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var clientes []domain.Cliente
	decodeData(t, env, &clientes)
	require.Len(t, clientes, 1)
	assert.Equal(t, int64(7), clientes[0].ID)
}

func TestRepartoClienteHandler_GetRepartos(t *testing.T) {
	store := mocks.NewMockRepartoClienteStore()
	store.Repartos[3] = &domain.Reparto{ID: 3, CamionID: 1, RutaID: 2}
	store.Rows = []mocks.RepartoClienteLink{{RepartoID: 3, ClienteID: 7}}
	router := newRepartoClienteRouter(store)

	rec := doRequest(t, router, http.MethodGet, "/api/reparto-cliente/cliente/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var repartos []domain.Reparto
	decodeData(t, env, &repartos)
	require.Len(t, repartos, 1)
	assert.Equal(t, int64(3), repartos[0].ID)
}
