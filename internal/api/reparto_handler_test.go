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

type repartoFixture struct {
	repartos *mocks.MockRepartoStore
	clientes *mocks.MockClienteStore
	camiones *mocks.MockCamionStore
	rutas    *mocks.MockRutaStore
	router   *chi.Mux
}

func newRepartoFixture() *repartoFixture {
	f := &repartoFixture{
		repartos: mocks.NewMockRepartoStore(),
		clientes: mocks.NewMockClienteStore(),
		camiones: mocks.NewMockCamionStore(),
		rutas:    mocks.NewMockRutaStore(),
	}
	h := NewRepartoHandler(f.repartos, f.clientes, f.camiones, f.rutas, nil)
	r := chi.NewRouter()
	r.Get("/api/repartos", h.List)
	r.Get("/api/repartos/cliente/{cliente_id}", h.ListByCliente)
	r.Get("/api/repartos/camion/{camion_id}", h.ListByCamion)
	r.Get("/api/repartos/ruta/{ruta_id}", h.ListByRuta)
	r.Get("/api/repartos/{id}", h.Get)
	r.Post("/api/repartos", h.Create)
	r.Put("/api/repartos/{id}", h.Update)
	r.Delete("/api/repartos/{id}", h.Delete)
	f.router = r
	return f
}

func (f *repartoFixture) seedCamionRuta() {
	f.camiones.Camiones[1] = &domain.Camion{ID: 1, Nombre: "Camión Norte"}
	f.rutas.Rutas[2] = &domain.Ruta{ID: 2, Nombre: "Ruta Costera"}
}

func TestRepartoHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid",
			body:           map[string]any{"camion_id": 1, "ruta_id": 2},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "string_ids_accepted",
			body:           map[string]any{"camion_id": "1", "ruta_id": "2"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_ids",
			body:           map[string]any{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Camión ID y Ruta ID son obligatorios",
		},
		{
			name:           "non_integer_ids",
			body:           map[string]any{"camion_id": 1.5, "ruta_id": 2},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Los IDs deben ser números enteros válidos",
		},
		{
			name:           "unknown_camion",
			body:           map[string]any{"camion_id": 99, "ruta_id": 2},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Camión no encontrado",
		},
		{
			name:           "unknown_ruta",
			body:           map[string]any{"camion_id": 1, "ruta_id": 99},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Ruta no encontrada",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newRepartoFixture()
			f.seedCamionRuta()

			rec := doRequest(t, f.router, http.MethodPost, "/api/repartos", tc.body)
			require.Equal(t, tc.expectedStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, env.Error)
				return
			}
			assert.Equal(t, "Reparto creado exitosamente", env.Message)

			var created domain.Reparto
			decodeData(t, env, &created)
			assert.Equal(t, int64(1), created.CamionID)
			assert.Equal(t, int64(2), created.RutaID)
		})
	}
}

func TestRepartoHandler_ListNewestFirst(t *testing.T) {
	f := newRepartoFixture()
	f.repartos.Repartos[1] = &domain.Reparto{ID: 1, CamionID: 1, RutaID: 2}
	f.repartos.Repartos[2] = &domain.Reparto{ID: 2, CamionID: 1, RutaID: 2}
	f.repartos.Repartos[3] = &domain.Reparto{ID: 3, CamionID: 1, RutaID: 2}

	rec := doRequest(t, f.router, http.MethodGet, "/api/repartos", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var listed []domain.Reparto
	decodeData(t, env, &listed)
	require.Len(t, listed, 3)
	assert.Equal(t, int64(3), listed[0].ID)
	assert.Equal(t, int64(1), listed[2].ID)
}

func TestRepartoHandler_UpdateNotFound(t *testing.T) {
	f := newRepartoFixture()
	f.seedCamionRuta()

	rec := doRequest(t, f.router, http.MethodPut, "/api/repartos/7",
		map[string]any{"camion_id": 1, "ruta_id": 2})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Reparto no encontrado", decodeEnvelope(t, rec).Error)
}

func TestRepartoHandler_ListByCamionEchoesFilter(t *testing.T) {
	f := newRepartoFixture()
	f.repartos.Repartos[1] = &domain.Reparto{ID: 1, CamionID: 5, RutaID: 2}
	f.repartos.Repartos[2] = &domain.Reparto{ID: 2, CamionID: 6, RutaID: 2}

	rec := doRequest(t, f.router, http.MethodGet, "/api/repartos/camion/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool             `json:"success"`
		Data     []domain.Reparto `json:"data"`
		Count    int              `json:"count"`
		CamionID *int64           `json:"camion_id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	require.NotNil(t, resp.CamionID)
	assert.Equal(t, int64(5), *resp.CamionID)
}

func TestRepartoHandler_ListByCamionInvalidID(t *testing.T) {
	f := newRepartoFixture()

	rec := doRequest(t, f.router, http.MethodGet, "/api/repartos/camion/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Camión ID debe ser un número entero válido", decodeEnvelope(t, rec).Error)
}

func TestRepartoHandler_ListByCliente(t *testing.T) {
	f := newRepartoFixture()
	f.repartos.Repartos[1] = &domain.Reparto{ID: 1, CamionID: 1, RutaID: 2}
	f.repartos.Repartos[2] = &domain.Reparto{ID: 2, CamionID: 1, RutaID: 2}
	f.repartos.Links = []mocks.RepartoClienteLink{{RepartoID: 1, ClienteID: 30}}

	rec := doRequest(t, f.router, http.MethodGet, "/api/repartos/cliente/30", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data      []domain.Reparto `json:"data"`
		Count     int              `json:"count"`
		ClienteID *int64           `json:"cliente_id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Data[0].ID)
	require.NotNil(t, resp.ClienteID)
	assert.Equal(t, int64(30), *resp.ClienteID)
}

func TestRepartoHandler_Delete(t *testing.T) {
	f := newRepartoFixture()
	f.repartos.Repartos[4] = &domain.Reparto{ID: 4, CamionID: 1, RutaID: 2}

	rec := doRequest(t, f.router, http.MethodDelete, "/api/repartos/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Reparto eliminado exitosamente", decodeEnvelope(t, rec).Message)

	rec = doRequest(t, f.router, http.MethodGet, "/api/repartos/4", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
