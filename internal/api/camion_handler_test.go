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

func newCamionRouter(camiones *mocks.MockCamionStore, repartos *mocks.MockRepartoStore) *chi.Mux {
	h := NewCamionHandler(camiones, repartos, nil)
	r := chi.NewRouter()
	r.Get("/api/camiones", h.List)
	r.Get("/api/camiones/search", h.Search)
	r.Get("/api/camiones/{id}", h.Get)
	r.Post("/api/camiones", h.Create)
	r.Put("/api/camiones/{id}", h.Update)
	r.Delete("/api/camiones/{id}", h.Delete)
	return r
}

func TestCamionHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		expectedErrors []string
	}{
		{
			name:           "valid",
			body:           map[string]any{"nombre": "Camión 3/4"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_nombre",
			body:           map[string]any{},
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"El campo 'nombre' es obligatorio"},
		},
		{
			name:           "blank_nombre",
			body:           map[string]any{"nombre": "   "},
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"El campo 'nombre' es obligatorio"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newCamionRouter(mocks.NewMockCamionStore(), mocks.NewMockRepartoStore())
			rec := doRequest(t, router, http.MethodPost, "/api/camiones", tc.body)

			require.Equal(t, tc.expectedStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			if tc.expectedErrors != nil {
				assert.Equal(t, tc.expectedErrors, env.Errors)
				return
			}
			assert.Equal(t, "Camión creado exitosamente", env.Message)

			var created domain.Camion
			decodeData(t, env, &created)
			assert.Equal(t, "Camión 3/4", created.Nombre)
		})
	}
}

func TestCamionHandler_CreateTrimsNombre(t *testing.T) {
	store := mocks.NewMockCamionStore()
	router := newCamionRouter(store, mocks.NewMockRepartoStore())

	rec := doRequest(t, router, http.MethodPost, "/api/camiones", map[string]any{"nombre": "  Rampla Norte  "})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Camion
	decodeData(t, decodeEnvelope(t, rec), &created)
	assert.Equal(t, "Rampla Norte", created.Nombre)
}

func TestCamionHandler_DeleteBlockedWhenReferenced(t *testing.T) {
	camiones := mocks.NewMockCamionStore()
	camiones.Camiones[1] = &domain.Camion{ID: 1, Nombre: "Camión Norte"}

	repartos := mocks.NewMockRepartoStore()
	repartos.Repartos[10] = &domain.Reparto{ID: 10, CamionID: 1, RutaID: 2}
	repartos.Repartos[11] = &domain.Reparto{ID: 11, CamionID: 1, RutaID: 3}

	router := newCamionRouter(camiones, repartos)
	rec := doRequest(t, router, http.MethodDelete, "/api/camiones/1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success              bool    `json:"success"`
		Error                string  `json:"error"`
		RepartosRelacionados []int64 `json:"repartosRelacionados"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "No se puede eliminar el camión porque está siendo usado en repartos", resp.Error)
	assert.ElementsMatch(t, []int64{10, 11}, resp.RepartosRelacionados)

	// The camion is untouched.
	_, exists := camiones.Camiones[1]
	assert.True(t, exists)
}

func TestCamionHandler_DeleteUnreferenced(t *testing.T) {
	camiones := mocks.NewMockCamionStore()
	camiones.Camiones[1] = &domain.Camion{ID: 1, Nombre: "Camión Libre"}

	router := newCamionRouter(camiones, mocks.NewMockRepartoStore())
	rec := doRequest(t, router, http.MethodDelete, "/api/camiones/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Camión eliminado exitosamente", env.Message)
	_, exists := camiones.Camiones[1]
	assert.False(t, exists)
}

func TestCamionHandler_UpdateNotFound(t *testing.T) {
	router := newCamionRouter(mocks.NewMockCamionStore(), mocks.NewMockRepartoStore())

	rec := doRequest(t, router, http.MethodPut, "/api/camiones/9", map[string]any{"nombre": "Nuevo"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Camión no encontrado", decodeEnvelope(t, rec).Error)
}

func TestCamionHandler_Search(t *testing.T) {
	store := mocks.NewMockCamionStore()
	store.Camiones[1] = &domain.Camion{ID: 1, Nombre: "Camión Refrigerado"}
	store.Camiones[2] = &domain.Camion{ID: 2, Nombre: "Rampla Abierta"}

	router := newCamionRouter(store, mocks.NewMockRepartoStore())
	rec := doRequest(t, router, http.MethodGet, "/api/camiones/search?q=refri", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, "refri", env.SearchTerm)
}
