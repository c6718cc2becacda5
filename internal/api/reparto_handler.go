package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fmardones/reparto-api/internal/api/shared"
	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// RepartoRequest is the payload for reparto create/update. The ids come
// in as json.Number so "3" and 3 are both accepted while 3.5 is not.
type RepartoRequest struct {
	CamionID json.Number `json:"camion_id"`
	RutaID   json.Number `json:"ruta_id"`
}

// repartoFilterResponse is the by-cliente/by-camion/by-ruta list shape:
// the standard list envelope plus the filter id echoed back.
type repartoFilterResponse struct {
	Success   bool             `json:"success"`
	Data      []domain.Reparto `json:"data"`
	Count     int              `json:"count"`
	ClienteID *int64           `json:"cliente_id,omitempty"`
	CamionID  *int64           `json:"camion_id,omitempty"`
	RutaID    *int64           `json:"ruta_id,omitempty"`
}

// RepartoHandler handles /api/repartos requests.
type RepartoHandler struct {
	repartoStore store.RepartoStore
	clienteStore store.ClienteStore
	camionStore  store.CamionStore
	rutaStore    store.RutaStore
	logger       *slog.Logger
}

// NewRepartoHandler creates a RepartoHandler with the given dependencies.
func NewRepartoHandler(
	repartoStore store.RepartoStore,
	clienteStore store.ClienteStore,
	camionStore store.CamionStore,
	rutaStore store.RutaStore,
	logger *slog.Logger,
) *RepartoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepartoHandler{
		repartoStore: repartoStore,
		clienteStore: clienteStore,
		camionStore:  camionStore,
		rutaStore:    rutaStore,
		logger:       logger.With(slog.String("component", "reparto_handler")),
	}
}

// List handles GET /api/repartos. Newest repartos come first.
func (h *RepartoHandler) List(w http.ResponseWriter, r *http.Request) {
	repartos, err := h.repartoStore.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list repartos", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithList(w, r, repartos, len(repartos))
}

// Get handles GET /api/repartos/{id}.
func (h *RepartoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	reparto, err := h.repartoStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRepartoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Reparto no encontrado")
			return
		}
		h.logger.Error("failed to get reparto", "error", err, "reparto_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, reparto)
}

// Create handles POST /api/repartos.
func (h *RepartoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RepartoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	camionID, rutaID, ok := h.parseIDs(w, r, req)
	if !ok {
		return
	}
	if !h.validateReferences(w, r, camionID, rutaID) {
		return
	}

	reparto, err := h.repartoStore.Create(r.Context(), &domain.Reparto{CamionID: camionID, RutaID: rutaID})
	if err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create reparto", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusCreated, "Reparto creado exitosamente", reparto)
}

// Update handles PUT /api/repartos/{id}.
func (h *RepartoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.repartoStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrRepartoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Reparto no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	var req RepartoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	camionID, rutaID, ok := h.parseIDs(w, r, req)
	if !ok {
		return
	}
	if !h.validateReferences(w, r, camionID, rutaID) {
		return
	}

	reparto, err := h.repartoStore.Update(r.Context(), id, &domain.Reparto{CamionID: camionID, RutaID: rutaID})
	if err != nil {
		if errors.Is(err, store.ErrRepartoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Reparto no encontrado")
			return
		}
		if errors.Is(err, store.ErrInvalidReference) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to update reparto", "error", err, "reparto_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Reparto actualizado exitosamente", reparto)
}

// Delete handles DELETE /api/repartos/{id}.
func (h *RepartoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.repartoStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrRepartoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Reparto no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reparto, err := h.repartoStore.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRepartoNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Reparto no encontrado")
			return
		}
		h.logger.Error("failed to delete reparto", "error", err, "reparto_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Reparto eliminado exitosamente", reparto)
}

// ListByCliente handles GET /api/repartos/cliente/{cliente_id}.
func (h *RepartoHandler) ListByCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, ok := h.filterID(w, r, "cliente_id", "Cliente ID debe ser un número entero válido")
	if !ok {
		return
	}

	repartos, err := h.repartoStore.ListByCliente(r.Context(), clienteID)
	if err != nil {
		h.logger.Error("failed to list repartos by cliente", "error", err, "cliente_id", clienteID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, repartoFilterResponse{
		Success:   true,
		Data:      repartos,
		Count:     len(repartos),
		ClienteID: &clienteID,
	})
}

// ListByCamion handles GET /api/repartos/camion/{camion_id}.
func (h *RepartoHandler) ListByCamion(w http.ResponseWriter, r *http.Request) {
	camionID, ok := h.filterID(w, r, "camion_id", "Camión ID debe ser un número entero válido")
	if !ok {
		return
	}

	repartos, err := h.repartoStore.ListByCamion(r.Context(), camionID)
	if err != nil {
		h.logger.Error("failed to list repartos by camion", "error", err, "camion_id", camionID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, repartoFilterResponse{
		Success:  true,
		Data:     repartos,
		Count:    len(repartos),
		CamionID: &camionID,
	})
}

// ListByRuta handles GET /api/repartos/ruta/{ruta_id}.
func (h *RepartoHandler) ListByRuta(w http.ResponseWriter, r *http.Request) {
	rutaID, ok := h.filterID(w, r, "ruta_id", "Ruta ID debe ser un número entero válido")
	if !ok {
		return
	}

	repartos, err := h.repartoStore.ListByRuta(r.Context(), rutaID)
	if err != nil {
		h.logger.Error("failed to list repartos by ruta", "error", err, "ruta_id", rutaID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, repartoFilterResponse{
		Success: true,
		Data:    repartos,
		Count:   len(repartos),
		RutaID:  &rutaID,
	})
}

// parseIDs extracts camion_id and ruta_id from the request payload,
// rejecting missing and non-integer values.
func (h *RepartoHandler) parseIDs(w http.ResponseWriter, r *http.Request, req RepartoRequest) (int64, int64, bool) {
	if req.CamionID.String() == "" || req.RutaID.String() == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Camión ID y Ruta ID son obligatorios")
		return 0, 0, false
	}

	camionID, errCamion := strconv.ParseInt(req.CamionID.String(), 10, 64)
	rutaID, errRuta := strconv.ParseInt(req.RutaID.String(), 10, 64)
	if errCamion != nil || errRuta != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Los IDs deben ser números enteros válidos")
		return 0, 0, false
	}
	if camionID == 0 || rutaID == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Camión ID y Ruta ID son obligatorios")
		return 0, 0, false
	}
	return camionID, rutaID, true
}

// validateReferences confirms the referenced camion and ruta exist
// before touching the repartos table, so the caller gets an entity
// specific message instead of a raw constraint failure.
func (h *RepartoHandler) validateReferences(w http.ResponseWriter, r *http.Request, camionID, rutaID int64) bool {
	if _, err := h.camionStore.GetByID(r.Context(), camionID); err != nil {
		if errors.Is(err, store.ErrCamionNotFound) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Camión no encontrado")
			return false
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return false
	}
	if _, err := h.rutaStore.GetByID(r.Context(), rutaID); err != nil {
		if errors.Is(err, store.ErrRutaNotFound) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Ruta no encontrada")
			return false
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return false
	}
	return true
}

// filterID parses an integer path parameter for the filtered list
// endpoints, which carry their own parameter specific message.
func (h *RepartoHandler) filterID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}
