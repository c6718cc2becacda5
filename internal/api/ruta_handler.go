package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fmardones/reparto-api/internal/api/shared"
	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// RutaRequest is the payload for ruta create/update.
type RutaRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

// RutaHandler handles /api/rutas requests.
type RutaHandler struct {
	rutaStore store.RutaStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewRutaHandler creates a RutaHandler with the given dependencies.
func NewRutaHandler(rutaStore store.RutaStore, logger *slog.Logger) *RutaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RutaHandler{
		rutaStore: rutaStore,
		validator: newValidator(),
		logger:    logger.With(slog.String("component", "ruta_handler")),
	}
}

// List handles GET /api/rutas.
func (h *RutaHandler) List(w http.ResponseWriter, r *http.Request) {
	rutas, err := h.rutaStore.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list rutas", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithList(w, r, rutas, len(rutas))
}

// Get handles GET /api/rutas/{id}.
func (h *RutaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	ruta, err := h.rutaStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRutaNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Ruta no encontrada")
			return
		}
		h.logger.Error("failed to get ruta", "error", err, "ruta_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, ruta)
}

// Create handles POST /api/rutas.
func (h *RutaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RutaRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return
	}

	ruta, err := h.rutaStore.Create(r.Context(), &domain.Ruta{Nombre: req.Nombre})
	if err != nil {
		h.logger.Error("failed to create ruta", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusCreated, "Ruta creada exitosamente", ruta)
}

// Update handles PUT /api/rutas/{id}.
func (h *RutaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.rutaStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrRutaNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Ruta no encontrada")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	var req RutaRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return
	}

	ruta, err := h.rutaStore.Update(r.Context(), id, &domain.Ruta{Nombre: req.Nombre})
	if err != nil {
		if errors.Is(err, store.ErrRutaNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Ruta no encontrada")
			return
		}
		h.logger.Error("failed to update ruta", "error", err, "ruta_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Ruta actualizada exitosamente", ruta)
}

// Delete handles DELETE /api/rutas/{id}.
func (h *RutaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.rutaStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrRutaNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Ruta no encontrada")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	ruta, err := h.rutaStore.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRutaNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Ruta no encontrada")
			return
		}
		h.logger.Error("failed to delete ruta", "error", err, "ruta_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Ruta eliminada exitosamente", ruta)
}

// Search handles GET /api/rutas/search?q=.
func (h *RutaHandler) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := getSearchTerm(w, r)
	if !ok {
		return
	}

	rutas, err := h.rutaStore.Search(r.Context(), term)
	if err != nil {
		h.logger.Error("failed to search rutas", "error", err, "term", term)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithSearchResults(w, r, rutas, len(rutas), term)
}
