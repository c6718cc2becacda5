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

// CamionRequest is the payload for camion create/update.
type CamionRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

// camionDeleteConflict is the rejection shape when a camion is still
// referenced by repartos: it lists the referencing reparto ids.
type camionDeleteConflict struct {
	Success              bool    `json:"success"`
	Error                string  `json:"error"`
	RepartosRelacionados []int64 `json:"repartosRelacionados"`
}

// CamionHandler handles /api/camiones requests.
type CamionHandler struct {
	camionStore  store.CamionStore
	repartoStore store.RepartoStore
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewCamionHandler creates a CamionHandler with the given dependencies.
func NewCamionHandler(camionStore store.CamionStore, repartoStore store.RepartoStore, logger *slog.Logger) *CamionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CamionHandler{
		camionStore:  camionStore,
		repartoStore: repartoStore,
		validator:    newValidator(),
		logger:       logger.With(slog.String("component", "camion_handler")),
	}
}

// List handles GET /api/camiones.
func (h *CamionHandler) List(w http.ResponseWriter, r *http.Request) {
	camiones, err := h.camionStore.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list camiones", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithList(w, r, camiones, len(camiones))
}

// Get handles GET /api/camiones/{id}.
func (h *CamionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	camion, err := h.camionStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCamionNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Camión no encontrado")
			return
		}
		h.logger.Error("failed to get camion", "error", err, "camion_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, camion)
}

// Create handles POST /api/camiones.
func (h *CamionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CamionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return
	}

	camion, err := h.camionStore.Create(r.Context(), &domain.Camion{Nombre: req.Nombre})
	if err != nil {
		h.logger.Error("failed to create camion", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusCreated, "Camión creado exitosamente", camion)
}

// Update handles PUT /api/camiones/{id}.
func (h *CamionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.camionStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrCamionNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Camión no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	var req CamionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return
	}

	camion, err := h.camionStore.Update(r.Context(), id, &domain.Camion{Nombre: req.Nombre})
	if err != nil {
		if errors.Is(err, store.ErrCamionNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Camión no encontrado")
			return
		}
		h.logger.Error("failed to update camion", "error", err, "camion_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Camión actualizado exitosamente", camion)
}

// Delete handles DELETE /api/camiones/{id}. A camion referenced by any
// reparto is never deleted; the rejection lists the referencing ids.
func (h *CamionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.camionStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrCamionNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Camión no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	repartos, err := h.repartoStore.ListByCamion(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to check repartos for camion", "error", err, "camion_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if len(repartos) > 0 {
		ids := make([]int64, 0, len(repartos))
		for _, rep := range repartos {
			ids = append(ids, rep.ID)
		}
		shared.RespondWithJSON(w, r, http.StatusBadRequest, camionDeleteConflict{
			Success:              false,
			Error:                "No se puede eliminar el camión porque está siendo usado en repartos",
			RepartosRelacionados: ids,
		})
		return
	}

	camion, err := h.camionStore.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCamionNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Camión no encontrado")
			return
		}
		h.logger.Error("failed to delete camion", "error", err, "camion_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Camión eliminado exitosamente", camion)
}

// Search handles GET /api/camiones/search?q=.
func (h *CamionHandler) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := getSearchTerm(w, r)
	if !ok {
		return
	}

	camiones, err := h.camionStore.Search(r.Context(), term)
	if err != nil {
		h.logger.Error("failed to search camiones", "error", err, "term", term)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithSearchResults(w, r, camiones, len(camiones), term)
}
