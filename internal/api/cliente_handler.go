package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fmardones/reparto-api/internal/api/shared"
	"github.com/fmardones/reparto-api/internal/domain"
	"github.com/fmardones/reparto-api/internal/store"
)

// ClienteRequest is the payload for cliente create/update. Only
// razonsocial, nombre and direccion are mandatory; the rest of the
// fields are optional commercial data.
type ClienteRequest struct {
	CodigoAlte  *string  `json:"codigoalte"`
	RazonSocial string   `json:"razonsocial" validate:"required"`
	Nombre      string   `json:"nombre" validate:"required"`
	Direccion   string   `json:"direccion" validate:"required"`
	Telefono    *string  `json:"telefono"`
	Rut         *string  `json:"rut"`
	Estado      string   `json:"estado"`
	Longitud    *float64 `json:"longitud"`
	Latitud     *float64 `json:"latitud"`
}

func (req *ClienteRequest) toDomain() *domain.Cliente {
	estado := req.Estado
	if estado == "" {
		estado = domain.EstadoActivo
	}
	return &domain.Cliente{
		CodigoAlte:  req.CodigoAlte,
		RazonSocial: req.RazonSocial,
		Nombre:      req.Nombre,
		Direccion:   req.Direccion,
		Telefono:    req.Telefono,
		Rut:         req.Rut,
		Estado:      estado,
		Longitud:    req.Longitud,
		Latitud:     req.Latitud,
	}
}

// ClienteHandler handles /api/clientes requests.
type ClienteHandler struct {
	clienteStore store.ClienteStore
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewClienteHandler creates a ClienteHandler with the given dependencies.
func NewClienteHandler(clienteStore store.ClienteStore, logger *slog.Logger) *ClienteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClienteHandler{
		clienteStore: clienteStore,
		validator:    newValidator(),
		logger:       logger.With(slog.String("component", "cliente_handler")),
	}
}

// List handles GET /api/clientes. Inactive clientes are included.
func (h *ClienteHandler) List(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.clienteStore.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list clientes", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithList(w, r, clientes, len(clientes))
}

// ListActivos handles GET /api/clientes/activos.
func (h *ClienteHandler) ListActivos(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.clienteStore.ListActivos(r.Context())
	if err != nil {
		h.logger.Error("failed to list active clientes", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithList(w, r, clientes, len(clientes))
}

// Get handles GET /api/clientes/{id}.
func (h *ClienteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	cliente, err := h.clienteStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrClienteNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		h.logger.Error("failed to get cliente", "error", err, "cliente_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, cliente)
}

// Create handles POST /api/clientes.
func (h *ClienteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ClienteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return
	}

	if msg, err := h.checkDuplicates(r, req.CodigoAlte, req.Rut); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	} else if msg != "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msg)
		return
	}

	cliente, err := h.clienteStore.Create(r.Context(), req.toDomain())
	if err != nil {
		h.logger.Error("failed to create cliente", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusCreated, "Cliente creado exitosamente", cliente)
}

// Update handles PUT /api/clientes/{id}.
func (h *ClienteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	existente, err := h.clienteStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrClienteNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	var req ClienteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, violationMessages(err))
		return
	}

	// Duplicate checks skip values the cliente already owns.
	codigo := req.CodigoAlte
	if codigo != nil && existente.CodigoAlte != nil && *codigo == *existente.CodigoAlte {
		codigo = nil
	}
	rut := req.Rut
	if rut != nil && existente.Rut != nil && *rut == *existente.Rut {
		rut = nil
	}
	if msg, err := h.checkDuplicates(r, codigo, rut); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	} else if msg != "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msg)
		return
	}

	cliente, err := h.clienteStore.Update(r.Context(), id, req.toDomain())
	if err != nil {
		if errors.Is(err, store.ErrClienteNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		h.logger.Error("failed to update cliente", "error", err, "cliente_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Cliente actualizado exitosamente", cliente)
}

// Delete handles DELETE /api/clientes/{id}. The cliente is marked
// Inactivo instead of being removed; it still shows up in the full
// list and by-id lookups afterwards.
func (h *ClienteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.clienteStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrClienteNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	cliente, err := h.clienteStore.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrClienteNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		h.logger.Error("failed to deactivate cliente", "error", err, "cliente_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Cliente eliminado exitosamente", cliente)
}

// Search handles GET /api/clientes/search?q=.
func (h *ClienteHandler) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := getSearchTerm(w, r)
	if !ok {
		return
	}

	clientes, err := h.clienteStore.Search(r.Context(), term)
	if err != nil {
		h.logger.Error("failed to search clientes", "error", err, "term", term)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithSearchResults(w, r, clientes, len(clientes), term)
}

// checkDuplicates returns a rejection message when another cliente
// already owns the given codigo alternativo or RUT. Nil values skip
// their check.
func (h *ClienteHandler) checkDuplicates(r *http.Request, codigo, rut *string) (string, error) {
	if codigo != nil && *codigo != "" {
		_, err := h.clienteStore.GetByCodigo(r.Context(), *codigo)
		switch {
		case err == nil:
			return "Ya existe un cliente con ese código alternativo", nil
		case !errors.Is(err, store.ErrClienteNotFound):
			return "", err
		}
	}
	if rut != nil && *rut != "" {
		_, err := h.clienteStore.GetByRut(r.Context(), *rut)
		switch {
		case err == nil:
			return "Ya existe un cliente con ese RUT", nil
		case !errors.Is(err, store.ErrClienteNotFound):
			return "", err
		}
	}
	return "", nil
}
