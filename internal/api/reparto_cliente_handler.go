package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fmardones/reparto-api/internal/api/shared"
	"github.com/fmardones/reparto-api/internal/store"
)

// RepartoClienteRequest is the payload for the association endpoints.
// cliente_id accepts either a single id or an array of ids.
type RepartoClienteRequest struct {
	RepartoID int64           `json:"reparto_id"`
	ClienteID json.RawMessage `json:"cliente_id"`
}

// clienteAddedResponse echoes the id(s) just linked to the reparto.
type clienteAddedResponse struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Cliente  *int64  `json:"cliente,omitempty"`
	Clientes []int64 `json:"clientes,omitempty"`
}

// RepartoClienteHandler handles the reparto-cliente association routes.
type RepartoClienteHandler struct {
	store  store.RepartoClienteStore
	logger *slog.Logger
}

// NewRepartoClienteHandler creates a RepartoClienteHandler.
func NewRepartoClienteHandler(s store.RepartoClienteStore, logger *slog.Logger) *RepartoClienteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepartoClienteHandler{
		store:  s,
		logger: logger.With(slog.String("component", "reparto_cliente_handler")),
	}
}

// AddCliente handles POST /api/reparto-cliente/add. Re-adding an
// existing pair inserts another row; inserts are sequential, so a
// failure partway through an array leaves the earlier rows in place.
func (h *RepartoClienteHandler) AddCliente(w http.ResponseWriter, r *http.Request) {
	var req RepartoClienteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	var ids []int64
	if err := json.Unmarshal(req.ClienteID, &ids); err == nil {
		for _, cid := range ids {
			if err := h.store.Add(r.Context(), req.RepartoID, cid); err != nil {
				h.logger.Error("failed to add cliente to reparto", "error", err,
					"reparto_id", req.RepartoID, "cliente_id", cid)
				shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, clienteAddedResponse{
			Success:  true,
			Message:  "Clientes agregados al reparto",
			Clientes: ids,
		})
		return
	}

	var id int64
	if err := json.Unmarshal(req.ClienteID, &id); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}
	if err := h.store.Add(r.Context(), req.RepartoID, id); err != nil {
		h.logger.Error("failed to add cliente to reparto", "error", err,
			"reparto_id", req.RepartoID, "cliente_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, clienteAddedResponse{
		Success: true,
		Message: "Cliente agregado al reparto",
		Cliente: &id,
	})
}

// RemoveCliente handles POST /api/reparto-cliente/remove. Removing a
// pair that does not exist still reports success.
func (h *RepartoClienteHandler) RemoveCliente(w http.ResponseWriter, r *http.Request) {
	var req RepartoClienteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	var id int64
	if err := json.Unmarshal(req.ClienteID, &id); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Formato de petición inválido")
		return
	}

	if err := h.store.Remove(r.Context(), req.RepartoID, id); err != nil {
		h.logger.Error("failed to remove cliente from reparto", "error", err,
			"reparto_id", req.RepartoID, "cliente_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "Cliente eliminado del reparto",
	})
}

// GetClientes handles GET /api/reparto-cliente/reparto/{reparto_id}.
func (h *RepartoClienteHandler) GetClientes(w http.ResponseWriter, r *http.Request) {
	repartoID, ok := getPathID(w, r, "reparto_id")
	if !ok {
		return
	}

	clientes, err := h.store.ClientesByReparto(r.Context(), repartoID)
	if err != nil {
		h.logger.Error("failed to list clientes for reparto", "error", err, "reparto_id", repartoID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, clientes)
}

// GetRepartos handles GET /api/reparto-cliente/cliente/{cliente_id}.
func (h *RepartoClienteHandler) GetRepartos(w http.ResponseWriter, r *http.Request) {
	clienteID, ok := getPathID(w, r, "cliente_id")
	if !ok {
		return
	}

	repartos, err := h.store.RepartosByCliente(r.Context(), clienteID)
	if err != nil {
		h.logger.Error("failed to list repartos for cliente", "error", err, "cliente_id", clienteID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, repartos)
}
