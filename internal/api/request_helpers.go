package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fmardones/reparto-api/internal/api/middleware"
	"github.com/fmardones/reparto-api/internal/api/shared"
	"github.com/fmardones/reparto-api/internal/service/auth"
)

// getPathID extracts a positive integer ID from a URL path parameter. It
// writes a 400 response and returns false when the parameter is missing or
// malformed.
func getPathID(w http.ResponseWriter, r *http.Request, paramName string) (int64, bool) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"El ID debe ser un número entero válido")
		return 0, false
	}
	return id, true
}

// getAuthClaims extracts the authenticated caller's claims from the request
// context. It writes a 401 response and returns false when no claims are
// present (which only happens if a protected route was misregistered).
func getAuthClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token de acceso requerido")
		return nil, false
	}
	return claims, true
}

// getSearchTerm extracts the required ?q= query parameter. It writes a 400
// response and returns false when the term is missing.
func getSearchTerm(w http.ResponseWriter, r *http.Request) (string, bool) {
	term := r.URL.Query().Get("q")
	if term == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Término de búsqueda requerido")
		return "", false
	}
	return term, true
}
