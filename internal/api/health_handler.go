package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fmardones/reparto-api/internal/api/shared"
)

// Pinger is the connectivity probe used by the health endpoint,
// satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type rootResponse struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Database  string  `json:"database"`
	Uptime    float64 `json:"uptime"`
}

// HealthHandler serves the public root and health endpoints.
type HealthHandler struct {
	db          Pinger
	environment string
	started     time.Time
	logger      *slog.Logger
}

// NewHealthHandler creates a HealthHandler. Uptime counts from the
// moment of construction.
func NewHealthHandler(db Pinger, environment string, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		db:          db,
		environment: environment,
		started:     time.Now(),
		logger:      logger.With(slog.String("component", "health_handler")),
	}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, rootResponse{
		Message:     "🚀 API funcionando correctamente",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
	})
}

// Health handles GET /health. The database field reports the result of
// a live ping, so a dropped connection shows up here before it shows up
// as failing requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Warn("database ping failed", "error", err)
		database = "disconnected"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  database,
		Uptime:    time.Since(h.started).Seconds(),
	})
}
