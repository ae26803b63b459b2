package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// HealthHandler handles liveness and readiness probes.
type HealthHandler struct {
	service DataServiceInterface
	started time.Time
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service DataServiceInterface, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		started: time.Now(),
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.HealthCheck)
	r.Get("/live", h.LivenessCheck)
	r.Get("/ready", h.ReadinessCheck)
	return r
}

// HealthCheck handles GET /api/health. It reports degraded, not failing,
// when the dataset is unreachable: the process itself is still serving.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	detail := map[string]interface{}{}

	last, err := h.service.LastUpdate(r.Context())
	if err != nil {
		status = "degraded"
		detail["data_source"] = err.Error()
	} else {
		detail["last_update"] = last
	}

	render.JSON(w, r, map[string]interface{}{
		"status":    status,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().Format(time.RFC3339),
		"detail":    detail,
	})
}

// LivenessCheck handles GET /api/health/live.
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{"status": "alive"})
}

// ReadinessCheck handles GET /api/health/ready. Ready means the dataset
// loads.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.LastUpdate(r.Context()); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]interface{}{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{"status": "ready"})
}
