package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// RecordCounter reports how many records the store holds.
type RecordCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	counter RecordCounter
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(counter RecordCounter) *HealthHandler {
	return &HealthHandler{counter: counter}
}

// Health handles GET /healthz. The store check doubles as a readiness
// probe: a failing count degrades the status without taking the endpoint
// down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	count, err := h.counter.Count(r.Context())
	if err != nil {
		status = "degraded"
	}

	render.JSON(w, r, map[string]any{
		"status":  status,
		"records": count,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
