package http

import (
	"net/http"

	"github.com/cortexhq/embedding-service/internal/api/respond"
	"github.com/cortexhq/embedding-service/internal/config"
	"github.com/cortexhq/embedding-service/internal/model"
)

// HealthHandler handles GET /health.
type HealthHandler struct {
	handle *model.Handle
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(handle *model.Handle) *HealthHandler {
	return &HealthHandler{handle: handle}
}

type healthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	ModelLoaded bool   `json:"model_loaded"`
}

// CheckHealth always returns 200; callers distinguish readiness via the
// model_loaded field, not via the status code.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Service:     config.ServiceName,
		Version:     config.ServiceVersion,
		ModelLoaded: h.handle.Loaded(),
	})
}
