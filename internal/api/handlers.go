package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/service/team"
	"github.com/gracepoint/protocol-analytics/internal/service/visitor"
)

// Handlers holds the services the HTTP layer delegates to.
type Handlers struct {
	visitors *visitor.Service
	teams    *team.Service
}

// NewHandlers creates the handler set.
func NewHandlers(visitors *visitor.Service, teams *team.Service) *Handlers {
	return &Handlers{visitors: visitors, teams: teams}
}

// HealthCheck reports server liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
