package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gracepoint/protocol-analytics/internal/service/team"
)

// GetTeamMetrics computes the performance snapshot for one team.
func (h *Handlers) GetTeamMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.teams.Metrics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// GetPerformanceBundle computes the full church-wide recommendation output:
// summary, support actions, best practices, training needs, monitoring
// alerts, and recognition.
func (h *Handlers) GetPerformanceBundle(w http.ResponseWriter, r *http.Request) {
	b, err := h.teams.Bundle(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// ActOnRecommendation records that an action item was acted upon and fires
// the notification-creation request at the team leader.
func (h *Handlers) ActOnRecommendation(w http.ResponseWriter, r *http.Request) {
	var input team.ActionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.TeamID == "" {
		respondError(w, http.StatusBadRequest, "team_id is required")
		return
	}

	if err := h.teams.ActOn(r.Context(), input); err != nil {
		if errors.Is(err, team.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"result": "notification dispatched"})
}
