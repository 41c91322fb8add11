package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gracepoint/protocol-analytics/internal/analytics"
	"github.com/gracepoint/protocol-analytics/internal/domain"
	"github.com/gracepoint/protocol-analytics/internal/service/visitor"
)

// ListVisitors returns visitors filtered by team and/or status.
func (h *Handlers) ListVisitors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.visitors.List(r.Context(), visitor.ListFilter{
		TeamID:           q.Get("team_id"),
		Status:           domain.VisitorStatus(q.Get("status")),
		MonitoringStatus: domain.MonitoringStatus(q.Get("monitoring_status")),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if out == nil {
		out = []domain.Visitor{}
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateVisitor registers a new visitor. Joining visitors enter the
// onboarding program immediately.
func (h *Handlers) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	var input visitor.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.visitors.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, visitor.ErrMissingName) || errors.Is(err, visitor.ErrMissingTeam) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

// GetVisitor returns a single visitor with milestones and history.
func (h *Handlers) GetVisitor(w http.ResponseWriter, r *http.Request) {
	v, err := h.visitors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, visitor.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// GetVisitorInsight returns the derived per-visitor view.
func (h *Handlers) GetVisitorInsight(w http.ResponseWriter, r *http.Request) {
	ins, err := h.visitors.Insight(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, visitor.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ins)
}

// UpdateMilestone applies a single milestone update.
func (h *Handlers) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "week must be a number")
		return
	}

	var body struct {
		Completed bool   `json:"completed"`
		Notes     string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.visitors.UpdateMilestone(r.Context(), chi.URLParam(r, "id"), week, body.Completed, body.Notes)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidMilestoneWeek):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, visitor.ErrNotJoining):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, visitor.ErrNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// TransitionStatus moves the coarse visitor status.
func (h *Handlers) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.VisitorStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.visitors.TransitionStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		respondTransitionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// TransitionMonitoring moves the fine-grained monitoring status.
func (h *Handlers) TransitionMonitoring(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MonitoringStatus domain.MonitoringStatus `json:"monitoring_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.visitors.TransitionMonitoring(r.Context(), chi.URLParam(r, "id"), body.MonitoringStatus)
	if err != nil {
		respondTransitionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// UpdateChecklist replaces the integration checklist flags.
func (h *Handlers) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	var checklist domain.IntegrationChecklist
	if err := json.NewDecoder(r.Body).Decode(&checklist); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.visitors.UpdateChecklist(r.Context(), id, checklist); err != nil {
		if errors.Is(err, visitor.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "result": "updated"})
}

func respondTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, visitor.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
