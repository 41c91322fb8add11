package visitor

import (
	"context"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// Repository defines the data access contract for visitors.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single visitor with milestones and attendance history
	// loaded. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Visitor, error)

	// List returns visitors matching the given filter, ordered by
	// created_at DESC.
	List(ctx context.Context, filter ListFilter) ([]domain.Visitor, error)

	// Create inserts a new visitor together with its milestone schedule (if
	// any) in one transaction, and returns its ID.
	Create(ctx context.Context, v *domain.Visitor) (string, error)

	// UpdateMilestone persists a single milestone as one atomic write.
	// Last write wins; no merge semantics.
	UpdateMilestone(ctx context.Context, visitorID string, m domain.Milestone) error

	// UpdateStatus persists new status fields for a visitor.
	UpdateStatus(ctx context.Context, id string, status domain.VisitorStatus, monitoring domain.MonitoringStatus) error

	// UpdateChecklist persists the integration checklist flags.
	UpdateChecklist(ctx context.Context, id string, c domain.IntegrationChecklist) error

	// CountEventsSince returns the number of expected attendance events in
	// the reference event set since the given time.
	CountEventsSince(ctx context.Context, since time.Time) (int, error)
}

// ListFilter controls filtering for visitor lists. Empty fields are not
// applied.
type ListFilter struct {
	TeamID           string
	Status           domain.VisitorStatus
	MonitoringStatus domain.MonitoringStatus
}
