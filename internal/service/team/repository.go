package team

import (
	"context"
	"errors"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// ErrNotFound is returned when a team does not exist.
var ErrNotFound = errors.New("protocol team not found")

// Repository defines the data access contract for teams and their documented
// strategies. Implementations must be safe for concurrent use.
type Repository interface {
	// GetTeam returns one team with its leader and members loaded.
	GetTeam(ctx context.Context, id string) (*domain.ProtocolTeam, error)

	// ListTeams returns all teams ordered by created_at.
	ListTeams(ctx context.Context) ([]domain.ProtocolTeam, error)

	// VisitorsByTeam returns the visitor set for one team. Milestone and
	// attendance detail is not required for metrics and may be omitted.
	VisitorsByTeam(ctx context.Context, teamID string) ([]domain.Visitor, error)

	// ShareableStrategies returns approved/featured strategies grouped by
	// team id.
	ShareableStrategies(ctx context.Context) (map[string][]domain.ProtocolStrategy, error)
}
