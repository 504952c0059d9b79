package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// PortalInfo is the management view of a portal: the stored row plus the
// shareable URL built from the configured public origin.
type PortalInfo struct {
	Portal domain.ClientPortal
	URL    string
}

// PortalView is the read model served to an unauthenticated portal visitor:
// one project's status, payments, and updates with derived figures.
type PortalView struct {
	ProjectTitle string
	Description  string
	Status       domain.ProjectStatus
	Budget       float64
	TotalPaid    float64
	Progress     float64
	Completed    bool
	Deadline     time.Time
	DeadlineInfo domain.DeadlineInfo
	Payments     []domain.Payment
	Updates      []domain.ProjectUpdate
}

// PortalService defines use-case operations for client portals.
type PortalService interface {
	// CreatePortal creates the project's portal, or rotates its token and
	// re-enables it when one already exists.
	CreatePortal(ctx context.Context, projectID uuid.UUID) (*PortalInfo, error)
	GetPortal(ctx context.Context, projectID uuid.UUID) (*PortalInfo, error)
	// SetPortalEnabled toggles access without rotating the token.
	SetPortalEnabled(ctx context.Context, projectID uuid.UUID, enabled bool) (*PortalInfo, error)
	DeletePortal(ctx context.Context, projectID uuid.UUID) error
	// GetPortalByToken resolves an access token to the portal read model.
	// Unknown and disabled tokens both yield domain.ErrPortalNotFound.
	GetPortalByToken(ctx context.Context, token string) (*PortalView, error)
}
