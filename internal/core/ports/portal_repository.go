package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// PortalRepository defines persistence operations for client portals.
type PortalRepository interface {
	// Upsert inserts the portal or replaces the existing row for the same
	// project (token rotation).
	Upsert(ctx context.Context, p *domain.ClientPortal) error
	FindByProject(ctx context.Context, projectID uuid.UUID) (*domain.ClientPortal, error)
	// FindByToken returns the portal row regardless of its enabled flag; the
	// service decides whether a disabled portal is visible.
	FindByToken(ctx context.Context, token string) (*domain.ClientPortal, error)
	SetEnabled(ctx context.Context, projectID uuid.UUID, enabled bool) error
	Delete(ctx context.Context, projectID uuid.UUID) error
}

// PortalTokenCache is a lookaside cache from access token to project id,
// used to spare the store a query on hot unauthenticated portal reads. The
// enabled flag is never cached; it is re-checked on every lookup.
type PortalTokenCache interface {
	GetProjectID(ctx context.Context, token string) (uuid.UUID, bool, error)
	Set(ctx context.Context, token string, projectID uuid.UUID) error
	Invalidate(ctx context.Context, token string) error
}
