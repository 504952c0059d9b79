package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// ListClientsFilter carries query parameters for listing clients.
type ListClientsFilter struct {
	Search string // optional: partial match on name or company
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by the service)
}

// ClientSummary is the typed row shape for client lists: the stored client
// plus its derived project count.
type ClientSummary struct {
	Client       domain.Client
	ProjectCount int64
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	// FindWithProjects loads the client together with its projects and their
	// payments, so callers can derive per-project totals.
	FindWithProjects(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	// List returns a page of clients with project counts and the total count.
	List(ctx context.Context, filter ListClientsFilter) ([]ClientSummary, int64, error)
	Update(ctx context.Context, c *domain.Client) error
	// Delete removes the client and cascades to all dependent rows.
	Delete(ctx context.Context, id uuid.UUID) error
}
