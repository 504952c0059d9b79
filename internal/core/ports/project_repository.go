package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// ListProjectsFilter carries query parameters for listing projects.
type ListProjectsFilter struct {
	ClientID uuid.UUID            // uuid.Nil = all clients
	Status   domain.ProjectStatus // empty = all statuses
}

// ProjectSummary is the typed row shape for project lists: the stored project
// plus the owning client's name and the derived payment total.
type ProjectSummary struct {
	Project    domain.Project
	ClientName string
	TotalPaid  float64
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	// FindDetail loads the project with payments and updates preloaded, both
	// sorted newest first.
	FindDetail(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]ProjectSummary, error)
	Update(ctx context.Context, p *domain.Project) error
	// UpdateStatus changes only the status column. Used by the payment write
	// path for automatic transitions.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error
	SetInvoiceURL(ctx context.Context, id uuid.UUID, url string) error
	// Delete removes the project and cascades to payments, updates, and portal.
	Delete(ctx context.Context, id uuid.UUID) error
}
