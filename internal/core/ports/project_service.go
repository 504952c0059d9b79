package ports

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a project.
type CreateProjectInput struct {
	ClientID    uuid.UUID
	Title       string
	Description string
	Deadline    time.Time
	Budget      float64
}

// UpdateProjectInput is a partial update: nil fields are left untouched.
// Status edits are allowed to diverge from the payment total; only the
// payment write path reconciles the two.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Budget      *float64
	Status      *domain.ProjectStatus
}

// ProjectDetail is the full project view returned by GetProject, with all
// derived statistics computed at read time.
type ProjectDetail struct {
	Project    domain.Project // Payments and Updates preloaded, newest first
	ClientName string
	TotalPaid  float64
	Progress   float64
	Completed  bool
	Deadline   domain.DeadlineInfo
}

// ListProjectsInput carries the parameters for the project list endpoint.
type ListProjectsInput struct {
	ClientID uuid.UUID
	Status   domain.ProjectStatus
}

// InvoiceUpload carries an invoice file stream and its metadata.
type InvoiceUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*ProjectDetail, error)
	ListProjects(ctx context.Context, input ListProjectsInput) ([]ProjectSummary, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	// AttachInvoice stores the uploaded invoice file and persists its public
	// URL on the project, replacing any previous invoice.
	AttachInvoice(ctx context.Context, id uuid.UUID, upload InvoiceUpload) (string, error)
}
