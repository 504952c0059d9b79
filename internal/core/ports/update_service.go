package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// UpdateService defines use-case operations for project updates.
type UpdateService interface {
	AddUpdate(ctx context.Context, projectID uuid.UUID, description string) (*domain.ProjectUpdate, error)
	ListUpdates(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectUpdate, error)
	EditUpdate(ctx context.Context, id uuid.UUID, description string) (*domain.ProjectUpdate, error)
	DeleteUpdate(ctx context.Context, id uuid.UUID) error
}
