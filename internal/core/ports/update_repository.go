package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// UpdateRepository defines persistence operations for project updates.
type UpdateRepository interface {
	Create(ctx context.Context, u *domain.ProjectUpdate) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectUpdate, error)
	// ListByProject returns the project's updates sorted newest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectUpdate, error)
	Update(ctx context.Context, u *domain.ProjectUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
