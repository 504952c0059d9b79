package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	// ListByProject returns a page of the project's payments sorted by
	// payment date descending, plus the total count.
	ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) ([]domain.Payment, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// TotalForProject computes the derived payment total for a project.
	TotalForProject(ctx context.Context, projectID uuid.UUID) (float64, error)
}
