package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/queue"
)

// PaymentRepository persists payments in PostgreSQL.
type PaymentRepository struct {
	db *gorm.DB
	q  *queue.Queue
}

func NewPaymentRepository(db *gorm.DB, q *queue.Queue) *PaymentRepository {
	return &PaymentRepository{db: db, q: q}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Create(p).Error
	})
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) ([]domain.Payment, int64, error) {
	var payments []domain.Payment
	var total int64

	err := r.q.Do(ctx, func() error {
		base := r.db.WithContext(ctx).Model(&domain.Payment{}).Where("project_id = ?", projectID)
		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return err
		}
		return base.
			Order("payment_date DESC").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&payments).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", id).Error
	})
}

// TotalForProject computes the derived payment total with a SUM aggregate;
// the value is never stored on the project row.
func (r *PaymentRepository) TotalForProject(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Model(&domain.Payment{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
