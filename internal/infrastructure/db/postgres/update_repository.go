package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/queue"
)

// UpdateRepository persists project updates in PostgreSQL.
type UpdateRepository struct {
	db *gorm.DB
	q  *queue.Queue
}

func NewUpdateRepository(db *gorm.DB, q *queue.Queue) *UpdateRepository {
	return &UpdateRepository{db: db, q: q}
}

func (r *UpdateRepository) Create(ctx context.Context, u *domain.ProjectUpdate) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Create(u).Error
	})
}

func (r *UpdateRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectUpdate, error) {
	var update domain.ProjectUpdate
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).First(&update, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUpdateNotFound
		}
		return nil, err
	}
	return &update, nil
}

func (r *UpdateRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectUpdate, error) {
	var updates []domain.ProjectUpdate
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("project_id = ?", projectID).
			Order("created_at DESC").
			Find(&updates).Error
	})
	if err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *UpdateRepository) Update(ctx context.Context, u *domain.ProjectUpdate) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Save(u).Error
	})
}

func (r *UpdateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Delete(&domain.ProjectUpdate{}, "id = ?", id).Error
	})
}
