package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/queue"
)

// PortalRepository persists client portals in PostgreSQL.
type PortalRepository struct {
	db *gorm.DB
	q  *queue.Queue
}

func NewPortalRepository(db *gorm.DB, q *queue.Queue) *PortalRepository {
	return &PortalRepository{db: db, q: q}
}

// Upsert inserts the portal, or replaces token/enabled/created_at on the
// existing row for the same project. One portal per project is enforced by
// the unique index on project_id.
func (r *PortalRepository) Upsert(ctx context.Context, p *domain.ClientPortal) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"access_token", "enabled", "created_at"}),
			}).
			Create(p).Error
	})
}

func (r *PortalRepository) FindByProject(ctx context.Context, projectID uuid.UUID) (*domain.ClientPortal, error) {
	var portal domain.ClientPortal
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).First(&portal, "project_id = ?", projectID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPortalNotFound
		}
		return nil, err
	}
	return &portal, nil
}

func (r *PortalRepository) FindByToken(ctx context.Context, token string) (*domain.ClientPortal, error) {
	var portal domain.ClientPortal
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).First(&portal, "access_token = ?", token).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPortalNotFound
		}
		return nil, err
	}
	return &portal, nil
}

func (r *PortalRepository) SetEnabled(ctx context.Context, projectID uuid.UUID, enabled bool) error {
	return r.q.Do(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&domain.ClientPortal{}).
			Where("project_id = ?", projectID).
			Update("enabled", enabled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPortalNotFound
		}
		return nil
	})
}

func (r *PortalRepository) Delete(ctx context.Context, projectID uuid.UUID) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Delete(&domain.ClientPortal{}, "project_id = ?", projectID).Error
	})
}
