package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/queue"
)

// ClientRepository persists clients in PostgreSQL. All store calls go
// through the shared request queue.
type ClientRepository struct {
	db *gorm.DB
	q  *queue.Queue
}

func NewClientRepository(db *gorm.DB, q *queue.Queue) *ClientRepository {
	return &ClientRepository{db: db, q: q}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Create(c).Error
	})
}

func (r *ClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) FindWithProjects(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Preload("Projects", func(db *gorm.DB) *gorm.DB {
				return db.Order("projects.created_at DESC")
			}).
			Preload("Projects.Payments").
			First(&client, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// clientRow is the raw shape scanned from the aggregate list query.
type clientRow struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	Address      string
	Company      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ProjectCount int64
}

func (r *ClientRepository) List(ctx context.Context, filter ports.ListClientsFilter) ([]ports.ClientSummary, int64, error) {
	var rows []clientRow
	var total int64

	err := r.q.Do(ctx, func() error {
		base := r.db.WithContext(ctx).Model(&domain.Client{})
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			base = base.Where("clients.name ILIKE ? OR clients.company ILIKE ?", pattern, pattern)
		}

		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return err
		}

		offset := (filter.Page - 1) * filter.Limit
		return base.
			Select("clients.*, count(projects.id) AS project_count").
			Joins("LEFT JOIN projects ON projects.client_id = clients.id").
			Group("clients.id").
			Order("clients.created_at DESC").
			Limit(filter.Limit).
			Offset(offset).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}

	summaries := make([]ports.ClientSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ports.ClientSummary{
			Client: domain.Client{
				ID:        row.ID,
				Name:      row.Name,
				Email:     row.Email,
				Phone:     row.Phone,
				Address:   row.Address,
				Company:   row.Company,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			ProjectCount: row.ProjectCount,
		})
	}
	return summaries, total, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Save(c).Error
	})
}

// Delete removes the client and all dependent rows in one transaction.
// Dependents are deleted explicitly so the cascade works even when the
// schema was provisioned without foreign key constraints.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var projectIDs []uuid.UUID
			if err := tx.Model(&domain.Project{}).Where("client_id = ?", id).Pluck("id", &projectIDs).Error; err != nil {
				return err
			}
			if len(projectIDs) > 0 {
				if err := tx.Where("project_id IN ?", projectIDs).Delete(&domain.Payment{}).Error; err != nil {
					return err
				}
				if err := tx.Where("project_id IN ?", projectIDs).Delete(&domain.ProjectUpdate{}).Error; err != nil {
					return err
				}
				if err := tx.Where("project_id IN ?", projectIDs).Delete(&domain.ClientPortal{}).Error; err != nil {
					return err
				}
				if err := tx.Where("client_id = ?", id).Delete(&domain.Project{}).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&domain.Client{}, "id = ?", id).Error
		})
	})
}
