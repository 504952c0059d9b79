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

// ProjectRepository persists projects in PostgreSQL.
type ProjectRepository struct {
	db *gorm.DB
	q  *queue.Queue
}

func NewProjectRepository(db *gorm.DB, q *queue.Queue) *ProjectRepository {
	return &ProjectRepository{db: db, q: q}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Create(p).Error
	})
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) FindDetail(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Preload("Payments", func(db *gorm.DB) *gorm.DB {
				return db.Order("payments.payment_date DESC")
			}).
			Preload("Updates", func(db *gorm.DB) *gorm.DB {
				return db.Order("project_updates.created_at DESC")
			}).
			First(&project, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// projectRow is the raw shape scanned from the aggregate list query.
type projectRow struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Title       string
	Description string
	Deadline    time.Time
	Budget      float64
	Status      domain.ProjectStatus
	InvoiceURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClientName  string
	TotalPaid   float64
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ListProjectsFilter) ([]ports.ProjectSummary, error) {
	var rows []projectRow

	err := r.q.Do(ctx, func() error {
		query := r.db.WithContext(ctx).Model(&domain.Project{}).
			Select("projects.*, clients.name AS client_name, COALESCE(SUM(payments.amount), 0) AS total_paid").
			Joins("JOIN clients ON clients.id = projects.client_id").
			Joins("LEFT JOIN payments ON payments.project_id = projects.id").
			Group("projects.id, clients.name").
			Order("projects.created_at DESC")

		if filter.ClientID != uuid.Nil {
			query = query.Where("projects.client_id = ?", filter.ClientID)
		}
		if filter.Status != "" {
			query = query.Where("projects.status = ?", filter.Status)
		}
		return query.Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	summaries := make([]ports.ProjectSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ports.ProjectSummary{
			Project: domain.Project{
				ID:          row.ID,
				ClientID:    row.ClientID,
				Title:       row.Title,
				Description: row.Description,
				Deadline:    row.Deadline,
				Budget:      row.Budget,
				Status:      row.Status,
				InvoiceURL:  row.InvoiceURL,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			ClientName: row.ClientName,
			TotalPaid:  row.TotalPaid,
		})
	}
	return summaries, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Save(p).Error
	})
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Model(&domain.Project{}).
			Where("id = ?", id).
			Update("status", status).Error
	})
}

func (r *ProjectRepository) SetInvoiceURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Model(&domain.Project{}).
			Where("id = ?", id).
			Update("invoice_url", url).Error
	})
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.q.Do(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("project_id = ?", id).Delete(&domain.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&domain.ProjectUpdate{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&domain.ClientPortal{}).Error; err != nil {
				return err
			}
			return tx.Delete(&domain.Project{}, "id = ?", id).Error
		})
	})
}
