package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

type ProjectService struct {
	repo       ports.ProjectRepository
	clientRepo ports.ClientRepository
	invoices   ports.InvoiceStorage
	logger     zerolog.Logger
}

func NewProjectService(
	repo ports.ProjectRepository,
	clientRepo ports.ClientRepository,
	invoices ports.InvoiceStorage,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{repo: repo, clientRepo: clientRepo, invoices: invoices, logger: logger}
}

// CreateProject creates a new project for an existing client. New projects
// always start in the started status.
func (s *ProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if _, err := s.clientRepo.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:          uuid.New(),
		ClientID:    input.ClientID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Budget:      input.Budget,
		Status:      domain.StatusStarted,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info().
		Str("project_id", project.ID.String()).
		Str("client_id", input.ClientID.String()).
		Str("title", project.Title).
		Msg("project created")
	return project, nil
}

// GetProject returns the project with payments, updates, and all derived
// statistics computed at read time.
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*ports.ProjectDetail, error) {
	project, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByID(ctx, project.ClientID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, p := range project.Payments {
		total += p.Amount
	}

	return &ports.ProjectDetail{
		Project:    *project,
		ClientName: client.Name,
		TotalPaid:  total,
		Progress:   domain.PaymentProgress(total, project.Budget),
		Completed:  domain.IsPaymentCompleted(total, project.Budget),
		Deadline:   domain.ClassifyDeadline(project.Deadline, time.Now().UTC()),
	}, nil
}

// ListProjects returns project summaries with client names and payment totals.
func (s *ProjectService) ListProjects(ctx context.Context, input ports.ListProjectsInput) ([]ports.ProjectSummary, error) {
	items, err := s.repo.List(ctx, ports.ListProjectsFilter{
		ClientID: input.ClientID,
		Status:   input.Status,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list projects")
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// UpdateProject applies a partial field replace. A manual status edit is
// honored even when it disagrees with the payment total.
func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Deadline != nil {
		project.Deadline = *input.Deadline
	}
	if input.Budget != nil {
		project.Budget = *input.Budget
	}
	if input.Status != nil {
		if !domain.ValidProjectStatus(*input.Status) {
			return nil, fmt.Errorf("update project: unknown status %q", *input.Status)
		}
		project.Status = *input.Status
	}

	if err := s.repo.Update(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("project_id", id.String()).Msg("failed to update project")
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// DeleteProject removes the project and its dependents. The stored invoice
// file is removed best-effort: a blob store failure is logged, not returned.
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("project_id", id.String()).Msg("failed to delete project")
		return fmt.Errorf("delete project: %w", err)
	}

	if project.InvoiceURL != "" {
		if err := s.invoices.Remove(ctx, project.InvoiceURL); err != nil {
			s.logger.Warn().Err(err).Str("project_id", id.String()).Msg("failed to remove invoice file")
		}
	}

	s.logger.Info().Str("project_id", id.String()).Msg("project deleted")
	return nil
}

// AttachInvoice uploads the invoice file and persists its URL on the
// project. A previous invoice object is removed best-effort.
func (s *ProjectService) AttachInvoice(ctx context.Context, id uuid.UUID, upload ports.InvoiceUpload) (string, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.invoices.Upload(ctx, id, upload.Filename, upload.ContentType, upload.Size, upload.Content)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", id.String()).Msg("invoice upload failed")
		return "", fmt.Errorf("attach invoice: %w", err)
	}

	if err := s.repo.SetInvoiceURL(ctx, id, url); err != nil {
		s.logger.Error().Err(err).Str("project_id", id.String()).Msg("failed to persist invoice url")
		return "", fmt.Errorf("attach invoice: %w", err)
	}

	if project.InvoiceURL != "" && project.InvoiceURL != url {
		if err := s.invoices.Remove(ctx, project.InvoiceURL); err != nil {
			s.logger.Warn().Err(err).Str("project_id", id.String()).Msg("failed to remove replaced invoice file")
		}
	}

	s.logger.Info().Str("project_id", id.String()).Str("url", url).Msg("invoice attached")
	return url, nil
}
