package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

type UpdateService struct {
	repo        ports.UpdateRepository
	projectRepo ports.ProjectRepository
	logger      zerolog.Logger
}

func NewUpdateService(repo ports.UpdateRepository, projectRepo ports.ProjectRepository, logger zerolog.Logger) *UpdateService {
	return &UpdateService{repo: repo, projectRepo: projectRepo, logger: logger}
}

// AddUpdate appends a free-text progress note to a project.
func (s *UpdateService) AddUpdate(ctx context.Context, projectID uuid.UUID, description string) (*domain.ProjectUpdate, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	update := &domain.ProjectUpdate{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Description: description,
	}
	if err := s.repo.Create(ctx, update); err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("failed to add update")
		return nil, fmt.Errorf("add update: %w", err)
	}
	return update, nil
}

// ListUpdates returns the project's updates, newest first.
func (s *UpdateService) ListUpdates(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectUpdate, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	updates, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("failed to list updates")
		return nil, fmt.Errorf("list updates: %w", err)
	}
	return updates, nil
}

// EditUpdate replaces an update's description.
func (s *UpdateService) EditUpdate(ctx context.Context, id uuid.UUID, description string) (*domain.ProjectUpdate, error) {
	update, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Description = description
	if err := s.repo.Update(ctx, update); err != nil {
		s.logger.Error().Err(err).Str("update_id", id.String()).Msg("failed to edit update")
		return nil, fmt.Errorf("edit update: %w", err)
	}
	return update, nil
}

// DeleteUpdate removes an update permanently.
func (s *UpdateService) DeleteUpdate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("update_id", id.String()).Msg("failed to delete update")
		return fmt.Errorf("delete update: %w", err)
	}
	return nil
}
