package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

// CreateClient creates a new client record.
func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Company: input.Company,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info().Str("client_id", client.ID.String()).Str("name", client.Name).Msg("client created")
	return client, nil
}

// GetClient returns the client with its projects and per-project payment
// totals derived from the loaded payments.
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ports.ClientDetail, error) {
	client, err := s.repo.FindWithProjects(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.ClientDetail{Client: *client}
	detail.Client.Projects = nil

	for _, p := range client.Projects {
		var total float64
		for _, pay := range p.Payments {
			total += pay.Amount
		}
		project := p
		project.Payments = nil
		detail.Projects = append(detail.Projects, ports.ProjectBalance{
			Project:   project,
			TotalPaid: total,
			Progress:  domain.PaymentProgress(total, p.Budget),
		})
	}

	return detail, nil
}

// ListClients returns a page of clients with their project counts.
func (s *ClientService) ListClients(ctx context.Context, input ports.ListClientsInput) (*ports.ListClientsResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.repo.List(ctx, ports.ListClientsFilter{
		Search: input.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list clients")
		return nil, fmt.Errorf("list clients: %w", err)
	}

	return &ports.ListClientsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateClient applies a partial field replace and returns the stored row.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input ports.UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Company != nil {
		client.Company = *input.Company
	}

	if err := s.repo.Update(ctx, client); err != nil {
		s.logger.Error().Err(err).Str("client_id", id.String()).Msg("failed to update client")
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

// DeleteClient removes the client; dependent projects, payments, updates,
// and portals go with it.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("client_id", id.String()).Msg("failed to delete client")
		return fmt.Errorf("delete client: %w", err)
	}
	s.logger.Info().Str("client_id", id.String()).Msg("client deleted")
	return nil
}

// normalizePage applies the default and cap used by all list endpoints.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
