package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// CreateClientInput carries all data needed to create a client.
type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Company string
}

// UpdateClientInput is a partial update: nil fields are left untouched.
type UpdateClientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Company *string
}

// ProjectBalance pairs a project with its derived payment figures.
type ProjectBalance struct {
	Project   domain.Project
	TotalPaid float64
	Progress  float64
}

// ClientDetail is the full client view returned by GetClient.
type ClientDetail struct {
	Client   domain.Client
	Projects []ProjectBalance
}

// ListClientsInput carries the parameters for the client list endpoint.
type ListClientsInput struct {
	Search string
	Page   int
	Limit  int
}

// ListClientsResult is returned by ListClients.
type ListClientsResult struct {
	Items      []ClientSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*ClientDetail, error)
	ListClients(ctx context.Context, input ListClientsInput) (*ListClientsResult, error)
	UpdateClient(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*domain.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}
