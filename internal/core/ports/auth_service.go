package ports

import (
	"context"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// AuthService defines registration and login operations.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
