package interfaces

import (
	"context"

	"github.com/haguru/bugtracker/internal/models"
	"github.com/haguru/bugtracker/internal/models/dto"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	RegisterUser(ctx context.Context, req dto.UserRegisterRequestDTO) (string, error)
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req dto.UserUpdateRequestDTO) error
	DeleteUser(ctx context.Context, id string) error
}
