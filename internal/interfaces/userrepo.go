package interfaces

import (
	"context"

	"github.com/haguru/bugtracker/internal/models"
)

// UserRepository defines the contract for storing and retrieving User data.
// This interface remains the same as it's database-agnostic.
type UserRepository interface {
	ValidID(id string) bool
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	AddUser(ctx context.Context, user models.User) (string, error)
	UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	EnsureIndices(ctx context.Context) error
}
