package interfaces

import (
	"context"

	"github.com/haguru/bugtracker/internal/models"
)

// RoleRepository looks up named permission sets.
type RoleRepository interface {
	// GetRoleByName returns nil, nil when the role does not exist.
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	EnsureRole(ctx context.Context, role models.Role) error
	EnsureIndices(ctx context.Context) error
}
