package interfaces

import (
	"context"

	"github.com/haguru/bugtracker/internal/models"
)

// BugRepository defines the contract for storing and retrieving Bug data.
type BugRepository interface {
	ValidID(id string) bool
	ListBugs(ctx context.Context) ([]models.Bug, error)
	GetBugByID(ctx context.Context, id string) (*models.Bug, error)
	AddBug(ctx context.Context, bug models.Bug) (string, error)
	UpdateBug(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
	EnsureIndices(ctx context.Context) error
}
