package interfaces

import (
	"context"

	"github.com/haguru/bugtracker/internal/models"
	"github.com/haguru/bugtracker/internal/models/dto"
)

type BugService interface {
	ListBugs(ctx context.Context) ([]models.Bug, error)
	GetBug(ctx context.Context, id string) (*models.Bug, error)
	ReportBug(ctx context.Context, req dto.BugCreateRequestDTO, reporterID string) (string, error)
	UpdateBug(ctx context.Context, id string, req dto.BugUpdateRequestDTO) error
	ClassifyBug(ctx context.Context, id string, classification string) error
}
