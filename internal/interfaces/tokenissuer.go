package interfaces

import (
	"context"

	"github.com/haguru/bugtracker/internal/models"
)

// TokenIssuer creates signed session tokens for authenticated users.
type TokenIssuer interface {
	IssueAuthToken(ctx context.Context, user *models.User) (string, error)
}
