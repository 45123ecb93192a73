package bugservice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/interfaces/mocks"
	"github.com/haguru/bugtracker/internal/models"
	"github.com/haguru/bugtracker/internal/models/dto"
	"github.com/haguru/bugtracker/pkg/zerolog"
)

const testID = "650c1f1e8f1b2c3d4e5f6a7b"

func newTestService(t *testing.T) (*BugService, *mocks.MockBugRepository) {
	repo := mocks.NewMockBugRepository(t)
	return NewBugService(repo, zerolog.NewNopLogger()), repo
}

func TestReportBug(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	repo.On("AddBug", ctx, mock.MatchedBy(func(b models.Bug) bool {
		return b.Title == "Crash" && b.Classification == models.ClassificationUnclassified &&
			b.CreatedBy == "user-1" && !b.CreationDate.IsZero()
	})).Return(testID, nil).Once()
	repo.On("AddBug", ctx, mock.Anything).Return("", errors.New("db down")).Once()

	req := dto.BugCreateRequestDTO{Title: " Crash ", Description: "It crashes", StepsToReproduce: "open, save"}

	id, err := svc.ReportBug(ctx, req, "user-1")
	require.NoError(t, err)
	assert.Equal(t, testID, id)

	_, err = svc.ReportBug(ctx, req, "")
	assert.ErrorContains(t, err, ErrFailedToReportBug)
}

func TestGetBug(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		setup   func(repo *mocks.MockBugRepository)
		wantErr error
	}{
		{
			name: "found",
			id:   testID,
			setup: func(repo *mocks.MockBugRepository) {
				repo.On("ValidID", testID).Return(true).Once()
				repo.On("GetBugByID", ctx, testID).Return(&models.Bug{ID: testID}, nil).Once()
			},
		},
		{
			name: "not found",
			id:   testID,
			setup: func(repo *mocks.MockBugRepository) {
				repo.On("ValidID", testID).Return(true).Once()
				repo.On("GetBugByID", ctx, testID).Return(nil, fmt.Errorf("x: %w", interfaces.ErrDocumentNotFound)).Once()
			},
			wantErr: ErrBugNotFound,
		},
		{
			name: "invalid id",
			id:   "nope",
			setup: func(repo *mocks.MockBugRepository) {
				repo.On("ValidID", "nope").Return(false).Once()
			},
			wantErr: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			tt.setup(repo)

			bug, err := svc.GetBug(ctx, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testID, bug.ID)
		})
	}
}

func TestListBugs(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	repo.On("ListBugs", ctx).Return([]models.Bug{{ID: testID}}, nil).Once()

	bugs, err := svc.ListBugs(ctx)
	require.NoError(t, err)
	assert.Len(t, bugs, 1)
}

func TestUpdateBug(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	repo.On("ValidID", testID).Return(true).Twice()
	repo.On("UpdateBug", ctx, testID, mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, stamped := fields["lastUpdated"].(time.Time)
		_, hasDescription := fields["description"]
		return stamped && !hasDescription && fields["title"] == "New title" && len(fields) == 2
	})).Return(true, nil).Once()
	repo.On("UpdateBug", ctx, testID, mock.Anything).Return(false, nil).Once()

	require.NoError(t, svc.UpdateBug(ctx, testID, dto.BugUpdateRequestDTO{Title: "New title"}))
	assert.ErrorIs(t, svc.UpdateBug(ctx, testID, dto.BugUpdateRequestDTO{Title: "New title"}), ErrBugNotFound)
}

func TestUpdateBug_BlankFieldsAreSkipped(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	repo.On("ValidID", testID).Return(true).Once()
	repo.On("UpdateBug", ctx, testID, mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasTitle := fields["title"]
		return !hasTitle && fields["description"] == "d" && len(fields) == 2
	})).Return(true, nil).Once()

	require.NoError(t, svc.UpdateBug(ctx, testID, dto.BugUpdateRequestDTO{Title: "   ", Description: " d "}))
}

func TestClassifyBug(t *testing.T) {
	ctx := context.Background()

	t.Run("sets classification and timestamps", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("ValidID", testID).Return(true).Once()
		repo.On("UpdateBug", ctx, testID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			classifiedOn, ok := fields["classifiedOn"].(time.Time)
			return ok && fields["classification"] == models.ClassificationDuplicate && fields["lastUpdated"] == classifiedOn
		})).Return(true, nil).Once()

		assert.NoError(t, svc.ClassifyBug(ctx, testID, models.ClassificationDuplicate))
	})

	t.Run("rejects unknown classification", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("ValidID", testID).Return(true).Once()
		assert.ErrorIs(t, svc.ClassifyBug(ctx, testID, "wontfix"), ErrInvalidClassification)
	})

	t.Run("database failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.On("ValidID", testID).Return(true).Once()
		repo.On("UpdateBug", ctx, testID, mock.Anything).Return(false, errors.New("db down")).Once()

		err := svc.ClassifyBug(ctx, testID, models.ClassificationApproved)
		assert.ErrorContains(t, err, ErrFailedToClassifyBug)
		assert.NotErrorIs(t, err, ErrBugNotFound)
	})
}
