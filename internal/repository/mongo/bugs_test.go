package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haguru/bugtracker/internal/interfaces/mocks"
	"github.com/haguru/bugtracker/internal/models"
)

func TestBugRepository_AddAndGet(t *testing.T) {
	ctx := context.Background()
	objID := primitive.NewObjectID()
	bug := models.NewBug("Crash", "Editor crashes", "open, save", "user-1")

	db := mocks.NewMockDBClient(t)
	db.On("InsertOne", ctx, BugsCollection, mock.MatchedBy(func(doc bson.M) bool {
		return doc["classification"] == models.ClassificationUnclassified && doc["createdBy"] == "user-1"
	})).Return(objID, nil).Once()
	db.On("FindOne", ctx, BugsCollection, bson.M{"_id": objID}, mock.Anything).
		Run(returnDocument(map[string]interface{}{
			"_id":              objID,
			"title":            "Crash",
			"stepsToReproduce": "open, save",
			"classification":   models.ClassificationUnclassified,
		})).
		Return(nil).Once()

	repo, err := NewBugRepository(db)
	require.NoError(t, err)

	id, err := repo.AddBug(ctx, *bug)
	require.NoError(t, err)
	assert.Equal(t, objID.Hex(), id)

	got, err := repo.GetBugByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Crash", got.Title)
	assert.Equal(t, "open, save", got.StepsToReproduce)
	assert.Nil(t, got.ClassifiedOn)
}

func TestBugRepository_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	objID := primitive.NewObjectID()
	fields := map[string]interface{}{"title": "New title"}

	db := mocks.NewMockDBClient(t)
	db.On("FindMany", ctx, BugsCollection, bson.M{}).Return(nil, nil).Once()
	db.On("UpdateOne", ctx, BugsCollection, bson.M{"_id": objID}, fields).Return(int64(0), nil).Once()

	repo, _ := NewBugRepository(db)

	bugs, err := repo.ListBugs(ctx)
	require.NoError(t, err)
	assert.NotNil(t, bugs)
	assert.Empty(t, bugs)

	matched, err := repo.UpdateBug(ctx, objID.Hex(), fields)
	require.NoError(t, err)
	assert.False(t, matched)

	assert.False(t, repo.ValidID("123"))
}
