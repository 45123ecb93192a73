package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongosdk "go.mongodb.org/mongo-driver/mongo"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
)

// BugRepository implements interfaces.BugRepository using the generic DBClient.
type BugRepository struct {
	dbClient interfaces.DBClient
}

// NewBugRepository creates a new MongoDB bug repository.
func NewBugRepository(dbClient interfaces.DBClient) (interfaces.BugRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &BugRepository{dbClient: dbClient}, nil
}

func (r *BugRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *BugRepository) ListBugs(ctx context.Context) ([]models.Bug, error) {
	docs, err := r.dbClient.FindMany(ctx, BugsCollection, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs from MongoDB: %w", err)
	}

	bugs := make([]models.Bug, 0, len(docs))
	for _, doc := range docs {
		var bug models.Bug
		if err := decode(doc, &bug); err != nil {
			return nil, err
		}
		bugs = append(bugs, bug)
	}
	return bugs, nil
}

func (r *BugRepository) GetBugByID(ctx context.Context, id string) (*models.Bug, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid bug id %q: %w", id, err)
	}

	var bug models.Bug
	if err := findOne(ctx, r.dbClient, BugsCollection, bson.M{idField: objID}, &bug); err != nil {
		return nil, fmt.Errorf("failed to get bug from MongoDB: %w", err)
	}
	return &bug, nil
}

func (r *BugRepository) AddBug(ctx context.Context, bug models.Bug) (string, error) {
	doc := bson.M{
		"title":            bug.Title,
		"description":      bug.Description,
		"stepsToReproduce": bug.StepsToReproduce,
		"classification":   bug.Classification,
		"createdBy":        bug.CreatedBy,
		"creationDate":     bug.CreationDate,
	}

	id, err := r.dbClient.InsertOne(ctx, BugsCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add bug to MongoDB: %w", err)
	}
	return insertedID(id)
}

func (r *BugRepository) UpdateBug(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid bug id %q: %w", id, err)
	}

	matched, err := r.dbClient.UpdateOne(ctx, BugsCollection, bson.M{idField: objID}, fields)
	if err != nil {
		return false, fmt.Errorf("failed to update bug in MongoDB: %w", err)
	}
	return matched > 0, nil
}

// EnsureIndices indexes bugs by classification for triage listings.
func (r *BugRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys: bson.D{{Key: "classification", Value: 1}, {Key: "creationDate", Value: -1}},
	}
	return r.dbClient.EnsureSchema(ctx, BugsCollection, indexModel)
}
