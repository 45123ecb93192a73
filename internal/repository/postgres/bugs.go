package postgres

import (
	"context"
	"fmt"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
)

// BugRepository implements interfaces.BugRepository for PostgreSQL databases.
type BugRepository struct {
	dbClient interfaces.DBClient
}

func NewBugRepository(dbClient interfaces.DBClient) (interfaces.BugRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &BugRepository{dbClient: dbClient}, nil
}

func (r *BugRepository) ValidID(id string) bool {
	return validUUID(id)
}

func (r *BugRepository) ListBugs(ctx context.Context) ([]models.Bug, error) {
	rows, err := r.dbClient.FindMany(ctx, BugsTable, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs from PostgreSQL: %w", err)
	}

	bugs := make([]models.Bug, 0, len(rows))
	for _, row := range rows {
		var bug models.Bug
		if err := decode(row, &bug, nil); err != nil {
			return nil, err
		}
		bugs = append(bugs, bug)
	}
	return bugs, nil
}

func (r *BugRepository) GetBugByID(ctx context.Context, id string) (*models.Bug, error) {
	if !validUUID(id) {
		return nil, fmt.Errorf("invalid bug id %q", id)
	}

	var bug models.Bug
	if err := findOne(ctx, r.dbClient, BugsTable, map[string]interface{}{idColumn: id}, &bug, nil); err != nil {
		return nil, fmt.Errorf("failed to get bug from PostgreSQL: %w", err)
	}
	return &bug, nil
}

func (r *BugRepository) AddBug(ctx context.Context, bug models.Bug) (string, error) {
	doc := map[string]interface{}{
		"title":            bug.Title,
		"description":      bug.Description,
		"stepsToReproduce": bug.StepsToReproduce,
		"classification":   bug.Classification,
		"createdBy":        bug.CreatedBy,
		"creationDate":     bug.CreationDate,
	}

	id, err := r.dbClient.InsertOne(ctx, BugsTable, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add bug to PostgreSQL: %w", err)
	}
	return insertedID(id)
}

func (r *BugRepository) UpdateBug(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	if !validUUID(id) {
		return false, fmt.Errorf("invalid bug id %q", id)
	}

	matched, err := r.dbClient.UpdateOne(ctx, BugsTable, map[string]interface{}{idColumn: id}, fields)
	if err != nil {
		return false, fmt.Errorf("failed to update bug in PostgreSQL: %w", err)
	}
	return matched > 0, nil
}

// EnsureIndices creates the bugs table and its triage index.
func (r *BugRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, BugsTable, createBugsTable)
}
