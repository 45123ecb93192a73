package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
)

// RoleRepository implements interfaces.RoleRepository using the generic DBClient.
type RoleRepository struct {
	dbClient interfaces.DBClient
}

func NewRoleRepository(dbClient interfaces.DBClient) (interfaces.RoleRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &RoleRepository{dbClient: dbClient}, nil
}

// GetRoleByName returns nil, nil when no role has the name.
func (r *RoleRepository) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := findOne(ctx, r.dbClient, RolesCollection, bson.M{"name": name}, &role)
	if err != nil {
		if errors.Is(err, interfaces.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role %q from MongoDB: %w", name, err)
	}
	return &role, nil
}

// EnsureRole inserts the role unless one with the same name exists.
func (r *RoleRepository) EnsureRole(ctx context.Context, role models.Role) error {
	existing, err := r.GetRoleByName(ctx, role.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	permissions := role.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	_, err = r.dbClient.InsertOne(ctx, RolesCollection, bson.M{
		"name":        role.Name,
		"permissions": permissions,
	})
	if err != nil && !errors.Is(err, interfaces.ErrDuplicateKey) {
		return fmt.Errorf("failed to add role %q to MongoDB: %w", role.Name, err)
	}
	return nil
}

// EnsureIndices creates the unique role name index.
func (r *RoleRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	return r.dbClient.EnsureSchema(ctx, RolesCollection, indexModel)
}
