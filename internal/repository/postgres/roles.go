package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
)

// RoleRepository implements interfaces.RoleRepository for PostgreSQL databases.
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
	err := findOne(ctx, r.dbClient, RolesTable, map[string]interface{}{"name": name}, &role, scanPermissions)
	if err != nil {
		if errors.Is(err, interfaces.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role %q from PostgreSQL: %w", name, err)
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

	permissions := pq.StringArray(role.Permissions)
	if permissions == nil {
		permissions = pq.StringArray{}
	}
	_, err = r.dbClient.InsertOne(ctx, RolesTable, map[string]interface{}{
		"name":        role.Name,
		"permissions": permissions,
	})
	if err != nil && !errors.Is(err, interfaces.ErrDuplicateKey) {
		return fmt.Errorf("failed to add role %q to PostgreSQL: %w", role.Name, err)
	}
	return nil
}

func (r *RoleRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, RolesTable, createRolesTable)
}

// scanPermissions parses the text[] literal returned for the permissions column.
func scanPermissions(row map[string]interface{}) error {
	raw, ok := row["permissions"]
	if !ok {
		return nil
	}
	var permissions pq.StringArray
	if err := permissions.Scan(raw); err != nil {
		return fmt.Errorf("failed to parse role permissions: %w", err)
	}
	row["permissions"] = []string(permissions)
	return nil
}
