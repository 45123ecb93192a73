package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
)

// UserRepository implements interfaces.UserRepository for PostgreSQL databases.
type UserRepository struct {
	dbClient interfaces.DBClient
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(dbClient interfaces.DBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &UserRepository{dbClient: dbClient}, nil
}

// ValidID reports whether id is a UUID.
func (r *UserRepository) ValidID(id string) bool {
	return validUUID(id)
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.dbClient.FindMany(ctx, UsersTable, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users from PostgreSQL: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		var user models.User
		if err := decode(row, &user, nil); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if !validUUID(id) {
		return nil, fmt.Errorf("invalid user id %q", id)
	}
	return r.getUser(ctx, map[string]interface{}{idColumn: id})
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepository) getUser(ctx context.Context, filter map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := findOne(ctx, r.dbClient, UsersTable, filter, &user, nil); err != nil {
		return nil, fmt.Errorf("failed to get user from PostgreSQL: %w", err)
	}
	return &user, nil
}

// AddUser saves a new user; the client assigns the UUID.
func (r *UserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := map[string]interface{}{
		"email":        user.Email,
		"password":     user.Password,
		"fullName":     user.FullName,
		"givenName":    user.GivenName,
		"familyName":   user.FamilyName,
		"role":         user.Role,
		"creationDate": user.CreationDate,
	}

	id, err := r.dbClient.InsertOne(ctx, UsersTable, doc)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			return "", fmt.Errorf("email '%s' already exists: %w", user.Email, err)
		}
		return "", fmt.Errorf("failed to add user to PostgreSQL: %w", err)
	}
	return insertedID(id)
}

func (r *UserRepository) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	if !validUUID(id) {
		return false, fmt.Errorf("invalid user id %q", id)
	}

	matched, err := r.dbClient.UpdateOne(ctx, UsersTable, map[string]interface{}{idColumn: id}, fields)
	if err != nil {
		return false, fmt.Errorf("failed to update user in PostgreSQL: %w", err)
	}
	return matched > 0, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) (bool, error) {
	if !validUUID(id) {
		return false, fmt.Errorf("invalid user id %q", id)
	}

	deleted, err := r.dbClient.DeleteOne(ctx, UsersTable, map[string]interface{}{idColumn: id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user from PostgreSQL: %w", err)
	}
	return deleted > 0, nil
}

// EnsureIndices creates the users table with its unique email constraint.
func (r *UserRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, UsersTable, createUsersTable)
}
