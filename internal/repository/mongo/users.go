package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
)

// UserRepository implements interfaces.UserRepository using the generic DBClient.
type UserRepository struct {
	dbClient interfaces.DBClient
}

// NewUserRepository creates a new MongoDB user repository.
func NewUserRepository(dbClient interfaces.DBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &UserRepository{dbClient: dbClient}, nil
}

// ValidID reports whether id is a hex ObjectID.
func (r *UserRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	docs, err := r.dbClient.FindMany(ctx, UsersCollection, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users from MongoDB: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var user models.User
		if err := decode(doc, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// GetUserByID returns a wrapped interfaces.ErrDocumentNotFound when no user has the id.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return r.getUser(ctx, bson.M{idField: objID})
}

// GetUserByEmail returns a wrapped interfaces.ErrDocumentNotFound when the email is unknown.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, bson.M{"email": email})
}

func (r *UserRepository) getUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := findOne(ctx, r.dbClient, UsersCollection, filter, &user); err != nil {
		return nil, fmt.Errorf("failed to get user from MongoDB: %w", err)
	}
	return &user, nil
}

// AddUser saves a new user and returns its hex id.
func (r *UserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := bson.M{
		"email":        user.Email,
		"password":     user.Password,
		"fullName":     user.FullName,
		"givenName":    user.GivenName,
		"familyName":   user.FamilyName,
		"role":         user.Role,
		"creationDate": user.CreationDate,
	}

	id, err := r.dbClient.InsertOne(ctx, UsersCollection, doc)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			return "", fmt.Errorf("email '%s' already exists: %w", user.Email, err)
		}
		return "", fmt.Errorf("failed to add user to MongoDB: %w", err)
	}
	return insertedID(id)
}

// UpdateUser sets fields on the user and reports whether it exists.
func (r *UserRepository) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	matched, err := r.dbClient.UpdateOne(ctx, UsersCollection, bson.M{idField: objID}, fields)
	if err != nil {
		return false, fmt.Errorf("failed to update user in MongoDB: %w", err)
	}
	return matched > 0, nil
}

// DeleteUser removes the user and reports whether anything was deleted.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	deleted, err := r.dbClient.DeleteOne(ctx, UsersCollection, bson.M{idField: objID})
	if err != nil {
		return false, fmt.Errorf("failed to delete user from MongoDB: %w", err)
	}
	return deleted > 0, nil
}

// EnsureIndices creates the unique email index.
func (r *UserRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	return r.dbClient.EnsureSchema(ctx, UsersCollection, indexModel)
}
