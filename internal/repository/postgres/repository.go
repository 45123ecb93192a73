// Package postgres implements the repositories on top of the PostgreSQL DBClient.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/repository"
)

const (
	UsersTable = "users"
	BugsTable  = "bugs"
	RolesTable = "roles"

	idColumn = "id"
)

func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// findOne fetches a single row and decodes it into out. prepare may rewrite
// column values before decoding.
func findOne(ctx context.Context, dbClient interfaces.DBClient, table string, filter map[string]interface{}, out interface{}, prepare func(map[string]interface{}) error) error {
	var row map[string]interface{}
	if err := dbClient.FindOne(ctx, table, filter, &row); err != nil {
		return err
	}
	return decode(row, out, prepare)
}

func decode(document interfaces.Document, out interface{}, prepare func(map[string]interface{}) error) error {
	row, ok := document.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected row type %T", document)
	}
	if prepare != nil {
		if err := prepare(row); err != nil {
			return err
		}
	}
	return repository.DecodeDocument(row, out)
}

func insertedID(id interface{}) (string, error) {
	switch v := id.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unexpected inserted id type %T", id)
	}
}
