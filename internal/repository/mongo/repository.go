// Package mongo implements the repositories on top of the MongoDB DBClient.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/repository"
)

const (
	UsersCollection = "User"
	BugsCollection  = "Bug"
	RolesCollection = "Role"

	idField = "_id"
)

// findOne fetches a single document and decodes it into out.
func findOne(ctx context.Context, dbClient interfaces.DBClient, collection string, filter interfaces.Document, out interface{}) error {
	var doc map[string]interface{}
	if err := dbClient.FindOne(ctx, collection, filter, &doc); err != nil {
		return err
	}
	return decode(doc, out)
}

// decode renames the ObjectID _id to a hex "id" before decoding into a model.
func decode(document interfaces.Document, out interface{}) error {
	var src map[string]interface{}
	switch doc := document.(type) {
	case map[string]interface{}:
		src = doc
	case primitive.M:
		src = doc
	default:
		return fmt.Errorf("unexpected document type %T", document)
	}

	fields := make(map[string]interface{}, len(src))
	for k, v := range src {
		if k == idField {
			continue
		}
		fields[k] = v
	}
	switch id := src[idField].(type) {
	case primitive.ObjectID:
		fields["id"] = id.Hex()
	case string:
		fields["id"] = id
	}

	return repository.DecodeDocument(fields, out)
}

func insertedID(id interface{}) (string, error) {
	switch v := id.(type) {
	case string:
		return v, nil
	case primitive.ObjectID:
		return v.Hex(), nil
	default:
		return "", fmt.Errorf("unexpected inserted id type %T", id)
	}
}
