package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrDocumentNotFound is returned by FindOne when no document matches the filter.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned by InsertOne when a unique index rejects the document.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. Clients accept map[string]interface{}
// (or bson.M) for documents and filters.
type Document interface{}

// DBClient defines the interface for a generic database client.
// It abstracts common database operations across different database types (e.g., MongoDB, SQL).
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	// Returns an error if the connection fails.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the specified collection/table.
	// Returns the ID of the inserted document (hex ObjectID for MongoDB, UUID string for SQL)
	// and ErrDuplicateKey when a unique constraint is violated.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne retrieves a single document from the specified collection/table
	// that matches the provided filter and decodes it into result, which must be
	// a *map[string]interface{}.
	// Returns ErrDocumentNotFound (wrapped) when nothing matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// FindMany retrieves multiple documents from the specified collection/table
	// that match the provided filter. An empty filter matches everything.
	FindMany(ctx context.Context, collectionName string, filter Document) ([]Document, error)

	// UpdateOne sets the fields in 'update' on a single document matching the filter.
	// 'update' is the plain field map; clients translate it to their own update syntax.
	// Returns the count of matched documents and an error.
	UpdateOne(ctx context.Context, collectionName string, filter Document, update Document) (int64, error)

	// DeleteOne deletes a single document from the specified collection/table
	// that matches the provided filter.
	// Returns the count of deleted documents and an error.
	DeleteOne(ctx context.Context, collectionName string, filter Document) (int64, error)

	// EnsureSchema applies backend specific schema: a mongo.IndexModel for MongoDB,
	// a CREATE TABLE statement for PostgreSQL.
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error

	// Ping checks the health of the database connection.
	// Returns an error if the database is unreachable or unhealthy.
	Ping(ctx context.Context) error
}
