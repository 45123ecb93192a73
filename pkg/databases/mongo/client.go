package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/bugtracker/config"
	"github.com/haguru/bugtracker/internal/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
	IDFIELD     = "_id"
)

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	databaseName     string
	timeout          time.Duration
	validCollections map[string]bool // A map to validate collection names
	validFields      map[string]bool // A map to validate field names
	logger           interfaces.Logger
}

// NewMongoDB returns a interface for db client and error if it occurs
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (interfaces.DBClient, error) {
	if dbConfig == nil {
		return nil, fmt.Errorf("MongoDBClient: config cannot be nil")
	}
	if len(dbConfig.ValidCollections) == 0 {
		return nil, fmt.Errorf("MongoDBClient: at least one valid collection is required")
	}

	db := &MongoDBClient{
		timeout:          dbConfig.Timeout,
		databaseName:     dbConfig.DatabaseName,
		ServerOpts:       config.BuildServerAPIOptions(dbConfig.Options),
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		validFields:      config.ListToMap(dbConfig.ValidFields),
		logger:           logger,
	}

	return db, nil
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>". The configured
// database name wins over the one in the DSN path.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	// Validate the DSN format
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	databaseName := m.databaseName
	if databaseName == "" {
		var err error
		databaseName, err = m.getDBNameFromMongoDSN(dsn)
		if err != nil {
			return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
		}
	}

	// Set a timeout for the connection
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	clientOptions := options.Client().ApplyURI(dsn)

	// Set the server API options if provided
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.logger.Info("Connecting to MongoDB", "database", databaseName)
	var err error
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to create client: %w", err)
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}
	m.logger.Info("Connected to MongoDB server successfully", "database", databaseName)

	m.db = m.client.Database(databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
// It checks if the client is not nil before attempting to disconnect.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	m.logger.Info("Disconnecting from MongoDB")
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}

	return nil
}

// InsertOne inserts a document and returns its ID as a hex string.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	// Avoid logging the document, it may carry credentials
	m.logger.Debug("Inserting one", "collection", collectionName)

	if err := m.checkCollection(collectionName); err != nil {
		return nil, err
	}

	res, err := m.db.Collection(collectionName).InsertOne(ctx, m.sanitizeDocument(document))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, interfaces.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	if objID, ok := res.InsertedID.(primitive.ObjectID); ok {
		return objID.Hex(), nil
	}
	return res.InsertedID, nil
}

// FindOne retrieves a single document from the specified collection using a filter.
// It decodes the result into the provided map pointer and returns
// interfaces.ErrDocumentNotFound if no document is found.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	m.logger.Debug("Finding one", "collection", collectionName, "filter", filter)

	if err := m.checkCollection(collectionName); err != nil {
		return err
	}

	err := m.db.Collection(collectionName).FindOne(ctx, m.sanitizeFilter(filter)).Decode(result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("MongoDBClient: No document found in %s: %w", collectionName, interfaces.ErrDocumentNotFound)
		}
		return fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}

	return nil
}

// FindMany retrieves multiple documents from the specified collection.
// It returns a slice of matching documents (map[string]interface{}) or an error.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document) ([]interfaces.Document, error) {
	m.logger.Debug("Finding many", "collection", collectionName, "filter", filter)

	if err := m.checkCollection(collectionName); err != nil {
		return nil, err
	}

	cursor, err := m.db.Collection(collectionName).Find(ctx, m.sanitizeFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Finding many in %s failed: %w", collectionName, err)
	}

	defer func() {
		if err := cursor.Close(ctx); err != nil {
			m.logger.Warn("Failed to close cursor", "collection", collectionName, "error", err)
		}
	}()

	results := []interfaces.Document{}
	for cursor.Next(ctx) {
		var doc map[string]interface{}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
		}
		results = append(results, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("MongoDBClient: Cursor error in %s: %w", collectionName, err)
	}

	return results, nil
}

// UpdateOne applies update as a $set on a single document matching the filter.
// Returns the count of matched documents and an error if the operation fails.
func (m *MongoDBClient) UpdateOne(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	m.logger.Debug("Updating one", "collection", collectionName, "filter", filter)

	if err := m.checkCollection(collectionName); err != nil {
		return 0, err
	}

	fields := m.sanitizeDocument(update)
	if len(fields) == 0 {
		return 0, fmt.Errorf("MongoDBClient: Update for %s has no valid fields", collectionName)
	}

	res, err := m.db.Collection(collectionName).UpdateOne(ctx, m.sanitizeFilter(filter), bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed updating one in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// DeleteOne removes a single document from the specified collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	m.logger.Debug("Deleting one", "collection", collectionName, "filter", filter)

	if err := m.checkCollection(collectionName); err != nil {
		return 0, err
	}

	res, err := m.db.Collection(collectionName).DeleteOne(ctx, m.sanitizeFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected")
	}
	return m.client.Ping(ctx, readpref.Primary())
}

// EnsureSchema creates the required index on the specified collection using the provided mongo.IndexModel.
// If the collection does not exist, it will be created automatically.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	if m.db == nil {
		return fmt.Errorf("MongoDBClient is not connected to a database")
	}

	model, ok := schema.(mongo.IndexModel)
	if !ok {
		return fmt.Errorf("EnsureSchema: expected mongo.IndexModel for MongoDB")
	}

	_, err := m.db.Collection(collectionName).Indexes().CreateOne(ctx, model)
	return err
}

func (m *MongoDBClient) checkCollection(collectionName string) error {
	if collectionName == "" {
		return fmt.Errorf("MongoDBClient: Collection name cannot be empty")
	}
	if !m.validCollections[collectionName] {
		return fmt.Errorf("MongoDBClient: Invalid collection name: %s", collectionName)
	}
	if m.db == nil {
		return fmt.Errorf("MongoDBClient is not connected to a database")
	}
	return nil
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func (m *MongoDBClient) getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path")
	}

	// If the path contains additional segments (e.g., /db/collection), use only the first as the database name.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}

// sanitizeDocument keeps only whitelisted field names without operator characters.
// The ID field is always dropped so callers cannot overwrite it.
func (m *MongoDBClient) sanitizeDocument(document interfaces.Document) map[string]interface{} {
	return m.sanitize(document, false)
}

// sanitizeFilter is sanitizeDocument that also lets the ID field through.
func (m *MongoDBClient) sanitizeFilter(filter interfaces.Document) map[string]interface{} {
	return m.sanitize(filter, true)
}

func (m *MongoDBClient) sanitize(document interfaces.Document, allowID bool) map[string]interface{} {
	sanitized := make(map[string]interface{})

	var docMap map[string]interface{}
	switch doc := document.(type) {
	case nil:
		return sanitized
	case map[string]interface{}:
		docMap = doc
	case bson.M:
		docMap = doc
	default:
		m.logger.Warn("Document is not a map, cannot sanitize", "type", fmt.Sprintf("%T", document))
		return sanitized
	}

	for key, value := range docMap {
		if key == IDFIELD {
			if allowID {
				sanitized[key] = value
			}
			continue
		}

		if !m.validFields[key] || strings.ContainsAny(key, "$.") {
			m.logger.Warn("Skipping invalid or unsafe field name", "field", key)
			continue
		}

		sanitized[key] = value
	}

	return sanitized
}
