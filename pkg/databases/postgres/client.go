package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/haguru/bugtracker/config"
	"github.com/haguru/bugtracker/internal/interfaces"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second

	IDFIELD = "id"

	uniqueViolation = "23505"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresDatabaseClient implements the DBClient interface for PostgreSQL databases.
// Documents are flat maps whose keys are column names.
type PostgresDatabaseClient struct {
	db              *sql.DB
	MaxOpenConns    int           // MaxOpenConns is the maximum number of open connections to the database
	MaxIdleConns    int           // MaxIdleConns is the maximum number of idle connections to the database
	ConnMaxLifetime time.Duration // ConnMaxLifetime is the maximum amount of time a connection may be reused
	logger          interfaces.Logger
}

// NewPostgresDatabaseClient builds a client from configuration, falling back to
// the package defaults for unset pool options.
func NewPostgresDatabaseClient(cfg *config.PostgresConfig, logger interfaces.Logger) interfaces.DBClient {
	client := &PostgresDatabaseClient{
		MaxOpenConns:    DefaultMaxOpenConns,
		MaxIdleConns:    DefaultMaxIdleConns,
		ConnMaxLifetime: DefaultConnMaxLifetime,
		logger:          logger,
	}
	if cfg == nil {
		return client
	}
	if cfg.Options.MaxOpenConns > 0 {
		client.MaxOpenConns = cfg.Options.MaxOpenConns
	}
	if cfg.Options.MaxIdleConns > 0 {
		client.MaxIdleConns = cfg.Options.MaxIdleConns
	}
	if cfg.Options.ConnMaxLifetime > 0 {
		client.ConnMaxLifetime = cfg.Options.ConnMaxLifetime
	}
	return client
}

// Connect establishes a connection to a PostgreSQL database.
func (p *PostgresDatabaseClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("PostgresDatabaseClient: DSN is empty")
	}

	var err error
	p.db, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	p.db.SetMaxOpenConns(p.MaxOpenConns)
	p.db.SetMaxIdleConns(p.MaxIdleConns)
	p.db.SetConnMaxLifetime(p.ConnMaxLifetime)

	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}
	p.logger.Info("Connected to PostgreSQL server successfully")
	return nil
}

// Disconnect closes the PostgreSQL database connection.
func (p *PostgresDatabaseClient) Disconnect(ctx context.Context) error {
	p.logger.Info("Disconnecting from PostgreSQL")
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// InsertOne inserts a single document into a PostgreSQL table.
// A UUID is generated for 'id' when the document has none; the id is returned as a string.
func (p *PostgresDatabaseClient) InsertOne(ctx context.Context, tableName string, document interfaces.Document) (interface{}, error) {
	if err := p.checkReady(tableName); err != nil {
		return nil, err
	}
	docMap, err := toMap(document)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQL InsertOne: %w", err)
	}

	row := make(map[string]interface{}, len(docMap)+1)
	for col, val := range docMap {
		row[col] = val
	}
	if _, exists := row[IDFIELD]; !exists {
		row[IDFIELD] = uuid.New().String()
	}

	columns := sortedKeys(row)
	placeholders := make([]string, 0, len(columns))
	values := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		if !identifierPattern.MatchString(col) {
			return nil, fmt.Errorf("PostgreSQL InsertOne: invalid column name %q", col)
		}
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		values = append(values, row[col])
	}

	// table and column names are validated identifiers, values are bound parameters
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	) // #nosec G201

	p.logger.Debug("Inserting one", "table", tableName)
	var insertedID interface{}
	err = p.db.QueryRowContext(ctx, query, values...).Scan(&insertedID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("PostgreSQL InsertOne into %s: %w", tableName, interfaces.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("PostgreSQL InsertOne into %s: %w", tableName, err)
	}
	if b, ok := insertedID.([]byte); ok {
		return string(b), nil
	}
	return insertedID, nil
}

// FindOne retrieves a single row and stores it in result, a *map[string]interface{}.
// Returns interfaces.ErrDocumentNotFound when no row matches.
func (p *PostgresDatabaseClient) FindOne(ctx context.Context, tableName string, filter interfaces.Document, result interfaces.Document) error {
	out, ok := result.(*map[string]interface{})
	if !ok || out == nil {
		return fmt.Errorf("PostgreSQL FindOne expects result to be *map[string]interface{}")
	}
	filterMap, err := toMap(filter)
	if err != nil {
		return fmt.Errorf("PostgreSQL FindOne: %w", err)
	}
	if len(filterMap) == 0 {
		return fmt.Errorf("PostgreSQL FindOne requires a non-empty filter")
	}

	rows, err := p.query(ctx, tableName, filterMap, " LIMIT 1")
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("PostgreSQL FindOne in %s: %w", tableName, interfaces.ErrDocumentNotFound)
	}

	*out = rows[0]
	return nil
}

// FindMany retrieves every row matching the filter as map[string]interface{} documents.
func (p *PostgresDatabaseClient) FindMany(ctx context.Context, tableName string, filter interfaces.Document) ([]interfaces.Document, error) {
	filterMap, err := toMap(filter)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQL FindMany: %w", err)
	}

	rows, err := p.query(ctx, tableName, filterMap, "")
	if err != nil {
		return nil, err
	}

	results := make([]interfaces.Document, 0, len(rows))
	for _, row := range rows {
		results = append(results, row)
	}
	return results, nil
}

// UpdateOne sets the given columns on rows matching the filter and returns the rows affected.
func (p *PostgresDatabaseClient) UpdateOne(ctx context.Context, tableName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	if err := p.checkReady(tableName); err != nil {
		return 0, err
	}
	filterMap, err := toMap(filter)
	if err != nil {
		return 0, fmt.Errorf("PostgreSQL UpdateOne: %w", err)
	}
	updateMap, err := toMap(update)
	if err != nil {
		return 0, fmt.Errorf("PostgreSQL UpdateOne: %w", err)
	}
	if len(updateMap) == 0 || len(filterMap) == 0 {
		return 0, fmt.Errorf("PostgreSQL UpdateOne requires a non-empty filter and update")
	}

	setClauses, values, err := buildAssignments(updateMap, 1, ", ")
	if err != nil {
		return 0, err
	}
	whereString, whereValues, err := buildAssignments(filterMap, len(values)+1, " AND ")
	if err != nil {
		return 0, err
	}
	values = append(values, whereValues...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", tableName, setClauses, whereString) // #nosec G201

	return p.exec(ctx, query, values)
}

// DeleteOne deletes the rows matching a non-empty filter.
func (p *PostgresDatabaseClient) DeleteOne(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	filterMap, err := toMap(filter)
	if err != nil {
		return 0, fmt.Errorf("PostgreSQL DeleteOne: %w", err)
	}
	if len(filterMap) == 0 {
		return 0, fmt.Errorf("PostgreSQL DeleteOne requires a non-empty filter")
	}
	return p.deleteWhere(ctx, tableName, filterMap)
}

// Ping checks the health of the PostgreSQL connection.
func (p *PostgresDatabaseClient) Ping(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}
	return p.db.PingContext(ctx)
}

// EnsureSchema executes a CREATE TABLE / CREATE INDEX statement.
func (p *PostgresDatabaseClient) EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}

	createStmt, ok := schema.(string)
	if !ok || createStmt == "" {
		return fmt.Errorf("EnsureSchema expects schema to be a SQL statement string for %s", tableName)
	}
	_, err := p.db.ExecContext(ctx, createStmt)
	return err
}

func (p *PostgresDatabaseClient) deleteWhere(ctx context.Context, tableName string, filterMap map[string]interface{}) (int64, error) {
	if err := p.checkReady(tableName); err != nil {
		return 0, err
	}
	whereString, values, err := buildWhere(filterMap)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s%s", tableName, whereString) // #nosec G201

	return p.exec(ctx, query, values)
}

func (p *PostgresDatabaseClient) exec(ctx context.Context, query string, values []interface{}) (int64, error) {
	res, err := p.db.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// query selects every column of the matching rows. Byte slices are returned as strings.
func (p *PostgresDatabaseClient) query(ctx context.Context, tableName string, filterMap map[string]interface{}, suffix string) ([]map[string]interface{}, error) {
	if err := p.checkReady(tableName); err != nil {
		return nil, err
	}
	whereString, whereValues, err := buildWhere(filterMap)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s%s%s", tableName, whereString, suffix) // #nosec G201

	rows, err := p.db.QueryContext(ctx, query, whereValues...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			p.logger.Warn("failed to close rows", "table", tableName, "error", cerr)
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		columnPointers := make([]interface{}, len(columns))
		columnValues := make([]interface{}, len(columns))
		for i := range columns {
			columnPointers[i] = &columnValues[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		rowMap := make(map[string]interface{}, len(columns))
		for i, colName := range columns {
			if b, ok := columnValues[i].([]byte); ok {
				rowMap[colName] = string(b)
			} else {
				rowMap[colName] = columnValues[i]
			}
		}
		results = append(results, rowMap)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *PostgresDatabaseClient) checkReady(tableName string) error {
	if !identifierPattern.MatchString(tableName) {
		return fmt.Errorf("PostgresDatabaseClient: invalid table name %q", tableName)
	}
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}
	return nil
}

// buildWhere renders " WHERE a = $1 AND b = $2" (or "" for an empty filter).
func buildWhere(filterMap map[string]interface{}) (string, []interface{}, error) {
	if len(filterMap) == 0 {
		return "", nil, nil
	}
	clause, values, err := buildAssignments(filterMap, 1, " AND ")
	if err != nil {
		return "", nil, err
	}
	return " WHERE " + clause, values, nil
}

// buildAssignments renders "col = $n" pairs in key order starting at parameter 'start'.
func buildAssignments(fields map[string]interface{}, start int, sep string) (string, []interface{}, error) {
	keys := sortedKeys(fields)
	clauses := make([]string, 0, len(keys))
	values := make([]interface{}, 0, len(keys))
	for i, col := range keys {
		if !identifierPattern.MatchString(col) {
			return "", nil, fmt.Errorf("invalid column name %q", col)
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, start+i))
		values = append(values, fields[col])
	}
	return strings.Join(clauses, sep), values, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toMap(document interfaces.Document) (map[string]interface{}, error) {
	switch doc := document.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return doc, nil
	default:
		return nil, fmt.Errorf("expected map[string]interface{}, got %T", document)
	}
}
