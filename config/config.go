package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/haguru/bugtracker/internal/models"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	DatabaseTypeMongo    = "mongo"
	DatabaseTypePostgres = "postgres"

	// environment overrides
	EnvDBURL          = "DB_URL"
	EnvDBName         = "DB_NAME"
	EnvPort           = "PORT"
	EnvLogLevel       = "LOG_LEVEL"
	EnvPrivateKeyPath = "PRIVATE_KEY_PATH"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string          `yaml:"service_name" validate:"required"`
	LogLevel       string          `yaml:"loglevel" validate:"required"`
	Host           string          `yaml:"host"`
	Port           string          `yaml:"port" validate:"required"`
	PrivateKeyPath string          `yaml:"private_key_path" validate:"required"`
	Auth           AuthConfig      `yaml:"auth"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	Health         HealthConfig    `yaml:"health"`
	Roles          []models.Role   `yaml:"roles" validate:"dive"`
	Database       Database        `yaml:"database" validate:"required"`
}

type AuthConfig struct {
	TokenTTL      time.Duration `yaml:"token_ttl"`
	CookieName    string        `yaml:"cookie_name"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	Enforce       bool          `yaml:"enforce"`
	GenerateKey   bool          `yaml:"generate_key"`
	RoleCacheSize int           `yaml:"role_cache_size"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type HealthConfig struct {
	PingSchedule string        `yaml:"ping_schedule"`
	PingTimeout  time.Duration `yaml:"ping_timeout"`
}

type Database struct {
	Type string `yaml:"type" validate:"required,oneof=mongo postgres"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config"`
}

// MongoDBConfig holds the MongoDB connection settings.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn"`
	DatabaseName     string             `yaml:"database_name"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections"`
	ValidFields      []string           `yaml:"valid_fields"`
}

type PostgresConfig struct {
	DSN          string                `yaml:"dsn"`
	DatabaseName string                `yaml:"database_name"`
	Options      PostgresServerOptions `yaml:"postgres_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig reads the YAML file, loads a .env file from the working directory
// when one exists, applies environment overrides, fills defaults and validates the result.
func LoadConfig(configPath string, validator *structValidator.Validate) (*ServiceConfig, error) {
	cfg, err := ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	// a missing .env is normal outside of local development
	_ = godotenv.Load()

	cfg.ApplyEnvOverrides()
	cfg.ApplyDefaults()

	if err := validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides replaces file values with the matching environment variables.
// DB_URL and DB_NAME apply to whichever database type is selected.
func (c *ServiceConfig) ApplyEnvOverrides() {
	if v, ok := os.LookupEnv(EnvDBURL); ok && v != "" {
		switch c.Database.Type {
		case DatabaseTypePostgres:
			c.Database.Postgres.DSN = v
		default:
			c.Database.MongoDB.DSN = v
		}
	}
	if v, ok := os.LookupEnv(EnvDBName); ok && v != "" {
		switch c.Database.Type {
		case DatabaseTypePostgres:
			c.Database.Postgres.DatabaseName = v
		default:
			c.Database.MongoDB.DatabaseName = v
		}
	}
	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		c.Port = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrivateKeyPath); ok && v != "" {
		c.PrivateKeyPath = v
	}
}

// ApplyDefaults fills unset optional values.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "authToken"
	}
	if c.Auth.RoleCacheSize <= 0 {
		c.Auth.RoleCacheSize = 128
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 10
	}
	if c.Health.PingSchedule == "" {
		c.Health.PingSchedule = "@every 30s"
	}
	if c.Health.PingTimeout <= 0 {
		c.Health.PingTimeout = 5 * time.Second
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
}

// DSN returns the connection string of the selected database.
func (c *ServiceConfig) DSN() string {
	if c.Database.Type == DatabaseTypePostgres {
		return c.Database.Postgres.DSN
	}
	return c.Database.MongoDB.DSN
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
