package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the tracker service
type Config struct {
	// Database configuration
	DatabasePath   string `envconfig:"DATABASE_PATH" default:"tracker.db"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"1"`

	// Server configuration
	Port        int    `envconfig:"PORT" default:"8080"`
	MetricsPort int    `envconfig:"METRICS_PORT" default:"9090"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// JWT configuration
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiration time.Duration `envconfig:"JWT_EXPIRATION" default:"2h"`
	JWTIssuer     string        `envconfig:"JWT_ISSUER" default:"tracker"`

	// Password hashing cost for bcrypt
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	// Require password re-entry on deleteProject
	RequirePasswordForDelete bool `envconfig:"REQUIRE_PASSWORD_FOR_DELETE" default:"false"`

	// CORS configuration
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Graceful shutdown timeout
	ShutdownTimeout int `envconfig:"SHUTDOWN_TIMEOUT" default:"30"`

	// Bootstrap data applied at startup (JSON or YAML file)
	SeedFile string `envconfig:"SEED_FILE"`
	// Apply the built-in demo data set at startup
	SeedDemo bool `envconfig:"SEED_DEMO" default:"false"`
}

// Load reads configuration from environment variables.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	return cfg
}

// Parse reads configuration from the environment without touching .env files
func Parse() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DatabaseDSN returns the SQLite DSN with the pragmas the store relies on
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.DatabasePath)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
