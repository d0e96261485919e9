package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Receipt storage backends.
const (
	ReceiptBackendLocal = "local"
	ReceiptBackendS3    = "s3"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL   string
	SQLitePath    string
	DBPoolSize    int
	DBMaxOverflow int

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Pipeline (scheduler) API key
	PipelineAPIKey string

	// Receipts
	UploadFolder   string
	MaxUploadBytes int64
	ReceiptBackend string
	S3             S3Config

	// Seeding
	SeedAdminPassword string
	SeedUserPassword  string

	// Import
	ImportDefaultAccount string

	// Recurring worker
	RecurringInterval time.Duration

	production bool
}

// S3Config holds object storage settings for receipts.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL:   NormalizeDatabaseURL(os.Getenv("DATABASE_URL")),
		SQLitePath:    getEnv("SQLITE_PATH", "instance/finance.db"),
		DBPoolSize:    getEnvInt("DB_POOL_SIZE", 5),
		DBMaxOverflow: getEnvInt("DB_MAX_OVERFLOW", 10),

		// JWT
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTExpirationDur: getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),

		PipelineAPIKey: os.Getenv("PIPELINE_API_KEY"),

		// Receipts
		UploadFolder:   getEnv("UPLOAD_FOLDER", "uploads"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 20*1024*1024)),
		ReceiptBackend: strings.ToLower(getEnv("RECEIPT_BACKEND", ReceiptBackendLocal)),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          os.Getenv("S3_BUCKET"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},

		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		SeedUserPassword:  getEnv("SEED_USER_PASSWORD", "esposa123"),

		ImportDefaultAccount: getEnv("IMPORT_DEFAULT_ACCOUNT", "Conta Corrente"),

		RecurringInterval: getEnvDuration("RECURRING_INTERVAL", time.Hour),
	}
	config.production = detectProduction()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// IsProduction reports whether the process runs in a production deployment.
func (c *Config) IsProduction() bool {
	return c.production
}

// SetProduction overrides production detection. Used by tests.
func (c *Config) SetProduction(production bool) {
	c.production = production
}

// UsesPostgres reports whether DatabaseURL points at PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// MaxOpenConns returns the connection ceiling: pool size plus overflow.
func (c *Config) MaxOpenConns() int {
	return c.DBPoolSize + c.DBMaxOverflow
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.production {
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required in production")
		}
		if !c.UsesPostgres() {
			return fmt.Errorf("production requires a PostgreSQL DATABASE_URL, sqlite is not allowed")
		}
		if c.JWTSecret == "fallback-secret-key-for-dev-only" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}
	if c.DatabaseURL != "" && !c.UsesPostgres() && !strings.HasPrefix(c.DatabaseURL, "sqlite://") {
		return fmt.Errorf("unsupported DATABASE_URL scheme")
	}
	if c.DBPoolSize < 1 {
		return fmt.Errorf("DB_POOL_SIZE must be at least 1")
	}
	if c.DBMaxOverflow < 0 {
		return fmt.Errorf("DB_MAX_OVERFLOW must not be negative")
	}
	switch c.ReceiptBackend {
	case ReceiptBackendLocal:
	case ReceiptBackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when RECEIPT_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown RECEIPT_BACKEND %q (use local or s3)", c.ReceiptBackend)
	}
	if c.RecurringInterval <= 0 {
		return fmt.Errorf("RECURRING_INTERVAL must be positive")
	}
	return nil
}

// NormalizeDatabaseURL rewrites the legacy postgres:// scheme to postgresql://.
func NormalizeDatabaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(raw, "postgres://")
	}
	return raw
}

func detectProduction() bool {
	if strings.EqualFold(os.Getenv("ENV"), "production") {
		return true
	}
	return os.Getenv("RENDER") != "" || os.Getenv("RENDER_SERVICE_ID") != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
