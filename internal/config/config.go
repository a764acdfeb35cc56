package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultIdentityJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret          string
	JWTExpiry          time.Duration
	CORSAllowedOrigins []string

	// External identity provider (Firebase-compatible ID tokens)
	FirebaseProjectID string
	IdentityJWKSURL   string

	// Coaching
	ProgressDefaultLimit int

	// Generative replies (optional)
	VertexAIEnabled  bool
	GCPProject       string
	VertexAILocation string
	VertexAIModel    string

	// Email (optional)
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Meal plan archive (optional, S3-compatible)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Porygon Meal Planner"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:3001"),
		Port:    envString("PORT", "3001"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/mealplanner.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:          envRequired("JWT_SECRET"),
		JWTExpiry:          envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// Identity
		FirebaseProjectID: envString("FIREBASE_PROJECT_ID", envString("GCLOUD_PROJECT", "")),
		IdentityJWKSURL:   envString("IDENTITY_JWKS_URL", defaultIdentityJWKSURL),

		// Coaching
		ProgressDefaultLimit: envInt("PROGRESS_DEFAULT_LIMIT", 30),

		// Vertex AI
		VertexAIEnabled:  envBool("VERTEX_AI_ENABLED", false),
		GCPProject:       envString("GCP_PROJECT", envString("GCLOUD_PROJECT", "")),
		VertexAILocation: envString("VERTEX_AI_LOCATION", "us-central1"),
		VertexAIModel:    envString("VERTEX_AI_MODEL", "gemini-1.5-flash"),

		// Email (RESEND_API_KEY optional, development logs instead of sending)
		EmailFrom:    envString("EMAIL_FROM", "coach@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (archive disabled when S3_BUCKET is empty)
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction warns about deployments that can only serve password accounts.
func validateProduction(cfg *Config) {
	if cfg.FirebaseProjectID == "" {
		slog.Warn("FIREBASE_PROJECT_ID not set, external identity tokens will be rejected",
			"hint", "only /auth/register and /auth/login accounts can sign in")
	}
	if cfg.VertexAIEnabled && cfg.GCPProject == "" {
		slog.Warn("VERTEX_AI_ENABLED without GCP_PROJECT, generative replies disabled")
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// VertexAIActive reports whether generative replies can be attempted.
func (c *Config) VertexAIActive() bool {
	return c.VertexAIEnabled && c.GCPProject != ""
}

// ArchiveEnabled reports whether saved meal plans are copied to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}
