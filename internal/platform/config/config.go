package config

import (
	"log"
	"os"
	"time"
)

// Server captures runtime configuration for the certificate portal.
type Server struct {
	Addr        string
	Environment string

	// Flat-file store locations.
	StudentsFile   string
	ReferencesFile string

	// Admin credentials. AdminPasswordHash, when set, takes precedence over
	// AdminPassword and is verified as a bcrypt hash.
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	// Admin session settings.
	SessionSigningKey   string
	SessionTTL          time.Duration
	SessionCookieSecure bool
	SessionRedisAddr    string

	RequestTimeout time.Duration
	SeedDemoData   bool
	TracingEnabled bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:                getEnv("CERT_PORTAL_ADDR", ":8080"),
		Environment:         getEnv("CERT_PORTAL_ENV", "development"),
		StudentsFile:        getEnv("STUDENTS_FILE", "data/students.csv"),
		ReferencesFile:      getEnv("REFERENCES_FILE", "data/references.json"),
		AdminUsername:       getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", "changeme"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionSigningKey:   signingKey,
		SessionTTL:          durationEnv("SESSION_TTL", 12*time.Hour),
		SessionCookieSecure: boolEnv("SESSION_COOKIE_SECURE", false),
		SessionRedisAddr:    os.Getenv("SESSION_REDIS_ADDR"),
		RequestTimeout:      durationEnv("REQUEST_TIMEOUT", 30*time.Second),
		SeedDemoData:        boolEnv("SEED_DEMO_DATA", false),
		TracingEnabled:      boolEnv("OTEL_TRACING_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "1" || val == "true" || val == "TRUE" {
			return true
		}
		if val == "0" || val == "false" || val == "FALSE" {
			return false
		}
		log.Printf("invalid bool for %s, using fallback %v", key, fallback)
	}
	return fallback
}
