// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port              string
	Environment       string
	InngestEventKey   string
	InngestSigningKey string

	OpenAIAPIKey      string
	AnthropicAPIKey   string
	PerplexityAPIKey  string
	PerplexityBaseURL string

	// UseMockResponses routes every platform call to the canned provider.
	// Defaults to true so the pipeline runs without any API keys.
	UseMockResponses bool

	ReportSchedule string // "daily" or "weekly"

	Database DatabaseConfig
	Tracking TrackingConfig
	Business BusinessConfig
}

// BusinessConfig describes the tracked business for single-tenant deployments
// where no onboarding flow populates the database.
type BusinessConfig struct {
	Name         string
	Aliases      []string
	CuisineType  string
	City         string
	Neighborhood string
	WebsiteURL   string
	Competitors  []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// TrackingConfig is the orchestrator configuration surface. Zero or negative
// counts are rejected by Validate, never silently clamped.
type TrackingConfig struct {
	Platforms      []string
	MaxQueries     int
	RunsPerQuery   int
	PerCallTimeout time.Duration
}

// DefaultTrackingConfig mirrors the defaults the dashboard assumes
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		Platforms:      []string{"chatgpt", "perplexity"},
		MaxQueries:     20,
		RunsPerQuery:   1,
		PerCallTimeout: 45 * time.Second,
	}
}

// Validate rejects invalid tracking configuration before any platform call
func (c TrackingConfig) Validate() error {
	if len(c.Platforms) == 0 {
		return fmt.Errorf("tracking config: at least one platform is required")
	}
	if c.MaxQueries < 1 {
		return fmt.Errorf("tracking config: max queries must be positive, got %d", c.MaxQueries)
	}
	if c.RunsPerQuery < 1 {
		return fmt.Errorf("tracking config: runs per query must be at least 1, got %d", c.RunsPerQuery)
	}
	if c.PerCallTimeout <= 0 {
		return fmt.Errorf("tracking config: per-call timeout must be positive, got %s", c.PerCallTimeout)
	}
	return nil
}

func Load() *Config {
	config := &Config{
		Port:              getEnv("PORT", "8000"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		InngestEventKey:   os.Getenv("INNGEST_EVENT_KEY"),
		InngestSigningKey: os.Getenv("INNGEST_SIGNING_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		PerplexityAPIKey:  os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		UseMockResponses:  getEnvBool("USE_MOCK_RESPONSES", true),
		ReportSchedule:    getEnv("REPORT_SCHEDULE", "weekly"),
	}

	dbConfig, err := parseDatabaseConfig()
	if err != nil {
		// If DATABASE_URL parsing fails, try individual env vars as fallback
		dbConfig = DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "geo_platform"),
			SSLMode:         getEnv("DB_SSLMODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
		}
	}
	config.Database = dbConfig

	config.Business = BusinessConfig{
		Name:         os.Getenv("BUSINESS_NAME"),
		Aliases:      getEnvList("BUSINESS_ALIASES", nil),
		CuisineType:  getEnv("BUSINESS_CUISINE", "Italian"),
		City:         getEnv("BUSINESS_CITY", "San Francisco"),
		Neighborhood: os.Getenv("BUSINESS_NEIGHBORHOOD"),
		WebsiteURL:   os.Getenv("BUSINESS_WEBSITE_URL"),
		Competitors:  getEnvList("BUSINESS_COMPETITORS", nil),
	}

	config.Tracking = TrackingConfig{
		Platforms:      getEnvList("TRACKING_PLATFORMS", []string{"chatgpt", "perplexity"}),
		MaxQueries:     getEnvInt("TRACKING_MAX_QUERIES", 20),
		RunsPerQuery:   getEnvInt("TRACKING_RUNS_PER_QUERY", 1),
		PerCallTimeout: getEnvDuration("TRACKING_PER_CALL_TIMEOUT", 45*time.Second),
	}

	return config
}

func parseDatabaseConfig() (DatabaseConfig, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL not set")
	}

	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	config := DatabaseConfig{
		Host:            parsedURL.Hostname(),
		Port:            5432, // default
		User:            parsedURL.User.Username(),
		Name:            parsedURL.Path[1:], // remove leading slash
		SSLMode:         getEnv("DB_SSLMODE", "require"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
	}

	if password, ok := parsedURL.User.Password(); ok {
		config.Password = password
	}

	if parsedURL.Port() != "" {
		if port, err := strconv.Atoi(parsedURL.Port()); err == nil {
			config.Port = port
		}
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
