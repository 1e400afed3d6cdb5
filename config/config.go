package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production

	// Backend selection; read once at startup
	UseMockAPI bool

	// Mock backend; fixed per-operation delays unless MOCK_FIXED_DELAYS=false
	MockFixedDelays  bool
	MockDelayMin     time.Duration
	MockDelayMax     time.Duration
	MockTestEmail    string
	MockTestPassword string

	// Real backend
	APIBaseURL string
	APITimeout time.Duration

	// Redis (token store + dev backend rate limiting). Empty addr keeps tokens in memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TokenStoreKey string

	// Dev backend
	Port               string
	GinMode            string
	CORSAllowedOrigins string // comma-separated
	HTTPLogEnabled     bool
	LoginRateLimit     int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "grandline-driver"),
		Env:     getenv("APP_ENV", "development"),

		UseMockAPI: getbool("USE_MOCK_API", true),

		MockFixedDelays:  getbool("MOCK_FIXED_DELAYS", true),
		MockDelayMin:     getdur("MOCK_DELAY_MIN", 500*time.Millisecond),
		MockDelayMax:     getdur("MOCK_DELAY_MAX", 2500*time.Millisecond),
		MockTestEmail:    getenv("MOCK_TEST_EMAIL", "test@test.com"),
		MockTestPassword: getenv("MOCK_TEST_PASSWORD", "password"),

		APIBaseURL: getenv("API_BASE_URL", "https://api.grandline.com"),
		APITimeout: getdur("API_TIMEOUT", 10*time.Second),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),
		TokenStoreKey: getenv("TOKEN_STORE_KEY", "driver:session:tokens"),

		Port:               getenv("PORT", "8080"),
		GinMode:            getenv("GIN_MODE", "release"),
		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),
		HTTPLogEnabled:     getbool("HTTP_LOG_ENABLED", false),
		LoginRateLimit:     getint("LOGIN_RATE_LIMIT", 10),
	}
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if c.MockDelayMin < 0 || c.MockDelayMax < 0 {
		return errors.New("mock delays must not be negative")
	}
	if c.MockDelayMin > c.MockDelayMax {
		return errors.New("MOCK_DELAY_MIN must not exceed MOCK_DELAY_MAX")
	}
	if c.APITimeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}
	if !c.UseMockAPI && strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("API_BASE_URL is required when USE_MOCK_API=false")
	}
	return nil
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
