package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// DealsConfig holds deal business-rule configuration
type DealsConfig struct {
	// PerLocation caps simultaneous active deals at locations * PerLocation.
	PerLocation int
	// SweepSpec is the cron spec for the deal expiry sweeper.
	SweepSpec string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Config holds all configuration
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Deals  DealsConfig
	Log    LogConfig
}

// Load reads configuration from the environment. A .env file is honored
// outside production.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	for _, k := range []string{"JWT_SECRET", "MONGO_URI"} {
		if os.Getenv(k) == "" {
			return nil, fmt.Errorf("missing env var: %s", k)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnv("MONGO_DB", "foodie"),
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			ExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 24),
		},
		Deals: DealsConfig{
			PerLocation: getEnvInt("DEALS_PER_LOCATION", 3),
			SweepSpec:   getEnv("SWEEP_CRON", "@every 1h"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Deals.PerLocation < 1 {
		return nil, fmt.Errorf("DEALS_PER_LOCATION must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
