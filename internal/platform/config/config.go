package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration for both the client engine and the
// sandbox server.
type Config struct {
	// APIBaseURL is the root of the bookkeeping REST API, without the
	// /api/ prefix (e.g. "http://localhost:8080").
	APIBaseURL string
	// StateDir is where durable client state (the access token file) lives.
	StateDir     string
	IsProduction bool

	// Sandbox server settings.
	Port              string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	RateLimit         string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("RENTBOOKS_API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("RENTBOOKS_STATE_DIR", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.APIBaseURL = viper.GetString("RENTBOOKS_API_BASE_URL")
	if cfg.APIBaseURL == "" {
		log.Println("Warning: RENTBOOKS_API_BASE_URL not set. Defaulting to http://localhost:8080.")
		cfg.APIBaseURL = "http://localhost:8080"
	}

	cfg.StateDir = viper.GetString("RENTBOOKS_STATE_DIR")
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Printf("Warning: cannot resolve home directory (%v). Using current directory for state.\n", err)
			home = "."
		}
		cfg.StateDir = filepath.Join(home, ".rentbooks")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET is the default insecure key. Set it before running in production.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
