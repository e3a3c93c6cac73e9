// Package config loads application configuration from the environment.
// A .env file is honored when present (development convenience); real
// environment variables always win.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the API server.
type Config struct {
	Env          string // application environment ("dev", "prod")
	Port         string // HTTP port to listen on
	LogLevel     string // zap level: debug, info, warn, error
	DataDir      string // directory holding the JSON collection files
	JWTSecret    string // secret used to sign access tokens
	AccessTTLMin int    // access token time-to-live in minutes
	DemoLogin    bool   // literal-password login bypass; keep off outside demos
}

// Load reads the configuration.  JWT_SECRET is the only hard
// requirement; everything else has a development default.
func Load() Config {
	// best effort: absent .env is fine
	_ = godotenv.Load()

	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "3000"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		DataDir:      getenv("DATA_DIR", "data"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
		DemoLogin:    envBool("DEMO_LOGIN_ENABLED", false),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
