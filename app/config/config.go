package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	StorageBadger = "badger"
	StorageMongo  = "mongo"
)

// Config collects the runtime settings for the server.
type Config struct {
	Addr       string
	Storage    string
	DBPath     string
	MongoURI   string
	DBName     string
	JWTSecret  string
	AdvisorURL string
}

// Load reads .env (when present) and the environment. JWT_SECRET is
// the only required setting.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Addr:       getenv("ADDR", ":8080"),
		Storage:    getenv("STORAGE", StorageBadger),
		DBPath:     getenv("DB_PATH", "agricare.db"),
		MongoURI:   os.Getenv("MONGO_URI"),
		DBName:     getenv("DB_NAME", "agricare"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		AdvisorURL: getenv("ADVISOR_URL", "http://127.0.0.1:5000"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Storage != StorageBadger && cfg.Storage != StorageMongo {
		return nil, fmt.Errorf("unknown STORAGE %q (want %q or %q)", cfg.Storage, StorageBadger, StorageMongo)
	}
	if cfg.Storage == StorageMongo && cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required when STORAGE=mongo")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
