package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Host        string
	DBDSN       string
	TokenSecret string
	Env         string // "development" disables the Secure cookie flag
	LogFile     string
	ImagesDir   string
}

func (c Config) IsDev() bool { return c.Env == "development" }

func Load() Config {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getenv("PORT", "5500"),
		Host:        getenv("HOST", "localhost"),
		DBDSN:       getenv("DB_DSN", "apexmotors.db"),
		TokenSecret: getenv("ACCESS_TOKEN_SECRET", ""),
		Env:         getenv("APP_ENV", "development"),
		LogFile:     getenv("LOG_FILE", ""),
		ImagesDir:   getenv("IMAGES_DIR", "./web/images"),
	}
	if cfg.TokenSecret == "" {
		if cfg.IsDev() {
			cfg.TokenSecret = "dev-only-not-a-secret"
		} else {
			log.Fatal("[config] ACCESS_TOKEN_SECRET is required outside development")
		}
	}
	log.Printf("[config] HOST=%s PORT=%s DB_DSN=%s APP_ENV=%s", cfg.Host, cfg.Port, cfg.DBDSN, cfg.Env)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
