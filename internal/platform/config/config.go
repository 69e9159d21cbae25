package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	Environment       string
	JWTSecret         string
	AuthEnabled       bool
	UploadDir         string
	MaxUploadBytes    int64
	MaxBodyBytes      int64
	RunMigrations     bool
	RunSeed           bool
	MigrationsDir     string
	SeedAdminUsername string
	SeedAdminPassword string
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		Environment:       getEnv("APP_ENV", "development"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AuthEnabled:       getEnvBool("AUTH_ENABLED", false),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AuthEnabled && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set when AUTH_ENABLED is true")
	}
	if c.Environment == "production" && c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1024")
	}
	return nil
}
