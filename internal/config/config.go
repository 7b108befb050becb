// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. Never use it in production.
const DevJWTSecret = "local-dev-signing-key-change-in-production"

// App holds settings shared by the API server and the worker.
type App struct {
	Port         string
	Environment  string
	LogLevel     string
	LogFormat    string
	JWTSecret    string
	CORSOrigins  []string
	AdminUserIDs []string
	RequireTLS   bool
}

// LoadDotEnv loads variables from files (default ".env") without overriding
// variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// FromEnv reads the shared settings.
func FromEnv() App {
	requireTLS, _ := strconv.ParseBool(os.Getenv("REQUIRE_TLS"))
	return App{
		Port:         getEnvOrDefault("PORT", getEnvOrDefault("APP_PORT", "8080")),
		Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "json"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CORSOrigins:  SplitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		AdminUserIDs: SplitList(os.Getenv("ADMIN_USER_IDS")),
		RequireTLS:   requireTLS,
	}
}

// IsProduction reports whether the environment is production.
func (a App) IsProduction() bool {
	return a.Environment == "production"
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
