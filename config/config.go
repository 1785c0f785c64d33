// Package config loads and validates application configuration from
// environment variables. Missing or malformed values are collected and
// reported together so a misconfigured deployment fails with one complete
// message instead of dying on the first variable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds the settings for the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	MaxConns       int
	MigrationsPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// LocaleConfig holds settings for the user-facing message catalog.
type LocaleConfig struct {
	// Locale names the message file to load, e.g. "en-gb".
	Locale string
	// Dir is the directory containing <locale>.json files.
	Dir string
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Server   *ServerConfig
	Locale   *LocaleConfig
}

// getRequiredEnv reads a mandatory environment variable, collecting an error
// when it is absent.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an environment variable, falling back to defaultValue.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an integer environment variable, falling back to
// defaultValue and collecting an error when the value does not parse.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// clampPoolSize keeps the connection pool size within sane bounds.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 1 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than 1, clamping to 1", varName, size))
		return 1
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig builds an AppConfig from the environment. It returns a single
// aggregated error listing every problem found.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	dbMaxConns := clampPoolSize(getOptionalEnvInt("DB_MAX_CONNS", 10, &errs), "DB_MAX_CONNS", &errs)
	migrationsPath := getOptionalEnv("DB_MIGRATIONS_PATH", "./migrations")

	database := &DatabaseConfig{
		Host:           dbHost,
		Port:           dbPort,
		User:           dbUser,
		Password:       dbPassword,
		DBName:         dbName,
		MaxConns:       dbMaxConns,
		MigrationsPath: migrationsPath,
	}

	server := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	locale := &LocaleConfig{
		Locale: getOptionalEnv("LOCALE", "en-gb"),
		Dir:    getOptionalEnv("LOCALES_DIR", "./locales"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Database: database,
		Server:   server,
		Locale:   locale,
	}, nil
}
