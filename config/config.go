package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	OutputPath   string
	SQLitePath   string
	AliasesPath  string
	ChangeWindow int
	Verbose      bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "co2"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "co2report"),
		PostgresDB:       getEnv("POSTGRES_DB", "co2_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 5),

		OutputPath:   getEnv("OUTPUT_PATH", DefaultOutputPath),
		SQLitePath:   getEnv("SQLITE_PATH", ""),
		AliasesPath:  getEnv("ALIASES_PATH", ""),
		ChangeWindow: getEnvInt("CHANGE_WINDOW", DefaultChangeWindow),
		Verbose:      getEnvBool("VERBOSE", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return fallback
}
