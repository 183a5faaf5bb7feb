package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort          string
	DBDriver          string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	SQLitePath        string
	TickSchedule      string
	RabbitMQURL       string
	RateLimitRPS      float64
	OpenAPIValidation bool
	MenuSeedPath      string
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	rps, err := strconv.ParseFloat(envOr("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be a non-negative number, got %q", os.Getenv("RATE_LIMIT_RPS"))
	}
	validation, err := strconv.ParseBool(envOr("OPENAPI_VALIDATION", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("OPENAPI_VALIDATION must be a boolean, got %q", os.Getenv("OPENAPI_VALIDATION"))
	}

	config := Config{
		HTTPPort:          envOr("HTTP_PORT", "8080"),
		DBDriver:          strings.ToLower(envOr("DB_DRIVER", DriverPostgres)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            envOr("DB_HOST", "localhost"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         envOr("DB_SSLMODE", "disable"),
		SQLitePath:        envOr("SQLITE_PATH", "restaurant.db"),
		TickSchedule:      envOr("TICK_SCHEDULE", "@every 1m"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		RateLimitRPS:      rps,
		OpenAPIValidation: validation,
		MenuSeedPath:      os.Getenv("MENU_SEED_PATH"),
	}

	if config.DBDriver != DriverPostgres && config.DBDriver != DriverSQLite {
		return Config{}, fmt.Errorf("DB_DRIVER must be %s or %s, got %q", DriverPostgres, DriverSQLite, config.DBDriver)
	}
	return config, nil
}

// PostgresDSN returns the key/value connection string. DATABASE_URL takes
// precedence over the individual DB_* settings.
func (c Config) PostgresDSN() (string, error) {
	if c.DatabaseURL != "" {
		dsn, err := pq.ParseURL(c.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		return dsn, nil
	}

	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode), nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
