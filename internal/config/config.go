package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenExpiry time.Duration
	Env         string
}

// LoadConfig reads the .env file (if present) and builds the Config from
// environment variables, applying defaults for anything unset.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	expiryHours := 72
	if raw := os.Getenv("TOKEN_EXPIRY_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			logrus.WithError(err).Warnf("Invalid TOKEN_EXPIRY_HOURS %q, using default", raw)
		} else {
			expiryHours = parsed
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "habit_tracker"),
		JWTSecret:   getEnv("JWT_SECRET", "secretkey"),
		TokenExpiry: time.Duration(expiryHours) * time.Hour,
		Env:         getEnv("APP_ENV", "development"),
	}
}

// IsProduction reports whether the service runs in production mode. Error
// responses omit internal detail when it does.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
