package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	// AdminAccount is the single privileged identity allowed to change
	// the platform fee and withdraw accumulated fees.
	AdminAccount string

	// FeeBps is the protocol fee applied to new deployments, in basis
	// points (100 = 1%). Only used when the platform state row does not
	// exist yet; afterwards the persisted value wins.
	FeeBps int64

	// DefaultRentalSeconds is the rental duration applied when a rent
	// request does not select one.
	DefaultRentalSeconds int64

	// TokenSeedAccounts funds token accounts at boot in non-production
	// environments ("account:amount,account:amount").
	TokenSeedAccounts string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	LogLevel string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "derent"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		AdminAccount:         strings.TrimSpace(getenv("ADMIN_ACCOUNT", "admin")),
		FeeBps:               getenvInt64("FEE_BPS", 100),
		DefaultRentalSeconds: getenvInt64("DEFAULT_RENTAL_SECONDS", 3600),
		TokenSeedAccounts:    getenv("TOKEN_SEED_ACCOUNTS", ""),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "postgres"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 600),

		LogLevel: strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
