package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"ledger_system/internal/domain" // Amount parsing

	"github.com/joho/godotenv" // For loading .env files
	"github.com/sirupsen/logrus"
)

// Database drivers
const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort         string           // Application port
	DBDriver        string           // memory, mysql or sqlite
	DBUser          string           // Database user
	DBPassword      string           // Database password
	DBHost          string           // Database host
	DBPort          string           // Database port
	DBName          string           // Database name
	SQLitePath      string           // SQLite file when DBDriver is sqlite
	JWTSecret       string           // JWT secret key
	RedisAddr       string           // Redis server address, empty disables Redis
	RedisPass       string           // Redis password
	RedisDB         int              // Redis database number
	RedisChannel    string           // Pub/sub channel for notifications
	IsProd          bool             // Is production environment
	Creator         domain.AccountID // Account bootstrapped as the first admin
	WithdrawalLimit domain.Amount    // Per-transaction withdrawal ceiling
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:         getenv("APP_PORT", "8080"),
		DBDriver:        getenv("DB_DRIVER", DriverMemory),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBName:          os.Getenv("DB_NAME"),
		SQLitePath:      getenv("SQLITE_PATH", "ledger.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         redisDB,
		RedisChannel:    os.Getenv("REDIS_CHANNEL"),
		IsProd:          os.Getenv("IS_PROD") == "true",
		Creator:         domain.AccountID(os.Getenv("CREATOR_ACCOUNT")),
		WithdrawalLimit: withdrawalLimit(os.Getenv("WITHDRAWAL_LIMIT")),
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// withdrawalLimit parses WITHDRAWAL_LIMIT, falling back to one unit
func withdrawalLimit(raw string) domain.Amount {
	if raw == "" {
		return domain.Unit
	}
	limit, err := domain.ParseAmount(raw)
	if err != nil {
		logrus.Warnf("invalid WITHDRAWAL_LIMIT %q, using 1.0: %v", raw, err)
		return domain.Unit
	}
	return limit
}
