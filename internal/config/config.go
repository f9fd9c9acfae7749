package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

type Config struct {
	Columns              int
	Rows                 int
	Player1              domain.Player
	Player2              domain.Player
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	RedisDB              int
	SnapshotTTL          time.Duration
	LogFile              string
	LogLevel             string
}

// LoadEnv reads .env from the working directory or its parent. A missing
// file is fine, the process environment is used as is.
func LoadEnv() bool {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			return false
		}
	}
	return true
}

func LoadConfig() *Config {
	// Board
	columns := GetEnvAsInt("BOARD_COLUMNS", domain.DefaultColumns)
	rows := GetEnvAsInt("BOARD_ROWS", domain.DefaultRows)

	// Players
	player1 := domain.Player{
		ID:    domain.Player1,
		Name:  GetEnv("PLAYER1_NAME", "Player 1"),
		Color: NormalizeColor(GetEnv("PLAYER1_COLOR", ""), DefaultPlayer1Color),
	}
	player2 := domain.Player{
		ID:    domain.Player2,
		Name:  GetEnv("PLAYER2_NAME", "Player 2"),
		Color: NormalizeColor(GetEnv("PLAYER2_COLOR", ""), DefaultPlayer2Color),
	}

	// Database Config
	// history is disabled when no URL is set
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil && strings.HasPrefix(u.Scheme, "postgres") {
			q := u.Query()
			if q.Get("sslmode") == "" {
				q.Set("sslmode", "disable")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	// Redis Config
	// resume is disabled when no address is set
	redisURL := GetEnv("REDIS_URL", "")
	redisPassword := GetEnv("REDIS_PASSWORD", "")

	return &Config{
		Columns:              columns,
		Rows:                 rows,
		Player1:              player1,
		Player2:              player2,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 5),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 2),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             redisURL,
		RedisPassword:        redisPassword,
		RedisDB:              GetEnvAsInt("REDIS_DB", 0),
		SnapshotTTL:          GetEnvAsDuration("SNAPSHOT_TTL", 7*24*time.Hour),
		LogFile:              GetEnv("LOG_FILE", "connect4.log"),
		LogLevel:             GetEnv("LOG_LEVEL", "info"),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		zap.S().Warnw("invalid integer in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		zap.S().Warnw("invalid duration in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}
