package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Paging   PagingConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Log      LogConfig
}

type ServerConfig struct {
	Address         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type PagingConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type AuthConfig struct {
	JWTSecret     string
	JWTIssuer     string
	SessionCookie string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type QueueConfig struct {
	AMQPURL string
	Name    string
}

type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadAll loads the configuration for the API server, which must have at
// least one session verifier.
func LoadAll() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" && !cfg.Redis.Enabled {
		return nil, errors.New("no session verifier configured: set JWT_SECRET or REDIS_ADDR")
	}
	return cfg, nil
}

// LoadWorker loads the configuration for the background worker. Auth
// settings are read but not required.
func LoadWorker() (*Config, error) {
	return load()
}

// LoadDatabase loads only the connection settings, for tools like the seeder.
func LoadDatabase() (DatabaseConfig, error) {
	dbURL, err := databaseURL()
	if err != nil {
		return DatabaseConfig{}, err
	}
	db := DatabaseConfig{
		URL:             dbURL,
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
	}
	if db.MaxOpenConns <= 0 {
		return DatabaseConfig{}, errors.New("DB_MAX_OPEN_CONNS must be > 0")
	}
	return db, nil
}

func load() (*Config, error) {
	db, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Address:         getEnv("SERVER_ADDRESS", ":8080"),
			ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Database: db,
		Paging: PagingConfig{
			DefaultLimit: getEnvInt("PAGE_SIZE_DEFAULT", 20),
			MaxLimit:     getEnvInt("PAGE_SIZE_MAX", 100),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			JWTIssuer:     os.Getenv("JWT_ISSUER"),
			SessionCookie: getEnv("SESSION_COOKIE", "better-auth.session_token"),
		},
		Redis: loadRedisConfig(),
		Queue: QueueConfig{
			AMQPURL: os.Getenv("AMQP_URL"),
			Name:    getEnv("AMQP_QUEUE", "lead_interactions"),
		},
		Log: LogConfig{
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to the DB_* variables.
func databaseURL() (string, error) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v, nil
	}
	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if user == "" || name == "" {
		return "", errors.New("missing DATABASE_URL (or DB_USER and DB_NAME)")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, os.Getenv("DB_PASSWORD"),
		getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"),
		name, getEnv("DB_SSLMODE", "disable"),
	), nil
}

func loadRedisConfig() RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return RedisConfig{Enabled: false}
	}

	return RedisConfig{
		Enabled:  true,
		Address:  addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

func validate(cfg *Config) error {
	if cfg.Paging.DefaultLimit <= 0 {
		return errors.New("PAGE_SIZE_DEFAULT must be > 0")
	}
	if cfg.Paging.MaxLimit < cfg.Paging.DefaultLimit {
		return errors.New("PAGE_SIZE_MAX must be >= PAGE_SIZE_DEFAULT")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("invalid int for env %s: %s", key, v))
	}
	return i
}
