package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	// PublicURL is the dashboard origin used to build shareable portal links.
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:8080"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Minio    MinioConfig
	Queue    QueueConfig
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     string `env:"DB_PORT,     default=5432"`
	User     string `env:"DB_USER,     default=postgres"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME,     default=client_management"`
	SSLMode  string `env:"DB_SSLMODE,  default=disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET,     default=invoices"`
	UseSSL    bool   `env:"MINIO_SSL,        default=false"`
	PublicURL string `env:"MINIO_PUBLIC_URL, default=http://localhost:9000"`
}

type QueueConfig struct {
	// Workers bounds the number of simultaneous store operations.
	Workers int `env:"STORE_QUEUE_WORKERS,     default=2"`
	// CooldownMS is the pause after each store operation before the next
	// queued one is dispatched.
	CooldownMS int `env:"STORE_QUEUE_COOLDOWN_MS, default=100"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
