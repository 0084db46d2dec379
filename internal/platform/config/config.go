package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean. Optional backends (Postgres, Redis, Kafka, MinIO, payout provider)
// are considered disabled when their settings are empty.
type Config struct {
	Addr          string
	JWTSigningKey string
	AdminToken    string

	PostgresDSN string
	RedisURL    string

	KafkaBrokers    []string
	KafkaAuditTopic string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	PayoutURL    string
	PayoutAPIKey string

	QueuePageSize int
}

// DocumentURLTTL bounds how long a presigned verification document link stays valid.
var DocumentURLTTL = 5 * time.Minute

// DecisionDedupeTTL bounds how long a reviewer decision is held against duplicates.
var DecisionDedupeTTL = 30 * time.Second

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("ARTISTSAID_ADDR", ":8080"),
		JWTSigningKey:   os.Getenv("JWT_SIGNING_KEY"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaAuditTopic: envOr("KAFKA_AUDIT_TOPIC", "artistsaid.audit"),
		MinioEndpoint:   os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     envOr("MINIO_BUCKET", "verification-documents"),
		MinioUseSSL:     os.Getenv("MINIO_USE_SSL") == "true",
		PayoutURL:       os.Getenv("PAYOUT_URL"),
		PayoutAPIKey:    os.Getenv("PAYOUT_API_KEY"),
	}

	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitCommaList(brokers)
	}

	cfg.QueuePageSize = 100
	if raw := os.Getenv("ARTISTSAID_QUEUE_PAGE_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.QueuePageSize = n
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCommaList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
