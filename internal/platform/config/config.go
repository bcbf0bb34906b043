package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	DatabaseDSN   string
	RedisURL      string
	KafkaBrokers  []string
	AuditTopic    string
	JWTSigningKey string
	// CardMasterKey protects card numbers at rest. Required when a
	// database DSN is set.
	CardMasterKey string
	SeedDemoData  bool
}

// RedisConfig tunes the optional listing cache connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Development defaults are deliberate; production overrides them.
func FromEnv() Server {
	addr := os.Getenv("CARDLEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development fallback; must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "cardledger.audit"
	}

	return Server{
		Addr:          addr,
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaBrokers:  brokers,
		AuditTopic:    topic,
		JWTSigningKey: jwtSigningKey,
		CardMasterKey: os.Getenv("CARD_MASTER_KEY"),
		SeedDemoData:  os.Getenv("SEED_DEMO_DATA") == "true",
	}
}

// Redis derives the cache connection settings.
func (s Server) Redis() RedisConfig {
	return RedisConfig{
		URL:          s.RedisURL,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
