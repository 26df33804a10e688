package config

import "time"

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	LogLevel string `flag:"log-level"`

	Store       string `flag:"store"`
	DatabaseURL string `flag:"database-url"`

	ListenAddr  string `flag:"listen-addr"`
	MetricsAddr string `flag:"metrics-addr"`

	JWTSecret string `flag:"jwt-secret"`

	NATSURL  string `flag:"nats-url"`
	NATSInit bool   `flag:"nats-init"`

	UserName string        `flag:"name"`
	TokenTTL time.Duration `flag:"ttl"`
}
