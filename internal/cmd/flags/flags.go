package flags

import (
	"fmt"
	"slices"
	"time"

	"github.com/urfave/cli/v3"

	"inkwell/internal/config"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validStores    = []string{config.StorePostgres, config.StoreMemory}
)

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server, engagement events are recorded in-process when empty",
	Sources: cli.EnvVars("NATS_URL"),
}

var NATSInit = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize the NATS server: create streams, consumers, etc.",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var LogLevel = &cli.StringFlag{
	Name:      "log-level",
	Aliases:   []string{"l"},
	Usage:     "The level of the logs",
	Value:     "info",
	Validator: oneOf(validLogLevels),
	Sources:   cli.EnvVars("LOG_LEVEL"),
}

var Store = &cli.StringFlag{
	Name:      "store",
	Usage:     "Where posts and comments are kept: postgres or memory",
	Value:     config.StorePostgres,
	Validator: oneOf(validStores),
	Sources:   cli.EnvVars("STORE"),
}

var DatabaseURL = &cli.StringFlag{
	Name:    "database-url",
	Aliases: []string{"d"},
	Usage:   "The URL of the Postgres database",
	Sources: cli.EnvVars("DATABASE_URL"),
}

var ListenAddr = &cli.StringFlag{
	Name:    "listen-addr",
	Usage:   "The address the API listens on",
	Value:   ":8080",
	Sources: cli.EnvVars("LISTEN_ADDR"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "The address of the metrics and health server",
	Value:   ":9090",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var JWTSecret = &cli.StringFlag{
	Name:     "jwt-secret",
	Usage:    "The secret used to sign and verify tokens",
	Required: true,
	Sources:  cli.EnvVars("JWT_SECRET"),
}

var Name = &cli.StringFlag{
	Name:     "name",
	Usage:    "The name of the user to issue the token for, created if missing",
	Required: true,
}

var TTL = &cli.DurationFlag{
	Name:  "ttl",
	Usage: "How long the token stays valid",
	Value: 24 * time.Hour,
}

func oneOf(allowed []string) func(string) error {
	return func(value string) error {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("invalid value: %s, allowed values are: %s", value, allowed)
		}
		return nil
	}
}
