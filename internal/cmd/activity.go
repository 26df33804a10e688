package cmd

import (
	"context"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"inkwell/internal/activity"
	"inkwell/internal/cmd/flags"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/metrics"
	"inkwell/internal/nats"
)

var activityCmd = &cli.Command{
	Name:  "activity",
	Usage: "Consume engagement events from NATS JetStream, record them in the activity log",
	Flags: []cli.Flag{
		flags.DatabaseURL,
		flags.MetricsAddr,
		flags.NATSURL,
		flags.NATSInit,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		cfg, err := parseConfig(c)
		if err != nil {
			return err
		}

		if cfg.NATSURL == "" {
			cfg.NATSURL = libnats.DefaultURL
		}
		cfg.Store = config.StorePostgres

		return run(ctx, cfg,
			db.ProvidePostgres(),
			nats.Provide(),
			activity.ProvideConsumer(),
			pal.Provide(&metrics.HTTPServer{}),
		)
	},
}
