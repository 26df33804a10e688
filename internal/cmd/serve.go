package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"inkwell/internal/activity"
	"inkwell/internal/api"
	"inkwell/internal/auth"
	"inkwell/internal/cmd/flags"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/engagement"
	"inkwell/internal/metrics"
	"inkwell/internal/nats"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the HTTP API and the metrics",
	Flags: []cli.Flag{
		flags.Store,
		flags.DatabaseURL,
		flags.ListenAddr,
		flags.MetricsAddr,
		flags.JWTSecret,
		flags.NATSURL,
		flags.NATSInit,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		cfg, err := parseConfig(c)
		if err != nil {
			return err
		}

		return run(ctx, cfg, serveServices(cfg)...)
	},
}

func serveServices(cfg *config.Config) []pal.ServiceDef {
	services := []pal.ServiceDef{
		db.Provide(cfg.Store),
		pal.Provide(&engagement.Engine{}),
		pal.Provide(&auth.Tokens{}),
		pal.Provide(&api.Backend{}),
		pal.Provide(&api.Server{}),
		pal.Provide(&metrics.HTTPServer{}),
	}

	if cfg.Store == config.StorePostgres {
		services = append(services, pal.Provide(&metrics.Collector{}))
	}

	// Without a stream events go straight to the activity log.
	if cfg.NATSURL != "" {
		services = append(services, nats.ProvidePublisher())
	} else {
		services = append(services, activity.ProvideDirect())
	}

	return services
}
