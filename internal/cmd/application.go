package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"inkwell/internal/cmd/flags"
	"inkwell/internal/config"
	"inkwell/pkg/clicfg"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "inkwell",
	Usage:   "Inkwell is a blog backend: posts, threaded comments, likes and author dashboards",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.LogLevel,
	},
	Commands: []*cli.Command{
		serveCmd,
		migrateCmd,
		activityCmd,
		tokenCmd,
	},
}

func Run() {
	// A missing .env is fine, the environment and flags still apply.
	_ = godotenv.Load()

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func parseConfig(c *cli.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if err := clicfg.ParseFlags(c, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, services ...pal.ServiceDef) error {
	services = append(services, pal.Provide(cfg))

	return pal.New(services...).
		InjectSlog().
		InitTimeout(2*time.Second).
		HealthCheckTimeout(1*time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}
