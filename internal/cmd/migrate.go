package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"inkwell/internal/cmd/flags"
	"inkwell/internal/db"
	"inkwell/internal/persistence"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the database schema",
	Flags: []cli.Flag{
		flags.DatabaseURL,
	},
	Commands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply all pending migrations",
			Action: func(ctx context.Context, c *cli.Command) error {
				return migrate(ctx, c, pal.Provide(&persistence.MigrationUpRunner{}))
			},
		},
		{
			Name:  "down",
			Usage: "Roll back the latest migration",
			Action: func(ctx context.Context, c *cli.Command) error {
				return migrate(ctx, c, pal.Provide(&persistence.MigrationDownRunner{}))
			},
		},
	},
}

func migrate(ctx context.Context, c *cli.Command, runner pal.ServiceDef) error {
	cfg, err := parseConfig(c)
	if err != nil {
		return err
	}

	return run(ctx, cfg, db.ProvideMigrator(), runner)
}
