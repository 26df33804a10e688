package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"inkwell/internal/auth"
	"inkwell/internal/cmd/flags"
	"inkwell/internal/config"
	"inkwell/internal/core"
	"inkwell/internal/db"
)

var tokenCmd = &cli.Command{
	Name:  "token",
	Usage: "Create a user if missing and print a signed token for it",
	Flags: []cli.Flag{
		flags.Store,
		flags.DatabaseURL,
		flags.JWTSecret,
		flags.Name,
		flags.TTL,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		cfg, err := parseConfig(c)
		if err != nil {
			return err
		}

		return run(ctx, cfg,
			db.Provide(cfg.Store),
			pal.Provide(&auth.Tokens{}),
			pal.Provide(&tokenPrinter{}),
		)
	},
}

type tokenPrinter struct {
	Logger *slog.Logger
	Config *config.Config
	Users  core.UserRepository
	Tokens *auth.Tokens
}

func (p *tokenPrinter) Run(ctx context.Context) error {
	user, err := p.Users.GetOrCreateByName(ctx, p.Config.UserName)
	if err != nil {
		return err
	}

	token, err := p.Tokens.Issue(user.ID, user.Name, p.Config.TokenTTL)
	if err != nil {
		return err
	}

	p.Logger.Debug("Issued token", "user", user.ID, "name", user.Name, "ttl", p.Config.TokenTTL)
	fmt.Println(token)

	return nil
}
