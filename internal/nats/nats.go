package nats

import (
	"context"
	"log/slog"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"inkwell/internal/config"
)

const (
	appName = "inkwell"

	streamMaxAge = 7 * 24 * time.Hour
)

type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	JS jetstream.JetStream
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "nats.NATS")

	nc, err := libnats.Connect(n.Config.NATSURL, libnats.Name(appName))
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.JS = js

	if n.Config.NATSInit {
		if err := n.initNATS(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.JS.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	return n.JS.Conn().Drain()
}

func (n *NATS) initNATS(ctx context.Context) error {
	n.Logger.Info("Initializing NATS")
	_, err := n.JS.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       appName,
		Subjects:   []string{appName + ".>"},
		MaxAge:     streamMaxAge,
		Duplicates: 10 * time.Minute,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Stream created or updated", "name", appName)

	return nil
}
