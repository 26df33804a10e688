package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	libnats "github.com/nats-io/nats.go"

	"inkwell/internal/core"
)

// Publisher sends engagement events to the stream. The event id is the message
// id, so retried publishes are deduplicated by the server.
type Publisher struct {
	Logger *slog.Logger
	NATS   *NATS
}

func (p *Publisher) Init(_ context.Context) error {
	p.Logger = p.Logger.With("component", "nats.Publisher")
	return nil
}

func (p *Publisher) Publish(ctx context.Context, event core.Event) error {
	msg, err := eventMsg(event)
	if err != nil {
		return err
	}

	if _, err := p.NATS.JS.PublishMsg(ctx, msg); err != nil {
		return err
	}

	p.Logger.Debug("published event", "id", event.ID, "subject", msg.Subject)

	return nil
}

func eventMsg(event core.Event) (*libnats.Msg, error) {
	bytes, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &libnats.Msg{
		Subject: Subject(event.Kind),
		Data:    bytes,
		Header: libnats.Header{
			libnats.MsgIdHdr: []string{event.ID},
		},
	}, nil
}

// Subject is the stream subject of an event kind.
func Subject(kind core.EventKind) string {
	return appName + "." + string(kind)
}
