package activity

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"inkwell/internal/core"
	"inkwell/internal/nats"
	"inkwell/pkg/retry"
)

const (
	consumerName = "activity-recorder"

	// restarts per second tolerated before giving up
	restartRate = 3
)

// Consumer records the events of the stream. Redelivered events are ignored by
// the activity log because the event id is its primary key.
type Consumer struct {
	Logger   *slog.Logger
	NATS     *nats.NATS
	Recorder *Recorder
}

type delivery struct {
	msg   jetstream.Msg
	event *core.Event
}

func (c *Consumer) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "activity.Consumer")
	return nil
}

func (c *Consumer) Run(ctx context.Context) error {
	c.Logger.Info("Consuming engagement events", "consumer", consumerName)

	return retry.WrapWithRetry(func() error {
		return c.NATS.ConsumeToPipeline(ctx, consumerName, c.pipeline())
	}, func(err error, attempt int) bool {
		if ctx.Err() != nil {
			return false
		}
		c.Logger.Error("consuming failed, restarting", "attempt", attempt, "error", err)
		return true
	}, restartRate)()
}

func (c *Consumer) pipeline() *pips.Pipeline[jetstream.Msg, any] {
	return pips.New[jetstream.Msg, any]().
		Then(apply.Map(c.decode)).
		Then(apply.Each(c.record))
}

// decode terminates messages that can never be processed.
func (c *Consumer) decode(_ context.Context, msg jetstream.Msg) (delivery, error) {
	event := &core.Event{}
	if err := json.Unmarshal(msg.Data(), event); err != nil || event.ID == "" {
		c.Logger.Error("dropping malformed event", "subject", msg.Subject(), "error", err)
		msg.Term() //nolint:errcheck
		return delivery{msg: msg}, nil
	}

	return delivery{msg: msg, event: event}, nil
}

func (c *Consumer) record(ctx context.Context, d delivery) error {
	if d.event == nil {
		return nil
	}

	if err := c.Recorder.Publish(ctx, *d.event); err != nil {
		c.Logger.Error("failed to record event, will be redelivered", "id", d.event.ID, "error", err)
		d.msg.Nak() //nolint:errcheck
		return nil
	}

	d.msg.Ack() //nolint:errcheck
	return nil
}
