package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zhulik/pips"
)

// ConsumeToPipeline feeds the messages of a durable consumer on the app stream
// into pipeline until ctx is done or fetching fails.
func (n *NATS) ConsumeToPipeline(ctx context.Context, name string, pipeline *pips.Pipeline[jetstream.Msg, any]) error {
	cons, err := n.JS.CreateOrUpdateConsumer(ctx, appName, jetstream.ConsumerConfig{
		Durable:       name,
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: appName + ".>",
	})
	if err != nil {
		return err
	}

	iter, err := cons.Messages()
	if err != nil {
		return err
	}

	return feed(ctx, func() (jetstream.Msg, error) { return iter.Next() }, iter.Stop, pipeline)
}

// feed runs pipeline over the messages returned by next. stop is called once
// feed returns or ctx is done, it must make a blocked next return.
func feed(ctx context.Context, next func() (jetstream.Msg, error), stop func(), pipeline *pips.Pipeline[jetstream.Msg, any]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan pips.D[jetstream.Msg])
	fetchErr := make(chan error, 1)

	go func() {
		<-ctx.Done()
		stop()
	}()

	go func() {
		defer close(ch)

		for {
			msg, err := next()
			if err != nil {
				if !errors.Is(err, jetstream.ErrMsgIteratorClosed) {
					fetchErr <- err
				}
				return
			}

			select {
			case ch <- pips.NewD(msg):
			case <-ctx.Done():
				return
			}
		}
	}()

	err := pipeline.Run(ctx, ch).Wait(ctx)

	select {
	case ferr := <-fetchErr:
		return errors.Join(err, ferr)
	default:
		return err
	}
}
