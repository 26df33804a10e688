// Package activity persists engagement events as the activity log.
package activity

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"inkwell/internal/core"
)

var (
	eventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_activity_events_recorded_total",
		Help: "The total number of engagement events written to the activity log",
	}, []string{"kind"})
)

// Recorder writes events to the activity log. It is also an event publisher for
// setups without a stream.
type Recorder struct {
	Logger     *slog.Logger
	Activities core.ActivityRepository
}

func (r *Recorder) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "activity.Recorder")
	return nil
}

func (r *Recorder) Publish(ctx context.Context, event core.Event) error {
	if err := r.Activities.Insert(ctx, event.Activity()); err != nil {
		return err
	}

	eventsRecorded.WithLabelValues(string(event.Kind)).Inc()
	r.Logger.Debug("recorded event", "id", event.ID, "kind", event.Kind)

	return nil
}
