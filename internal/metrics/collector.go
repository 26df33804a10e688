package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm/schema"

	"inkwell/internal/core"
)

const collectInterval = 15 * time.Second

var (
	tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "inkwell_table_estimated_count",
		Help: "Estimated record count for a table.",
	}, []string{"table"})

	tables = []schema.Tabler{core.User{}, core.Post{}, core.Comment{}, core.Activity{}}
)

// Collector periodically exports the planner's row estimates of the tables.
type Collector struct {
	Logger *slog.Logger
	DB     core.DB
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(collectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Logger.Debug("Collecting metrics")
			for _, tabler := range tables {
				if err := c.collectTableEstimatedCount(tabler); err != nil {
					c.Logger.Warn("failed to collect table count", "table", tabler.TableName(), "error", err)
				}
			}
		}
	}
}

func (c *Collector) collectTableEstimatedCount(tabler schema.Tabler) error {
	count, err := c.DB.EstimatedCount(tabler.TableName())
	if err != nil {
		return err
	}

	tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	return nil
}
