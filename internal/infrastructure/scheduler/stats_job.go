package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/shopwarehouse/warehouse-api/internal/api/metrics"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

const (
	DefaultStatsSpec = "@every 30s"
	refreshTimeout   = 10 * time.Second
)

// StatsJob periodically copies inventory stats into the Prometheus gauges.
type StatsJob struct {
	cron      *cron.Cron
	inventory ports.InventoryService
	log       zerolog.Logger
}

// NewStatsJob schedules the refresh using a standard cron expression or a
// descriptor such as "@every 1m". An empty spec uses DefaultStatsSpec.
func NewStatsJob(spec string, inventory ports.InventoryService, log zerolog.Logger) (*StatsJob, error) {
	if spec == "" {
		spec = DefaultStatsSpec
	}
	j := &StatsJob{
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger))),
		inventory: inventory,
		log:       log,
	}
	if _, err := j.cron.AddFunc(spec, func() { j.Refresh(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", spec, err)
	}
	return j, nil
}

func (j *StatsJob) Start() {
	j.cron.Start()
}

// Stop halts scheduling and waits for a running refresh to finish or ctx to
// expire.
func (j *StatsJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Refresh reads current stats and updates the inventory gauges.
func (j *StatsJob) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	stats, err := j.inventory.Stats(ctx, 0)
	if err != nil {
		j.log.Warn().Err(err).Msg("inventory stats refresh failed")
		return
	}
	metrics.InventoryProducts.Set(float64(stats.TotalProducts))
	metrics.InventoryUnits.Set(float64(stats.TotalItemsInStock))
	metrics.InventoryLowStockProducts.Set(float64(stats.LowStockItems))
	j.log.Debug().
		Int64("products", stats.TotalProducts).
		Int64("units", stats.TotalItemsInStock).
		Int64("low_stock", stats.LowStockItems).
		Msg("inventory gauges refreshed")
}
