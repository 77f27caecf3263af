package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopwarehouse/warehouse-api/internal/api/metrics"
	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes low-stock alerts to a fixed set of workers using
// consistent hashing on the product id, so alerts for one product are
// handled in the order they were raised.
type Dispatcher struct {
	workers []chan domain.LowStockAlert
	sink    ports.AlertSink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.AlertSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LowStockAlert, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LowStockAlert, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an alert to the worker responsible for its product. It never
// blocks: when that worker's buffer is full the alert is dropped and false is
// returned.
func (d *Dispatcher) Enqueue(alert domain.LowStockAlert) bool {
	idx := d.shardIndex(alert.ProductID)
	select {
	case d.workers[idx] <- alert:
		metrics.AlertQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.LowStockAlertsTotal.WithLabelValues("dropped").Inc()
		return false
	}
}

// shardIndex maps a product id deterministically to a worker index.
func (d *Dispatcher) shardIndex(productID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(productID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LowStockAlert) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case alert, ok := <-ch:
			if !ok {
				return
			}
			metrics.AlertQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.sink.Handle(ctx, alert); err != nil {
				metrics.LowStockAlertsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Int64("product_id", alert.ProductID).
					Int("worker_id", id).
					Msg("low-stock alert handling failed")
				continue
			}
			metrics.LowStockAlertsTotal.WithLabelValues("handled").Inc()
		}
	}
}
