package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// LogSink reports low-stock alerts as structured warnings.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Handle(_ context.Context, alert domain.LowStockAlert) error {
	s.log.Warn().
		Int64("product_id", alert.ProductID).
		Str("sku", alert.SKU).
		Str("name", alert.Name).
		Int("stock_quantity", alert.StockQuantity).
		Int("threshold", alert.Threshold).
		Str("operation", string(alert.Operation)).
		Time("raised_at", alert.RaisedAt).
		Msg("product below low-stock threshold")
	return nil
}
