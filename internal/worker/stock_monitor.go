package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const defaultPollInterval = time.Minute

// StockFacade exposes the subset of application functionality required by the monitor.
type StockFacade interface {
	LowStock(ctx context.Context) ([]model.LowStockEntry, error)
}

// StockGauges receives the figures of every stock check.
type StockGauges interface {
	SetStockLevels(low, out int)
}

// StockMonitor periodically reads the low stock view and publishes stock gauges.
type StockMonitor struct {
	facade       StockFacade
	gauges       StockGauges
	pollInterval time.Duration
	logger       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStockMonitor constructs the stock monitor.
func NewStockMonitor(facade StockFacade, gauges StockGauges, pollInterval time.Duration, logger *slog.Logger) *StockMonitor {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &StockMonitor{
		facade:       facade,
		gauges:       gauges,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Start launches the polling loop. The first check runs immediately.
func (m *StockMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel

	m.wg.Add(1)
	go m.run(runCtx)
}

// Stop cancels the loop and waits for it to exit.
func (m *StockMonitor) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *StockMonitor) run(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *StockMonitor) check(ctx context.Context) {
	entries, err := m.facade.LowStock(ctx)
	if err != nil {
		if ctx.Err() == nil {
			m.logger.Error("stock check failed", slog.String("error", err.Error()))
		}
		return
	}

	var out []int64
	for _, e := range entries {
		if e.CurrentStock <= 0 {
			out = append(out, e.ProductID)
		}
	}
	if m.gauges != nil {
		m.gauges.SetStockLevels(len(entries), len(out))
	}

	if len(out) > 0 {
		m.logger.Warn("products out of stock",
			slog.Int("count", len(out)),
			slog.Any("product_ids", out),
		)
		return
	}
	m.logger.Debug("stock check completed", slog.Int("low_stock", len(entries)))
}
