package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/metrics"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/worker"
)

type lowStockStub struct {
	calls atomic.Int32
}

func (s *lowStockStub) LowStock(context.Context) ([]model.LowStockEntry, error) {
	s.calls.Add(1)
	return []model.LowStockEntry{{ProductID: 1, CurrentStock: 0}}, nil
}

func newTestStockMonitor(facade worker.StockFacade) *worker.StockMonitor {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewStockMonitor(facade, nil, time.Hour, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewStockMonitorUsesConfig(t *testing.T) {
	store := testhelpers.NewStore()
	facade, _ := newFacade(store)
	monitor := newStockMonitor(workerParams{
		Facade:  facade,
		Metrics: metrics.New(),
		Config:  &config.Config{StockPollInterval: 15 * time.Second},
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if monitor == nil {
		t.Fatal("expected stock monitor instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	lifecycle := &testhelpers.LifecycleRecorder{}
	stock := &lowStockStub{}

	registerLifecycle(lifecycleParams{
		Lifecycle:  lifecycle,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Server:     &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		Worker:     newTestStockMonitor(stock),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(lifecycle.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(lifecycle.Hooks))
	}
	if err := lifecycle.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- lifecycle.Stop(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("stop failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected stop to finish")
	}
	if stock.calls.Load() == 0 {
		t.Fatal("expected the stock monitor to run a check on start")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	lifecycle := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  lifecycle,
		Shutdowner: shutdowner,
		Logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Server:     &http.Server{Addr: "bad addr"},
		Worker:     newTestStockMonitor(&lowStockStub{}),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := lifecycle.Start(context.Background()); err != nil {
		t.Fatalf("start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = lifecycle.Stop(context.Background())
}
