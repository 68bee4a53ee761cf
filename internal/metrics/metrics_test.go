package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePurchase(t *testing.T) {
	r := New()
	r.ObservePurchase(KindSingle, OutcomeCommitted, 10*time.Millisecond)
	r.ObservePurchase(KindSingle, OutcomeCommitted, 20*time.Millisecond)
	r.ObservePurchase(KindBulk, OutcomeRejected, time.Millisecond)

	if got := testutil.ToFloat64(r.purchases.WithLabelValues(KindSingle, OutcomeCommitted)); got != 2 {
		t.Fatalf("expected 2 committed single purchases, got %v", got)
	}
	if got := testutil.ToFloat64(r.purchases.WithLabelValues(KindBulk, OutcomeRejected)); got != 1 {
		t.Fatalf("expected 1 rejected bulk purchase, got %v", got)
	}
	if n := testutil.CollectAndCount(r.purchaseDuration); n != 2 {
		t.Fatalf("expected histograms for two kinds, got %d", n)
	}
}

func TestItemsSoldAndStockLevels(t *testing.T) {
	r := New()
	r.AddItemsSold(3)
	r.AddItemsSold(0)
	r.AddItemsSold(-2)
	r.SetStockLevels(4, 1)

	if got := testutil.ToFloat64(r.itemsSold); got != 3 {
		t.Fatalf("expected 3 items sold, got %v", got)
	}
	if got := testutil.ToFloat64(r.lowStock); got != 4 {
		t.Fatalf("expected low stock 4, got %v", got)
	}
	if got := testutil.ToFloat64(r.outOfStock); got != 1 {
		t.Fatalf("expected out of stock 1, got %v", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObservePurchase(KindSingle, OutcomeError, time.Second)
	r.AddItemsSold(1)
	r.SetStockLevels(1, 1)
	r.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Second)
	if r.Handler() == nil {
		t.Fatal("expected fallback handler")
	}
}

func TestHandlerExposesInstruments(t *testing.T) {
	r := New()
	r.ObserveRequest(http.MethodPost, "/api/purchases", http.StatusCreated, 5*time.Millisecond)
	r.AddItemsSold(2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`storefront_http_requests_total{method="POST",path="/api/purchases",status="201"} 1`,
		"storefront_items_sold_total 2",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition", want)
		}
	}
}
