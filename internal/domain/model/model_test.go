package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	if string(OrderStatusCompleted) != "COMPLETED" {
		t.Fatalf("expected COMPLETED, got %s", OrderStatusCompleted)
	}
}

func TestPurchaseLineSubtotal(t *testing.T) {
	line := PurchaseLine{Quantity: 3, PriceAtPurchase: decimal.RequireFromString("10.50")}
	if got := line.Subtotal(); !got.Equal(decimal.RequireFromString("31.50")) {
		t.Fatalf("expected 31.50, got %s", got)
	}
}

func TestUserDisplayName(t *testing.T) {
	cases := []struct {
		user User
		want string
	}{
		{User{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{User{FirstName: "Ada"}, "Ada"},
		{User{}, ""},
	}

	for _, tc := range cases {
		if got := tc.user.DisplayName(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestOrderSummaryItemCount(t *testing.T) {
	summary := OrderSummary{Items: []OrderItemSummary{{ProductID: 1}, {ProductID: 2}}}
	if summary.ItemCount() != 2 {
		t.Fatalf("expected 2 items, got %d", summary.ItemCount())
	}
}
