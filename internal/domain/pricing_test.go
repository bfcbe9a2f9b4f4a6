package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestSubtotalMinor(t *testing.T) {
	// 19.99 × 2 + 5.00 × 1 = 44.98
	items := []domain.CartItem{
		{Product: makeProduct("p1", 1999, 10), Quantity: 2},
		{Product: makeProduct("p2", 500, 10), Quantity: 1},
	}

	if got := domain.SubtotalMinor(items); got != 4498 {
		t.Fatalf("expected subtotal 4498, got %d", got)
	}
	if got := domain.SubtotalMinor(nil); got != 0 {
		t.Fatalf("expected empty subtotal 0, got %d", got)
	}
}

func TestShippingMinor(t *testing.T) {
	policy := domain.DefaultPricingPolicy()

	cases := []struct {
		name          string
		subtotalMinor int64
		want          int64
	}{
		{name: "below threshold", subtotalMinor: 9999, want: 999},
		{name: "at threshold", subtotalMinor: 10000, want: 0},
		{name: "above threshold", subtotalMinor: 25000, want: 0},
		{name: "empty cart", subtotalMinor: 0, want: 999},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.ShippingMinor(tc.subtotalMinor); got != tc.want {
				t.Fatalf("shipping(%d): expected %d, got %d", tc.subtotalMinor, tc.want, got)
			}
		})
	}
}

func TestTaxMinor(t *testing.T) {
	policy := domain.DefaultPricingPolicy()

	cases := []struct {
		name          string
		subtotalMinor int64
		want          int64
	}{
		{name: "tax on 50.00 is 4.00", subtotalMinor: 5000, want: 400},
		{name: "half-up rounding", subtotalMinor: 4498, want: 360}, // 359.84 -> 360
		{name: "rounds down below half cent", subtotalMinor: 55, want: 4},  // 4.4 -> 4
		{name: "rounds up from half cent", subtotalMinor: 69, want: 6},     // 5.52 -> 6
		{name: "zero subtotal", subtotalMinor: 0, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.TaxMinor(tc.subtotalMinor); got != tc.want {
				t.Fatalf("tax(%d): expected %d, got %d", tc.subtotalMinor, tc.want, got)
			}
		})
	}
}

func TestTaxMinor_CustomRate(t *testing.T) {
	policy := domain.DefaultPricingPolicy()
	policy.TaxRateBasisPoints = 1000 // 10%

	if got := policy.TaxMinor(5000); got != 500 {
		t.Fatalf("expected 500 at 10%% rate, got %d", got)
	}
}

func TestTotalMinor(t *testing.T) {
	policy := domain.DefaultPricingPolicy()
	items := []domain.CartItem{
		{Product: makeProduct("p1", 1999, 10), Quantity: 2},
		{Product: makeProduct("p2", 500, 10), Quantity: 1},
	}

	// subtotal 44.98 + shipping 9.99 + tax 3.60 = 58.57
	if got := policy.TotalMinor(items); got != 5857 {
		t.Fatalf("expected total 5857, got %d", got)
	}
}

func TestFormatMinor(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{amount: 4498, want: "44.98"},
		{amount: 0, want: "0.00"},
		{amount: 5, want: "0.05"},
		{amount: -1999, want: "-19.99"},
	}

	for _, tc := range cases {
		if got := domain.FormatMinor(tc.amount); got != tc.want {
			t.Fatalf("FormatMinor(%d): expected %s, got %s", tc.amount, tc.want, got)
		}
	}
}
