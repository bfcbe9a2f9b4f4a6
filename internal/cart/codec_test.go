package cart

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func makeItem(id string, priceMinor int64, stock, qty int32) domain.CartItem {
	return domain.CartItem{
		Product: domain.Product{
			ID:         id,
			Name:       "product " + id,
			PriceMinor: priceMinor,
			Condition:  domain.ConditionNew,
			Stock:      stock,
			Category:   "electronics",
			Images:     []string{"https://img/" + id},
		},
		Quantity: qty,
	}
}

func TestCodecRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		items []domain.CartItem
	}{
		{name: "empty cart", items: []domain.CartItem{}},
		{name: "single item", items: []domain.CartItem{makeItem("p1", 1999, 5, 2)}},
		{
			name: "multiple items keep order",
			items: []domain.CartItem{
				makeItem("p2", 500, 10, 1),
				makeItem("p1", 1999, 5, 3),
				makeItem("p3", 0, 1, 1),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := encodeItems(tc.items)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			decoded, err := decodeItems(payload)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(decoded) != len(tc.items) {
				t.Fatalf("expected %d items, got %d", len(tc.items), len(decoded))
			}
			for i := range tc.items {
				want, got := tc.items[i], decoded[i]
				if got.Product.ID != want.Product.ID ||
					got.Product.Name != want.Product.Name ||
					got.Product.PriceMinor != want.Product.PriceMinor ||
					got.Product.Stock != want.Product.Stock ||
					got.Product.Condition != want.Product.Condition ||
					got.Product.Category != want.Product.Category ||
					got.Quantity != want.Quantity {
					t.Fatalf("item %d mismatch: want %+v, got %+v", i, want, got)
				}
			}
		})
	}
}

func TestDecodeItems_RejectsCorruptPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "{{{"},
		{name: "not an array", payload: `{"product_id":"p1"}`},
		{name: "missing product id", payload: `[{"name":"x","price_minor":100,"stock":1,"quantity":1}]`},
		{name: "zero quantity", payload: `[{"product_id":"p1","price_minor":100,"stock":1,"quantity":0}]`},
		{name: "negative quantity", payload: `[{"product_id":"p1","price_minor":100,"stock":1,"quantity":-2}]`},
		{name: "negative price", payload: `[{"product_id":"p1","price_minor":-1,"stock":1,"quantity":1}]`},
		{name: "negative stock", payload: `[{"product_id":"p1","price_minor":100,"stock":-1,"quantity":1}]`},
		{name: "quantity above snapshot stock", payload: `[{"product_id":"p1","price_minor":100,"stock":2,"quantity":3}]`},
		{
			name: "one bad entry poisons the whole cart",
			payload: `[
				{"product_id":"p1","price_minor":100,"stock":5,"quantity":1},
				{"product_id":"","price_minor":100,"stock":5,"quantity":1}
			]`,
		},
		{
			name: "duplicate product id",
			payload: `[
				{"product_id":"p1","price_minor":100,"stock":5,"quantity":1},
				{"product_id":"p1","price_minor":100,"stock":5,"quantity":2}
			]`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := decodeItems(tc.payload)
			if err == nil {
				t.Fatal("expected decode error")
			}
			if !domain.IsCorruptCartData(err) {
				t.Fatalf("expected ErrCorruptCartData, got %v", err)
			}
			if items != nil {
				t.Fatalf("expected no partial load, got %d items", len(items))
			}
		})
	}
}

func TestDecodeItems_EmptyArray(t *testing.T) {
	items, err := decodeItems("[]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}
