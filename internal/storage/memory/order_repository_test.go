package memory

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func makeTestOrder(id, customerID string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:            id,
		CustomerID:    customerID,
		Status:        domain.OrderStatusPending,
		Currency:      "USD",
		SubtotalMinor: 1000,
		ShippingMinor: 999,
		TaxMinor:      80,
		TotalMinor:    2079,
		Items: []domain.OrderItem{
			{ID: id + "-item", ProductID: "p1", Qty: 2, PriceMinor: 500, CreatedAt: createdAt},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := NewOrderRepository()
	order := makeTestOrder("o1", "c1", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(order); !errors.Is(err, domain.ErrOrderVersionConflict) {
		t.Fatalf("expected conflict on duplicate create, got %v", err)
	}

	got, err := repo.Get("o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerID != "c1" || len(got.Items) != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	repo := NewOrderRepository()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		order := makeTestOrder(fmt.Sprintf("o%d", i), "c1", now.Add(time.Duration(i)*time.Minute))
		if err := repo.Create(order); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	other := makeTestOrder("other", "c2", now)
	if err := repo.Create(other); err != nil {
		t.Fatalf("create: %v", err)
	}

	orders, err := repo.ListByCustomer("c1", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected limit 3, got %d", len(orders))
	}
	// Новые заказы первыми.
	if orders[0].ID != "o4" || orders[1].ID != "o3" {
		t.Fatalf("expected newest first, got %s, %s", orders[0].ID, orders[1].ID)
	}
	for _, order := range orders {
		if order.CustomerID != "c1" {
			t.Fatalf("foreign order leaked into listing: %+v", order)
		}
	}
}

func TestOrderRepository_ListAll(t *testing.T) {
	repo := NewOrderRepository()
	now := time.Now().UTC()

	if err := repo.Create(makeTestOrder("o1", "c1", now.Add(-time.Hour))); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(makeTestOrder("o2", "c2", now)); err != nil {
		t.Fatalf("create: %v", err)
	}

	orders, err := repo.ListAll(0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o2" {
		t.Fatalf("expected both orders newest first, got %+v", orders)
	}
}

func TestOrderRepository_SaveOptimisticLocking(t *testing.T) {
	repo := NewOrderRepository()
	order := makeTestOrder("o1", "c1", time.Now().UTC())

	if err := repo.Save(order); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on save of absent order, got %v", err)
	}

	if err := repo.Create(order); err != nil {
		t.Fatalf("create: %v", err)
	}

	order.Status = domain.OrderStatusProcessing
	if err := repo.Save(order); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Повторное сохранение с устаревшей версией — конфликт.
	stale := order
	stale.Status = domain.OrderStatusCancelled
	if err := repo.Save(stale); !domain.IsVersionConflict(err) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	got, _ := repo.Get("o1")
	if got.Status != domain.OrderStatusProcessing || got.Version != 1 {
		t.Fatalf("unexpected stored order: status=%s version=%d", got.Status, got.Version)
	}
}
