package memory

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestOutboxRepository_EnqueuePullPending(t *testing.T) {
	repo := NewOutboxRepository()

	first, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "o1",
		EventType:     "order.created",
		Payload:       []byte(`{"order_id":"o1"}`),
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated message id")
	}

	second, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "o2",
		EventType:     "order.created",
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	pending, err := repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	// Старые события первыми.
	if pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Fatalf("unexpected pending order: %+v", pending)
	}
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	repo := NewOutboxRepository()

	msg, err := repo.Enqueue(domain.OutboxMessage{AggregateID: "o1", EventType: "order.created"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := repo.MarkSent(msg.ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	pending, _ := repo.PullPending(10)
	if len(pending) != 0 {
		t.Fatalf("expected no pending after MarkSent, got %d", len(pending))
	}

	failed, err := repo.Enqueue(domain.OutboxMessage{AggregateID: "o2", EventType: "order.created"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := repo.MarkFailed(failed.ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	pending, _ = repo.PullPending(10)
	if len(pending) != 0 {
		t.Fatalf("expected no pending after MarkFailed, got %d", len(pending))
	}

	if err := repo.MarkSent("missing"); err == nil {
		t.Fatal("expected error for unknown outbox id")
	}
}

func TestOutboxRepository_Stats(t *testing.T) {
	repo := NewOutboxRepository()

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 0 || !stats.OldestPendingAt.IsZero() {
		t.Fatalf("expected empty stats, got %+v", stats)
	}

	if _, err := repo.Enqueue(domain.OutboxMessage{AggregateID: "o1", EventType: "order.created"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := repo.Enqueue(domain.OutboxMessage{AggregateID: "o2", EventType: "order.created"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	stats, err = repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 2 {
		t.Fatalf("expected 2 pending, got %d", stats.PendingCount)
	}
	if stats.OldestPendingAt.IsZero() {
		t.Fatal("expected oldest pending timestamp")
	}
}

func TestKeyValueStore(t *testing.T) {
	kv := NewKeyValueStore()
	ctx := t.Context()

	if _, ok, err := kv.Get(ctx, "cart"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "cart", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := kv.Get(ctx, "cart")
	if err != nil || !ok || value != "[]" {
		t.Fatalf("unexpected get result: value=%q ok=%v err=%v", value, ok, err)
	}
}
