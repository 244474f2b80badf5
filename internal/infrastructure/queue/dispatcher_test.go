package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type memNotificationRepo struct {
	mu    sync.Mutex
	items []*domain.Notification
}

func (r *memNotificationRepo) Insert(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	return nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID string, _ bool) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, _, _ string) error { return nil }

func (r *memNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_DeliversAllNotifications(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &memNotificationRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	var batch []ports.NotificationInput
	for _, uid := range []string{"u1", "u2", "u3", "u1", "u2"} {
		batch = append(batch, ports.NotificationInput{UserID: uid, Title: "t", Body: "b", Type: "announcement"})
	}
	d.EnqueueBatch(batch)

	waitFor(t, func() bool { return repo.count() == 5 })

	delivered, _ := repo.ListByUser(ctx, "u1", false)
	if len(delivered) != 2 {
		t.Fatalf("expected 2 notifications for u1, got %d", len(delivered))
	}
	for _, n := range delivered {
		if n.ID == "" || n.CreatedAt.IsZero() {
			t.Fatalf("worker must stamp ID and timestamp: %+v", n)
		}
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &memNotificationRepo{}
	d := NewDispatcher(8, repo, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		d.Enqueue(ports.NotificationInput{UserID: "same-user", Title: "t", Body: string(rune('a' + i)), Type: "x"})
	}

	waitFor(t, func() bool { return repo.count() == 20 })

	delivered, _ := repo.ListByUser(ctx, "same-user", false)
	for i, n := range delivered {
		if n.Body != string(rune('a'+i)) {
			t.Fatalf("per-user ordering broken at %d: %q", i, n.Body)
		}
	}
}

func TestDispatcher_SameUserSameShard(t *testing.T) {
	d := NewDispatcher(8, &memNotificationRepo{}, zerolog.Nop())

	first := d.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("user-42") != first {
			t.Fatalf("shard assignment must be deterministic")
		}
	}
}
