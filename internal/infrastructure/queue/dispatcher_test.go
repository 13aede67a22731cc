package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// collectSubscriber records delivered events per code.
type collectSubscriber struct {
	mu     sync.Mutex
	byCode map[string][]domain.LedgerEventType
}

func newCollectSubscriber() *collectSubscriber {
	return &collectSubscriber{byCode: make(map[string][]domain.LedgerEventType)}
}

func (s *collectSubscriber) HandleEvent(_ context.Context, event domain.LedgerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCode[event.Code] = append(s.byCode[event.Code], event.Type)
}

func (s *collectSubscriber) snapshot() map[string][]domain.LedgerEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]domain.LedgerEventType, len(s.byCode))
	for code, types := range s.byCode {
		out[code] = append([]domain.LedgerEventType(nil), types...)
	}
	return out
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
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_DeliversToAllSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := newCollectSubscriber()
	second := newCollectSubscriber()
	d := NewDispatcher(2, []Subscriber{first, second}, zerolog.Nop())
	d.Start(ctx)

	d.Publish(domain.LedgerEvent{Type: domain.EventDocumentCreated, Code: "DOC-0001"})

	waitFor(t, func() bool {
		return len(first.snapshot()["DOC-0001"]) == 1 && len(second.snapshot()["DOC-0001"]) == 1
	})
}

func TestDispatcher_PreservesPerCodeOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := newCollectSubscriber()
	d := NewDispatcher(4, []Subscriber{sub}, zerolog.Nop())
	d.Start(ctx)

	codes := []string{"CAR-0001", "PHO-0001", "DOC-0001"}
	for _, code := range codes {
		d.Publish(domain.LedgerEvent{Type: domain.EventDocumentCreated, Code: code})
		d.Publish(domain.LedgerEvent{Type: domain.EventDocumentIssued, Code: code})
	}

	waitFor(t, func() bool {
		snap := sub.snapshot()
		for _, code := range codes {
			if len(snap[code]) != 2 {
				return false
			}
		}
		return true
	})

	for code, types := range sub.snapshot() {
		if types[0] != domain.EventDocumentCreated || types[1] != domain.EventDocumentIssued {
			t.Fatalf("order broken for %s: %v", code, types)
		}
	}
}

func TestDispatcher_SameCodeSameWorker(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	for _, code := range []string{"CAR-0001", "DOC-0042", "PHO-9999"} {
		first := d.shardIndex(code)
		for i := 0; i < 10; i++ {
			if d.shardIndex(code) != first {
				t.Fatalf("shard index for %s is not stable", code)
			}
		}
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	// Not started: workers never drain, so the buffer fills up and further
	// publishes must not block.
	d := NewDispatcher(1, nil, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Publish(domain.LedgerEvent{Type: domain.EventDocumentCreated, Code: "DOC-0001"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish blocked on a full queue")
	}
}
