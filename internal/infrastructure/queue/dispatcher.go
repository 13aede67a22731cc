package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/api/metrics"
	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Subscriber consumes ledger lifecycle events. Subscribers must treat
// delivery as best-effort: errors are their own to swallow.
type Subscriber interface {
	HandleEvent(ctx context.Context, event domain.LedgerEvent)
}

// Dispatcher fans ledger events out to subscribers through a fixed set of
// workers, sharded by document code so per-document ordering is preserved.
type Dispatcher struct {
	workers     []chan domain.LedgerEvent
	subscribers []Subscriber
	log         zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, subscribers []Subscriber, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:     make([]chan domain.LedgerEvent, numWorkers),
		subscribers: subscribers,
		log:         log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LedgerEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its code. When the
// worker's buffer is full the event is dropped: notification is
// fire-and-forget and must never block a ledger mutation.
func (d *Dispatcher) Publish(event domain.LedgerEvent) {
	idx := d.shardIndex(event.Code)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("code", event.Code).Str("type", string(event.Type)).Msg("event dropped, worker queue full")
	}
}

// shardIndex maps a document code deterministically to a worker index.
func (d *Dispatcher) shardIndex(code string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(code))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LedgerEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			for _, sub := range d.subscribers {
				sub.HandleEvent(ctx, event)
			}
		}
	}
}

var _ ports.EventPublisher = (*Dispatcher)(nil)
