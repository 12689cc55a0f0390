// Package updates tells connected shells when a new build of the static
// assets is available and when the current build is ready for offline use.
package updates

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"meetingsManagement/internal/logging"
)

// Kind of update notification.
type Kind string

const (
	UpdateAvailable Kind = "update-available"
	OfflineReady    Kind = "offline-ready"
)

// Event is one notification.
type Event struct {
	Kind    Kind      `json:"kind"`
	Version string    `json:"version"`
	At      time.Time `json:"at"`
}

// Notifier fans events out to subscribers. Slow subscribers miss events
// rather than block the publisher. The latest offline-ready event is
// replayed to new subscribers.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	ready  *Event
	closed bool
	logger *zap.Logger
}

// NewNotifier returns an empty notifier.
func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{subs: map[int]chan Event{}, logger: logging.OrNop(logger)}
}

// Subscribe registers a subscriber with the given channel buffer. The
// returned cancel func unregisters it and closes the channel.
func (n *Notifier) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		close(ch)
		return ch, func() {}
	}
	id := n.next
	n.next++
	n.subs[id] = ch
	if n.ready != nil {
		ch <- *n.ready
	}
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if c, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(c)
			}
		})
	}
}

// Publish delivers ev to every subscriber.
func (n *Notifier) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	if ev.Kind == OfflineReady {
		e := ev
		n.ready = &e
	}
	for id, ch := range n.subs {
		select {
		case ch <- ev:
		default:
			n.logger.Debug("dropping update event for slow subscriber", zap.Int("subscriber", id), zap.String("kind", string(ev.Kind)))
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Close closes every subscriber channel. Later publishes are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
