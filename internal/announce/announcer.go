package announce

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAdded   Kind = "added"
	KindRemoved Kind = "removed"
)

// Event announces that a rule's source entered or left the rule set. Other
// components (badge counters, session rewriters) key off the source string.
type Event struct {
	ID     string
	Kind   Kind
	Source string
	At     time.Time
}

// Broadcaster fans change events out to in-process subscribers. Publishing
// never blocks: a subscriber that falls behind loses events rather than
// stalling the add/delete path.
type Broadcaster struct {
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		logger: logger,
		subs:   make(map[string]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its id and event channel.
func (b *Broadcaster) Subscribe() (string, <-chan Event) {
	id := uuid.New().String()
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()
	return id, ch
}

func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Announce(kind Kind, source string) {
	ev := Event{
		ID:     uuid.New().String(),
		Kind:   kind,
		Source: source,
		At:     time.Now(),
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Warn("Dropping change event for slow subscriber", "subscriber", id, "kind", kind, "source", source)
		}
	}
}
