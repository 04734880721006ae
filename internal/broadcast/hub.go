package broadcast

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"obedio-core/internal/clock"
)

var (
	ErrSlowConsumer = errors.New("subscriber evicted: buffer full")
	ErrHubClosed    = errors.New("hub closed")
)

type Entity string

const (
	EntityGuest          Entity = "guest"
	EntityLocation       Entity = "location"
	EntityServiceRequest Entity = "servicerequest"
	EntityDevice         Entity = "device"
)

type Kind string

const (
	Created Kind = "created"
	Updated Kind = "updated"
	Deleted Kind = "deleted"
)

const DefaultBuffer = 256

// Identified is anything that can be addressed by id on the wire.
type Identified interface {
	EntityID() string
}

// Envelope is one published event. Seq is global and strictly increasing,
// so two events for the same entity are always distinguishable by order
// even when At is identical.
type Envelope struct {
	Seq      uint64    `json:"seq"`
	Entity   Entity    `json:"entity"`
	Kind     Kind      `json:"kind"`
	EntityID string    `json:"entityId"`
	At       time.Time `json:"at"`
	Payload  any       `json:"payload"`
}

// Event is the wire name, e.g. "servicerequest:updated".
func (e Envelope) Event() string {
	return string(e.Entity) + ":" + string(e.Kind)
}

type Config struct {
	Clock  clock.Clock
	Buffer int
	// OnEvict is called with the subscriber name after a slow consumer is
	// dropped. Called with the hub lock held; must not publish.
	OnEvict func(name string)
}

type Hub struct {
	clock   clock.Clock
	buffer  int
	onEvict func(string)

	mu     sync.Mutex
	seq    uint64
	nextID uint64
	subs   map[uint64]*Subscription
	closed bool
}

func New(cfg Config) *Hub {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	return &Hub{
		clock:   cfg.Clock,
		buffer:  cfg.Buffer,
		onEvict: cfg.OnEvict,
		subs:    make(map[uint64]*Subscription),
	}
}

// Publish stamps and fans out one event. Sends never block: a subscriber
// whose buffer is full is evicted rather than skipped, so no subscriber
// ever sees a gap in an entity's history.
func (h *Hub) Publish(entity Entity, kind Kind, payload Identified) Envelope {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	env := Envelope{
		Seq:      h.seq,
		Entity:   entity,
		Kind:     kind,
		EntityID: payload.EntityID(),
		At:       h.clock.Now(),
		Payload:  payload,
	}
	if h.closed {
		return env
	}

	for id, sub := range h.subs {
		if sub.filter != nil && !sub.filter(env) {
			continue
		}
		select {
		case sub.c <- env:
		default:
			slog.Warn("Evicting slow broadcast subscriber", "subscriber", sub.name, "seq", env.Seq)
			delete(h.subs, id)
			sub.terminate(ErrSlowConsumer)
			if h.onEvict != nil {
				h.onEvict(sub.name)
			}
		}
	}
	return env
}

// Subscribe registers a consumer. filter may be nil to receive everything.
func (h *Hub) Subscribe(name string, filter func(Envelope) bool) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		id:     h.nextID,
		name:   name,
		c:      make(chan Envelope, h.buffer),
		filter: filter,
		hub:    h,
	}
	if h.closed {
		sub.terminate(ErrHubClosed)
		return sub
	}
	h.subs[sub.id] = sub
	return sub
}

// Only returns a filter matching the given entities.
func Only(entities ...Entity) func(Envelope) bool {
	return func(e Envelope) bool {
		for _, entity := range entities {
			if e.Entity == entity {
				return true
			}
		}
		return false
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close terminates every subscription. Later publishes are stamped but not
// delivered.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		sub.terminate(ErrHubClosed)
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	delete(h.subs, sub.id)
	sub.terminate(nil)
}

type Subscription struct {
	id     uint64
	name   string
	c      chan Envelope
	filter func(Envelope) bool
	hub    *Hub

	once sync.Once
	err  error
}

// C is closed when the subscription ends. Err tells why.
func (s *Subscription) C() <-chan Envelope {
	return s.c
}

func (s *Subscription) Name() string {
	return s.name
}

// Err is nil for a subscription closed by its owner.
func (s *Subscription) Err() error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.err
}

// Close detaches the subscriber without touching publishers.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Must be called with hub.mu held.
func (s *Subscription) terminate(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.c)
	})
}
