// Package signals turns OS interrupts into a stream of events a test
// scheduler can observe.
//
// Only one real Handler can be registered in a process at a time. Noop
// handlers never deliver anything and can be created freely.
package signals

import (
	"errors"
	"os"
	"os/signal"
	"sync"
)

// Event is delivered by a Handler.
type Event int

const (
	// Interrupted is sent once per received interrupt.
	Interrupted Event = iota
)

func (e Event) String() string {
	switch e {
	case Interrupted:
		return "interrupted"
	}
	return "unknown"
}

// ErrAlreadyRegistered is returned by New while another handler is
// registered.
var ErrAlreadyRegistered = errors.New("signal handler already registered")

var (
	registryMu sync.Mutex
	registered bool
)

// Handler delivers interrupt events. Events are queued without bound until
// they are received, so a slow consumer never loses one.
type Handler struct {
	events chan Event
	done   chan struct{}
	once   sync.Once

	// nil for noop handlers
	sigs chan os.Signal
}

// New registers a handler for interrupts. Only one handler can be
// registered at a time; Close releases the registration.
func New() (*Handler, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registered {
		return nil, ErrAlreadyRegistered
	}
	registered = true

	h := &Handler{
		events: make(chan Event),
		done:   make(chan struct{}),
		sigs:   make(chan os.Signal, 16),
	}
	signal.Notify(h.sigs, os.Interrupt)
	go h.pump()
	return h, nil
}

// Noop returns a handler that never delivers events.
func Noop() *Handler {
	return &Handler{
		events: make(chan Event),
		done:   make(chan struct{}),
	}
}

// Events returns the channel events are delivered on. It is closed by
// Close.
func (h *Handler) Events() <-chan Event {
	return h.events
}

// Close stops delivery and, for a registered handler, releases the
// registration. Pending events are dropped.
func (h *Handler) Close() {
	h.once.Do(func() {
		if h.sigs == nil {
			close(h.events)
			return
		}

		signal.Stop(h.sigs)
		close(h.done)

		registryMu.Lock()
		registered = false
		registryMu.Unlock()
	})
}

// pump moves received signals onto the event queue and the queue onto the
// events channel.
func (h *Handler) pump() {
	defer close(h.events)

	var queue []Event
	for {
		var out chan<- Event
		var next Event
		if len(queue) > 0 {
			out = h.events
			next = queue[0]
		}

		select {
		case <-h.sigs:
			queue = append(queue, Interrupted)
		case out <- next:
			queue = queue[1:]
		case <-h.done:
			return
		}
	}
}
