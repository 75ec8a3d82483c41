package urlparam

import (
	"net/url"
	"sync"
)

// Navigator is the navigation context a Store reads from and writes to.
// It abstracts the browser history API: read the current URL, push or
// replace it without a reload, and observe changes from any source.
type Navigator interface {
	// Location returns a copy of the current URL. Callers may mutate the
	// returned value freely.
	Location() *url.URL

	// Push makes u the current URL as a new history entry and notifies
	// subscribers.
	Push(u *url.URL)

	// Replace makes u the current URL in place of the current history
	// entry and notifies subscribers.
	Replace(u *url.URL)

	// Subscribe registers fn to run whenever the current URL changes.
	// The returned cancel removes only this registration.
	Subscribe(fn func()) (cancel func())
}

// Hub is an ordered registry of change listeners. Listeners are notified
// in registration order; cancelling one registration leaves the others and
// their relative order untouched. Cancel funcs are safe to call twice.
//
// The zero value is ready to use.
type Hub struct {
	mu        sync.Mutex
	seq       uint64
	listeners []hubListener
}

type hubListener struct {
	id uint64
	fn func()
}

// Subscribe registers fn and returns its cancel func.
func (h *Hub) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	h.mu.Lock()
	h.seq++
	id := h.seq
	h.listeners = append(h.listeners, hubListener{id: id, fn: fn})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, l := range h.listeners {
			if l.id == id {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every registered listener in registration order.
// Listeners are copied before invocation so a listener may subscribe or
// cancel without deadlocking.
func (h *Hub) Notify() {
	h.mu.Lock()
	listeners := make([]hubListener, len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, l := range listeners {
		l.fn()
	}
}

// Len returns the number of registered listeners.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Memory is an in-process Navigator backed by a history stack. It mirrors
// browser history semantics: Push appends an entry and discards any forward
// entries, Replace swaps the current entry, Back and Forward traverse the
// stack. Every mutation notifies subscribers through the same hub, so a
// programmatic write and a history traversal are indistinguishable to a
// listener.
type Memory struct {
	mu      sync.Mutex
	entries []*url.URL
	index   int

	hub Hub
}

// NewMemory creates a Memory navigator whose initial location is rawURL.
// An empty rawURL starts at "/".
func NewMemory(rawURL string) (*Memory, error) {
	if rawURL == "" {
		rawURL = "/"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &Memory{entries: []*url.URL{u}}, nil
}

// Location returns a copy of the current URL.
func (m *Memory) Location() *url.URL {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *m.entries[m.index]
	return &clone
}

// Push appends u as a new history entry, discarding forward entries.
func (m *Memory) Push(u *url.URL) {
	clone := *u
	m.mu.Lock()
	m.entries = append(m.entries[:m.index+1], &clone)
	m.index = len(m.entries) - 1
	m.mu.Unlock()

	m.hub.Notify()
}

// Replace swaps the current history entry for u.
func (m *Memory) Replace(u *url.URL) {
	clone := *u
	m.mu.Lock()
	m.entries[m.index] = &clone
	m.mu.Unlock()

	m.hub.Notify()
}

// Back moves one entry backwards. It reports whether a move happened;
// subscribers are only notified on an actual move.
func (m *Memory) Back() bool {
	m.mu.Lock()
	if m.index == 0 {
		m.mu.Unlock()
		return false
	}
	m.index--
	m.mu.Unlock()

	m.hub.Notify()
	return true
}

// Forward moves one entry forwards. It reports whether a move happened.
func (m *Memory) Forward() bool {
	m.mu.Lock()
	if m.index >= len(m.entries)-1 {
		m.mu.Unlock()
		return false
	}
	m.index++
	m.mu.Unlock()

	m.hub.Notify()
	return true
}

// Subscribe registers fn for location changes.
func (m *Memory) Subscribe(fn func()) (cancel func()) {
	return m.hub.Subscribe(fn)
}
