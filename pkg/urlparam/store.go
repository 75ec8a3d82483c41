package urlparam

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

// Store gives read/write access to a single query-string parameter through
// a Navigator. It holds no copy of the value: Get re-parses the live URL on
// every call, so the store can never diverge from the address bar.
type Store struct {
	nav      Navigator
	key      string
	fallback string
	config   config

	timerMu sync.Mutex
	timer   clockwork.Timer
}

// NewStore creates a store tracking key on nav. When key is absent from the
// query string, Get returns fallback.
func NewStore(nav Navigator, key, fallback string, opts ...Option) *Store {
	return &Store{
		nav:      nav,
		key:      key,
		fallback: fallback,
		config:   newConfig(opts),
	}
}

// Key returns the tracked query-parameter name.
func (s *Store) Key() string {
	return s.key
}

// Get returns the current value of the tracked parameter, or the fallback
// when the parameter is absent. Safe to call on every render.
func (s *Store) Get() string {
	if raw, ok := s.Lookup(); ok {
		return raw
	}
	return s.fallback
}

// Lookup returns the raw parameter value and whether the key is present in
// the query string at all.
func (s *Store) Lookup() (string, bool) {
	q := s.nav.Location().Query()
	if !q.Has(s.key) {
		return "", false
	}
	return q.Get(s.key), true
}

// Set writes value to the URL, preserving all other parameters. An empty
// value removes the key entirely rather than writing key=. The navigation
// is non-reloading and subscribers are notified synchronously, so a Get
// issued after Set returns observes the new value.
func (s *Store) Set(value string) {
	if s.config.debounce <= 0 {
		s.write(value)
		return
	}

	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.config.clock.AfterFunc(s.config.debounce, func() {
		s.write(value)
	})
}

func (s *Store) write(value string) {
	u := s.nav.Location()
	q := u.Query()
	if value == "" {
		q.Del(s.key)
	} else {
		q.Set(s.key, value)
	}
	u.RawQuery = q.Encode()

	if s.config.mode == ModeReplace {
		s.nav.Replace(u)
		return
	}
	s.nav.Push(u)
}

// Subscribe registers fn to run on every location change, whatever its
// origin: this store's own Set, another store's write, or history
// traversal. The returned cancel removes only this registration.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	return s.nav.Subscribe(fn)
}
