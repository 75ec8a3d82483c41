package urlparam

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Mode determines how URL writes interact with navigation history.
type Mode int

const (
	// ModePush adds a new history entry (default).
	ModePush Mode = iota

	// ModeReplace replaces the current history entry (no back button spam).
	ModeReplace
)

// Option configures a Store or a Param.
type Option interface {
	apply(*config)
}

type config struct {
	mode     Mode
	debounce time.Duration
	clock    clockwork.Clock
}

func newConfig(opts []Option) config {
	c := config{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt.apply(&c)
	}
	return c
}

// Mode options as values (not functions) so call sites read naturally:
// urlparam.NewStore(nav, "q", "", urlparam.Replace).
var (
	// Push creates a new history entry on every write (default).
	Push Option = modeOption{mode: ModePush}

	// Replace updates the URL without creating a history entry.
	// Use for filters and search inputs.
	Replace Option = modeOption{mode: ModeReplace}
)

type modeOption struct {
	mode Mode
}

func (o modeOption) apply(c *config) {
	c.mode = o.mode
}

type debounceOption struct {
	d time.Duration
}

func (o debounceOption) apply(c *config) {
	c.debounce = o.d
}

// Debounce delays URL writes by d, coalescing rapid successive Sets into
// one navigation. Use for search inputs. Reads are unaffected.
func Debounce(d time.Duration) Option {
	return debounceOption{d: d}
}

type clockOption struct {
	clock clockwork.Clock
}

func (o clockOption) apply(c *config) {
	c.clock = o.clock
}

// WithClock substitutes the clock used for debounce timers.
// Tests pass a clockwork fake clock to step time deterministically.
func WithClock(clock clockwork.Clock) Option {
	return clockOption{clock: clock}
}
