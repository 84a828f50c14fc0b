// Package carousel rotates a selection through a fixed number of records on
// a ticker, and lets the visitor jump to a record without disturbing the
// ticker's phase.
package carousel

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Sreeharips1/portfolio/internal/clock"
)

// DefaultInterval is the time between automatic advances.
const DefaultInterval = 5 * time.Second

var (
	// ErrOutOfRange is returned by Select for an index outside [0, N).
	ErrOutOfRange = errors.New("index out of range")
	// ErrStarted is returned when Start is called twice.
	ErrStarted = errors.New("carousel already started")
)

// Option configures a Carousel.
type Option func(*Carousel)

// WithClock replaces the real clock.
func WithClock(clk clock.Clock) Option {
	return func(c *Carousel) { c.clk = clk }
}

// WithInterval sets the automatic advance interval.
func WithInterval(d time.Duration) Option {
	return func(c *Carousel) { c.interval = d }
}

// OnChange registers fn to receive every new active index, from both ticks
// and selections.
func OnChange(fn func(index int)) Option {
	return func(c *Carousel) { c.onChange = fn }
}

// Carousel holds the active index of an N-record rotation.
type Carousel struct {
	n        int
	interval time.Duration
	clk      clock.Clock
	onChange func(int)

	mu      sync.Mutex
	active  int
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a carousel over n records with index 0 active.
func New(n int, opts ...Option) (*Carousel, error) {
	if n <= 0 {
		return nil, errors.Errorf("carousel needs at least one record, got %d", n)
	}
	c := &Carousel{n: n, interval: DefaultInterval, clk: clock.Real()}
	for _, opt := range opts {
		opt(c)
	}
	if c.interval <= 0 {
		return nil, errors.Errorf("carousel interval must be positive, got %s", c.interval)
	}
	return c, nil
}

// Len is the number of records.
func (c *Carousel) Len() int { return c.n }

// Active returns the current index.
func (c *Carousel) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Advance moves to the next record, wrapping at the end.
func (c *Carousel) Advance() int {
	c.mu.Lock()
	if c.stopped {
		idx := c.active
		c.mu.Unlock()
		return idx
	}
	c.active = (c.active + 1) % c.n
	idx := c.active
	c.mu.Unlock()

	c.notify(idx)
	return idx
}

// Previous moves back one record, wrapping at the start.
func (c *Carousel) Previous() int {
	c.mu.Lock()
	if c.stopped {
		idx := c.active
		c.mu.Unlock()
		return idx
	}
	c.active = (c.active - 1 + c.n) % c.n
	idx := c.active
	c.mu.Unlock()

	c.notify(idx)
	return idx
}

// Select makes record k active immediately. The next automatic advance
// still fires on the original cadence, relative to k.
func (c *Carousel) Select(k int) error {
	if k < 0 || k >= c.n {
		return errors.Wrapf(ErrOutOfRange, "select %d of %d", k, c.n)
	}
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.active = k
	c.mu.Unlock()

	c.notify(k)
	return nil
}

// Start arms the ticker. The ticker exists when Start returns.
func (c *Carousel) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrStarted
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	ticker := c.clk.NewTicker(c.interval)

	go func() {
		defer close(c.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if ctx.Err() != nil {
					return
				}
				c.Advance()
			}
		}
	}()
	return nil
}

// Stop disarms the ticker and waits for the loop to exit. After Stop
// returns the index never changes again and no change is reported.
func (c *Carousel) Stop() {
	c.mu.Lock()
	c.stopped = true
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Carousel) notify(idx int) {
	if c.onChange != nil {
		c.onChange(idx)
	}
}
