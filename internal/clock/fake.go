package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Channels are buffered with capacity one
// and, like the real ones, drop a fire when the previous value is unread.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*fakeWaiter
}

// NewFake returns a Fake starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

type fakeWaiter struct {
	fake     *Fake
	c        chan time.Time
	deadline time.Time
	period   time.Duration
	armed    bool
}

// Now returns the fake's current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// NewTimer arms a timer that fires once d has been advanced.
func (f *Fake) NewTimer(d time.Duration) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &fakeWaiter{fake: f, c: make(chan time.Time, 1), deadline: f.now.Add(d), armed: true}
	f.waiters = append(f.waiters, w)
	return &fakeTimer{w: w}
}

// NewTicker arms a ticker with period d.
func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &fakeWaiter{fake: f, c: make(chan time.Time, 1), deadline: f.now.Add(d), period: d, armed: true}
	f.waiters = append(f.waiters, w)
	return &fakeTicker{w: w}
}

// Advance moves the clock forward by d, firing every timer and ticker whose
// deadline falls inside the window in deadline order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		due := f.due(target)
		if len(due) == 0 {
			break
		}
		sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
		w := due[0]
		f.now = w.deadline
		if w.period > 0 {
			w.deadline = w.deadline.Add(w.period)
		} else {
			w.armed = false
		}
		select {
		case w.c <- f.now:
		default:
		}
	}
	f.now = target
	f.mu.Unlock()
}

// Waiters reports how many timers and tickers are currently armed.
func (f *Fake) Waiters() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, w := range f.waiters {
		if w.armed {
			n++
		}
	}
	return n
}

func (f *Fake) due(target time.Time) []*fakeWaiter {
	var out []*fakeWaiter
	for _, w := range f.waiters {
		if w.armed && !w.deadline.After(target) {
			out = append(out, w)
		}
	}
	return out
}

func (w *fakeWaiter) stop() bool {
	w.fake.mu.Lock()
	defer w.fake.mu.Unlock()
	was := w.armed
	w.armed = false
	select {
	case <-w.c:
	default:
	}
	return was
}

type fakeTimer struct{ w *fakeWaiter }

func (t *fakeTimer) C() <-chan time.Time { return t.w.c }
func (t *fakeTimer) Stop() bool          { return t.w.stop() }

func (t *fakeTimer) Reset(d time.Duration) bool {
	was := t.w.stop()
	t.w.fake.mu.Lock()
	t.w.deadline = t.w.fake.now.Add(d)
	t.w.armed = true
	t.w.fake.mu.Unlock()
	return was
}

type fakeTicker struct{ w *fakeWaiter }

func (t *fakeTicker) C() <-chan time.Time { return t.w.c }
func (t *fakeTicker) Stop()               { t.w.stop() }
