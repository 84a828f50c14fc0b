// Package typewriter reveals a string one character at a time and then
// blinks a caret until stopped.
package typewriter

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Sreeharips1/portfolio/internal/clock"
)

// Defaults used by the hero tagline.
const (
	DefaultBaseDelay   = time.Second
	DefaultStep        = 30 * time.Millisecond
	DefaultCaretPeriod = 500 * time.Millisecond
)

// ErrStarted is returned by a second Start. The text is typed once per
// typewriter.
var ErrStarted = errors.New("typewriter already started")

// Options are the schedule of a Typewriter.
type Options struct {
	BaseDelay   time.Duration
	Step        time.Duration
	CaretPeriod time.Duration
	Clock       clock.Clock
}

// Frame is what should be on screen after a step.
type Frame struct {
	Text     string
	Caret    bool
	Complete bool
}

// Typewriter types text at BaseDelay + i*Step for character i.
type Typewriter struct {
	text []rune
	opts Options

	mu      sync.Mutex
	shown   int
	steps   int
	caret   bool
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New validates opts and returns an idle typewriter.
func New(text string, opts Options) (*Typewriter, error) {
	if opts.Step <= 0 {
		return nil, errors.Errorf("typewriter step must be positive, got %s", opts.Step)
	}
	if opts.CaretPeriod <= 0 {
		return nil, errors.Errorf("caret period must be positive, got %s", opts.CaretPeriod)
	}
	if opts.BaseDelay < 0 {
		return nil, errors.Errorf("base delay must not be negative, got %s", opts.BaseDelay)
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	return &Typewriter{text: []rune(text), opts: opts, caret: true}, nil
}

// Text is the full source string.
func (t *Typewriter) Text() string { return string(t.text) }

// Frame returns the current frame without stepping.
func (t *Typewriter) Frame() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frameLocked()
}

// Pending is the delay from the previous step to the next one.
func (t *Typewriter) Pending() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pendingLocked()
}

// Step reveals the next character or, once everything is shown, toggles the
// caret.
func (t *Typewriter) Step() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stepLocked()
}

// Finish shows the whole text at once. Only the caret toggles from then on.
func (t *Typewriter) Finish() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shown = len(t.text)
	if t.steps == 0 {
		t.steps = 1
	}
	return t.frameLocked()
}

// Start schedules the remaining steps on a single timer and passes each
// frame to emit. It returns ErrStarted if called more than once.
func (t *Typewriter) Start(ctx context.Context, emit func(Frame)) error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return ErrStarted
	}
	t.started = true
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	timer := t.opts.Clock.NewTimer(t.pendingLocked())
	done := t.done
	t.mu.Unlock()

	go func() {
		defer close(done)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C():
				t.mu.Lock()
				if t.stopped || ctx.Err() != nil {
					t.mu.Unlock()
					return
				}
				f := t.stepLocked()
				timer.Reset(t.pendingLocked())
				t.mu.Unlock()
				emit(f)
			}
		}
	}()
	return nil
}

// Stop cancels the schedule and waits for it to exit. No frame is emitted
// after Stop returns.
func (t *Typewriter) Stop() {
	t.mu.Lock()
	t.stopped = true
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Typewriter) pendingLocked() time.Duration {
	switch {
	case t.steps == 0:
		return t.opts.BaseDelay
	case t.shown < len(t.text):
		return t.opts.Step
	default:
		return t.opts.CaretPeriod
	}
}

func (t *Typewriter) stepLocked() Frame {
	if t.shown < len(t.text) {
		t.shown++
	} else {
		t.caret = !t.caret
	}
	t.steps++
	return t.frameLocked()
}

func (t *Typewriter) frameLocked() Frame {
	return Frame{
		Text:     string(t.text[:t.shown]),
		Caret:    t.caret,
		Complete: t.shown == len(t.text),
	}
}
