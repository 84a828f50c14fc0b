// Package view owns the per-page widget state. A View is created for every
// page render and mounted while the page's event stream is connected;
// unmounting releases every timer and detector it holds.
package view

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Sreeharips1/portfolio/internal/carousel"
	"github.com/Sreeharips1/portfolio/internal/clock"
	"github.com/Sreeharips1/portfolio/internal/contact"
	"github.com/Sreeharips1/portfolio/internal/modal"
	"github.com/Sreeharips1/portfolio/internal/typewriter"
	"github.com/Sreeharips1/portfolio/internal/visibility"
)

// Section names with a visibility detector.
const (
	SectionAbout          = "about"
	SectionExperience     = "experience"
	SectionCertifications = "certifications"
)

// DefaultSections are the page's reveal strategies.
func DefaultSections() map[string]visibility.Strategy {
	return map[string]visibility.Strategy{
		SectionAbout:          visibility.ScrollPosition{Fraction: 0.75},
		SectionExperience:     visibility.Intersection{Threshold: 0.1},
		SectionCertifications: visibility.Intersection{Threshold: 0.1},
	}
}

var (
	// ErrMounted is returned when a view is mounted a second time.
	ErrMounted = errors.New("view already mounted")
	// ErrClosed is returned when a view has been unmounted.
	ErrClosed = errors.New("view closed")
	// ErrUnknownSection is returned for a section without a detector.
	ErrUnknownSection = errors.New("unknown section")
)

// EventKind identifies what an Event carries.
type EventKind string

// Event kinds pushed to the page.
const (
	EventCertification EventKind = "certification"
	EventTypewriter    EventKind = "typewriter"
)

// Event is a timer-driven change pushed to the mounted page.
type Event struct {
	Kind  EventKind
	Index int
	Frame typewriter.Frame
}

// Settings configure the widgets of new views.
type Settings struct {
	Certifications   int
	CarouselInterval time.Duration
	Tagline          string
	Typewriter       typewriter.Options
	Sections         map[string]visibility.Strategy
	Clock            clock.Clock
}

// View is one mounted page.
type View struct {
	ID      string
	Created time.Time

	Carousel   *carousel.Carousel
	Typewriter *typewriter.Typewriter
	Modal      *modal.Slot
	Contact    *contact.State

	detectors map[string]*visibility.Detector

	mu          sync.Mutex
	lastActive  time.Time
	mounted     bool
	closed      bool
	sceneLoaded bool
	ctx         context.Context
	cancel      context.CancelFunc
	events      chan Event
}

func newView(id string, created time.Time, s Settings) (*View, error) {
	v := &View{
		ID:         id,
		Created:    created,
		lastActive: created,
		Modal:     &modal.Slot{},
		Contact:   &contact.State{},
		detectors: make(map[string]*visibility.Detector, len(s.Sections)),
		events:    make(chan Event, 32),
	}

	var err error
	v.Carousel, err = carousel.New(s.Certifications,
		carousel.WithClock(s.Clock),
		carousel.WithInterval(s.CarouselInterval),
		carousel.OnChange(func(i int) { v.emit(Event{Kind: EventCertification, Index: i}) }),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create carousel")
	}

	opts := s.Typewriter
	opts.Clock = s.Clock
	v.Typewriter, err = typewriter.New(s.Tagline, opts)
	if err != nil {
		return nil, errors.Wrap(err, "create typewriter")
	}

	for name, strategy := range s.Sections {
		v.detectors[name] = visibility.New(strategy)
	}
	return v, nil
}

// Mount arms the view's timers and returns the channel its events arrive
// on. The channel is closed by Unmount.
func (v *View) Mount(ctx context.Context) (<-chan Event, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, ErrClosed
	}
	if v.mounted {
		return nil, ErrMounted
	}
	v.mounted = true
	v.ctx, v.cancel = context.WithCancel(ctx)

	if err := v.Carousel.Start(v.ctx); err != nil {
		return nil, errors.Wrap(err, "start carousel")
	}
	if v.sceneLoaded {
		// Revived after the scene loaded: the finished tagline keeps its caret.
		err := v.Typewriter.Start(v.ctx, v.emitFrame)
		if err != nil && !errors.Is(err, typewriter.ErrStarted) {
			return nil, errors.Wrap(err, "start typewriter")
		}
	}
	return v.events, nil
}

// inherit carries the page state of an unmounted view over to v, which must
// not be mounted yet.
func (v *View) inherit(old *View) {
	_ = v.Carousel.Select(old.Carousel.Active())
	v.Modal = old.Modal
	v.Contact = old.Contact
	for name, d := range old.detectors {
		if nd, ok := v.detectors[name]; ok && d.Revealed() {
			nd.Reveal()
		}
	}
	if old.IsSceneLoaded() {
		v.sceneLoaded = true
		v.Typewriter.Finish()
	}
}

// LastActive is when the view was created or last unmounted.
func (v *View) LastActive() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastActive
}

func (v *View) touch(t time.Time) {
	v.mu.Lock()
	v.lastActive = t
	v.mu.Unlock()
}

// Mounted reports whether the event stream is connected.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted && !v.closed
}

// Closed reports whether the view has been unmounted.
func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Unmount stops every timer, drops the detectors and closes the event
// channel. Nothing is emitted once it returns. It is safe to call twice.
func (v *View) Unmount() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	cancel := v.cancel
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	v.Carousel.Stop()
	v.Typewriter.Stop()
	for _, d := range v.detectors {
		d.Close()
	}

	v.mu.Lock()
	close(v.events)
	v.mu.Unlock()
}

// SceneLoaded records that the hero's 3D scene finished loading and starts
// the tagline. It returns false when the scene had already been reported.
func (v *View) SceneLoaded() (bool, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return false, ErrClosed
	}
	if v.sceneLoaded {
		v.mu.Unlock()
		return false, nil
	}
	v.sceneLoaded = true
	ctx := v.ctx
	v.mu.Unlock()

	if ctx == nil {
		// Not mounted yet; the tagline runs until the view is swept.
		ctx = context.Background()
	}
	err := v.Typewriter.Start(ctx, v.emitFrame)
	if err != nil {
		return false, errors.Wrap(err, "start typewriter")
	}
	return true, nil
}

// IsSceneLoaded reports whether the 3D scene signalled load.
func (v *View) IsSceneLoaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sceneLoaded
}

// Observe feeds a section measurement to its detector and reports whether
// the section is revealed.
func (v *View) Observe(section string, m visibility.Measurement) (bool, error) {
	d, ok := v.detectors[section]
	if !ok {
		return false, errors.Wrapf(ErrUnknownSection, "%q", section)
	}
	if v.Closed() {
		return false, ErrClosed
	}
	d.Observe(m)
	return d.Revealed(), nil
}

// Revealed reports whether section has been revealed.
func (v *View) Revealed(section string) bool {
	d, ok := v.detectors[section]
	return ok && d.Revealed()
}

func (v *View) emitFrame(f typewriter.Frame) {
	v.emit(Event{Kind: EventTypewriter, Frame: f})
}

func (v *View) emit(ev Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || !v.mounted {
		return
	}
	select {
	case v.events <- ev:
	default:
		// Every event carries the full state, so a dropped one is
		// superseded by the next.
	}
}
