// Package visibility latches a section as revealed the first time its
// position in the viewport satisfies an activation strategy.
package visibility

import "sync"

// Measurement is an element's bounding box relative to the viewport, in CSS
// pixels, as reported by the browser.
type Measurement struct {
	Top            float64 `form:"top" json:"top"`
	Bottom         float64 `form:"bottom" json:"bottom"`
	ViewportHeight float64 `form:"viewport" json:"viewport"`
}

// IntersectionRatio is the fraction of the element's height inside the
// viewport.
func (m Measurement) IntersectionRatio() float64 {
	height := m.Bottom - m.Top
	if height <= 0 || m.ViewportHeight <= 0 {
		return 0
	}
	visible := min(m.Bottom, m.ViewportHeight) - max(m.Top, 0)
	if visible <= 0 {
		return 0
	}
	return visible / height
}

// Strategy decides whether a measurement activates the reveal.
type Strategy interface {
	Satisfied(m Measurement) bool
}

// ScrollPosition activates once the element's top edge is above
// Fraction of the viewport height.
type ScrollPosition struct {
	Fraction float64
}

// Satisfied implements Strategy.
func (s ScrollPosition) Satisfied(m Measurement) bool {
	return m.Top < s.Fraction*m.ViewportHeight
}

// Intersection activates once at least Threshold of the element is visible.
type Intersection struct {
	Threshold float64
}

// Satisfied implements Strategy.
func (s Intersection) Satisfied(m Measurement) bool {
	ratio := m.IntersectionRatio()
	return ratio > 0 && ratio >= s.Threshold
}

// Detector is a one-shot latch. Once revealed it never goes back.
type Detector struct {
	strategy Strategy

	mu        sync.Mutex
	revealed  bool
	closed    bool
	nextID    int
	listeners map[int]func()
}

// New returns a Detector that has not been revealed.
func New(s Strategy) *Detector {
	return &Detector{strategy: s, listeners: make(map[int]func())}
}

// Observe feeds one measurement. It returns true only for the observation
// that flipped the latch.
func (d *Detector) Observe(m Measurement) bool {
	return d.flip(func() bool { return d.strategy.Satisfied(m) })
}

// Reveal flips the latch without a measurement, for a section already shown
// on the page. It reports whether this call flipped it.
func (d *Detector) Reveal() bool {
	return d.flip(func() bool { return true })
}

func (d *Detector) flip(satisfied func() bool) bool {
	d.mu.Lock()
	if d.closed || d.revealed || !satisfied() {
		d.mu.Unlock()
		return false
	}
	d.revealed = true
	fns := make([]func(), 0, len(d.listeners))
	for _, fn := range d.listeners {
		fns = append(fns, fn)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

// Revealed reports whether the latch has flipped.
func (d *Detector) Revealed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revealed
}

// Subscribe registers fn to run when the latch flips. The returned func
// removes it again.
func (d *Detector) Subscribe(fn func()) (cancel func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return func() {}
	}
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

// Close drops every listener; later observations are ignored.
func (d *Detector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	clear(d.listeners)
}
