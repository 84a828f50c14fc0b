package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollPosition(t *testing.T) {
	s := ScrollPosition{Fraction: 0.75}
	tests := []struct {
		name string
		m    Measurement
		want bool
	}{
		{"below the band", Measurement{Top: 900, Bottom: 1500, ViewportHeight: 800}, false},
		{"exactly on the band", Measurement{Top: 600, Bottom: 1200, ViewportHeight: 800}, false},
		{"inside the band", Measurement{Top: 599, Bottom: 1200, ViewportHeight: 800}, true},
		{"scrolled past", Measurement{Top: -400, Bottom: 200, ViewportHeight: 800}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Satisfied(tt.m))
		})
	}
}

func TestIntersectionRatio(t *testing.T) {
	tests := []struct {
		name string
		m    Measurement
		want float64
	}{
		{"fully below", Measurement{Top: 1000, Bottom: 2000, ViewportHeight: 800}, 0},
		{"fully above", Measurement{Top: -500, Bottom: -10, ViewportHeight: 800}, 0},
		{"tenth visible", Measurement{Top: 700, Bottom: 1700, ViewportHeight: 800}, 0.1},
		{"fully visible", Measurement{Top: 100, Bottom: 300, ViewportHeight: 800}, 1},
		{"taller than viewport", Measurement{Top: -100, Bottom: 1500, ViewportHeight: 800}, 0.5},
		{"zero height", Measurement{Top: 100, Bottom: 100, ViewportHeight: 800}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.m.IntersectionRatio(), 1e-9)
		})
	}
}

func TestIntersectionNeedsSomethingVisible(t *testing.T) {
	s := Intersection{Threshold: 0}
	assert.False(t, s.Satisfied(Measurement{Top: 900, Bottom: 1000, ViewportHeight: 800}))
	assert.True(t, s.Satisfied(Measurement{Top: 799, Bottom: 1000, ViewportHeight: 800}))
}

func TestDetectorLatchesOnce(t *testing.T) {
	d := New(ScrollPosition{Fraction: 0.75})
	calls := 0
	d.Subscribe(func() { calls++ })

	positions := []float64{1200, 900, 500, 1200, 100, 2000}
	revealedAt := -1
	for i, top := range positions {
		flipped := d.Observe(Measurement{Top: top, Bottom: top + 400, ViewportHeight: 800})
		if flipped {
			assert.Equal(t, -1, revealedAt, "latch flipped twice")
			revealedAt = i
		}
		if revealedAt >= 0 {
			assert.True(t, d.Revealed(), "revealed must stay true after position %d", i)
		} else {
			assert.False(t, d.Revealed())
		}
	}
	assert.Equal(t, 2, revealedAt)
	assert.Equal(t, 1, calls)
}

func TestDetectorUnsubscribe(t *testing.T) {
	d := New(Intersection{Threshold: 0.1})
	called := false
	cancel := d.Subscribe(func() { called = true })
	cancel()

	assert.True(t, d.Observe(Measurement{Top: 0, Bottom: 100, ViewportHeight: 800}))
	assert.False(t, called)
}

func TestDetectorClosedIgnoresObservations(t *testing.T) {
	d := New(Intersection{Threshold: 0.1})
	called := false
	d.Subscribe(func() { called = true })
	d.Close()

	assert.False(t, d.Observe(Measurement{Top: 0, Bottom: 100, ViewportHeight: 800}))
	assert.False(t, d.Revealed())
	assert.False(t, called)

	d.Subscribe(func() { called = true })
	assert.False(t, called)
}

func TestRevealWithoutMeasurement(t *testing.T) {
	d := New(ScrollPosition{Fraction: 0.75})
	calls := 0
	d.Subscribe(func() { calls++ })

	assert.True(t, d.Reveal())
	assert.False(t, d.Reveal())
	assert.False(t, d.Observe(Measurement{Top: 0, Bottom: 100, ViewportHeight: 800}))
	assert.True(t, d.Revealed())
	assert.Equal(t, 1, calls)

	closed := New(ScrollPosition{Fraction: 0.75})
	closed.Close()
	assert.False(t, closed.Reveal())
}
