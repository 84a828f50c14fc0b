// Package reveal computes staggered entrance animations for groups of page
// elements. The browser plays them from the inline declarations produced
// here (see static/css/portfolio.css).
package reveal

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// Style is one visual state of an element.
type Style struct {
	Opacity float64
	X, Y    float64
	Scale   float64
	Rotate  float64
	Blur    float64
}

// Shown is the resting state every element reveals into.
var Shown = Style{Opacity: 1, Scale: 1}

// Hidden returns a transparent style offset by (x, y).
func Hidden(x, y float64) Style {
	return Style{X: x, Y: y, Scale: 1}
}

// Transform renders the CSS transform for the style.
func (s Style) Transform() string {
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	return fmt.Sprintf("translate(%spx, %spx) scale(%s) rotate(%sdeg)",
		num(s.X), num(s.Y), num(scale), num(s.Rotate))
}

// Filter renders the CSS filter for the style.
func (s Style) Filter() string {
	return "blur(" + num(s.Blur) + "px)"
}

// Subject is one element of a group.
type Subject struct {
	Name     string
	Hidden   Style
	Visible  Style
	Duration time.Duration
	Delay    time.Duration
	Ease     string
}

// Group animates its subjects in order, each starting Stagger after the
// previous one.
type Group struct {
	DelayChildren time.Duration
	Stagger       time.Duration
	Subjects      []Subject
}

// Frame is the render state of one subject.
type Frame struct {
	Name    string
	Active  bool
	Settled bool
	Delay   time.Duration
	Style   template.CSS
}

// Class is the CSS class that plays the reveal keyframes.
func (f Frame) Class() string {
	switch {
	case f.Settled:
		return "reveal-settled"
	case f.Active:
		return "reveal"
	}
	return "reveal-hidden"
}

// Frames lists the subjects' render states. While inactive every subject
// holds its hidden style.
func (g Group) Frames(active bool) Frames {
	frames := make(Frames, len(g.Subjects))
	for i, s := range g.Subjects {
		f := Frame{Name: s.Name, Active: active}
		if !active {
			f.Style = declarations(
				"opacity", num(s.Hidden.Opacity),
				"transform", s.Hidden.Transform(),
				"filter", s.Hidden.Filter(),
			)
			frames[i] = f
			continue
		}
		f.Delay = g.DelayChildren + time.Duration(i)*g.Stagger + s.Delay
		ease := s.Ease
		if ease == "" {
			ease = "ease-out"
		}
		f.Style = declarations(
			"--reveal-from-opacity", num(s.Hidden.Opacity),
			"--reveal-from-transform", s.Hidden.Transform(),
			"--reveal-from-filter", s.Hidden.Filter(),
			"--reveal-to-opacity", num(s.Visible.Opacity),
			"--reveal-to-transform", s.Visible.Transform(),
			"--reveal-to-filter", s.Visible.Filter(),
			"animation-duration", seconds(s.Duration),
			"animation-delay", seconds(f.Delay),
			"animation-timing-function", ease,
		)
		frames[i] = f
	}
	return frames
}

// Settled lists the subjects at rest in their visible style. Nothing
// animates, so content re-rendered after the reveal stays put.
func (g Group) Settled() Frames {
	frames := make(Frames, len(g.Subjects))
	for i, s := range g.Subjects {
		frames[i] = Frame{
			Name:    s.Name,
			Active:  true,
			Settled: true,
			Style: declarations(
				"opacity", num(s.Visible.Opacity),
				"transform", s.Visible.Transform(),
				"filter", s.Visible.Filter(),
			),
		}
	}
	return frames
}

// Frames is an ordered frame list.
type Frames []Frame

// Get returns the frame for name, or a zero frame when the group has no such
// subject.
func (fs Frames) Get(name string) Frame {
	for _, f := range fs {
		if f.Name == name {
			return f
		}
	}
	return Frame{Name: name}
}

// At returns the i-th frame, or a zero frame past the end.
func (fs Frames) At(i int) Frame {
	if i < 0 || i >= len(fs) {
		return Frame{}
	}
	return fs[i]
}

func declarations(kv ...string) template.CSS {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		b.WriteString(kv[i])
		b.WriteByte(':')
		b.WriteString(kv[i+1])
		b.WriteByte(';')
	}
	return template.CSS(b.String())
}

func seconds(d time.Duration) string {
	return num(d.Seconds()) + "s"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
