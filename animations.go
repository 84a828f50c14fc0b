package main

import (
	"strconv"
	"time"

	"github.com/Sreeharips1/portfolio/internal/reveal"
)

const ms = time.Millisecond

func fade(name string, x, y float64, d time.Duration) reveal.Subject {
	return reveal.Subject{
		Name:     name,
		Hidden:   reveal.Hidden(x, y),
		Visible:  reveal.Shown,
		Duration: d,
	}
}

// heroGroup plays once the 3D scene has loaded.
func heroGroup() reveal.Group {
	contact := fade("contact", 0, -20, 500*ms)
	resume := fade("resume", 0, -20, 500*ms)
	name := fade("name", 0, 30, 800*ms)
	name.Hidden.Blur = 4
	name.Ease = "cubic-bezier(0.22, 1, 0.36, 1)"
	role := fade("role", 0, 20, 600*ms)
	cta := fade("cta", 0, 0, 300*ms)
	cta.Hidden.Scale = 0.8
	cta.Ease = "cubic-bezier(0.34, 1.56, 0.64, 1)"
	return reveal.Group{
		DelayChildren: 200 * ms,
		Stagger:       200 * ms,
		Subjects:      []reveal.Subject{contact, resume, name, role, cta},
	}
}

func aboutGroup() reveal.Group {
	photo := fade("photo", -50, 0, 800*ms)
	photo.Hidden.Scale = 0.9
	return reveal.Group{
		Stagger: 300 * ms,
		Subjects: []reveal.Subject{
			fade("heading", 0, 20, 600*ms),
			photo,
			fade("text", 50, 0, 800*ms),
			fade("education", 0, 30, 800*ms),
		},
	}
}

func skillsGroup(n int) reveal.Group {
	subjects := make([]reveal.Subject, n)
	for i := range subjects {
		s := fade("skill-"+strconv.Itoa(i), 0, 0, 300*ms)
		s.Hidden.Scale = 0.8
		subjects[i] = s
	}
	return reveal.Group{DelayChildren: 500 * ms, Stagger: 100 * ms, Subjects: subjects}
}

func experienceHeaderGroup() reveal.Group {
	return reveal.Group{Subjects: []reveal.Subject{fade("heading", 0, -20, 600*ms)}}
}

func experienceGroup(n int) reveal.Group {
	subjects := make([]reveal.Subject, n)
	for i := range subjects {
		subjects[i] = fade("role-"+strconv.Itoa(i), 0, 30, 600*ms)
	}
	return reveal.Group{DelayChildren: 200 * ms, Stagger: 200 * ms, Subjects: subjects}
}

func certificationsGroup() reveal.Group {
	list := fade("list", -30, 0, 800*ms)
	list.Delay = 200 * ms
	panel := fade("panel", 30, 0, 800*ms)
	panel.Delay = 400 * ms
	return reveal.Group{
		Subjects: []reveal.Subject{fade("heading", 0, 20, 800*ms), list, panel},
	}
}

// academicGroup slides cards in from alternating sides.
func academicGroup(n int) reveal.Group {
	subjects := make([]reveal.Subject, n)
	for i := range subjects {
		x := -50.0
		if i%2 == 1 {
			x = 50
		}
		subjects[i] = fade("project-"+strconv.Itoa(i), x, 0, 500*ms)
	}
	return reveal.Group{Stagger: 100 * ms, Subjects: subjects}
}

func internshipGroup(n int) reveal.Group {
	subjects := make([]reveal.Subject, n)
	for i := range subjects {
		subjects[i] = fade("internship-"+strconv.Itoa(i), 0, 50, 500*ms)
	}
	return reveal.Group{Stagger: 100 * ms, Subjects: subjects}
}
