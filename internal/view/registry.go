package view

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Sreeharips1/portfolio/internal/clock"
)

// ErrNotFound is returned for an unknown view id.
var ErrNotFound = errors.New("view not found")

// Registry tracks the live views.
type Registry struct {
	settings Settings
	ttl      time.Duration
	clk      clock.Clock

	mu    sync.Mutex
	views map[string]*View
}

// NewRegistry returns an empty registry. Views that are never mounted are
// dropped by Sweep once they are older than ttl.
func NewRegistry(s Settings, ttl time.Duration) *Registry {
	if s.Clock == nil {
		s.Clock = clock.Real()
	}
	if s.Sections == nil {
		s.Sections = DefaultSections()
	}
	return &Registry{settings: s, ttl: ttl, clk: s.Clock, views: make(map[string]*View)}
}

// Create registers a fresh view.
func (r *Registry) Create() (*View, error) {
	v, err := newView(uuid.NewString(), r.clk.Now(), r.settings)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.views[v.ID] = v
	r.mu.Unlock()
	return v, nil
}

// Get looks up a live view.
func (r *Registry) Get(id string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", id)
	}
	return v, nil
}

// Revive returns the live view for id. A view that was released is rebuilt
// under the same id with the page state it had: the active certification,
// revealed sections, open project, contact form and typed tagline.
func (r *Registry) Revive(id string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", id)
	}
	if !v.Closed() {
		return v, nil
	}
	nv, err := newView(id, r.clk.Now(), r.settings)
	if err != nil {
		return nil, err
	}
	nv.inherit(v)
	r.views[id] = nv
	return nv, nil
}

// Release unmounts a view but keeps it, so a page whose stream dropped can
// revive it until Sweep drops it.
func (r *Registry) Release(id string) {
	r.mu.Lock()
	v, ok := r.views[id]
	r.mu.Unlock()
	if !ok {
		return
	}
	v.Unmount()
	v.touch(r.clk.Now())
}

// Remove unmounts and forgets a view.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		v.Unmount()
	}
}

// Len is the number of live views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep removes views that have gone unmounted for the ttl, whether never
// mounted or released, and returns how many were dropped.
func (r *Registry) Sweep() int {
	now := r.clk.Now()
	var stale []string

	r.mu.Lock()
	for id, v := range r.views {
		if !v.Mounted() && now.Sub(v.LastActive()) >= r.ttl {
			stale = append(stale, id)
		}
	}
	r.mu.Unlock()

	for _, id := range stale {
		r.Remove(id)
	}
	return len(stale)
}

// Run sweeps every ttl until ctx is done, then unmounts every view.
func (r *Registry) Run(ctx context.Context) {
	ticker := r.clk.NewTicker(r.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C():
			if n := r.Sweep(); n > 0 {
				log.Printf("Swept %d unmounted views", n)
			}
		}
	}
}

// Close unmounts every view.
func (r *Registry) Close() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.Unmount()
	}
}
