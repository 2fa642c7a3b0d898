package anim

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/logger"
)

// Table holds the running animation of every animated window. The host
// owns it and hands animations to the engine by window ID.
type Table struct {
	mu    sync.Mutex
	anims map[WindowID]*Animation
	log   *zap.Logger
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		anims: make(map[WindowID]*Animation),
		log:   logger.Named("anim"),
	}
}

// Start registers a, replacing any animation already running on its window.
func (t *Table) Start(a *Animation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.anims[a.ID]; ok {
		old.Set.Reset()
		t.log.Debug("animation replaced",
			zap.Uint32("window", uint32(a.ID)),
			zap.Stringer("old", old.Event),
			zap.Stringer("new", a.Event),
		)
	}
	t.anims[a.ID] = a
}

// Get returns the animation running on a window.
func (t *Table) Get(id WindowID) (*Animation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.anims[id]
	return a, ok
}

// Cancel stops a window's animation at once and frees its pieces. It
// reports whether one was running.
func (t *Table) Cancel(id WindowID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.anims[id]
	if !ok {
		return false
	}
	a.Set.Reset()
	delete(t.anims, id)
	return true
}

// Advance moves every animation forward by dt and removes the finished
// ones. It returns the IDs of the removed windows in ascending order.
func (t *Table) Advance(dt time.Duration) []WindowID {
	t.mu.Lock()
	defer t.mu.Unlock()
	var done []WindowID
	for id, a := range t.anims {
		if a.Advance(dt) {
			a.Set.Reset()
			delete(t.anims, id)
			done = append(done, id)
		}
	}
	sort.Slice(done, func(i, j int) bool { return done[i] < done[j] })
	return done
}

// Len returns the number of running animations.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.anims)
}

// Active returns the running animations ordered by window ID.
func (t *Table) Active() []*Animation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Animation, 0, len(t.anims))
	for _, a := range t.anims {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
