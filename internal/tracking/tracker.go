// Package tracking keeps positions usable across tree mutations.
//
// A Tracker migrates the positions it tracks eagerly, while a doomed subtree
// is still attached. Ancestry records lineage instead, so that
// position.Navigator.AsValidPosition can recover untracked positions lazily.
package tracking

import (
	"sync"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/types"
)

// Tracker owns a set of handles on one tree.
type Tracker struct {
	nav  *position.Navigator
	tree types.TreeID

	mu          sync.Mutex
	handles     map[*Handle]struct{}
	unsubscribe func()
}

// Handle is a tracked position.
type Handle struct {
	t *Tracker
	p position.Position
}

var _ anchor.Observer = (*Tracker)(nil)

// NewTracker subscribes to mutations of tree through nav's source.
func NewTracker(nav *position.Navigator, tree types.TreeID) *Tracker {
	t := &Tracker{nav: nav, tree: tree, handles: make(map[*Handle]struct{})}
	t.unsubscribe = nav.Source().Subscribe(tree, t)
	return t
}

// Track starts tracking p. Positions on other trees are tracked as given and
// never migrated.
func (t *Tracker) Track(p position.Position) *Handle {
	h := &Handle{t: t, p: p}
	t.mu.Lock()
	t.handles[h] = struct{}{}
	t.mu.Unlock()
	return h
}

// Len returns the number of live handles.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handles)
}

// Close stops observing the tree. Handles keep their last position.
func (t *Tracker) Close() {
	t.mu.Lock()
	unsub := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Position returns the tracked position, clamped into the current tree. The
// result is either valid or Null.
func (h *Handle) Position() position.Position {
	h.t.mu.Lock()
	p := h.p
	h.t.mu.Unlock()
	return h.t.nav.AsValidPosition(p)
}

// Set replaces the tracked position.
func (h *Handle) Set(p position.Position) {
	h.t.mu.Lock()
	h.p = p
	h.t.mu.Unlock()
}

// Release stops tracking h.
func (h *Handle) Release() {
	h.t.mu.Lock()
	delete(h.t.handles, h)
	h.t.mu.Unlock()
}

// OnSubtreeWillBeDeleted moves every handle anchored inside root to the slot
// root occupies in its parent.
func (t *Tracker) OnSubtreeWillBeDeleted(root anchor.Anchor) {
	src := t.nav.Source()
	parent := root.Parent()

	t.mu.Lock()
	defer t.mu.Unlock()
	moved := 0
	for h := range t.handles {
		if h.p.IsNull() || h.p.TreeID() != root.TreeID() {
			continue
		}
		a, ok := src.Anchor(h.p.TreeID(), h.p.AnchorID())
		if !ok || !anchor.IsAncestorOrSelf(root, a) {
			continue
		}
		h.p = t.slot(h.p, parent, root.IndexInParent())
		moved++
	}
	if moved > 0 {
		logger.DebugTagf("tracking", "tree %s: migrated %d position(s) out of %d", root.TreeID(), moved, root.ID())
	}
}

// slot builds the replacement for p at child index i of parent, in p's form.
func (t *Tracker) slot(p position.Position, parent anchor.Anchor, i int) position.Position {
	if parent == nil {
		return position.Null
	}
	tp := t.nav.CreateTreePosition(parent.TreeID(), parent.ID(), i)
	if tp.IsNull() {
		// parent is a navigational leaf; 0 is its only in-text slot.
		tp = t.nav.CreateTreePosition(parent.TreeID(), parent.ID(), 0)
	}
	if p.Kind() == position.KindText {
		return t.nav.AsTextPosition(tp)
	}
	return tp
}

// OnNodeDeleted is a no-op: migration already happened.
func (t *Tracker) OnNodeDeleted(types.TreeID, types.NodeID) {}
