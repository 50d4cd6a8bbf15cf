package tracking

import (
	"sync"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/types"
)

type nodeKey struct {
	tree types.TreeID
	id   types.NodeID
}

// Ancestry is a position.AncestryLog fed by deletion notifications. For every
// node of a subtree about to be deleted it records the chain of parents and
// child indices up to the root, nearest first.
type Ancestry struct {
	src anchor.Source

	mu      sync.RWMutex
	lineage map[nodeKey][]position.Slot
	unsubs  map[types.TreeID]func()
}

var (
	_ position.AncestryLog = (*Ancestry)(nil)
	_ anchor.Observer      = (*Ancestry)(nil)
)

func NewAncestry(src anchor.Source) *Ancestry {
	return &Ancestry{
		src:     src,
		lineage: make(map[nodeKey][]position.Slot),
		unsubs:  make(map[types.TreeID]func()),
	}
}

// Watch starts recording deletions in tree. Watching twice is a no-op.
func (a *Ancestry) Watch(tree types.TreeID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.unsubs[tree]; ok {
		return
	}
	a.unsubs[tree] = a.src.Subscribe(tree, a)
}

// Lineage implements position.AncestryLog.
func (a *Ancestry) Lineage(tree types.TreeID, id types.NodeID) []position.Slot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lineage[nodeKey{tree, id}]
}

// Forget drops everything recorded for tree.
func (a *Ancestry) Forget(tree types.TreeID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for k := range a.lineage {
		if k.tree == tree {
			delete(a.lineage, k)
		}
	}
}

// Close stops watching every tree. Recorded lineage stays readable.
func (a *Ancestry) Close() {
	a.mu.Lock()
	unsubs := a.unsubs
	a.unsubs = make(map[types.TreeID]func())
	a.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}

func (a *Ancestry) OnSubtreeWillBeDeleted(root anchor.Anchor) {
	var record func(n anchor.Anchor)
	recorded := make(map[nodeKey][]position.Slot)
	record = func(n anchor.Anchor) {
		var slots []position.Slot
		for x := n; x.Parent() != nil; x = x.Parent() {
			slots = append(slots, position.Slot{Parent: x.Parent().ID(), Index: x.IndexInParent()})
		}
		recorded[nodeKey{n.TreeID(), n.ID()}] = slots
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.ChildAt(i); c != nil {
				record(c)
			}
		}
	}
	record(root)

	a.mu.Lock()
	for k, v := range recorded {
		a.lineage[k] = v
	}
	a.mu.Unlock()
	logger.DebugTagf("tracking", "tree %s: recorded lineage of %d node(s)", root.TreeID(), len(recorded))
}

func (a *Ancestry) OnNodeDeleted(types.TreeID, types.NodeID) {}
