package position

import (
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/types"
)

// Slot records where a removed anchor hung: the parent and the child index.
type Slot struct {
	Parent types.NodeID
	Index  int
}

// AncestryLog remembers the ancestry of anchors that have been removed, so a
// stale position can be moved to the nearest surviving ancestor.
type AncestryLog interface {
	// Lineage returns the slots of id's former ancestors, nearest first.
	Lineage(tree types.TreeID, id types.NodeID) []Slot
}

// IsValid reports whether p resolves, is in range and does not split a
// grapheme cluster. Null is never valid.
func (n *Navigator) IsValid(p Position) bool {
	loc, ok := n.locate(p)
	if !ok {
		return false
	}
	if p.Kind() != KindText || loc.opaque {
		return true
	}
	return loc.d.atCharacterBoundary(loc.g)
}

// AsValidPosition clamps p into its anchor's current bounds and snaps text
// offsets back to a grapheme start. A stale position moves to the nearest
// surviving ancestor recorded in the ancestry log, or becomes Null.
// Valid positions are returned unchanged.
func (n *Navigator) AsValidPosition(p Position) Position {
	if p.IsNull() {
		return Null
	}
	if n.IsValid(p) {
		return p
	}
	a, ok := n.resolve(p)
	if !ok {
		return n.recover(p)
	}
	switch p := p.(type) {
	case TreePosition:
		if n.isLeaf(a) {
			if p.child > 0 {
				return newTree(p.tree, p.anchor, 0)
			}
			return newTree(p.tree, p.anchor, BeforeText)
		}
		return newTree(p.tree, p.anchor, clamp(p.child, 0, a.ChildCount()))
	case TextPosition:
		t := newText(p.tree, p.anchor, clamp(p.offset, 0, len(n.textOf(a))), p.affinity)
		loc, ok := n.locate(t)
		if !ok {
			return Null
		}
		if l := loc.d.charLeaf(loc.g); l != nil && !loc.opaque {
			t.offset -= (loc.g - l.start) - l.graphemeFloor(loc.g-l.start)
		}
		return t
	}
	return Null
}

func (n *Navigator) recover(p Position) Position {
	if n.ancestry == nil {
		logger.DebugTagf("position", "stale %s and no ancestry log", p)
		return Null
	}
	for _, slot := range n.ancestry.Lineage(p.TreeID(), p.AnchorID()) {
		parent, ok := n.src.Anchor(p.TreeID(), slot.Parent)
		if !ok {
			continue
		}
		var tp Position
		if n.isLeaf(parent) {
			tp = newTree(p.TreeID(), slot.Parent, 0)
		} else {
			tp = newTree(p.TreeID(), slot.Parent, clamp(slot.Index, 0, parent.ChildCount()))
		}
		logger.DebugTagf("position", "recovered stale %s onto %s", p, tp)
		if p.Kind() == KindText {
			return n.AsTextPosition(tp)
		}
		return tp
	}
	logger.DebugTagf("position", "stale %s has no surviving ancestor", p)
	return Null
}
