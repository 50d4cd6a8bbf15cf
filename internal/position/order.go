package position

import (
	"github.com/bethropolis/axnav/internal/anchor"
)

// canonical normalizes out-of-range fields so stale positions compare by identity.
func canonical(p Position) Position {
	switch p := p.(type) {
	case TreePosition:
		if p.child < BeforeText {
			p.child = InvalidIndex
		}
		return p
	case TextPosition:
		if p.offset < 0 {
			p.offset = InvalidOffset
		}
		return TextPosition{tree: p.tree, anchor: p.anchor, offset: p.offset}
	}
	return Null
}

// Equals reports whether a and b denote the same logical point. Positions on
// different anchors are equal when they map to the same place in the text, so
// the end of one leaf equals the start of the next. Affinity is ignored.
func (n *Navigator) Equals(a, b Position) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	if a.TreeID() != b.TreeID() {
		return false
	}
	la, okA := n.locate(a)
	lb, okB := n.locate(b)
	if !okA || !okB {
		return canonical(a) == canonical(b)
	}
	return la.g == lb.g
}

// Compare orders a and b in document order. ok is false when either is Null,
// stale, or the two belong to different trees.
func (n *Navigator) Compare(a, b Position) (cmp int, ok bool) {
	if a.IsNull() && b.IsNull() {
		return 0, true
	}
	if a.IsNull() || b.IsNull() || a.TreeID() != b.TreeID() {
		return 0, false
	}
	la, okA := n.locate(a)
	lb, okB := n.locate(b)
	if !okA || !okB {
		return 0, false
	}
	switch {
	case la.g < lb.g:
		return -1, true
	case la.g > lb.g:
		return 1, true
	}
	return 0, true
}

// LowestCommonAncestor returns a tree position on the deepest anchor shared by
// a and b, pointing at the child branch that contains a.
func (n *Navigator) LowestCommonAncestor(a, b Position) Position {
	if a.IsNull() || b.IsNull() || a.TreeID() != b.TreeID() {
		return Null
	}
	anchorA, okA := n.resolve(a)
	anchorB, okB := n.resolve(b)
	if !okA || !okB {
		return Null
	}
	lca := anchor.LowestCommonAncestor(anchorA, anchorB)
	if lca == nil {
		return Null
	}
	if lca.ID() == anchorA.ID() {
		return n.AsTreePosition(a)
	}
	for x := anchorA; x != nil; x = x.Parent() {
		if parent := x.Parent(); parent != nil && parent.ID() == lca.ID() {
			return newTree(lca.TreeID(), lca.ID(), x.IndexInParent())
		}
	}
	return Null
}
