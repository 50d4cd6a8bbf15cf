package position

import (
	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/types"
)

// located is a position mapped onto its flattened document.
type located struct {
	d          *document
	a          anchor.Anchor
	lo, hi     int
	start, end int
	opaque     bool
	g          int
	aff        types.Affinity
}

// locate maps p to a document offset. It fails for Null, stale and
// out-of-range positions.
func (n *Navigator) locate(p Position) (*located, bool) {
	a, ok := n.resolve(p)
	if !ok {
		return nil, false
	}
	d, ok := n.document(p.TreeID())
	if !ok {
		return nil, false
	}
	lo, hi, opaque, ok := d.leafRange(a)
	if !ok {
		return nil, false
	}
	loc := &located{d: d, a: a, lo: lo, hi: hi, opaque: opaque,
		start: d.leaves[lo].start, end: d.leaves[hi].end()}

	switch p := p.(type) {
	case TextPosition:
		max := loc.end - loc.start
		if opaque {
			max = len(n.textOf(a))
		}
		if p.offset < 0 || p.offset > max {
			return nil, false
		}
		loc.aff = p.affinity
		switch {
		case !opaque:
			loc.g = loc.start + p.offset
		case p.offset == 0:
			loc.g = loc.start
		default:
			loc.g = loc.end
		}
	case TreePosition:
		if !n.validChildIndex(a, p.child) {
			return nil, false
		}
		leaf := n.isLeaf(a)
		switch {
		case p.child == BeforeText:
			loc.g = loc.start
		case leaf:
			loc.g = loc.end
		case opaque && p.child == 0:
			loc.g = loc.start
		case opaque || p.child == a.ChildCount():
			loc.g = loc.end
		default:
			cs, _, ok := d.bounds(a.ChildAt(p.child))
			if !ok {
				return nil, false
			}
			loc.g = cs
		}
	default:
		return nil, false
	}
	return loc, true
}

// textOn expresses document offset g as a text position on a, if a covers g.
func (d *document) textOn(a anchor.Anchor, g int, aff types.Affinity) (TextPosition, bool) {
	lo, hi, opaque, ok := d.leafRange(a)
	if !ok {
		return TextPosition{}, false
	}
	start, end := d.leaves[lo].start, d.leaves[hi].end()
	if g < start || g > end {
		return TextPosition{}, false
	}
	off := g - start
	if opaque {
		off = 0
		if g > start {
			off = len(d.nav.textOf(a))
		}
	}
	return newText(a.TreeID(), a.ID(), off, aff), true
}

// leafTextAt expresses document offset g on the leaf that holds it.
func (d *document) leafTextAt(g int, aff types.Affinity) TextPosition {
	l, off := d.leafAt(g, aff, 0, len(d.leaves)-1)
	return newText(l.a.TreeID(), l.a.ID(), off, aff)
}

// AsTextPosition converts a tree position to the equivalent text position on
// the same anchor. Text positions are returned unchanged.
func (n *Navigator) AsTextPosition(p Position) Position {
	switch p := p.(type) {
	case TextPosition:
		return p
	case TreePosition:
		loc, ok := n.locate(p)
		if !ok {
			return Null
		}
		t, ok := loc.d.textOn(loc.a, loc.g, types.Downstream)
		if !ok {
			return Null
		}
		return t
	}
	return Null
}

// AsTreePosition converts a text position to a tree position on the same
// anchor. On a leaf, offset 0 maps to BeforeText and anything else to "after
// text". On other anchors the child whose span starts at or contains the
// offset is chosen; the maximum offset maps to ChildCount.
func (n *Navigator) AsTreePosition(p Position) Position {
	switch p := p.(type) {
	case TreePosition:
		return p
	case TextPosition:
		loc, ok := n.locate(p)
		if !ok {
			return Null
		}
		return n.treeAt(loc.d, loc.a, loc.g, loc.opaque)
	}
	return Null
}

func (n *Navigator) treeAt(d *document, a anchor.Anchor, g int, opaque bool) Position {
	start, end, _ := d.bounds(a)
	if n.isLeaf(a) {
		if g <= start {
			return newTree(a.TreeID(), a.ID(), BeforeText)
		}
		return newTree(a.TreeID(), a.ID(), 0)
	}
	if opaque {
		if g <= start {
			return newTree(a.TreeID(), a.ID(), 0)
		}
		return newTree(a.TreeID(), a.ID(), a.ChildCount())
	}
	if g < end {
		for i := 0; i < a.ChildCount(); i++ {
			if _, ce, ok := d.bounds(a.ChildAt(i)); ok && g < ce {
				return newTree(a.TreeID(), a.ID(), i)
			}
		}
	}
	return newTree(a.TreeID(), a.ID(), a.ChildCount())
}

// AsLeafTextPosition descends to the leaf holding p. At a seam between two
// leaves, upstream affinity picks the leaf ending there and downstream the
// leaf starting there.
func (n *Navigator) AsLeafTextPosition(p Position) Position {
	loc, ok := n.locate(p)
	if !ok {
		return Null
	}
	return loc.leafText()
}

func (loc *located) leafText() TextPosition {
	aff := loc.aff
	if loc.opaque {
		l := loc.d.leaves[loc.lo]
		off := 0
		if loc.g > l.start {
			off = len(l.text)
		}
		return newText(l.a.TreeID(), l.a.ID(), off, aff)
	}
	l, off := loc.d.leafAt(loc.g, aff, loc.lo, loc.hi)
	return newText(l.a.TreeID(), l.a.ID(), off, aff)
}

// AsLeafTreePosition is AsTreePosition applied to AsLeafTextPosition.
func (n *Navigator) AsLeafTreePosition(p Position) Position {
	return n.AsTreePosition(n.AsLeafTextPosition(p))
}

// AsLeafTextPositionBeforeCharacter returns the leaf position immediately
// before the next character, snapped back to a grapheme start, or Null at
// the end of the document.
func (n *Navigator) AsLeafTextPositionBeforeCharacter(p Position) Position {
	loc, ok := n.locate(p)
	if !ok {
		return Null
	}
	l := loc.d.charLeaf(loc.g)
	if l == nil {
		return Null
	}
	off := l.graphemeFloor(loc.g - l.start)
	return newText(l.a.TreeID(), l.a.ID(), off, types.Downstream)
}

// AsLeafTextPositionAfterCharacter returns the leaf position immediately
// after the previous character, snapped forward to a grapheme end, or Null at
// the start of the document.
func (n *Navigator) AsLeafTextPositionAfterCharacter(p Position) Position {
	loc, ok := n.locate(p)
	if !ok {
		return Null
	}
	l := loc.d.leafBefore(loc.g)
	if l == nil {
		return Null
	}
	off := l.graphemeCeil(loc.g - l.start)
	aff := types.Downstream
	if off == len(l.text) && loc.d.nextText(l) != nil {
		aff = types.Upstream
	}
	return newText(l.a.TreeID(), l.a.ID(), off, aff)
}

// AsUnignoredPosition re-expresses p on its nearest unignored ancestor-or-self.
func (n *Navigator) AsUnignoredPosition(p Position) Position {
	a, ok := n.resolve(p)
	if !ok {
		return Null
	}
	if !a.IsIgnored() {
		return p
	}
	loc, ok := n.locate(p)
	if !ok {
		return Null
	}
	u := a.Parent()
	for u != nil && u.IsIgnored() {
		u = u.Parent()
	}
	if u == nil {
		return Null
	}
	t, ok := loc.d.textOn(u, loc.g, loc.aff)
	if !ok {
		return Null
	}
	if p.Kind() == KindTree {
		return n.AsTreePosition(t)
	}
	return t
}

// CreateParentPosition re-expresses p on its anchor's parent.
func (n *Navigator) CreateParentPosition(p Position) Position {
	loc, ok := n.locate(p)
	if !ok {
		return Null
	}
	parent := loc.a.Parent()
	if parent == nil {
		return Null
	}
	t, ok := loc.d.textOn(parent, loc.g, loc.aff)
	if !ok {
		return Null
	}
	if p.Kind() == KindTree {
		return n.AsTreePosition(t)
	}
	return t
}

// CreateChildPositionAt returns the start of the i-th child of p's anchor.
func (n *Navigator) CreateChildPositionAt(p Position, i int) Position {
	a, ok := n.resolve(p)
	if !ok {
		return Null
	}
	c := a.ChildAt(i)
	if c == nil {
		return Null
	}
	if p.Kind() == KindTree {
		if n.isLeaf(c) {
			return newTree(c.TreeID(), c.ID(), BeforeText)
		}
		return newTree(c.TreeID(), c.ID(), 0)
	}
	return newText(c.TreeID(), c.ID(), 0, types.Downstream)
}

// MaxTextOffset returns the length of p's anchor's effective text, or
// InvalidOffset when p does not resolve.
func (n *Navigator) MaxTextOffset(p Position) int {
	a, ok := n.resolve(p)
	if !ok {
		return InvalidOffset
	}
	return len(n.textOf(a))
}

// GetText returns the effective text of p's anchor.
func (n *Navigator) GetText(p Position) string {
	a, ok := n.resolve(p)
	if !ok {
		return ""
	}
	return string(n.textOf(a))
}

// IsLeaf reports whether p's anchor is a navigational leaf.
func (n *Navigator) IsLeaf(p Position) bool {
	a, ok := n.resolve(p)
	return ok && n.isLeaf(a)
}

// IsIgnored reports whether p's own anchor is ignored.
func (n *Navigator) IsIgnored(p Position) bool {
	a, ok := n.resolve(p)
	return ok && a.IsIgnored()
}
