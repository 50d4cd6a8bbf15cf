// Package textrange implements a platform-style text range on top of the
// position API. It never touches anchors' text directly except to read the
// text of the range's common ancestor.
package textrange

import (
	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/types"
)

// Endpoint selects one end of a Range.
type Endpoint int

const (
	StartEndpoint Endpoint = iota
	EndEndpoint
)

func (e Endpoint) String() string {
	if e == EndEndpoint {
		return "end"
	}
	return "start"
}

// Range is a pair of positions. Ranges are values: every operation returns a
// new Range and leaves the receiver untouched.
type Range struct {
	nav   *position.Navigator
	Start position.Position
	End   position.Position
}

// New returns the range [start, end] as given; call Normalize to order it.
func New(nav *position.Navigator, start, end position.Position) Range {
	return Range{nav: nav, Start: start, End: end}
}

// Degenerate returns the empty range at p.
func Degenerate(nav *position.Navigator, p position.Position) Range {
	return Range{nav: nav, Start: p, End: p}
}

// Document returns the range covering the whole tree.
func Document(nav *position.Navigator, tree types.TreeID) Range {
	return Range{
		nav:   nav,
		Start: nav.CreatePositionAtStartOfDocument(tree),
		End:   nav.CreatePositionAtEndOfDocument(tree),
	}
}

func (r Range) Clone() Range { return r }

func (r Range) IsNull() bool { return r.Start.IsNull() || r.End.IsNull() }

// IsCollapsed reports an empty range.
func (r Range) IsCollapsed() bool { return r.nav.Equals(r.Start, r.End) }

func (r Range) endpoint(e Endpoint) position.Position {
	if e == EndEndpoint {
		return r.End
	}
	return r.Start
}

func (r Range) with(e Endpoint, p position.Position) Range {
	if e == EndEndpoint {
		r.End = p
	} else {
		r.Start = p
	}
	return r
}

// CompareEndpoints orders endpoint e of r against endpoint oe of other.
func (r Range) CompareEndpoints(e Endpoint, other Range, oe Endpoint) (int, bool) {
	return r.nav.Compare(r.endpoint(e), other.endpoint(oe))
}

// Normalize makes both endpoints valid and swaps them if End precedes Start.
func (r Range) Normalize() Range {
	r.Start = r.nav.AsValidPosition(r.Start)
	r.End = r.nav.AsValidPosition(r.End)
	if cmp, ok := r.nav.Compare(r.Start, r.End); ok && cmp > 0 {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// ExpandToEnclosingUnit grows the range to the unit containing its start.
func (r Range) ExpandToEnclosingUnit(u Unit) Range {
	r = r.Normalize()
	if r.IsNull() {
		return r
	}
	r.Start = r.unitStart(r.Start, u)
	r.End = r.unitEnd(r.Start, u)
	return r
}

func (r Range) unitStart(p position.Position, u Unit) position.Position {
	nav := r.nav
	switch u {
	case UnitCharacter:
		if s := nav.AsLeafTextPositionBeforeCharacter(p); !s.IsNull() {
			return s
		}
		return p
	case UnitDocument:
		return nav.DocumentStart(p, position.StopAtLastAnchorBoundary)
	}
	kind, _ := u.kinds()
	if s := nav.Move(p, kind, position.Backward, position.StopIfAlreadyAtBoundary); !s.IsNull() {
		return s
	}
	return nav.DocumentStart(p, position.StopAtLastAnchorBoundary)
}

func (r Range) unitEnd(start position.Position, u Unit) position.Position {
	nav := r.nav
	if u == UnitCharacter {
		if e := nav.NextCharacter(start, position.CrossBoundary); !e.IsNull() {
			return e
		}
		return start
	}
	_, kind := u.kinds()
	if e := nav.Move(start, kind, position.Forward, position.CrossBoundary); !e.IsNull() {
		return e
	}
	return nav.DocumentEnd(start, position.StopAtLastAnchorBoundary)
}

// Move collapses the range to the unit enclosing its start, moves by count
// units and expands to the unit reached. It returns the number of units
// actually moved, which is smaller in magnitude than count at the edges of
// the document.
func (r Range) Move(u Unit, count int) (Range, int) {
	r = r.ExpandToEnclosingUnit(u)
	if r.IsNull() || count == 0 {
		return r, 0
	}
	kind, _ := u.kinds()
	p, moved := r.step(r.Start, kind, count)
	if moved == 0 {
		return r, 0
	}
	return Degenerate(r.nav, p).ExpandToEnclosingUnit(u), moved
}

// MoveEndpoint moves one endpoint by count units: the start by unit starts,
// the end by unit ends. An endpoint that crosses the other drags it along.
func (r Range) MoveEndpoint(e Endpoint, u Unit, count int) (Range, int) {
	r = r.Normalize()
	if r.IsNull() || count == 0 {
		return r, 0
	}
	start, end := u.kinds()
	kind := start
	if e == EndEndpoint {
		kind = end
	}
	p, moved := r.step(r.endpoint(e), kind, count)
	r = r.with(e, p)

	if cmp, ok := r.nav.Compare(r.Start, r.End); ok && cmp > 0 {
		if e == StartEndpoint {
			r.End = r.Start
		} else {
			r.Start = r.End
		}
	}
	return r, moved
}

func (r Range) step(p position.Position, kind position.BoundaryKind, count int) (position.Position, int) {
	dir := position.Forward
	n := count
	if count < 0 {
		dir, n = position.Backward, -count
	}
	moved := 0
	for ; moved < n; moved++ {
		q := r.nav.Move(p, kind, dir, position.CrossBoundary)
		if q.IsNull() {
			logger.DebugTagf("textrange", "%s move stopped after %d of %d", kind, moved, n)
			break
		}
		p = q
	}
	if dir == position.Backward {
		return p, -moved
	}
	return p, moved
}

// EnclosingElement returns the deepest unignored anchor containing the range.
func (r Range) EnclosingElement() (anchor.Anchor, bool) {
	r = r.Normalize()
	lca := r.nav.LowestCommonAncestor(r.Start, r.End)
	lca = r.nav.AsUnignoredPosition(lca)
	if lca.IsNull() {
		return nil, false
	}
	return r.nav.Source().Anchor(lca.TreeID(), lca.AnchorID())
}

// Text returns the text between the endpoints, read from their common
// ancestor.
func (r Range) Text() string {
	r = r.Normalize()
	lca := r.nav.LowestCommonAncestor(r.Start, r.End)
	if lca.IsNull() {
		return ""
	}
	s, okS := r.lift(r.Start, lca.AnchorID())
	e, okE := r.lift(r.End, lca.AnchorID())
	if !okS || !okE || s > e {
		return ""
	}
	text := []rune(r.nav.GetText(lca))
	if e > len(text) {
		e = len(text)
	}
	return string(text[s:e])
}

// lift re-expresses p on its ancestor id and returns the text offset there.
func (r Range) lift(p position.Position, id types.NodeID) (int, bool) {
	p = r.nav.AsTextPosition(p)
	for !p.IsNull() && p.AnchorID() != id {
		p = r.nav.CreateParentPosition(p)
	}
	t, ok := p.(position.TextPosition)
	if !ok {
		return 0, false
	}
	return t.Offset(), true
}
