package position

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/types"
)

var (
	ErrUnknownBoundary  = errors.New("unknown boundary kind")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrUnknownPolicy    = errors.New("unknown boundary policy")
)

// BoundaryKind is the unit a move stops at.
type BoundaryKind int

const (
	CharacterBoundary BoundaryKind = iota
	WordStartBoundary
	WordEndBoundary
	LineStartBoundary
	LineEndBoundary
	LineStartOrEndBoundary
	ParagraphStartBoundary
	ParagraphEndBoundary
	ParagraphStartOrEndBoundary
	FormatStartBoundary
	FormatEndBoundary
	PageStartBoundary
	PageEndBoundary
	DocumentBoundary
)

var boundaryNames = []string{
	CharacterBoundary:           "character",
	WordStartBoundary:           "word-start",
	WordEndBoundary:             "word-end",
	LineStartBoundary:           "line-start",
	LineEndBoundary:             "line-end",
	LineStartOrEndBoundary:      "line-start-or-end",
	ParagraphStartBoundary:      "paragraph-start",
	ParagraphEndBoundary:        "paragraph-end",
	ParagraphStartOrEndBoundary: "paragraph-start-or-end",
	FormatStartBoundary:         "format-start",
	FormatEndBoundary:           "format-end",
	PageStartBoundary:           "page-start",
	PageEndBoundary:             "page-end",
	DocumentBoundary:            "document",
}

func (k BoundaryKind) String() string {
	if k >= 0 && int(k) < len(boundaryNames) {
		return boundaryNames[k]
	}
	return fmt.Sprintf("BoundaryKind(%d)", int(k))
}

// ParseBoundaryKind accepts the names printed by String.
func ParseBoundaryKind(s string) (BoundaryKind, error) {
	for k, name := range boundaryNames {
		if strings.EqualFold(name, s) {
			return BoundaryKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBoundary, s)
}

// endKind reports kinds whose results sit after the text they close.
func (k BoundaryKind) endKind() bool {
	switch k {
	case WordEndBoundary, LineEndBoundary, ParagraphEndBoundary, FormatEndBoundary, PageEndBoundary:
		return true
	}
	return false
}

// Direction of a move in document order.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection accepts "forward"/"next" and "backward"/"previous".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "forward", "next":
		return Forward, nil
	case "backward", "previous", "prev":
		return Backward, nil
	}
	return Forward, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Policy decides what a move does at anchor and document edges.
type Policy int

const (
	// CrossBoundary always moves and yields Null when no boundary remains.
	CrossBoundary Policy = iota
	// StopAtAnchorBoundary clamps a result that would leave the current anchor
	// to the anchor's edge.
	StopAtAnchorBoundary
	// StopIfAlreadyAtBoundary returns the input when it already sits on a
	// boundary of the requested kind.
	StopIfAlreadyAtBoundary
	// StopAtLastAnchorBoundary behaves like CrossBoundary but returns the
	// input, or the document edge, instead of Null.
	StopAtLastAnchorBoundary
)

var policyNames = []string{
	CrossBoundary:            "cross",
	StopAtAnchorBoundary:     "stop-at-anchor",
	StopIfAlreadyAtBoundary:  "stop-if-already",
	StopAtLastAnchorBoundary: "stop-at-last",
}

func (p Policy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names printed by String.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(name, s) {
			return Policy(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// atBoundary evaluates kind at (g, aff) for a position on side s of any seam.
func (d *document) atBoundary(kind BoundaryKind, dir Direction, g int, aff types.Affinity, s side) bool {
	switch kind {
	case CharacterBoundary:
		return d.atCharacterBoundary(g)
	case WordStartBoundary:
		return d.atWordStart(g, s)
	case WordEndBoundary:
		return d.atWordEnd(g, s)
	case LineStartBoundary:
		return d.atLineStart(g, aff, s)
	case LineEndBoundary:
		return d.atLineEnd(g, aff, s)
	case LineStartOrEndBoundary:
		return d.atLineStart(g, aff, s) || d.atLineEnd(g, aff, s)
	case ParagraphStartBoundary:
		return d.atParagraphStart(g, s)
	case ParagraphEndBoundary:
		return d.atParagraphEnd(g, s)
	case ParagraphStartOrEndBoundary:
		return d.atParagraphStart(g, s) || d.atParagraphEnd(g, s)
	case FormatStartBoundary:
		return d.atFormatStart(g, s)
	case FormatEndBoundary:
		return d.atFormatEnd(g, s)
	case PageStartBoundary:
		// Without page breaks there is no page to move to.
		return d.hasPages && d.atPageStart(g, s)
	case PageEndBoundary:
		return d.hasPages && d.atPageEnd(g, s)
	case DocumentBoundary:
		if dir == Forward {
			return g == d.size()
		}
		return g == 0
	}
	return false
}

// candidate evaluates a scan stop at g and picks the affinity it is reported
// with: upstream for a result that closes text before a seam, so that it
// resolves to the leaf ending there.
func (d *document) candidate(kind BoundaryKind, dir Direction, g int) (bool, types.Affinity) {
	switch kind {
	case LineStartBoundary:
		return d.atLineStart(g, types.Downstream, onSeam), types.Downstream
	case LineEndBoundary:
		return d.atLineEnd(g, types.Upstream, onSeam), d.endAffinity(g)
	case LineStartOrEndBoundary:
		start := d.atLineStart(g, types.Downstream, onSeam)
		end := d.atLineEnd(g, types.Upstream, onSeam)
		switch {
		case end && (dir == Forward || !start):
			return true, d.endAffinity(g)
		case start:
			return true, types.Downstream
		}
		return false, types.Downstream
	case ParagraphStartOrEndBoundary:
		start := d.atParagraphStart(g, onSeam)
		end := d.atParagraphEnd(g, onSeam)
		switch {
		case end && (dir == Forward || !start):
			return true, d.endAffinity(g)
		case start:
			return true, types.Downstream
		}
		return false, types.Downstream
	}
	if !d.atBoundary(kind, dir, g, types.Downstream, onSeam) {
		return false, types.Downstream
	}
	if kind.endKind() {
		return true, d.endAffinity(g)
	}
	return true, types.Downstream
}

func (d *document) endAffinity(g int) types.Affinity {
	if _, _, seam := d.junction(g); seam {
		return types.Upstream
	}
	return types.Downstream
}

// seamKind returns the part of kind that can hold on the far side of a seam:
// starts when moving forward, ends when moving backward.
func seamKind(kind BoundaryKind, dir Direction) (BoundaryKind, bool) {
	if dir == Forward {
		switch kind {
		case WordStartBoundary, LineStartBoundary, ParagraphStartBoundary, FormatStartBoundary, PageStartBoundary:
			return kind, true
		case LineStartOrEndBoundary:
			return LineStartBoundary, true
		case ParagraphStartOrEndBoundary:
			return ParagraphStartBoundary, true
		}
		return kind, false
	}
	switch kind {
	case WordEndBoundary, LineEndBoundary, ParagraphEndBoundary, FormatEndBoundary, PageEndBoundary:
		return kind, true
	case LineStartOrEndBoundary:
		return LineEndBoundary, true
	case ParagraphStartOrEndBoundary:
		return ParagraphEndBoundary, true
	}
	return kind, false
}

// acrossSeam reports a boundary at loc's own offset that only the far side
// of its seam has: a position closing one leaf has not passed the start that
// opens the next leaf, and one opening a leaf has not passed the end that
// closes the previous. The affinity selects the far side.
func (d *document) acrossSeam(kind BoundaryKind, dir Direction, loc *located) (types.Affinity, bool) {
	k, ok := seamKind(kind, dir)
	if !ok {
		return types.Downstream, false
	}
	here, far, aff := beforeSeam, afterSeam, types.Downstream
	if dir == Backward {
		here, far, aff = afterSeam, beforeSeam, types.Upstream
	}
	if loc.seamSide() != here {
		return aff, false
	}
	return aff, d.atBoundary(k, dir, loc.g, aff, far) && !d.atBoundary(k, dir, loc.g, loc.aff, here)
}

func (d *document) scan(kind BoundaryKind, dir Direction, from int) (int, types.Affinity, bool) {
	if dir == Forward {
		for g := from + 1; g <= d.size(); g++ {
			if ok, aff := d.candidate(kind, dir, g); ok {
				return g, aff, true
			}
		}
		return 0, types.Downstream, false
	}
	for g := from - 1; g >= 0; g-- {
		if ok, aff := d.candidate(kind, dir, g); ok {
			return g, aff, true
		}
	}
	return 0, types.Downstream, false
}

// Move returns the next or previous boundary of kind from p. It never fails:
// Null is returned when the policy allows no result.
func (n *Navigator) Move(p Position, kind BoundaryKind, dir Direction, policy Policy) Position {
	loc, ok := n.locate(p)
	if !ok {
		return Null
	}
	d := loc.d
	already := func() bool { return d.atBoundary(kind, dir, loc.g, loc.aff, loc.seamSide()) }

	if policy == StopIfAlreadyAtBoundary && already() {
		return p
	}

	if aff, ok := d.acrossSeam(kind, dir, loc); ok {
		return n.express(p, loc, loc.g, aff)
	}

	var (
		g   int
		aff types.Affinity
	)
	if kind == PageEndBoundary && dir == Forward && !d.hasPages {
		// A document without page breaks is a single page.
		g, aff, ok = d.size(), types.Downstream, true
	} else {
		g, aff, ok = d.scan(kind, dir, loc.g)
	}

	if !ok {
		if policy == StopAtLastAnchorBoundary {
			if already() {
				return p
			}
			edge := 0
			if dir == Forward {
				edge = d.size()
			}
			return n.express(p, loc, edge, types.Downstream)
		}
		logger.DebugTagf("position", "no %s boundary %s of %s", kind, dir, p)
		return Null
	}

	if policy == StopAtAnchorBoundary {
		switch {
		case dir == Forward && g > loc.end:
			g, aff = loc.end, types.Upstream
		case dir == Backward && g < loc.start:
			g, aff = loc.start, types.Downstream
		}
	}
	return n.express(p, loc, g, aff)
}

// express builds the result of a move on the original anchor when it covers
// g, otherwise on the leaf that holds g. A downstream result at the anchor's
// end belongs to the following leaf and an upstream result at its start to
// the preceding one. Tree inputs give tree results.
func (n *Navigator) express(p Position, loc *located, g int, aff types.Affinity) Position {
	d := loc.d
	leaving := (aff == types.Downstream && g == loc.end && g > loc.start && d.charLeaf(g) != nil) ||
		(aff == types.Upstream && g == loc.start && g < loc.end && d.leafBefore(g) != nil)

	var t TextPosition
	ok := false
	if !leaving {
		t, ok = d.textOn(loc.a, g, aff)
	}
	if !ok {
		t = d.leafTextAt(g, aff)
	}
	if p.Kind() == KindTree {
		return n.AsTreePosition(t)
	}
	return t
}

func (n *Navigator) NextCharacter(p Position, policy Policy) Position {
	return n.Move(p, CharacterBoundary, Forward, policy)
}

func (n *Navigator) PreviousCharacter(p Position, policy Policy) Position {
	return n.Move(p, CharacterBoundary, Backward, policy)
}

func (n *Navigator) NextWordStart(p Position, policy Policy) Position {
	return n.Move(p, WordStartBoundary, Forward, policy)
}

func (n *Navigator) PreviousWordStart(p Position, policy Policy) Position {
	return n.Move(p, WordStartBoundary, Backward, policy)
}

func (n *Navigator) NextWordEnd(p Position, policy Policy) Position {
	return n.Move(p, WordEndBoundary, Forward, policy)
}

func (n *Navigator) PreviousWordEnd(p Position, policy Policy) Position {
	return n.Move(p, WordEndBoundary, Backward, policy)
}

func (n *Navigator) NextLineStart(p Position, policy Policy) Position {
	return n.Move(p, LineStartBoundary, Forward, policy)
}

func (n *Navigator) PreviousLineStart(p Position, policy Policy) Position {
	return n.Move(p, LineStartBoundary, Backward, policy)
}

func (n *Navigator) NextLineEnd(p Position, policy Policy) Position {
	return n.Move(p, LineEndBoundary, Forward, policy)
}

func (n *Navigator) PreviousLineEnd(p Position, policy Policy) Position {
	return n.Move(p, LineEndBoundary, Backward, policy)
}

func (n *Navigator) NextParagraphStart(p Position, policy Policy) Position {
	return n.Move(p, ParagraphStartBoundary, Forward, policy)
}

func (n *Navigator) PreviousParagraphStart(p Position, policy Policy) Position {
	return n.Move(p, ParagraphStartBoundary, Backward, policy)
}

func (n *Navigator) NextParagraphEnd(p Position, policy Policy) Position {
	return n.Move(p, ParagraphEndBoundary, Forward, policy)
}

func (n *Navigator) PreviousParagraphEnd(p Position, policy Policy) Position {
	return n.Move(p, ParagraphEndBoundary, Backward, policy)
}

func (n *Navigator) NextFormatStart(p Position, policy Policy) Position {
	return n.Move(p, FormatStartBoundary, Forward, policy)
}

func (n *Navigator) PreviousFormatStart(p Position, policy Policy) Position {
	return n.Move(p, FormatStartBoundary, Backward, policy)
}

func (n *Navigator) NextFormatEnd(p Position, policy Policy) Position {
	return n.Move(p, FormatEndBoundary, Forward, policy)
}

func (n *Navigator) PreviousFormatEnd(p Position, policy Policy) Position {
	return n.Move(p, FormatEndBoundary, Backward, policy)
}

func (n *Navigator) NextPageStart(p Position, policy Policy) Position {
	return n.Move(p, PageStartBoundary, Forward, policy)
}

func (n *Navigator) PreviousPageStart(p Position, policy Policy) Position {
	return n.Move(p, PageStartBoundary, Backward, policy)
}

func (n *Navigator) NextPageEnd(p Position, policy Policy) Position {
	return n.Move(p, PageEndBoundary, Forward, policy)
}

func (n *Navigator) PreviousPageEnd(p Position, policy Policy) Position {
	return n.Move(p, PageEndBoundary, Backward, policy)
}

// DocumentStart and DocumentEnd move to the edges of the whole tree.
func (n *Navigator) DocumentStart(p Position, policy Policy) Position {
	return n.Move(p, DocumentBoundary, Backward, policy)
}

func (n *Navigator) DocumentEnd(p Position, policy Policy) Position {
	return n.Move(p, DocumentBoundary, Forward, policy)
}
