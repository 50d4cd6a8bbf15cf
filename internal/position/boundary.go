package position

import (
	"strings"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/types"
)

type lineBreak int

const (
	noLineBreak lineBreak = iota
	softLineBreak
	hardLineBreak
)

// breaksBelow reports whether a or an unignored ancestor strictly below lca
// satisfies test.
func breaksBelow(a, lca anchor.Anchor, test func(anchor.Anchor) bool) bool {
	for x := a; x != nil; x = x.Parent() {
		if lca != nil && x.ID() == lca.ID() {
			return false
		}
		if !x.IsIgnored() && test(x) {
			return true
		}
	}
	return false
}

// A line break object carries its break in its "\n" text, not in its flag.
func isBlockBreak(a anchor.Anchor) bool {
	return a.IsLineBreaking() && a.Role() != types.RoleLineBreak
}

func isPageBreak(a anchor.Anchor) bool { return a.IsPageBreaking() }

func structuralBreak(before, after *leafSpan) bool {
	lca := anchor.LowestCommonAncestor(before.a, after.a)
	return breaksBelow(before.a, lca, isBlockBreak) || breaksBelow(after.a, lca, isBlockBreak)
}

func hasLineData(a anchor.Anchor) bool {
	if a.Role() == types.RoleInlineTextBox {
		return true
	}
	_, next := a.NextOnLine()
	_, prev := a.PreviousOnLine()
	return next || prev
}

// lineJunction classifies the seam between two adjacent text leaves.
// Explicit same-line links win over everything else.
func lineJunction(before, after *leafSpan) lineBreak {
	if next, ok := before.a.NextOnLine(); ok && next == after.a.ID() {
		return noLineBreak
	}
	if prev, ok := after.a.PreviousOnLine(); ok && prev == before.a.ID() {
		return noLineBreak
	}
	if structuralBreak(before, after) {
		return hardLineBreak
	}
	if hasLineData(before.a) || hasLineData(after.a) {
		return softLineBreak
	}
	return noLineBreak
}

func (d *document) lineBreakAt(g int) lineBreak {
	before, after, ok := d.junction(g)
	if !ok {
		return noLineBreak
	}
	return lineJunction(before, after)
}

// side records which leaf a position resolved to when it sits on a seam
// between two text leaves. Boundaries that exist only because of the seam
// count as starts on the after side and as ends on the before side.
type side int

const (
	onSeam side = iota
	beforeSeam
	afterSeam
)

func (s side) admitsStart() bool { return s != beforeSeam }
func (s side) admitsEnd() bool   { return s != afterSeam }

func (d *document) atLineStart(g int, aff types.Affinity, s side) bool {
	switch {
	case g <= 0:
		return true
	case d.text[g-1] == '\n':
		return true
	case g >= d.size():
		return false
	}
	switch d.lineBreakAt(g) {
	case hardLineBreak:
		return s.admitsStart()
	case softLineBreak:
		if s == onSeam {
			return aff == types.Downstream
		}
		return s == afterSeam
	}
	return false
}

func (d *document) atLineEnd(g int, aff types.Affinity, s side) bool {
	switch {
	case g >= d.size():
		return true
	case d.text[g] == '\n':
		return true
	case g <= 0, d.text[g-1] == '\n':
		return false
	}
	switch d.lineBreakAt(g) {
	case hardLineBreak:
		return s.admitsEnd()
	case softLineBreak:
		if s == onSeam {
			return aff == types.Upstream
		}
		return s == beforeSeam
	}
	return false
}

func (d *document) isSeparator(r rune) bool {
	return strings.ContainsRune(d.nav.opts.ParagraphSeparators, r)
}

// paragraphBreak reports a block seam or an embedded object at g.
func (d *document) paragraphBreak(g int) bool {
	before, after, ok := d.junction(g)
	if !ok {
		return false
	}
	return before.a.IsEmbeddedObject() || after.a.IsEmbeddedObject() || structuralBreak(before, after)
}

// A run of separators forms one boundary: paragraphs end before the run and
// start after it.
func (d *document) atParagraphStart(g int, s side) bool {
	if g <= 0 {
		return true
	}
	if g < d.size() && d.isSeparator(d.text[g]) {
		return false
	}
	return d.isSeparator(d.text[g-1]) || (s.admitsStart() && d.paragraphBreak(g))
}

func (d *document) atParagraphEnd(g int, s side) bool {
	if g >= d.size() {
		return true
	}
	if g > 0 && d.isSeparator(d.text[g-1]) {
		return false
	}
	return d.isSeparator(d.text[g]) || (s.admitsEnd() && d.paragraphBreak(g))
}

func (d *document) formatChange(g int) bool {
	before, after, ok := d.junction(g)
	return ok && !d.attributes(before).Equal(d.attributes(after))
}

func (d *document) atFormatStart(g int, s side) bool {
	if g <= 0 || (s.admitsStart() && d.formatChange(g)) {
		return true
	}
	return d.atLineStart(g, types.Downstream, s) || d.atParagraphStart(g, s)
}

func (d *document) atFormatEnd(g int, s side) bool {
	if g >= d.size() || (s.admitsEnd() && d.formatChange(g)) {
		return true
	}
	return d.atLineEnd(g, types.Upstream, s) || d.atParagraphEnd(g, s)
}

func (d *document) pageBreak(g int) bool {
	before, after, ok := d.junction(g)
	if !ok {
		return false
	}
	lca := anchor.LowestCommonAncestor(before.a, after.a)
	return breaksBelow(before.a, lca, isPageBreak) || breaksBelow(after.a, lca, isPageBreak)
}

func (d *document) atPageStart(g int, s side) bool {
	return g <= 0 || (s.admitsStart() && d.pageBreak(g))
}

func (d *document) atPageEnd(g int, s side) bool {
	return g >= d.size() || (s.admitsEnd() && d.pageBreak(g))
}

func (d *document) atWordStart(g int, s side) bool {
	l := d.charLeaf(g)
	if l == nil || (l.start == g && !s.admitsStart()) {
		return false
	}
	starts, _ := l.words(d.nav.opts.WordMode)
	return containsInt(starts, g-l.start)
}

func (d *document) atWordEnd(g int, s side) bool {
	l := d.leafBefore(g)
	if l == nil || (l.end() == g && !s.admitsEnd()) {
		return false
	}
	_, ends := l.words(d.nav.opts.WordMode)
	return containsInt(ends, g-l.start)
}

func (d *document) atCharacterBoundary(g int) bool {
	if g <= 0 || g >= d.size() {
		return true
	}
	l := d.charLeaf(g)
	return l == nil || l.isGraphemeBoundary(g-l.start)
}

// side resolves loc to its leaf and reports which side of a seam it is on.
func (loc *located) seamSide() side {
	tp := loc.leafText()
	l := loc.d.leaves[loc.d.byID[tp.anchor]]
	switch {
	case !l.hasText():
		return onSeam
	case tp.offset == len(l.text) && loc.d.nextText(l) != nil:
		return beforeSeam
	case tp.offset == 0 && loc.d.leafBefore(l.start) != nil:
		return afterSeam
	}
	return onSeam
}

func (n *Navigator) predicate(p Position, test func(*located) bool) bool {
	loc, ok := n.locate(p)
	return ok && test(loc)
}

// AtStartOfAnchor reports offset 0 on p's own anchor, regardless of affinity.
func (n *Navigator) AtStartOfAnchor(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.g == l.start })
}

// AtEndOfAnchor reports MaxTextOffset on p's own anchor, regardless of affinity.
func (n *Navigator) AtEndOfAnchor(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.g == l.end })
}

func (n *Navigator) AtStartOfLine(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atLineStart(l.g, l.aff, l.seamSide()) })
}

func (n *Navigator) AtEndOfLine(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atLineEnd(l.g, l.aff, l.seamSide()) })
}

func (n *Navigator) AtStartOfParagraph(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atParagraphStart(l.g, l.seamSide()) })
}

func (n *Navigator) AtEndOfParagraph(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atParagraphEnd(l.g, l.seamSide()) })
}

// AtStartOfPage is true at the document start and at every page break.
func (n *Navigator) AtStartOfPage(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atPageStart(l.g, l.seamSide()) })
}

// AtEndOfPage is true at the document end and at every page break.
func (n *Navigator) AtEndOfPage(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atPageEnd(l.g, l.seamSide()) })
}

func (n *Navigator) AtStartOfFormat(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atFormatStart(l.g, l.seamSide()) })
}

func (n *Navigator) AtEndOfFormat(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atFormatEnd(l.g, l.seamSide()) })
}

func (n *Navigator) AtStartOfWord(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atWordStart(l.g, l.seamSide()) })
}

func (n *Navigator) AtEndOfWord(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.d.atWordEnd(l.g, l.seamSide()) })
}

func (n *Navigator) AtStartOfDocument(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.g == 0 })
}

func (n *Navigator) AtEndOfDocument(p Position) bool {
	return n.predicate(p, func(l *located) bool { return l.g == l.d.size() })
}

// AtLastNodeInTree is true on the final leaf with text, at any offset in it.
func (n *Navigator) AtLastNodeInTree(p Position) bool {
	return n.predicate(p, func(l *located) bool {
		leaf := l.d.leaves[l.lo]
		if !l.opaque {
			leaf, _ = l.d.leafAt(l.g, l.aff, l.lo, l.hi)
		}
		return l.d.nextText(leaf) == nil
	})
}
