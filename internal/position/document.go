package position

import (
	"sort"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/types"
)

// leafSpan is one navigational leaf and the slice of document text it owns.
type leafSpan struct {
	a       anchor.Anchor
	start   int
	text    []rune
	ignored bool

	graphemes []int
	starts    []int
	ends      []int
	wordsDone bool
	attrs     types.TextAttributes
	attrsDone bool
}

func (l *leafSpan) end() int { return l.start + len(l.text) }

// hasText reports whether the leaf takes part in text navigation.
func (l *leafSpan) hasText() bool { return !l.ignored && len(l.text) > 0 }

// document is a flattened view of one subtree: its leaves in document order
// and the concatenation of their text. It is rebuilt for every operation.
type document struct {
	nav      *Navigator
	root     anchor.Anchor
	leaves   []*leafSpan
	byID     map[types.NodeID]int
	runs     []int // indices into leaves of the leaves with text
	text     []rune
	hasPages bool
}

func (n *Navigator) flatten(root anchor.Anchor) *document {
	d := &document{nav: n, root: root, byID: make(map[types.NodeID]int)}
	d.visit(root)
	return d
}

// document flattens the whole tree.
func (n *Navigator) document(tree types.TreeID) (*document, bool) {
	root, ok := n.src.Root(tree)
	if !ok {
		return nil, false
	}
	return n.flatten(root), true
}

func (d *document) visit(a anchor.Anchor) {
	if a != d.root && a.IsPageBreaking() && !a.IsIgnored() {
		d.hasPages = true
	}
	if d.nav.isLeaf(a) {
		l := &leafSpan{a: a, start: len(d.text), text: []rune(d.nav.leafText(a)), ignored: a.IsIgnored()}
		d.byID[a.ID()] = len(d.leaves)
		if l.hasText() {
			d.runs = append(d.runs, len(d.leaves))
		}
		d.leaves = append(d.leaves, l)
		d.text = append(d.text, l.text...)
		return
	}
	for i := 0; i < a.ChildCount(); i++ {
		if c := a.ChildAt(i); c != nil {
			d.visit(c)
		}
	}
}

func (d *document) size() int { return len(d.text) }

// leafRange returns the indices of the first and last leaf under a. When a
// sits inside an opaque leaf (an embedded object) the range is that leaf and
// opaque is true.
func (d *document) leafRange(a anchor.Anchor) (lo, hi int, opaque bool, ok bool) {
	if i, found := d.byID[a.ID()]; found {
		return i, i, false, true
	}
	for p := a.Parent(); p != nil; p = p.Parent() {
		if i, found := d.byID[p.ID()]; found {
			return i, i, true, true
		}
	}
	lo, ok = d.edgeLeaf(a, true)
	if !ok {
		return 0, 0, false, false
	}
	hi, ok = d.edgeLeaf(a, false)
	return lo, hi, false, ok
}

func (d *document) edgeLeaf(a anchor.Anchor, first bool) (int, bool) {
	for a != nil {
		if i, ok := d.byID[a.ID()]; ok {
			return i, true
		}
		if first {
			a = a.ChildAt(0)
		} else {
			a = a.ChildAt(a.ChildCount() - 1)
		}
	}
	return 0, false
}

// bounds returns the text range covered by a.
func (d *document) bounds(a anchor.Anchor) (start, end int, ok bool) {
	lo, hi, _, ok := d.leafRange(a)
	if !ok {
		return 0, 0, false
	}
	return d.leaves[lo].start, d.leaves[hi].end(), true
}

// charLeaf returns the text leaf holding the character at g, or nil at the
// end of the document.
func (d *document) charLeaf(g int) *leafSpan {
	i := sort.Search(len(d.runs), func(i int) bool { return d.leaves[d.runs[i]].end() > g })
	if i == len(d.runs) {
		return nil
	}
	l := d.leaves[d.runs[i]]
	if l.start > g {
		return nil
	}
	return l
}

// leafBefore returns the text leaf holding the character before g.
func (d *document) leafBefore(g int) *leafSpan {
	if g <= 0 {
		return nil
	}
	return d.charLeaf(g - 1)
}

// junction returns the two text leaves that meet at g, if g is such a seam.
func (d *document) junction(g int) (before, after *leafSpan, ok bool) {
	before, after = d.leafBefore(g), d.charLeaf(g)
	if before == nil || after == nil || before == after {
		return nil, nil, false
	}
	return before, after, true
}

// leafAt resolves g to a leaf within leaves[lo..hi]. Downstream prefers the
// leaf whose text starts at g, upstream the leaf whose text ends there.
func (d *document) leafAt(g int, aff types.Affinity, lo, hi int) (*leafSpan, int) {
	for i := lo; i <= hi; i++ {
		l := d.leaves[i]
		if !l.hasText() {
			continue
		}
		if aff == types.Upstream && l.start < g && g <= l.end() {
			return l, g - l.start
		}
		if aff == types.Downstream && l.start <= g && g < l.end() {
			return l, g - l.start
		}
	}
	for i := hi; i >= lo; i-- {
		if l := d.leaves[i]; l.hasText() && l.end() == g {
			return l, len(l.text)
		}
	}
	for i := lo; i <= hi; i++ {
		if l := d.leaves[i]; l.hasText() && l.start == g {
			return l, 0
		}
	}
	for i := lo; i <= hi; i++ {
		if l := d.leaves[i]; !l.ignored && l.start == g {
			return l, 0
		}
	}
	l := d.leaves[lo]
	return l, clamp(g-l.start, 0, len(l.text))
}

// nextText returns the first text leaf after l in document order.
func (d *document) nextText(l *leafSpan) *leafSpan {
	i := d.byID[l.a.ID()]
	for j := i + 1; j < len(d.leaves); j++ {
		if d.leaves[j].hasText() {
			return d.leaves[j]
		}
	}
	return nil
}

// attributes merges the text attributes of l and its ancestors, nearest wins.
func (d *document) attributes(l *leafSpan) types.TextAttributes {
	if l.attrsDone {
		return l.attrs
	}
	chain := anchor.Ancestors(l.a)
	var attrs types.TextAttributes
	for i := len(chain) - 1; i >= 0; i-- {
		attrs = attrs.Merge(chain[i].TextAttributes())
	}
	l.attrs, l.attrsDone = attrs, true
	return attrs
}

// isLeaf reports whether a is a navigational leaf: childless, an embedded
// object, or a node none of whose children carry unignored content.
func (n *Navigator) isLeaf(a anchor.Anchor) bool {
	if a.ChildCount() == 0 || a.IsEmbeddedObject() {
		return true
	}
	for i := 0; i < a.ChildCount(); i++ {
		if c := a.ChildAt(i); c != nil && hasUnignoredContent(c) {
			return false
		}
	}
	return true
}

// hasUnignoredContent is false for ignored subtrees with no unignored
// descendant; ignored containers with visible children are transparent.
func hasUnignoredContent(a anchor.Anchor) bool {
	if !a.IsIgnored() {
		return true
	}
	if a.IsEmbeddedObject() {
		return false
	}
	for i := 0; i < a.ChildCount(); i++ {
		if c := a.ChildAt(i); c != nil && hasUnignoredContent(c) {
			return true
		}
	}
	return false
}

func (n *Navigator) placeholder() string {
	if !n.opts.EmbeddedObjectPlaceholders {
		return ""
	}
	return string(n.opts.Placeholder)
}

// leafText is the text a leaf contributes to its ancestors.
func (n *Navigator) leafText(a anchor.Anchor) string {
	switch {
	case a.IsIgnored():
		return ""
	case a.IsEmbeddedObject():
		return n.placeholder()
	case a.Text() != "":
		return a.Text()
	case a.Role() == types.RoleLineBreak:
		return "\n"
	case a.ChildCount() == 0 && isObjectRole(a.Role()):
		return n.placeholder()
	}
	return ""
}

func isObjectRole(r types.Role) bool {
	switch r {
	case types.RoleImage, types.RoleButton, types.RoleTextField, types.RoleSplitter:
		return true
	}
	return false
}

// textOf returns the effective text of any anchor.
func (n *Navigator) textOf(a anchor.Anchor) []rune {
	return n.flatten(a).text
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
