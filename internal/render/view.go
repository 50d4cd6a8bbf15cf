// Package render lays a document out as display lines and draws it with the
// current range highlighted.
package render

import (
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/textrange"
	"github.com/bethropolis/axnav/internal/types"
)

// maxLines bounds the layout of pathological documents.
const maxLines = 1 << 16

// Line is one display line: its first character's offset in the document
// text and the characters up to the line end.
type Line struct {
	Start int
	Text  []rune
}

// End is the document offset just past the line's last character.
func (l Line) End() int { return l.Start + len(l.Text) }

// View is the line layout of one document. It is computed once; build a new
// View after the tree changes.
type View struct {
	nav      *position.Navigator
	tree     types.TreeID
	docStart position.Position

	Lines []Line
	Size  int
}

// NewView lays out tree by walking its line ranges.
func NewView(nav *position.Navigator, tree types.TreeID) *View {
	v := &View{
		nav:      nav,
		tree:     tree,
		docStart: nav.CreatePositionAtStartOfDocument(tree),
	}
	v.Size = utf8.RuneCountInString(textrange.Document(nav, tree).Text())

	r := textrange.Degenerate(nav, v.docStart).ExpandToEnclosingUnit(textrange.UnitLine)
	for len(v.Lines) < maxLines && !r.IsNull() {
		line := Line{Start: v.Offset(r.Start), Text: []rune(r.Text())}
		v.Lines = append(v.Lines, line)

		next, moved := r.Move(textrange.UnitLine, 1)
		if moved == 0 || v.Offset(next.Start) <= line.Start {
			break
		}
		r = next
	}
	if len(v.Lines) == 0 {
		v.Lines = []Line{{}}
	}
	logger.DebugTagf("render", "laid out %d lines over %d characters", len(v.Lines), v.Size)
	return v
}

// Offset is the number of document characters before p.
func (v *View) Offset(p position.Position) int {
	if p.IsNull() {
		return 0
	}
	return utf8.RuneCountInString(textrange.New(v.nav, v.docStart, p).Text())
}

// Locate returns the display line and column of a document offset. Offsets
// between two lines belong to the earlier one.
func (v *View) Locate(offset int) (line, col int) {
	i := sort.Search(len(v.Lines), func(i int) bool { return v.Lines[i].Start > offset }) - 1
	if i < 0 {
		return 0, 0
	}
	col = offset - v.Lines[i].Start
	if n := len(v.Lines[i].Text); col > n {
		col = n
	}
	return i, col
}

// Span returns the document offsets of r's endpoints, ordered.
func (v *View) Span(r textrange.Range) (start, end int) {
	r = r.Normalize()
	return v.Offset(r.Start), v.Offset(r.End)
}

// ScrollTop returns the first line to show so that line stays within a
// window of height rows that currently starts at top.
func ScrollTop(top, line, height int) int {
	if height <= 0 {
		return top
	}
	if line < top {
		return line
	}
	if line >= top+height {
		return line - height + 1
	}
	return top
}
