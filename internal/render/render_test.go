package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/textrange"
	"github.com/bethropolis/axnav/internal/theme"
	"github.com/bethropolis/axnav/internal/types"
)

// newView lays out "Line 1\nLine 2": root 1, texts 2 and 4, line break 3.
func newView(t *testing.T) (*View, *position.Navigator, types.TreeID) {
	t.Helper()
	reg := axtree.NewRegistry()
	tree, err := reg.NewTree(types.NewTreeID(),
		axtree.Doc(axtree.Static("Line 1"), axtree.LineBreak(), axtree.Static("Line 2")))
	require.NoError(t, err)
	nav := position.NewNavigator(reg, position.DefaultOptions())
	return NewView(nav, tree.ID()), nav, tree.ID()
}

func TestNewView(t *testing.T) {
	v, nav, tree := newView(t)

	require.Len(t, v.Lines, 2)
	assert.Equal(t, Line{Start: 0, Text: []rune("Line 1")}, v.Lines[0])
	assert.Equal(t, Line{Start: 7, Text: []rune("Line 2")}, v.Lines[1])
	assert.Equal(t, 13, v.Size)

	at := nav.CreateTextPosition(tree, 4, 4, types.Downstream)
	assert.Equal(t, 11, v.Offset(at))
	assert.Equal(t, 0, v.Offset(position.Null))

	start, end := v.Span(textrange.New(nav, at, nav.CreateTextPosition(tree, 2, 2, types.Downstream)))
	assert.Equal(t, 2, start)
	assert.Equal(t, 11, end)
}

func TestLocate(t *testing.T) {
	v, _, _ := newView(t)
	tests := []struct{ offset, line, col int }{
		{0, 0, 0},
		{6, 0, 6},
		{7, 1, 0},
		{11, 1, 4},
		{13, 1, 6},
		{99, 1, 6},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		line, col := v.Locate(tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}

func TestScrollTop(t *testing.T) {
	assert.Equal(t, 0, ScrollTop(0, 3, 10))
	assert.Equal(t, 2, ScrollTop(5, 2, 10))
	assert.Equal(t, 6, ScrollTop(0, 15, 10))
	assert.Equal(t, 4, ScrollTop(4, 9, 0))
}

func newScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func rowText(s tcell.Screen, y, w int) string {
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		out = append(out, r)
	}
	return string(out)
}

func TestDocumentDrawsRange(t *testing.T) {
	v, _, _ := newView(t)
	s := newScreen(t, 12, 3)

	Document(s, Frame{View: v, RangeStart: 7, RangeEnd: 11, Theme: &theme.Dark}, 12, 3)

	assert.Equal(t, "1 Line 1    ", rowText(s, 0, 12))
	assert.Equal(t, "2 Line 2    ", rowText(s, 1, 12))
	assert.Equal(t, "            ", rowText(s, 2, 12))

	rangeStyle := theme.Dark.GetStyle(theme.StyleRange)
	for x := 2; x < 6; x++ {
		_, _, style, _ := s.GetContent(x, 1)
		assert.Equal(t, rangeStyle, style, "x=%d", x)
	}
	_, _, style, _ := s.GetContent(6, 1)
	assert.Equal(t, theme.Dark.GetStyle(theme.StyleDefault), style)
	_, _, style, _ = s.GetContent(0, 0)
	assert.Equal(t, theme.Dark.GetStyle(theme.StyleLineNumber), style)
}

func TestDocumentDrawsCaret(t *testing.T) {
	v, _, _ := newView(t)
	caret := theme.Dark.GetStyle(theme.StyleCaret)

	tests := []struct {
		name   string
		offset int
		x, y   int
	}{
		{"line start", 7, 2, 1},
		{"after first line", 6, 8, 0},
		{"document end", 13, 8, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScreen(t, 12, 3)
			Document(s, Frame{View: v, RangeStart: tt.offset, RangeEnd: tt.offset, Theme: &theme.Dark}, 12, 3)
			_, _, style, _ := s.GetContent(tt.x, tt.y)
			assert.Equal(t, caret, style)
		})
	}
}

func TestDocumentScrolled(t *testing.T) {
	v, _, _ := newView(t)
	s := newScreen(t, 10, 2)
	Document(s, Frame{View: v, Top: 1, Theme: &theme.Dark}, 10, 2)
	assert.Equal(t, "2 Line 2  ", rowText(s, 0, 10))
	assert.Equal(t, "          ", rowText(s, 1, 10))
}

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, 2, gutterWidth(9, 80))
	assert.Equal(t, 3, gutterWidth(10, 80))
	assert.Equal(t, 2, gutterWidth(0, 80))
	assert.Equal(t, 0, gutterWidth(100, 4))
}
