package textrange

import (
	"testing"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tree *axtree.Tree
	nav  *position.Navigator
}

// newLines builds "Line 1\nLine 2": root 1, texts 2 and 4, line break 3.
func newLines(t *testing.T) *fixture {
	t.Helper()
	reg := axtree.NewRegistry()
	tree, err := reg.NewTree(types.NewTreeID(),
		axtree.Doc(axtree.Static("Line 1"), axtree.LineBreak(), axtree.Static("Line 2")))
	require.NoError(t, err)
	return &fixture{tree: tree, nav: position.NewNavigator(reg, position.DefaultOptions())}
}

func (f *fixture) at(id types.NodeID, offset int) position.Position {
	return f.nav.CreateTextPosition(f.tree.ID(), id, offset, types.Downstream)
}

func (f *fixture) span(id types.NodeID, start, end int) Range {
	return New(f.nav, f.at(id, start), f.at(id, end))
}

func TestRange_Text(t *testing.T) {
	f := newLines(t)

	assert.Equal(t, "Line 1\nLine 2", Document(f.nav, f.tree.ID()).Text())
	assert.Equal(t, "ne 1\nLine", New(f.nav, f.at(2, 2), f.at(4, 4)).Text())
	assert.Equal(t, "ne 1\nLine", New(f.nav, f.at(4, 4), f.at(2, 2)).Text())
	assert.Equal(t, "\n", New(f.nav, f.at(2, 6), f.at(4, 0)).Text())
	assert.Empty(t, Degenerate(f.nav, f.at(1, 3)).Text())
}

func TestRange_ExpandToEnclosingUnit(t *testing.T) {
	f := newLines(t)
	tests := []struct {
		unit Unit
		at   int
		want string
	}{
		{UnitCharacter, 0, "L"},
		{UnitCharacter, 13, ""},
		{UnitWord, 2, "Line"},
		{UnitWord, 5, "1"},
		{UnitLine, 9, "Line 2"},
		{UnitLine, 0, "Line 1"},
		{UnitParagraph, 3, "Line 1"},
		{UnitFormat, 9, "Line 2"},
		{UnitPage, 9, "Line 1\nLine 2"},
		{UnitDocument, 4, "Line 1\nLine 2"},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			r := Degenerate(f.nav, f.at(1, tt.at)).ExpandToEnclosingUnit(tt.unit)
			assert.Equal(t, tt.want, r.Text())
		})
	}
}

func TestRange_Move(t *testing.T) {
	f := newLines(t)
	start := Degenerate(f.nav, f.at(1, 2))

	r, moved := start.Move(UnitWord, 1)
	assert.Equal(t, 1, moved)
	assert.Equal(t, "1", r.Text())

	r, moved = start.Move(UnitWord, 5)
	assert.Equal(t, 3, moved)
	assert.Equal(t, "2", r.Text())

	r, moved = Degenerate(f.nav, f.at(1, 9)).Move(UnitWord, -1)
	assert.Equal(t, -1, moved)
	assert.Equal(t, "1", r.Text())

	r, moved = start.Move(UnitLine, 1)
	assert.Equal(t, 1, moved)
	assert.Equal(t, "Line 2", r.Text())

	r, moved = start.Move(UnitLine, 0)
	assert.Zero(t, moved)
	assert.Equal(t, "Line 1", r.Text())

	assert.True(t, start.IsCollapsed(), "receiver is unchanged")
}

func TestRange_MoveEndpoint(t *testing.T) {
	f := newLines(t)
	word := f.span(1, 0, 4)

	r, moved := word.MoveEndpoint(EndEndpoint, UnitWord, 1)
	assert.Equal(t, 1, moved)
	assert.Equal(t, "Line 1", r.Text())

	r, moved = word.MoveEndpoint(StartEndpoint, UnitWord, 2)
	assert.Equal(t, 2, moved)
	assert.True(t, r.IsCollapsed())
	assert.Empty(t, r.Text())

	r, moved = word.MoveEndpoint(StartEndpoint, UnitCharacter, -3)
	assert.Zero(t, moved)
	assert.Equal(t, "Line", r.Text())

	r, moved = word.MoveEndpoint(EndEndpoint, UnitCharacter, -2)
	assert.Equal(t, -2, moved)
	assert.Equal(t, "Li", r.Text())
}

func TestRange_CompareAndNormalize(t *testing.T) {
	f := newLines(t)
	a := f.span(1, 0, 4)
	b := f.span(1, 5, 6)

	cmp, ok := a.CompareEndpoints(EndEndpoint, b, StartEndpoint)
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = b.CompareEndpoints(StartEndpoint, a, EndEndpoint)
	require.True(t, ok)
	assert.Equal(t, 1, cmp)

	n := f.span(1, 9, 2).Normalize()
	assert.Equal(t, f.at(1, 2), n.Start)
	assert.Equal(t, f.at(1, 9), n.End)

	c := a.Clone()
	c.Start = f.at(1, 1)
	assert.Equal(t, f.at(1, 0), a.Start)
}

func TestRange_EnclosingElement(t *testing.T) {
	f := newLines(t)

	a, ok := New(f.nav, f.at(2, 1), f.at(2, 3)).EnclosingElement()
	require.True(t, ok)
	assert.Equal(t, types.NodeID(2), a.ID())

	a, ok = New(f.nav, f.at(2, 1), f.at(4, 1)).EnclosingElement()
	require.True(t, ok)
	assert.Equal(t, types.NodeID(1), a.ID())

	_, ok = New(f.nav, position.Null, f.at(4, 1)).EnclosingElement()
	assert.False(t, ok)
}

func TestParseUnit(t *testing.T) {
	for _, u := range Units() {
		got, err := ParseUnit(u.String())
		require.NoError(t, err)
		assert.Equal(t, u, got)
	}
	_, err := ParseUnit("sentence")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}
