package position

import (
	"testing"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/types"
	"github.com/stretchr/testify/require"
)

// Ids of linesDoc, assigned in pre-order.
const (
	linesRoot  types.NodeID = 1
	linesLeaf1 types.NodeID = 2
	linesBreak types.NodeID = 3
	linesLeaf2 types.NodeID = 4
)

// linesDoc is "Line 1\nLine 2" spread over two static texts joined by a line break.
func linesDoc() axtree.NodeSpec {
	return axtree.Doc(axtree.Static("Line 1"), axtree.LineBreak(), axtree.Static("Line 2"))
}

type fixture struct {
	reg  *axtree.Registry
	tree *axtree.Tree
	nav  *Navigator
}

func newFixture(t *testing.T, root axtree.NodeSpec) *fixture {
	t.Helper()
	reg := axtree.NewRegistry()
	tree, err := reg.NewTree(types.NewTreeID(), root)
	require.NoError(t, err)
	return &fixture{reg: reg, tree: tree, nav: NewNavigator(reg, DefaultOptions())}
}

// splitCluster returns a fixture whose leaf 2 reads "e\u0301x" and a position
// at offset 1 of that leaf. The position is made while the leaf still reads
// "abx", so after the edit it sits inside the first cluster.
func splitCluster(t *testing.T) (*fixture, Position) {
	t.Helper()
	f := newFixture(t, axtree.Doc(axtree.Static("abx")))
	mid := f.text(2, 1)
	require.NoError(t, f.tree.SetText(2, "e\u0301x"))
	return f, mid
}

func (f *fixture) text(id types.NodeID, offset int) Position {
	return f.nav.CreateTextPosition(f.tree.ID(), id, offset, types.Downstream)
}

func (f *fixture) textUp(id types.NodeID, offset int) Position {
	return f.nav.CreateTextPosition(f.tree.ID(), id, offset, types.Upstream)
}

func (f *fixture) treePos(id types.NodeID, child int) Position {
	return f.nav.CreateTreePosition(f.tree.ID(), id, child)
}

func offsetOf(t *testing.T, p Position) int {
	t.Helper()
	tp, ok := p.(TextPosition)
	require.True(t, ok, "expected a text position, got %s", p)
	return tp.Offset()
}

// collect applies move until it yields Null and returns the offsets visited.
func collect(t *testing.T, p Position, move func(Position) Position) []int {
	t.Helper()
	var offsets []int
	for i := 0; i < 100; i++ {
		p = move(p)
		if p.IsNull() {
			return offsets
		}
		offsets = append(offsets, offsetOf(t, p))
	}
	t.Fatal("move never reached Null")
	return nil
}
