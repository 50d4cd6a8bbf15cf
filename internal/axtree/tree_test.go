package axtree

import (
	"strings"
	"testing"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) OnSubtreeWillBeDeleted(root anchor.Anchor) {
	// The subtree must still be attached when this fires.
	attached := root.Parent() != nil
	o.events = append(o.events, "will-delete:"+root.ID().String()+":"+boolString(attached))
}

func (o *recordingObserver) OnNodeDeleted(_ types.TreeID, id types.NodeID) {
	o.events = append(o.events, "deleted:"+id.String())
}

func boolString(b bool) string {
	if b {
		return "attached"
	}
	return "detached"
}

func TestRegistry_BuildAssignsPreorderIDs(t *testing.T) {
	reg := NewRegistry()
	tree := reg.MustTree(types.NewTreeID(), Doc(Para(Static("a"), Static("b")), Para(Static("c"))))

	var ids []types.NodeID
	var roles []types.Role
	tree.Walk(func(n *Node) {
		ids = append(ids, n.ID())
		roles = append(roles, n.Role())
	})
	assert.Equal(t, []types.NodeID{1, 2, 3, 4, 5, 6}, ids)
	assert.Equal(t, types.RoleParagraph, roles[1])

	n, ok := reg.Anchor(tree.ID(), 4)
	require.True(t, ok)
	assert.Equal(t, "b", n.Text())
	assert.Equal(t, 1, n.IndexInParent())
	assert.Equal(t, types.NodeID(2), n.Parent().ID())
}

func TestRegistry_DuplicateIDs(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.NewTree(types.NewTreeID(), Doc(Static("a").WithID(5), Static("b").WithID(5)))
	require.ErrorIs(t, err, ErrDuplicateID)

	id := types.NewTreeID()
	_, err = reg.NewTree(id, Doc())
	require.NoError(t, err)
	_, err = reg.NewTree(id, Doc())
	require.ErrorIs(t, err, ErrTreeExists)
}

func TestTree_AddChild(t *testing.T) {
	reg := NewRegistry()
	tree := reg.MustTree(types.NewTreeID(), Doc(Static("a"), Static("c")))

	id, err := tree.AddChild(1, 1, Static("b"))
	require.NoError(t, err)
	root := tree.Root()
	require.Equal(t, 3, root.ChildCount())
	assert.Equal(t, id, root.ChildAt(1).ID())
	assert.Equal(t, "b", root.ChildAt(1).Text())

	_, err = tree.AddChild(99, -1, Static("x"))
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = tree.AddChild(1, 9, Static("x"))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTree_RemoveNotifiesBeforeAndAfter(t *testing.T) {
	reg := NewRegistry()
	tree := reg.MustTree(types.NewTreeID(), Doc(Para(Static("a"), Static("b")), Para(Static("c"))))
	obs := &recordingObserver{}
	unsubscribe := reg.Subscribe(tree.ID(), obs)

	require.NoError(t, tree.Remove(2))
	assert.Equal(t, []string{"will-delete:2:attached", "deleted:3", "deleted:4", "deleted:2"}, obs.events)

	_, ok := reg.Anchor(tree.ID(), 3)
	assert.False(t, ok)
	assert.Equal(t, 1, tree.Root().ChildCount())

	unsubscribe()
	require.NoError(t, tree.Remove(5))
	assert.Len(t, obs.events, 4)

	assert.ErrorIs(t, tree.Remove(1), ErrRemoveRoot)
	assert.ErrorIs(t, tree.Remove(42), ErrNodeNotFound)
}

func TestRegistry_RemoveTree(t *testing.T) {
	reg := NewRegistry()
	id := types.NewTreeID()
	reg.MustTree(id, Doc(Static("a")))

	require.NoError(t, reg.RemoveTree(id))
	_, ok := reg.Root(id)
	assert.False(t, ok)
	assert.ErrorIs(t, reg.RemoveTree(id), ErrTreeNotFound)
}

func TestNode_Flags(t *testing.T) {
	reg := NewRegistry()
	tree := reg.MustTree(types.NewTreeID(), Doc(
		Para(InlineBox("x").OnLine(0, 4).WithID(3), InlineBox("y").OnLine(3, 0).WithID(4)),
		LineBreak(),
		Generic(Static("z")).AsIgnored().BreaksLines(true),
		Image("logo").AsEmbedded(),
	))

	para, _ := tree.Node(2)
	assert.True(t, para.IsLineBreaking())
	x, _ := tree.Node(3)
	next, ok := x.NextOnLine()
	assert.True(t, ok)
	assert.Equal(t, types.NodeID(4), next)
	_, ok = x.PreviousOnLine()
	assert.False(t, ok)

	br := tree.Root().ChildAt(1)
	assert.True(t, br.IsLineBreaking())
	ignored := tree.Root().ChildAt(2)
	assert.True(t, ignored.IsIgnored())
	assert.True(t, ignored.IsLineBreaking())
	assert.True(t, tree.Root().ChildAt(3).IsEmbeddedObject())
}

func TestLoadFixture(t *testing.T) {
	spec, err := LoadFixtureFile("testdata/lines.yaml")
	require.NoError(t, err)
	require.Len(t, spec.Children, 3)
	assert.Equal(t, types.RoleDocument, spec.Role)
	assert.Equal(t, "\n", spec.Children[1].Text)
	assert.Equal(t, "Line 2", spec.Children[2].Text)

	_, err = LoadFixture(strings.NewReader("role: banana\n"))
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = LoadFixture(strings.NewReader("role: document\nbogus: 1\n"))
	assert.Error(t, err)
}
