package axtree

import (
	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/types"
)

// Node is one live node of a Tree.
type Node struct {
	tree     *Tree
	id       types.NodeID
	spec     NodeSpec // Children is always nil here
	parent   *Node
	children []*Node
}

var _ anchor.Anchor = (*Node)(nil)

func (n *Node) ID() types.NodeID     { return n.id }
func (n *Node) TreeID() types.TreeID { return n.tree.id }
func (n *Node) Role() types.Role     { return n.spec.Role }
func (n *Node) Name() string         { return n.spec.Name }
func (n *Node) Text() string         { return n.spec.Text }

func (n *Node) Parent() anchor.Anchor {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) ChildAt(i int) anchor.Anchor {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) IndexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (n *Node) IsIgnored() bool        { return n.spec.Ignored }
func (n *Node) IsLineBreaking() bool   { return n.spec.lineBreaking() }
func (n *Node) IsPageBreaking() bool   { return n.spec.PageBreaking }
func (n *Node) IsEmbeddedObject() bool { return n.spec.EmbeddedObject }

func (n *Node) TextAttributes() types.TextAttributes { return n.spec.Attributes }
func (n *Node) WordStarts() []int                    { return n.spec.WordStarts }
func (n *Node) WordEnds() []int                      { return n.spec.WordEnds }

func (n *Node) NextOnLine() (types.NodeID, bool) {
	return n.spec.NextOnLine, n.spec.NextOnLine != types.InvalidNodeID
}

func (n *Node) PreviousOnLine() (types.NodeID, bool) {
	return n.spec.PreviousOnLine, n.spec.PreviousOnLine != types.InvalidNodeID
}

// Children returns the node's children; the slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// walk visits n and its descendants in pre-order.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// walkPost visits n's descendants before n.
func (n *Node) walkPost(fn func(*Node)) {
	for _, c := range n.children {
		c.walkPost(fn)
	}
	fn(n)
}
