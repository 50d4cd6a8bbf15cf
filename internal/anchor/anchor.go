// Package anchor defines the narrow contract through which the position engine
// reads an accessibility tree it does not own.
//
// Positions never hold an Anchor; they hold (TreeID, NodeID) pairs and resolve
// them through a Source on every use, so a mutated tree cannot leave a
// dangling reference inside a position value.
package anchor

import "github.com/bethropolis/axnav/internal/types"

// Anchor is one node of an accessibility tree.
type Anchor interface {
	ID() types.NodeID
	TreeID() types.TreeID

	// Parent returns nil for the root.
	Parent() Anchor
	ChildCount() int
	// ChildAt returns nil when i is out of range.
	ChildAt(i int) Anchor
	// IndexInParent returns -1 for the root.
	IndexInParent() int

	Role() types.Role
	IsIgnored() bool
	// IsLineBreaking reports block-level objects and line break objects.
	IsLineBreaking() bool
	// IsPageBreaking reports anchors that begin a new page.
	IsPageBreaking() bool
	// IsEmbeddedObject reports anchors whose subtree is opaque to text
	// navigation and stands for a single placeholder character.
	IsEmbeddedObject() bool

	// Text is the anchor's own inner text; containers usually return "".
	Text() string
	TextAttributes() types.TextAttributes

	// WordStarts and WordEnds return explicit boundary offsets into Text,
	// or nil when the tree does not supply them.
	WordStarts() []int
	WordEnds() []int

	// NextOnLine and PreviousOnLine return explicit same-line neighbours.
	NextOnLine() (types.NodeID, bool)
	PreviousOnLine() (types.NodeID, bool)
}

// Observer receives structural mutation notifications for one tree.
// OnSubtreeWillBeDeleted is delivered while root and its ancestors are still
// attached; OnNodeDeleted is delivered afterwards, once per removed node.
type Observer interface {
	OnSubtreeWillBeDeleted(root Anchor)
	OnNodeDeleted(tree types.TreeID, id types.NodeID)
}

// Source resolves ids to anchors across any number of trees.
type Source interface {
	Anchor(tree types.TreeID, id types.NodeID) (Anchor, bool)
	Root(tree types.TreeID) (Anchor, bool)
	// Subscribe registers obs for mutations of tree and returns a function
	// that removes the registration.
	Subscribe(tree types.TreeID, obs Observer) (unsubscribe func())
}
