// Package position implements positions over an accessibility tree and the
// algorithms that convert, compare and move them.
//
// A Position is an immutable value. It names its anchor by (tree id, node id)
// and every operation resolves that pair through an anchor.Source, so holding
// a position across tree mutations is always safe; using it afterwards may
// yield a Null result or require AsValidPosition.
package position

import (
	"fmt"

	"github.com/bethropolis/axnav/internal/types"
)

// Kind is the variant of a Position.
type Kind int

const (
	KindNull Kind = iota
	KindTree
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

const (
	// BeforeText is the child index of a tree position on a leaf that sits
	// before the leaf's own text. Index 0 on a leaf means after its text.
	BeforeText = -1
	// InvalidIndex is the canonical child index of a tree position that no
	// longer points anywhere.
	InvalidIndex = -2
	// InvalidOffset is the canonical offset of a text position that no longer
	// points anywhere.
	InvalidOffset = -1
)

// Position is one of NullPosition, TreePosition or TextPosition.
type Position interface {
	Kind() Kind
	TreeID() types.TreeID
	AnchorID() types.NodeID
	IsNull() bool
	String() string

	sealed()
}

// NullPosition is the absence of a position.
type NullPosition struct{}

// Null is the shared null position value.
var Null Position = NullPosition{}

func (NullPosition) Kind() Kind             { return KindNull }
func (NullPosition) TreeID() types.TreeID   { return types.UnknownTreeID }
func (NullPosition) AnchorID() types.NodeID { return types.InvalidNodeID }
func (NullPosition) IsNull() bool           { return true }
func (NullPosition) String() string         { return "NullPosition" }
func (NullPosition) sealed()                {}

// TreePosition addresses a point between the children of an anchor.
type TreePosition struct {
	tree   types.TreeID
	anchor types.NodeID
	child  int
}

func (p TreePosition) Kind() Kind             { return KindTree }
func (p TreePosition) TreeID() types.TreeID   { return p.tree }
func (p TreePosition) AnchorID() types.NodeID { return p.anchor }
func (p TreePosition) IsNull() bool           { return false }
func (p TreePosition) sealed()                {}

// ChildIndex is in [0, ChildCount], or BeforeText, or InvalidIndex.
func (p TreePosition) ChildIndex() int { return p.child }

func (p TreePosition) String() string {
	return fmt.Sprintf("TreePosition{tree=%s anchor=%d child=%s}", p.tree, p.anchor, childIndexString(p.child))
}

// TextPosition addresses a point between two characters of an anchor's text.
type TextPosition struct {
	tree     types.TreeID
	anchor   types.NodeID
	offset   int
	affinity types.Affinity
}

func (p TextPosition) Kind() Kind             { return KindText }
func (p TextPosition) TreeID() types.TreeID   { return p.tree }
func (p TextPosition) AnchorID() types.NodeID { return p.anchor }
func (p TextPosition) IsNull() bool           { return false }
func (p TextPosition) sealed()                {}

// Offset counts code points from the start of the anchor's text.
func (p TextPosition) Offset() int { return p.offset }

func (p TextPosition) Affinity() types.Affinity { return p.affinity }

// WithAffinity returns a copy of p with affinity a.
func (p TextPosition) WithAffinity(a types.Affinity) TextPosition {
	p.affinity = a
	return p
}

func (p TextPosition) String() string {
	return fmt.Sprintf("TextPosition{tree=%s anchor=%d offset=%d affinity=%s}", p.tree, p.anchor, p.offset, p.affinity)
}

func childIndexString(i int) string {
	switch i {
	case BeforeText:
		return "before_text"
	case InvalidIndex:
		return "invalid"
	}
	return fmt.Sprint(i)
}

func newTree(tree types.TreeID, anchor types.NodeID, child int) TreePosition {
	return TreePosition{tree: tree, anchor: anchor, child: child}
}

func newText(tree types.TreeID, anchor types.NodeID, offset int, aff types.Affinity) TextPosition {
	return TextPosition{tree: tree, anchor: anchor, offset: offset, affinity: aff}
}
