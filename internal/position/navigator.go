package position

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/types"
)

// DefaultPlaceholder stands for an embedded object in flattened text.
const DefaultPlaceholder = '\uFFFC'

// ErrUnknownWordMode is returned by ParseWordMode.
var ErrUnknownWordMode = errors.New("unknown word mode")

// WordMode selects how word boundaries are derived for leaves that carry no
// explicit word offsets.
type WordMode int

const (
	// WordModeUnicode uses UAX #29 word segmentation.
	WordModeUnicode WordMode = iota
	// WordModeWhitespace treats every maximal run of non-space runes as a word.
	WordModeWhitespace
)

func (m WordMode) String() string {
	if m == WordModeWhitespace {
		return "whitespace"
	}
	return "unicode"
}

// ParseWordMode parses "unicode" or "whitespace".
func ParseWordMode(s string) (WordMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unicode":
		return WordModeUnicode, nil
	case "whitespace":
		return WordModeWhitespace, nil
	}
	return WordModeUnicode, fmt.Errorf("%w: %q", ErrUnknownWordMode, s)
}

// Options tune how anchors are flattened into text.
type Options struct {
	// EmbeddedObjectPlaceholders makes every embedded object, and every
	// text-less object leaf, contribute one Placeholder rune.
	EmbeddedObjectPlaceholders bool
	Placeholder                rune
	// ParagraphSeparators lists the runes that separate paragraphs inside text.
	ParagraphSeparators string
	WordMode            WordMode
}

// DefaultOptions returns placeholders on, U+FFFC, newline and U+2029 as
// paragraph separators, and Unicode word segmentation.
func DefaultOptions() Options {
	return Options{
		EmbeddedObjectPlaceholders: true,
		Placeholder:                DefaultPlaceholder,
		ParagraphSeparators:        "\n\u2029",
		WordMode:                   WordModeUnicode,
	}
}

// Navigator evaluates positions against the trees of one anchor.Source.
// It holds no per-position state and is safe to share between goroutines as
// long as the underlying trees are not mutated concurrently.
type Navigator struct {
	src      anchor.Source
	opts     Options
	ancestry AncestryLog
}

// NewNavigator returns a navigator over src.
func NewNavigator(src anchor.Source, opts Options) *Navigator {
	if opts.Placeholder == 0 {
		opts.Placeholder = DefaultPlaceholder
	}
	return &Navigator{src: src, opts: opts}
}

// WithAncestry returns a copy of n that consults log when recovering stale positions.
func (n *Navigator) WithAncestry(log AncestryLog) *Navigator {
	c := *n
	c.ancestry = log
	return &c
}

func (n *Navigator) Source() anchor.Source { return n.src }
func (n *Navigator) Options() Options      { return n.opts }

func (n *Navigator) resolve(p Position) (anchor.Anchor, bool) {
	if p == nil || p.IsNull() {
		return nil, false
	}
	return n.src.Anchor(p.TreeID(), p.AnchorID())
}

// CreateNullPosition returns Null.
func (n *Navigator) CreateNullPosition() Position { return Null }

// CreateTreePosition returns a tree position, or Null when the anchor is
// unknown or child is out of range. On a leaf only BeforeText and 0 are valid.
func (n *Navigator) CreateTreePosition(tree types.TreeID, id types.NodeID, child int) Position {
	a, ok := n.src.Anchor(tree, id)
	if !ok {
		return Null
	}
	if !n.validChildIndex(a, child) {
		return Null
	}
	return newTree(tree, id, child)
}

// CreateTextPosition returns a text position, or Null when the anchor is
// unknown or offset is outside [0, MaxTextOffset]. An offset inside a
// grapheme cluster snaps back to the start of the cluster.
func (n *Navigator) CreateTextPosition(tree types.TreeID, id types.NodeID, offset int, aff types.Affinity) Position {
	a, ok := n.src.Anchor(tree, id)
	if !ok {
		return Null
	}
	if offset < 0 || offset > len(n.textOf(a)) {
		return Null
	}
	return n.AsValidPosition(newText(tree, id, offset, aff))
}

// CreatePositionAtStartOfDocument returns the text position at offset 0 of the root.
func (n *Navigator) CreatePositionAtStartOfDocument(tree types.TreeID) Position {
	root, ok := n.src.Root(tree)
	if !ok {
		return Null
	}
	return newText(tree, root.ID(), 0, types.Downstream)
}

// CreatePositionAtEndOfDocument returns the text position after the last
// character of the root.
func (n *Navigator) CreatePositionAtEndOfDocument(tree types.TreeID) Position {
	root, ok := n.src.Root(tree)
	if !ok {
		return Null
	}
	return newText(tree, root.ID(), len(n.textOf(root)), types.Downstream)
}

// CreatePositionAtStartOfAnchor moves p to the start of its own anchor,
// keeping its variant.
func (n *Navigator) CreatePositionAtStartOfAnchor(p Position) Position {
	a, ok := n.resolve(p)
	if !ok {
		return Null
	}
	switch p := p.(type) {
	case TreePosition:
		if n.isLeaf(a) {
			return newTree(p.tree, p.anchor, BeforeText)
		}
		return newTree(p.tree, p.anchor, 0)
	case TextPosition:
		return newText(p.tree, p.anchor, 0, types.Downstream)
	}
	return Null
}

// CreatePositionAtEndOfAnchor moves p to the end of its own anchor,
// keeping its variant.
func (n *Navigator) CreatePositionAtEndOfAnchor(p Position) Position {
	a, ok := n.resolve(p)
	if !ok {
		return Null
	}
	switch p := p.(type) {
	case TreePosition:
		if n.isLeaf(a) {
			return newTree(p.tree, p.anchor, 0)
		}
		return newTree(p.tree, p.anchor, a.ChildCount())
	case TextPosition:
		return newText(p.tree, p.anchor, len(n.textOf(a)), types.Downstream)
	}
	return Null
}

func (n *Navigator) validChildIndex(a anchor.Anchor, child int) bool {
	if n.isLeaf(a) {
		return child == BeforeText || child == 0
	}
	return child >= 0 && child <= a.ChildCount()
}
