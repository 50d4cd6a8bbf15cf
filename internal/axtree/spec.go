// Package axtree is an in-memory accessibility tree that implements the
// anchor contract. It backs the CLI, the HTML builder and the tests; the
// position engine itself only ever sees it through anchor.Source.
package axtree

import "github.com/bethropolis/axnav/internal/types"

// NodeSpec describes a node (and, through Children, a subtree) to be created.
// A zero ID asks the tree to assign one.
type NodeSpec struct {
	ID         types.NodeID
	Role       types.Role
	Name       string
	Text       string
	Attributes types.TextAttributes

	Ignored        bool
	LineBreaking   *bool // nil derives the flag from Role
	PageBreaking   bool
	EmbeddedObject bool

	WordStarts     []int
	WordEnds       []int
	NextOnLine     types.NodeID
	PreviousOnLine types.NodeID

	Children []NodeSpec
}

func node(role types.Role, children []NodeSpec) NodeSpec {
	return NodeSpec{Role: role, Children: children}
}

// Doc returns a document root spec.
func Doc(children ...NodeSpec) NodeSpec { return node(types.RoleDocument, children) }

// Para returns a paragraph spec.
func Para(children ...NodeSpec) NodeSpec { return node(types.RoleParagraph, children) }

// Generic returns an inline generic container spec.
func Generic(children ...NodeSpec) NodeSpec { return node(types.RoleGenericContainer, children) }

// Section returns a block section spec.
func Section(children ...NodeSpec) NodeSpec { return node(types.RoleSection, children) }

// Static returns a static text leaf spec.
func Static(text string) NodeSpec {
	return NodeSpec{Role: types.RoleStaticText, Text: text}
}

// InlineBox returns an inline text box leaf spec, the unit of one visual line fragment.
func InlineBox(text string) NodeSpec {
	return NodeSpec{Role: types.RoleInlineTextBox, Text: text}
}

// LineBreak returns a line break object spec with text "\n".
func LineBreak() NodeSpec {
	return NodeSpec{Role: types.RoleLineBreak, Text: "\n"}
}

// Image returns a text-less image leaf spec.
func Image(name string) NodeSpec {
	return NodeSpec{Role: types.RoleImage, Name: name}
}

// Button returns a button spec.
func Button(children ...NodeSpec) NodeSpec { return node(types.RoleButton, children) }

// WithID pins the node id.
func (s NodeSpec) WithID(id types.NodeID) NodeSpec {
	s.ID = id
	return s
}

// AsIgnored marks the node ignored.
func (s NodeSpec) AsIgnored() NodeSpec {
	s.Ignored = true
	return s
}

// AsEmbedded marks the node as an embedded object.
func (s NodeSpec) AsEmbedded() NodeSpec {
	s.EmbeddedObject = true
	return s
}

// AsPageBreaking marks the node as starting a new page.
func (s NodeSpec) AsPageBreaking() NodeSpec {
	s.PageBreaking = true
	return s
}

// BreaksLines overrides the role-derived line-breaking flag.
func (s NodeSpec) BreaksLines(on bool) NodeSpec {
	s.LineBreaking = &on
	return s
}

// WithAttr adds one text attribute.
func (s NodeSpec) WithAttr(key, value string) NodeSpec {
	s.Attributes = s.Attributes.Merge(types.TextAttributes{key: value})
	return s
}

// WithWords sets explicit word boundary offsets.
func (s NodeSpec) WithWords(starts, ends []int) NodeSpec {
	s.WordStarts = starts
	s.WordEnds = ends
	return s
}

// OnLine sets explicit previous/next same-line neighbours; zero means none.
func (s NodeSpec) OnLine(prev, next types.NodeID) NodeSpec {
	s.PreviousOnLine = prev
	s.NextOnLine = next
	return s
}

func (s NodeSpec) lineBreaking() bool {
	if s.LineBreaking != nil {
		return *s.LineBreaking
	}
	return s.Role.IsBlock() || s.Role == types.RoleLineBreak
}
