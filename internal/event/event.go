// internal/event/event.go
package event

import (
	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/types"
)

// Type identifies the kind of tree mutation.
type Type int

const (
	TypeUnknown Type = iota

	TypeNodeCreated          // A node was attached to the tree
	TypeSubtreeWillBeDeleted // A subtree is about to be detached; ancestry still intact
	TypeNodeDeleted          // A node has been detached; its id no longer resolves
	TypeTextChanged          // A node's own text changed
	TypeIgnoredChanged       // A node's ignored flag changed
)

var typeNames = map[Type]string{
	TypeUnknown:              "unknown",
	TypeNodeCreated:          "node-created",
	TypeSubtreeWillBeDeleted: "subtree-will-be-deleted",
	TypeNodeDeleted:          "node-deleted",
	TypeTextChanged:          "text-changed",
	TypeIgnoredChanged:       "ignored-changed",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return typeNames[TypeUnknown]
}

// Event is the structure passed through the bus.
type Event struct {
	Tree types.TreeID
	Type Type
	Data interface{}
}

// NodeCreatedData names the new node.
type NodeCreatedData struct {
	ID types.NodeID
}

// SubtreeWillBeDeletedData carries the still-attached root of the doomed subtree.
type SubtreeWillBeDeletedData struct {
	Root anchor.Anchor
}

// NodeDeletedData names a node that no longer resolves.
type NodeDeletedData struct {
	ID types.NodeID
}

// TextChangedData describes a text replacement on one node.
type TextChangedData struct {
	ID      types.NodeID
	OldText string
	NewText string
}

// IgnoredChangedData reports the new ignored state of a node.
type IgnoredChangedData struct {
	ID      types.NodeID
	Ignored bool
}
