package axtree

import "errors"

var (
	// ErrTreeExists indicates a tree with the same id is already registered.
	ErrTreeExists = errors.New("tree already registered")

	// ErrTreeNotFound indicates the tree id is not registered.
	ErrTreeNotFound = errors.New("tree not found")

	// ErrNodeNotFound indicates the node id does not resolve in the tree.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateID indicates an explicit node id is already in use.
	ErrDuplicateID = errors.New("duplicate node id")

	// ErrIndexOutOfRange indicates a child insertion index beyond the child count.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrRemoveRoot indicates an attempt to remove the root through Remove.
	ErrRemoveRoot = errors.New("cannot remove the root node; use Registry.RemoveTree")
)
