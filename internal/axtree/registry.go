package axtree

import (
	"fmt"
	"sync"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/event"
	"github.com/bethropolis/axnav/internal/types"
)

// Registry owns a set of trees and their mutation bus. It implements anchor.Source.
type Registry struct {
	mu    sync.RWMutex
	trees map[types.TreeID]*Tree
	bus   *event.Manager
}

var _ anchor.Source = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		trees: make(map[types.TreeID]*Tree),
		bus:   event.NewManager(),
	}
}

// Events exposes the mutation bus.
func (r *Registry) Events() *event.Manager { return r.bus }

// NewTree builds a tree from root and registers it under id.
func (r *Registry) NewTree(id types.TreeID, root NodeSpec) (*Tree, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.trees[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrTreeExists, id)
	}

	t := &Tree{id: id, reg: r, nodes: make(map[types.NodeID]*Node), nextID: 1}
	var created []*Node
	n, err := t.build(root, &created)
	if err != nil {
		return nil, fmt.Errorf("build tree %s: %w", id, err)
	}
	t.root = n
	r.trees[id] = t
	return t, nil
}

// MustTree is NewTree for fixtures known to be well formed; it panics on error.
func (r *Registry) MustTree(id types.TreeID, root NodeSpec) *Tree {
	t, err := r.NewTree(id, root)
	if err != nil {
		panic(err)
	}
	return t
}

// Tree returns a registered tree.
func (r *Registry) Tree(id types.TreeID) (*Tree, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trees[id]
	return t, ok
}

// RemoveTree destroys a tree, notifying observers as for Remove on its root.
func (r *Registry) RemoveTree(id types.TreeID) error {
	r.mu.Lock()
	t, ok := r.trees[id]
	if ok {
		delete(r.trees, id)
	}
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrTreeNotFound, id)
	}
	t.detach(t.root)
	t.root = nil
	return nil
}

// Anchor implements anchor.Source.
func (r *Registry) Anchor(tree types.TreeID, id types.NodeID) (anchor.Anchor, bool) {
	t, ok := r.Tree(tree)
	if !ok {
		return nil, false
	}
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Root implements anchor.Source.
func (r *Registry) Root(tree types.TreeID) (anchor.Anchor, bool) {
	t, ok := r.Tree(tree)
	if !ok || t.root == nil {
		return nil, false
	}
	return t.root, true
}

// Subscribe implements anchor.Source on top of the event bus.
func (r *Registry) Subscribe(tree types.TreeID, obs anchor.Observer) func() {
	willDelete := r.bus.Subscribe(tree, event.TypeSubtreeWillBeDeleted, func(e event.Event) bool {
		if d, ok := e.Data.(event.SubtreeWillBeDeletedData); ok {
			obs.OnSubtreeWillBeDeleted(d.Root)
		}
		return false
	})
	deleted := r.bus.Subscribe(tree, event.TypeNodeDeleted, func(e event.Event) bool {
		if d, ok := e.Data.(event.NodeDeletedData); ok {
			obs.OnNodeDeleted(e.Tree, d.ID)
		}
		return false
	})
	return func() {
		r.bus.Unsubscribe(willDelete)
		r.bus.Unsubscribe(deleted)
	}
}
