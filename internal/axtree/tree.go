package axtree

import (
	"fmt"

	"github.com/bethropolis/axnav/internal/event"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/types"
)

// Tree is one accessibility tree instance. Mutations are synchronous and
// notify observers through the owning registry's bus; reads concurrent with
// mutations are not safe.
type Tree struct {
	id     types.TreeID
	reg    *Registry
	root   *Node
	nodes  map[types.NodeID]*Node
	nextID types.NodeID
}

// ID returns the tree id.
func (t *Tree) ID() types.TreeID { return t.id }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Node resolves an id within this tree.
func (t *Tree) Node(id types.NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of live nodes.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) allocID(want types.NodeID) (types.NodeID, error) {
	if want != types.InvalidNodeID {
		if _, taken := t.nodes[want]; taken {
			return 0, fmt.Errorf("%w: %d", ErrDuplicateID, want)
		}
		if want >= t.nextID {
			t.nextID = want + 1
		}
		return want, nil
	}
	for {
		id := t.nextID
		t.nextID++
		if _, taken := t.nodes[id]; !taken {
			return id, nil
		}
	}
}

// build creates the subtree described by spec without attaching it.
// Ids are reserved in t.nodes so a failed build must be rolled back by the caller.
func (t *Tree) build(spec NodeSpec, created *[]*Node) (*Node, error) {
	id, err := t.allocID(spec.ID)
	if err != nil {
		return nil, err
	}
	own := spec
	own.Children = nil
	n := &Node{tree: t, id: id, spec: own}
	t.nodes[id] = n
	*created = append(*created, n)
	for _, cs := range spec.Children {
		c, err := t.build(cs, created)
		if err != nil {
			return nil, err
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n, nil
}

func (t *Tree) rollback(created []*Node) {
	for _, n := range created {
		delete(t.nodes, n.id)
	}
}

// AddChild builds spec (with its children) and inserts it under parent at
// index; a negative index appends. It returns the id of the new subtree root.
func (t *Tree) AddChild(parent types.NodeID, index int, spec NodeSpec) (types.NodeID, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return 0, fmt.Errorf("add child to %d: %w", parent, ErrNodeNotFound)
	}
	if index > len(p.children) {
		return 0, fmt.Errorf("add child at %d of %d: %w", index, len(p.children), ErrIndexOutOfRange)
	}

	var created []*Node
	n, err := t.build(spec, &created)
	if err != nil {
		t.rollback(created)
		return 0, fmt.Errorf("add child to %d: %w", parent, err)
	}
	n.parent = p
	if index < 0 || index == len(p.children) {
		p.children = append(p.children, n)
	} else {
		p.children = append(p.children[:index], append([]*Node{n}, p.children[index:]...)...)
	}

	for _, c := range created {
		t.reg.bus.Dispatch(t.id, event.TypeNodeCreated, event.NodeCreatedData{ID: c.id})
	}
	logger.DebugTagf("tree", "tree %s: added %d node(s) under %d", t.id, len(created), parent)
	return n.id, nil
}

// Remove detaches a node and its subtree. Observers see SubtreeWillBeDeleted
// while the subtree is still attached, then NodeDeleted for every removed node.
func (t *Tree) Remove(id types.NodeID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrNodeNotFound)
	}
	if n == t.root {
		return ErrRemoveRoot
	}
	t.detach(n)
	return nil
}

func (t *Tree) detach(n *Node) {
	t.reg.bus.Dispatch(t.id, event.TypeSubtreeWillBeDeleted, event.SubtreeWillBeDeletedData{Root: n})

	if p := n.parent; p != nil {
		idx := n.IndexInParent()
		p.children = append(p.children[:idx:idx], p.children[idx+1:]...)
		n.parent = nil
	}

	var removed []types.NodeID
	n.walkPost(func(x *Node) {
		delete(t.nodes, x.id)
		removed = append(removed, x.id)
	})
	for _, rid := range removed {
		t.reg.bus.Dispatch(t.id, event.TypeNodeDeleted, event.NodeDeletedData{ID: rid})
	}
	logger.DebugTagf("tree", "tree %s: removed %d node(s) rooted at %d", t.id, len(removed), n.id)
}

// SetText replaces a node's own text.
func (t *Tree) SetText(id types.NodeID, text string) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set text on %d: %w", id, ErrNodeNotFound)
	}
	old := n.spec.Text
	n.spec.Text = text
	t.reg.bus.Dispatch(t.id, event.TypeTextChanged, event.TextChangedData{ID: id, OldText: old, NewText: text})
	return nil
}

// SetIgnored changes a node's ignored flag.
func (t *Tree) SetIgnored(id types.NodeID, ignored bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set ignored on %d: %w", id, ErrNodeNotFound)
	}
	if n.spec.Ignored == ignored {
		return nil
	}
	n.spec.Ignored = ignored
	t.reg.bus.Dispatch(t.id, event.TypeIgnoredChanged, event.IgnoredChangedData{ID: id, Ignored: ignored})
	return nil
}

// Walk visits every live node in document (pre-)order.
func (t *Tree) Walk(fn func(*Node)) {
	if t.root != nil {
		t.root.walk(fn)
	}
}
