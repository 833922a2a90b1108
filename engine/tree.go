package engine

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/parameter"
)

type node struct {
	generation uint32
	alive      bool
	parent     core.Entity
	children   []core.Entity
}

// Tree is the arena-backed entity hierarchy of one window
// Slot 0 is reserved so NoEntity never resolves. Freed slots are reused with a bumped generation
type Tree struct {
	nodes   []node
	free    []uint32
	root    core.Entity
	overlay core.Entity
	count   int
}

// NewTree creates an empty tree
func NewTree() *Tree {
	nodes := make([]node, 1, parameter.TreeInitialCapacity)
	return &Tree{nodes: nodes}
}

// Create allocates an entity, appended as last child of parent unless parent is NoEntity
func (t *Tree) Create(parent core.Entity) (core.Entity, error) {
	if parent != core.NoEntity && !t.Contains(parent) {
		return core.NoEntity, structural("create", parent, ErrNotFound)
	}

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.nodes))
		t.nodes = append(t.nodes, node{})
	}

	nd := &t.nodes[idx]
	nd.generation++
	nd.alive = true
	nd.parent = parent
	nd.children = nd.children[:0]
	t.count++

	e := core.NewEntity(idx, nd.generation)
	if parent != core.NoEntity {
		p := t.node(parent)
		p.children = append(p.children, e)
	}
	return e, nil
}

// Remove deletes e and its whole subtree
// Returns the freed identifiers in post-order (children before parents) for cleanup
func (t *Tree) Remove(e core.Entity) ([]core.Entity, error) {
	if !t.Contains(e) {
		return nil, structural("remove", e, ErrNotFound)
	}

	freed := t.postOrder(e, nil)

	if p := t.node(e).parent; p != core.NoEntity {
		t.detach(p, e)
	}
	if t.root == e {
		t.root = core.NoEntity
	}
	if t.overlay == e {
		t.overlay = core.NoEntity
	}

	for _, f := range freed {
		nd := t.node(f)
		nd.alive = false
		nd.parent = core.NoEntity
		nd.children = nd.children[:0]
		t.free = append(t.free, f.Index())
		t.count--
	}
	return freed, nil
}

// Move reparents e under newParent, appended as last child
func (t *Tree) Move(e, newParent core.Entity) error {
	if !t.Contains(e) {
		return structural("move", e, ErrNotFound)
	}
	if !t.Contains(newParent) {
		return structural("move", newParent, ErrNotFound)
	}
	if e == t.root || e == t.overlay {
		return structural("move", e, ErrTopLevel)
	}
	for a := newParent; a != core.NoEntity; a = t.node(a).parent {
		if a == e {
			return structural("move", e, ErrCycle)
		}
	}

	if old := t.node(e).parent; old != core.NoEntity {
		t.detach(old, e)
	}
	t.node(e).parent = newParent
	p := t.node(newParent)
	p.children = append(p.children, e)
	return nil
}

// SetRoot designates e as the window content root
// A previous root is orphaned, not freed
func (t *Tree) SetRoot(e core.Entity) error {
	if err := t.checkTopLevel("set_root", e); err != nil {
		return err
	}
	if e == t.overlay {
		t.overlay = core.NoEntity
	}
	t.root = e
	return nil
}

// SetOverlay designates e as the overlay, composited after the root
// A previous overlay is orphaned, not freed
func (t *Tree) SetOverlay(e core.Entity) error {
	if err := t.checkTopLevel("set_overlay", e); err != nil {
		return err
	}
	if e == t.root {
		t.root = core.NoEntity
	}
	t.overlay = e
	return nil
}

func (t *Tree) checkTopLevel(op string, e core.Entity) error {
	if !t.Contains(e) {
		return structural(op, e, ErrNotFound)
	}
	if t.node(e).parent != core.NoEntity {
		return structural(op, e, ErrAttached)
	}
	return nil
}

// Root returns the root entity, NoEntity if unset
func (t *Tree) Root() core.Entity {
	return t.root
}

// Overlay returns the overlay entity, NoEntity if unset
func (t *Tree) Overlay() core.Entity {
	return t.overlay
}

// Contains reports whether e is a live entity of this tree
func (t *Tree) Contains(e core.Entity) bool {
	idx := e.Index()
	if e == core.NoEntity || int(idx) >= len(t.nodes) || idx == 0 {
		return false
	}
	nd := &t.nodes[idx]
	return nd.alive && nd.generation == e.Generation()
}

// Len returns the number of live entities
func (t *Tree) Len() int {
	return t.count
}

// Parent returns the parent of e, NoEntity for top-level entities
func (t *Tree) Parent(e core.Entity) (core.Entity, error) {
	if !t.Contains(e) {
		return core.NoEntity, structural("parent", e, ErrNotFound)
	}
	return t.node(e).parent, nil
}

// Children returns a copy of e's children in insertion order
func (t *Tree) Children(e core.Entity) ([]core.Entity, error) {
	if !t.Contains(e) {
		return nil, structural("children", e, ErrNotFound)
	}
	src := t.node(e).children
	out := make([]core.Entity, len(src))
	copy(out, src)
	return out, nil
}

// PreOrder lists start's subtree parents before children
func (t *Tree) PreOrder(start core.Entity) ([]core.Entity, error) {
	if !t.Contains(start) {
		return nil, structural("pre_order", start, ErrNotFound)
	}
	return t.preOrder(start, make([]core.Entity, 0, 16)), nil
}

// PostOrder lists start's subtree children before parents
func (t *Tree) PostOrder(start core.Entity) ([]core.Entity, error) {
	if !t.Contains(start) {
		return nil, structural("post_order", start, ErrNotFound)
	}
	return t.postOrder(start, make([]core.Entity, 0, 16)), nil
}

// Walk lists the root subtree then the overlay subtree, both in pre-order
// Entities unreachable from either designee are not visited
func (t *Tree) Walk() []core.Entity {
	out := make([]core.Entity, 0, t.count)
	if t.root != core.NoEntity {
		out = t.preOrder(t.root, out)
	}
	if t.overlay != core.NoEntity {
		out = t.preOrder(t.overlay, out)
	}
	return out
}

// IsAncestor reports whether a is a strict ancestor of e
func (t *Tree) IsAncestor(a, e core.Entity) bool {
	if !t.Contains(a) || !t.Contains(e) {
		return false
	}
	for p := t.node(e).parent; p != core.NoEntity; p = t.node(p).parent {
		if p == a {
			return true
		}
	}
	return false
}

func (t *Tree) preOrder(e core.Entity, out []core.Entity) []core.Entity {
	out = append(out, e)
	for _, c := range t.node(e).children {
		out = t.preOrder(c, out)
	}
	return out
}

func (t *Tree) postOrder(e core.Entity, out []core.Entity) []core.Entity {
	for _, c := range t.node(e).children {
		out = t.postOrder(c, out)
	}
	return append(out, e)
}

func (t *Tree) detach(parent, child core.Entity) {
	p := t.node(parent)
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// node assumes e was validated by Contains
func (t *Tree) node(e core.Entity) *node {
	return &t.nodes[e.Index()]
}
