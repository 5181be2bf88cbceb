package scene

import (
	"slices"

	"github.com/akmonengine/sapling/actor"
	"github.com/pkg/errors"
)

// Contains reports whether id designates a node that has not been destroyed
func (t *Tree) Contains(id NodeID) bool {
	return t.lookup(id) != nil
}

// Len returns the number of nodes alive in the arena, attached or not
func (t *Tree) Len() int {
	return t.live
}

func (t *Tree) Name(id NodeID) string {
	if n := t.lookup(id); n != nil {
		return n.name
	}
	return ""
}

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.lookup(id); n != nil {
		return n.kind
	}
	return KindNode
}

// Enabled reports the node's own flag; ancestors are not considered
func (t *Tree) Enabled(id NodeID) bool {
	if n := t.lookup(id); n != nil {
		return n.enabled
	}
	return false
}

// Behavior returns the hook holder given at creation
func (t *Tree) Behavior(id NodeID) any {
	if n := t.lookup(id); n != nil {
		return n.behavior
	}
	return nil
}

// Parent returns the parent of id; ok is false for roots and unknown nodes
func (t *Tree) Parent(id NodeID) (parent NodeID, ok bool) {
	n := t.lookup(id)
	if n == nil || n.parent == Nil {
		return Nil, false
	}
	return n.parent, true
}

func (t *Tree) ChildCount(id NodeID) int {
	if n := t.lookup(id); n != nil {
		return len(n.children)
	}
	return 0
}

// Children returns a copy of the children of id, in order
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.lookup(id); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

// IndexOf returns the position of id among its parent's children
func (t *Tree) IndexOf(id NodeID) (int, bool) {
	parent, ok := t.Parent(id)
	if !ok {
		return -1, false
	}

	index := slices.Index(t.lookup(parent).children, id)
	return index, index >= 0
}

// Transform returns the transform owned by a GameObject
func (t *Tree) Transform(id NodeID) (*actor.Transform, error) {
	n := t.lookup(id)
	if n == nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "%v", id)
	}
	if n.transform == nil {
		return nil, errors.Wrapf(ErrNotGameObject, "%q is a %v", n.name, n.kind)
	}

	return n.transform, nil
}

// Walk visits the subtree rooted at id depth first, parents before children.
// Returning false from fn skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(id NodeID, depth int) bool) {
	if !t.Contains(id) || !fn(id, depth) {
		return
	}

	t.eachChild(id, func(child NodeID) {
		t.walk(child, depth+1, fn)
	})
}

// FindByName returns the first node named name in the subtree rooted at id, depth first
func (t *Tree) FindByName(id NodeID, name string) (NodeID, bool) {
	found := Nil
	t.Walk(id, func(n NodeID, _ int) bool {
		if found != Nil {
			return false
		}
		if t.Name(n) == name {
			found = n
			return false
		}
		return true
	})

	return found, found != Nil
}
