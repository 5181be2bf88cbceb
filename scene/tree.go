package scene

import (
	"slices"

	"github.com/akmonengine/sapling/actor"
	"github.com/akmonengine/sapling/log"
	"github.com/pkg/errors"
)

// Tree is an arena of nodes. A node exclusively owns its children: destroying a node
// destroys its whole subtree. Parents are plain back-references.
//
// A Tree is not safe for concurrent use, and its structure must not change
// while Update or Draw is running on the same subtree.
type Tree struct {
	nodes []node
	free  []uint32
	live  int

	logger log.Log

	destroyListeners []func(id NodeID)
}

func NewTree(logger log.Log) *Tree {
	if logger == nil {
		logger = log.NewNop()
	}

	return &Tree{logger: logger}
}

// NewNode creates a detached, enabled node. It becomes live once added to a parent.
// behavior may implement any of the hook interfaces, or be nil.
func (t *Tree) NewNode(name string, behavior any) NodeID {
	return t.newNode(name, KindNode, behavior, nil)
}

// NewGameObject creates a detached node owning an identity Transform
func (t *Tree) NewGameObject(name string, behavior any) NodeID {
	transform := actor.NewTransform()
	return t.newNode(name, KindGameObject, behavior, &transform)
}

func (t *Tree) newNode(name string, kind Kind, behavior any, transform *actor.Transform) NodeID {
	var index uint32
	if len(t.free) > 0 {
		index = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
	} else {
		index = uint32(len(t.nodes))
		t.nodes = append(t.nodes, node{generation: 1})
	}

	n := &t.nodes[index]
	n.alive = true
	n.enabled = true
	n.name = name
	n.kind = kind
	n.behavior = behavior
	n.transform = transform
	t.live++

	return newNodeID(n.generation, index)
}

func (t *Tree) lookup(id NodeID) *node {
	index := id.Index()
	if int(index) >= len(t.nodes) {
		return nil
	}

	n := &t.nodes[index]
	if !n.alive || n.generation != id.Generation() {
		return nil
	}

	return n
}

func (t *Tree) frame(id NodeID, dt float64) Frame {
	return Frame{Tree: t, Self: id, DeltaTime: dt, Logger: t.logger}
}

// OnDestroy registers fn, called for every destroyed node after its own OnDestroy hook
func (t *Tree) OnDestroy(fn func(id NodeID)) {
	t.destroyListeners = append(t.destroyListeners, fn)
}

// AddChild attaches child under parent, calls the child's Init hook and returns its index.
func (t *Tree) AddChild(parent, child NodeID) (int, error) {
	p, c := t.lookup(parent), t.lookup(child)
	if p == nil {
		return -1, errors.Wrapf(ErrNodeNotFound, "parent %v", parent)
	}
	if c == nil {
		return -1, errors.Wrapf(ErrNodeNotFound, "child %v", child)
	}
	if c.parent != Nil {
		return -1, errors.Wrapf(ErrAlreadyParented, "%q", c.name)
	}
	if parent == child || t.isAncestor(child, parent) {
		return -1, errors.Wrapf(ErrCycle, "%q under %q", c.name, p.name)
	}

	c.parent = parent
	if !c.initialized {
		c.initialized = true
		if hook, ok := c.behavior.(Initializer); ok {
			hook.Init(t.frame(child, 0))
		}
	}

	// hooks may grow the arena, so the parent is looked up again
	p = t.lookup(parent)
	p.children = append(p.children, child)
	index := len(p.children) - 1

	t.logger.Debug("node added",
		log.String("node", t.Name(child)),
		log.String("parent", p.name),
		log.Int("index", index))

	return index, nil
}

// isAncestor reports whether ancestor is on the parent chain of id
func (t *Tree) isAncestor(ancestor, id NodeID) bool {
	for n := t.lookup(id); n != nil && n.parent != Nil; n = t.lookup(n.parent) {
		if n.parent == ancestor {
			return true
		}
	}
	return false
}

// Child returns the child of parent at index
func (t *Tree) Child(parent NodeID, index int) (NodeID, error) {
	p := t.lookup(parent)
	if p == nil {
		return Nil, errors.Wrapf(ErrNodeNotFound, "parent %v", parent)
	}
	if index < 0 || index >= len(p.children) {
		return Nil, errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", index, len(p.children))
	}

	return p.children[index], nil
}

// RemoveChild disables then destroys the child at index with its whole subtree.
// The following children shift down by one.
func (t *Tree) RemoveChild(parent NodeID, index int) error {
	child, err := t.Child(parent, index)
	if err != nil {
		return err
	}

	name := t.Name(child)
	t.notifyDisable(child)

	p := t.lookup(parent)
	p.children = slices.Delete(p.children, index, index+1)
	t.destroy(child)

	t.logger.Debug("node removed",
		log.String("node", name),
		log.String("parent", p.name),
		log.Int("index", index))

	return nil
}

// Destroy destroys a detached node and its subtree. Attached nodes go through RemoveChild.
func (t *Tree) Destroy(id NodeID) error {
	n := t.lookup(id)
	if n == nil {
		return errors.Wrapf(ErrNodeNotFound, "%v", id)
	}
	if n.parent != Nil {
		return errors.Wrapf(ErrNotRoot, "%q", n.name)
	}

	t.destroy(id)
	return nil
}

func (t *Tree) destroy(id NodeID) {
	n := t.lookup(id)
	if n == nil {
		return
	}

	for _, child := range slices.Clone(n.children) {
		t.destroy(child)
	}

	n = t.lookup(id)
	if n == nil {
		return
	}
	if hook, ok := n.behavior.(Destroyer); ok {
		hook.OnDestroy(t.frame(id, 0))
	}
	for _, fn := range t.destroyListeners {
		fn(id)
	}

	index := id.Index()
	generation := t.nodes[index].generation + 1
	if generation == 0 {
		generation = 1
	}
	t.nodes[index] = node{generation: generation}
	t.free = append(t.free, index)
	t.live--
}

// SetEnabled switches a node on or off and notifies the subtree.
// It fails with ErrStateUnchanged when the node is already in that state.
func (t *Tree) SetEnabled(id NodeID, enabled bool) error {
	n := t.lookup(id)
	if n == nil {
		return errors.Wrapf(ErrNodeNotFound, "%v", id)
	}
	if n.enabled == enabled {
		return errors.Wrapf(ErrStateUnchanged, "%q enabled=%t", n.name, enabled)
	}

	n.enabled = enabled
	if enabled {
		t.notifyEnable(id)
	} else {
		t.notifyDisable(id)
	}

	t.logger.Debug("node toggled", log.String("node", t.Name(id)), log.Bool("enabled", enabled))
	return nil
}

// notifyEnable runs the OnEnable hook of id, then of its enabled descendants
func (t *Tree) notifyEnable(id NodeID) {
	n := t.lookup(id)
	if n == nil {
		return
	}
	if hook, ok := n.behavior.(Enabler); ok {
		hook.OnEnable(t.frame(id, 0))
	}

	t.eachChild(id, func(child NodeID) {
		if t.Enabled(child) {
			t.notifyEnable(child)
		}
	})
}

// notifyDisable runs the OnDisable hook of id, then of its enabled descendants
func (t *Tree) notifyDisable(id NodeID) {
	n := t.lookup(id)
	if n == nil {
		return
	}
	if hook, ok := n.behavior.(Disabler); ok {
		hook.OnDisable(t.frame(id, 0))
	}

	t.eachChild(id, func(child NodeID) {
		if t.Enabled(child) {
			t.notifyDisable(child)
		}
	})
}

// Update runs the Update hooks of the subtree rooted at id, depth first.
// A disabled node is skipped together with its whole subtree.
func (t *Tree) Update(id NodeID, dt float64) {
	n := t.lookup(id)
	if n == nil || !n.enabled {
		return
	}
	if hook, ok := n.behavior.(Updater); ok {
		hook.Update(t.frame(id, dt))
	}

	t.eachChild(id, func(child NodeID) {
		t.Update(child, dt)
	})
}

// Draw runs the Draw hooks of the subtree rooted at id, with the same rules as Update
func (t *Tree) Draw(id NodeID) {
	n := t.lookup(id)
	if n == nil || !n.enabled {
		return
	}
	if hook, ok := n.behavior.(Drawer); ok {
		hook.Draw(t.frame(id, 0))
	}

	t.eachChild(id, func(child NodeID) {
		t.Draw(child)
	})
}

// eachChild calls fn for each child of id, re-reading the node at every step
// since fn may grow the arena.
func (t *Tree) eachChild(id NodeID, fn func(child NodeID)) {
	for i := 0; ; i++ {
		n := t.lookup(id)
		if n == nil || i >= len(n.children) {
			return
		}
		fn(n.children[i])
	}
}
