package scene

import (
	"fmt"

	"github.com/akmonengine/sapling/actor"
	"github.com/akmonengine/sapling/log"
)

// NodeID is a stable handle to a node of a Tree.
// The upper 32 bits hold the slot generation, the lower 32 bits the slot index,
// so a handle to a destroyed node never resolves to the node reusing its slot.
type NodeID uint64

// Nil is the zero handle, never assigned to a node
const Nil NodeID = 0

func newNodeID(generation uint32, index uint32) NodeID {
	return NodeID(uint64(generation)<<32 | uint64(index))
}

func (id NodeID) Generation() uint32 {
	return uint32(id >> 32)
}

func (id NodeID) Index() uint32 {
	return uint32(id & 0xFFFFFFFF)
}

func (id NodeID) String() string {
	if id == Nil {
		return "nil"
	}
	return fmt.Sprintf("%d@%d", id.Index(), id.Generation())
}

// Kind is a coarse type tag for runtime checks
type Kind uint8

const (
	KindNode Kind = iota
	KindGameObject
	KindScene
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindGameObject:
		return "game_object"
	case KindScene:
		return "scene"
	default:
		return "unknown"
	}
}

// Frame is the context handed to every hook
type Frame struct {
	Tree *Tree
	// Self is the node whose hook is running
	Self NodeID
	// DeltaTime is the step in seconds, zero outside of Update
	DeltaTime float64
	Logger    log.Log
}

// Transform returns the transform of the running node, nil unless it is a GameObject
func (f Frame) Transform() *actor.Transform {
	transform, err := f.Tree.Transform(f.Self)
	if err != nil {
		return nil
	}
	return transform
}

// A node behavior implements any subset of the hook interfaces below.
// The tree always takes care of the recursion into children: hooks only hold
// the logic of their own node.

// Initializer is called once, when the node is added to a parent
type Initializer interface {
	Init(frame Frame)
}

// Updater is called once per frame while the node and its ancestors are enabled
type Updater interface {
	Update(frame Frame)
}

// Drawer is called once per frame while the node and its ancestors are enabled
type Drawer interface {
	Draw(frame Frame)
}

type Enabler interface {
	OnEnable(frame Frame)
}

type Disabler interface {
	OnDisable(frame Frame)
}

// Destroyer is called when the node is destroyed, after all its descendants
type Destroyer interface {
	OnDestroy(frame Frame)
}

type node struct {
	generation  uint32
	alive       bool
	initialized bool
	enabled     bool

	name     string
	kind     Kind
	parent   NodeID
	children []NodeID

	behavior  any
	transform *actor.Transform
}
