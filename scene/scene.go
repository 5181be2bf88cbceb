package scene

import (
	"github.com/akmonengine/sapling"
	"github.com/akmonengine/sapling/actor"
	"github.com/akmonengine/sapling/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Scene is the traversal root of one game screen. It owns its node tree and a physics
// world, stepped by the root node before the rest of the tree is updated.
type Scene struct {
	tree   *Tree
	root   NodeID
	world  *sapling.World
	bodies map[NodeID]*actor.PhysicsObject
	frames uint64
	logger log.Log
}

// BodySpec describes the physics body attached to a GameObject
type BodySpec struct {
	Mass float64
	// Mesh defaults to a point
	Mesh         actor.CollisionMesh
	Static       bool
	Trigger      bool
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
}

// sceneRoot is the behavior of the scene root node
type sceneRoot struct {
	world *sapling.World
}

func (r *sceneRoot) Update(frame Frame) {
	r.world.Update(frame.DeltaTime)
}

// NewScene creates a scene. A nil world is replaced by an empty world under DefaultGravity.
func NewScene(name string, world *sapling.World, logger log.Log) *Scene {
	if logger == nil {
		logger = log.NewNop()
	}
	logger = logger.With(log.String("scene", name))
	if world == nil {
		world = sapling.NewWorld(sapling.DefaultGravity, sapling.WithLogger(logger))
	}

	s := &Scene{
		tree:   NewTree(logger),
		world:  world,
		bodies: make(map[NodeID]*actor.PhysicsObject),
		logger: logger,
	}
	s.root = s.tree.newNode(name, KindScene, &sceneRoot{world: world}, nil)
	s.tree.OnDestroy(s.detach)

	return s
}

func (s *Scene) Name() string {
	return s.tree.Name(s.root)
}

func (s *Scene) Tree() *Tree {
	return s.tree
}

func (s *Scene) Root() NodeID {
	return s.root
}

func (s *Scene) World() *sapling.World {
	return s.world
}

// Frames returns how many times Update ran
func (s *Scene) Frames() uint64 {
	return s.frames
}

// Update steps the physics world, then updates the enabled nodes. dt is in seconds.
func (s *Scene) Update(dt float64) {
	s.frames++
	s.tree.Update(s.root, dt)
}

// Draw runs the Draw hooks of the enabled nodes
func (s *Scene) Draw() {
	s.tree.Draw(s.root)
}

// AddChild attaches child under parent; use Root() to attach at the top level
func (s *Scene) AddChild(parent, child NodeID) (int, error) {
	return s.tree.AddChild(parent, child)
}

// Attach creates a physics body bound to the transform of a GameObject and registers it
// in the world. The body is unregistered when the GameObject is destroyed.
func (s *Scene) Attach(id NodeID, spec BodySpec) (*actor.PhysicsObject, error) {
	transform, err := s.tree.Transform(id)
	if err != nil {
		return nil, err
	}
	if _, ok := s.bodies[id]; ok {
		return nil, errors.Wrapf(ErrBodyAttached, "%q", s.tree.Name(id))
	}

	body, err := actor.NewPhysicsObject(transform, spec.Mass, spec.Mesh, spec.Static)
	if err != nil {
		return nil, errors.Wrapf(err, "attach body to %q", s.tree.Name(id))
	}
	body.Name = s.tree.Name(id)
	body.IsTrigger = spec.Trigger
	body.Velocity = spec.Velocity
	body.Acceleration = spec.Acceleration

	if err := s.world.AddObject(body); err != nil {
		return nil, err
	}
	s.bodies[id] = body

	return body, nil
}

// Body returns the physics body attached to a GameObject
func (s *Scene) Body(id NodeID) (*actor.PhysicsObject, error) {
	body, ok := s.bodies[id]
	if !ok {
		return nil, errors.Wrapf(ErrNoBody, "%q", s.tree.Name(id))
	}
	return body, nil
}

func (s *Scene) detach(id NodeID) {
	body, ok := s.bodies[id]
	if !ok {
		return
	}

	s.world.RemoveObject(body)
	delete(s.bodies, id)
}
