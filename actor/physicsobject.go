package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

var (
	ErrInvalidMass  = errors.New("mass must be positive and finite")
	ErrNilTransform = errors.New("physics object needs a transform")
)

// PhysicsObject is a simulation body bound to a GameObject's transform.
// The transform is shared: moving the body moves the GameObject, and the other way around.
type PhysicsObject struct {
	// Name is only used to label logs and events
	Name string

	transform *Transform

	Velocity     mgl64.Vec3 // Linear velocity (m/s)
	Acceleration mgl64.Vec3 // Own acceleration, gravity excluded (m/s²)

	// IsTrigger bodies report contacts through events but take no collision response
	IsTrigger bool

	mass   float64
	mesh   CollisionMesh
	static bool
}

// NewPhysicsObject binds a body to transform. A nil mesh defaults to a Point.
func NewPhysicsObject(transform *Transform, mass float64, mesh CollisionMesh, static bool) (*PhysicsObject, error) {
	if transform == nil {
		return nil, ErrNilTransform
	}
	if !(mass > 0) || math.IsInf(mass, 1) {
		return nil, errors.Wrapf(ErrInvalidMass, "got %v", mass)
	}
	if mesh == nil {
		mesh = PointMesh()
	}

	return &PhysicsObject{
		transform: transform,
		mass:      mass,
		mesh:      mesh,
		static:    static,
	}, nil
}

func (o *PhysicsObject) Mass() float64 {
	return o.mass
}

func (o *PhysicsObject) Mesh() CollisionMesh {
	return o.mesh
}

func (o *PhysicsObject) IsStatic() bool {
	return o.static
}

// Transform returns the transform shared with the owning GameObject
func (o *PhysicsObject) Transform() *Transform {
	return o.transform
}

func (o *PhysicsObject) Position() mgl64.Vec3 {
	return o.transform.Position
}

func (o *PhysicsObject) SetPosition(position mgl64.Vec3) {
	o.transform.Position = position
}

// AABB returns the bounding box of the mesh at the current position
func (o *PhysicsObject) AABB() AABB {
	return o.mesh.AABB(o.transform.Position)
}

// Momentum returns mass * velocity
func (o *PhysicsObject) Momentum() mgl64.Vec3 {
	return o.Velocity.Mul(o.mass)
}

// Update advances the body by dt with the constant-acceleration equations:
// p += v*dt + a*dt²/2, v += a*dt, where a is the own acceleration plus gravity.
// Static bodies never move.
func (o *PhysicsObject) Update(dt float64, gravity mgl64.Vec3) {
	if o.static {
		return
	}

	acceleration := o.Acceleration.Add(gravity)
	displacement := o.Velocity.Mul(dt).Add(acceleration.Mul(dt * dt / 2))
	o.transform.Position = o.transform.Position.Add(displacement)
	o.Velocity = o.Velocity.Add(acceleration.Mul(dt))
}
