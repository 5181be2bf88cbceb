package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform holds the local spatial state of a GameObject.
// Rotation is expressed as Euler angles in radians.
type Transform struct {
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation mgl64.Vec3
}

// NewTransform creates an identity transform: origin, unit scale, no rotation
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Scale:    mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.Vec3{0, 0, 0},
	}
}

// GlobalPosition reports the world position.
// Parent transforms are not composed, so this is the local position.
func (t Transform) GlobalPosition() mgl64.Vec3 {
	return t.Position
}

// GlobalRotation reports the world rotation, which equals the local rotation.
func (t Transform) GlobalRotation() mgl64.Vec3 {
	return t.Rotation
}
