package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType tags the kind of a CollisionMesh
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	ShapePoint
)

func (s ShapeType) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePoint:
		return "point"
	default:
		return "unknown"
	}
}

// CollisionMesh is the shape attached to a PhysicsObject.
// The set of implementations is closed: Sphere, Box and Point.
// Meshes are values, so a mesh handed out by a PhysicsObject cannot alter the body.
type CollisionMesh interface {
	Shape() ShapeType
	// AABB returns the bounding box of the shape centered on center
	AABB(center mgl64.Vec3) AABB
	collisionMesh()
}

// Sphere is a ball of the given radius around the body position
type Sphere struct {
	Radius float64
}

func (Sphere) Shape() ShapeType { return ShapeSphere }
func (Sphere) collisionMesh()   {}

func (s Sphere) AABB(center mgl64.Vec3) AABB {
	// Sphere AABB is not affected by rotation, only by position
	return NewAABB(center, mgl64.Vec3{s.Radius, s.Radius, s.Radius})
}

// Box is an axis-aligned box defined by its half-extents (half-width, half-height, half-length)
type Box struct {
	HalfExtents mgl64.Vec3
}

func (Box) Shape() ShapeType { return ShapeBox }
func (Box) collisionMesh()   {}

func (b Box) AABB(center mgl64.Vec3) AABB {
	return NewAABB(center, b.HalfExtents)
}

// Point is a dimensionless shape located at the body position
type Point struct{}

func (Point) Shape() ShapeType { return ShapePoint }
func (Point) collisionMesh()   {}

func (Point) AABB(center mgl64.Vec3) AABB {
	return AABB{Min: center, Max: center}
}

// BoxMesh creates a box of full width w, height h and length l.
// Negative sizes are taken by absolute value.
func BoxMesh(w, h, l float64) CollisionMesh {
	return Box{HalfExtents: mgl64.Vec3{math.Abs(w) / 2, math.Abs(h) / 2, math.Abs(l) / 2}}
}

// SphereMesh creates a sphere of radius r, taken by absolute value
func SphereMesh(r float64) CollisionMesh {
	return Sphere{Radius: math.Abs(r)}
}

// PointMesh creates a point shape
func PointMesh() CollisionMesh {
	return Point{}
}
