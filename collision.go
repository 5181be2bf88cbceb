package sapling

import (
	"github.com/akmonengine/sapling/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Collide reports whether the meshes of two bodies overlap at their current positions
func Collide(a, b *actor.PhysicsObject) bool {
	return Intersects(a.Mesh(), a.Position(), b.Mesh(), b.Position())
}

// Intersects tests two meshes centered on posA and posB. Boundaries count as contact.
//
// Pairs are put in a canonical order first (Point, then Box, then Sphere), so that
// only six tests exist. Unknown combinations report no collision.
func Intersects(meshA actor.CollisionMesh, posA mgl64.Vec3, meshB actor.CollisionMesh, posB mgl64.Vec3) bool {
	if meshA == nil || meshB == nil {
		return false
	}
	if meshA.Shape() < meshB.Shape() {
		meshA, meshB = meshB, meshA
		posA, posB = posB, posA
	}

	switch a := meshA.(type) {
	case actor.Point:
		switch b := meshB.(type) {
		case actor.Point:
			return posA == posB
		case actor.Box:
			return b.AABB(posB).ContainsPoint(posA)
		case actor.Sphere:
			return distanceSquared(posA, posB) <= b.Radius*b.Radius
		}
	case actor.Box:
		switch b := meshB.(type) {
		case actor.Box:
			return a.AABB(posA).Overlaps(b.AABB(posB))
		case actor.Sphere:
			closest := a.AABB(posA).ClosestPoint(posB)
			return distanceSquared(closest, posB) <= b.Radius*b.Radius
		}
	case actor.Sphere:
		if b, ok := meshB.(actor.Sphere); ok {
			reach := a.Radius + b.Radius
			return distanceSquared(posA, posB) <= reach*reach
		}
	}

	return false
}

func distanceSquared(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Respond applies a one-dimensional elastic collision to the full velocity vectors of a and b.
// There is no contact normal: total momentum is conserved, and static bodies take part
// in the exchange with their finite mass even though they never move.
func Respond(a, b *actor.PhysicsObject) {
	a.Velocity, b.Velocity = ElasticVelocities(a.Mass(), a.Velocity, b.Mass(), b.Velocity)
}

// ElasticVelocities returns the velocities after an elastic collision between
// a body of mass m1 moving at v1 and a body of mass m2 moving at v2.
func ElasticVelocities(m1 float64, v1 mgl64.Vec3, m2 float64, v2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	total := m1 + m2
	// velocity of the center of mass
	center := v1.Mul(m1).Add(v2.Mul(m2)).Mul(1 / total)

	newV1 := center.Add(v2.Sub(v1).Mul(m2 / total))
	newV2 := center.Add(v1.Sub(v2).Mul(m1 / total))

	return newV1, newV2
}
