package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestMeshConstructors(t *testing.T) {
	tests := []struct {
		name  string
		mesh  CollisionMesh
		shape ShapeType
	}{
		{name: "box", mesh: BoxMesh(2, 4, 6), shape: ShapeBox},
		{name: "sphere", mesh: SphereMesh(1.5), shape: ShapeSphere},
		{name: "point", mesh: PointMesh(), shape: ShapePoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mesh.Shape() != tt.shape {
				t.Errorf("Shape() = %v, want %v", tt.mesh.Shape(), tt.shape)
			}
		})
	}
}

func TestBoxMesh_HalfExtents(t *testing.T) {
	box, ok := BoxMesh(2, 4, 6).(Box)
	if !ok {
		t.Fatalf("BoxMesh() should build a Box")
	}

	want := mgl64.Vec3{1, 2, 3}
	if box.HalfExtents != want {
		t.Errorf("HalfExtents = %v, want %v", box.HalfExtents, want)
	}
}

func TestMeshConstructors_NegativeSizes(t *testing.T) {
	box := BoxMesh(-2, 4, -6).(Box)
	if want := (mgl64.Vec3{1, 2, 3}); box.HalfExtents != want {
		t.Errorf("HalfExtents = %v, want %v", box.HalfExtents, want)
	}

	sphere := SphereMesh(-1.5).(Sphere)
	if sphere.Radius != 1.5 {
		t.Errorf("Radius = %v, want 1.5", sphere.Radius)
	}

	aabb := sphere.AABB(mgl64.Vec3{})
	if aabb.Min != (mgl64.Vec3{-1.5, -1.5, -1.5}) || aabb.Max != (mgl64.Vec3{1.5, 1.5, 1.5}) {
		t.Errorf("AABB() = %v, want a non-inverted box", aabb)
	}
}

func TestSphereMesh_Radius(t *testing.T) {
	sphere, ok := SphereMesh(2.5).(Sphere)
	if !ok {
		t.Fatalf("SphereMesh() should build a Sphere")
	}
	if sphere.Radius != 2.5 {
		t.Errorf("Radius = %v, want 2.5", sphere.Radius)
	}
}

func TestShapeType_String(t *testing.T) {
	tests := map[ShapeType]string{
		ShapeSphere:   "sphere",
		ShapeBox:      "box",
		ShapePoint:    "point",
		ShapeType(42): "unknown",
	}
	for shape, want := range tests {
		if got := shape.String(); got != want {
			t.Errorf("ShapeType(%d).String() = %q, want %q", int(shape), got, want)
		}
	}
}

// =============================================================================
// AABB Tests
// =============================================================================

func TestMesh_AABB(t *testing.T) {
	center := mgl64.Vec3{1, 2, 3}

	tests := []struct {
		name    string
		mesh    CollisionMesh
		wantMin mgl64.Vec3
		wantMax mgl64.Vec3
	}{
		{
			name:    "sphere radius 1",
			mesh:    SphereMesh(1),
			wantMin: mgl64.Vec3{0, 1, 2},
			wantMax: mgl64.Vec3{2, 3, 4},
		},
		{
			name:    "box 2x4x6",
			mesh:    BoxMesh(2, 4, 6),
			wantMin: mgl64.Vec3{0, 0, 0},
			wantMax: mgl64.Vec3{2, 4, 6},
		},
		{
			name:    "point is degenerate",
			mesh:    PointMesh(),
			wantMin: center,
			wantMax: center,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aabb := tt.mesh.AABB(center)
			if !vec3Equal(aabb.Min, tt.wantMin, 1e-12) {
				t.Errorf("AABB().Min = %v, want %v", aabb.Min, tt.wantMin)
			}
			if !vec3Equal(aabb.Max, tt.wantMax, 1e-12) {
				t.Errorf("AABB().Max = %v, want %v", aabb.Max, tt.wantMax)
			}
		})
	}
}

func TestMesh_ValueSemantics(t *testing.T) {
	transform := NewTransform()
	body, err := NewPhysicsObject(&transform, 1, SphereMesh(1), false)
	if err != nil {
		t.Fatalf("NewPhysicsObject() error = %v", err)
	}

	sphere := body.Mesh().(Sphere)
	sphere.Radius = 10

	if got := body.Mesh().(Sphere).Radius; got != 1 {
		t.Errorf("mesh radius changed through a copy: got %v, want 1", got)
	}
}
