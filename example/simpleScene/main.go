package main

import (
	"fmt"

	"github.com/akmonengine/sapling"
	"github.com/akmonengine/sapling/actor"
	"github.com/akmonengine/sapling/log"
	"github.com/akmonengine/sapling/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// tracer prints the position of its GameObject every few frames
type tracer struct {
	every int
	frame int
}

func (t *tracer) Init(frame scene.Frame) {
	fmt.Printf("🌱 %s added to the scene at %v\n", frame.Tree.Name(frame.Self), frame.Transform().Position)
}

func (t *tracer) Update(frame scene.Frame) {
	t.frame++
}

func (t *tracer) Draw(frame scene.Frame) {
	if t.frame%t.every != 0 {
		return
	}
	p := frame.Transform().Position
	fmt.Printf("  [%3d] %-6s position (%.3f, %.3f, %.3f)\n", t.frame, frame.Tree.Name(frame.Self), p.X(), p.Y(), p.Z())
}

func (t *tracer) OnDestroy(frame scene.Frame) {
	fmt.Printf("🍂 %s destroyed\n", frame.Tree.Name(frame.Self))
}

// SetupScene creates a static floor, a falling ball and a sliding crate
func SetupScene() (*scene.Scene, scene.NodeID) {
	world := sapling.NewWorld(sapling.DefaultGravity)
	s := scene.NewScene("simple", world, log.NewNop())
	tree := s.Tree()

	floor := tree.NewGameObject("floor", nil)
	must(s.AddChild(s.Root(), floor))
	must(s.Attach(floor, scene.BodySpec{Mass: 1000, Mesh: actor.BoxMesh(20, 20, 1), Static: true}))

	ball := tree.NewGameObject("ball", &tracer{every: 10})
	transform, _ := tree.Transform(ball)
	transform.Position = mgl64.Vec3{0, 0, 5}
	must(s.AddChild(s.Root(), ball))
	must(s.Attach(ball, scene.BodySpec{Mass: 1, Mesh: actor.SphereMesh(0.5)}))

	crate := tree.NewGameObject("crate", &tracer{every: 30})
	transform, _ = tree.Transform(crate)
	transform.Position = mgl64.Vec3{-4, 0, 3}
	must(s.AddChild(s.Root(), crate))
	must(s.Attach(crate, scene.BodySpec{
		Mass:         2,
		Mesh:         actor.BoxMesh(1, 1, 1),
		Velocity:     mgl64.Vec3{2, 0, 0},
		Acceleration: mgl64.Vec3{0, 0, 9.81},
	}))

	return s, crate
}

func main() {
	s, crate := SetupScene()

	s.World().Events.Subscribe(sapling.COLLISION_ENTER, func(event sapling.Event) {
		a, b := event.Bodies()
		fmt.Printf("💥 frame %d: %s hit %s\n", s.Frames(), a.Name, b.Name)
	})

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 180

	for step := 0; step < maxSteps; step++ {
		s.Update(dt)
		s.Draw()

		if step == maxSteps/2 {
			index, _ := s.Tree().IndexOf(crate)
			must(0, s.Tree().RemoveChild(s.Root(), index))
			fmt.Printf("bodies left in the world: %d\n", s.World().Len())
		}
	}
}

func must[T any](_ T, err error) {
	if err != nil {
		panic(err)
	}
}
