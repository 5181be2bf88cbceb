package sapling

import (
	"slices"

	"github.com/akmonengine/sapling/actor"
	"github.com/akmonengine/sapling/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

const DEFAULT_WORKERS = 1

// DefaultGravity points down the Z axis, in m/s²
var DefaultGravity = mgl64.Vec3{0, 0, -9.81}

var (
	ErrNilObject       = errors.New("physics object is nil")
	ErrDuplicateObject = errors.New("physics object already registered")
)

// World steps the simulation of every registered PhysicsObject.
// It references the objects but does not own them.
type World struct {
	// Registered bodies, in registration order
	objects []*actor.PhysicsObject
	// Gravity acceleration (m/s², or N/kg)
	gravity mgl64.Vec3
	// Workers used by the integration phase
	Workers int

	Events Events

	logger log.Log
}

type Option func(*World)

// WithWorkers fans the integration phase out over n goroutines
func WithWorkers(n int) Option {
	return func(w *World) {
		w.Workers = n
	}
}

func WithLogger(logger log.Log) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorld creates an empty world. Gravity cannot be changed afterwards.
func NewWorld(gravity mgl64.Vec3, opts ...Option) *World {
	w := &World{
		gravity: gravity,
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
		logger:  log.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

// Objects returns a copy of the registry, in registration order
func (w *World) Objects() []*actor.PhysicsObject {
	return slices.Clone(w.objects)
}

func (w *World) Len() int {
	return len(w.objects)
}

// AddObject registers a body. The caller keeps ownership.
func (w *World) AddObject(object *actor.PhysicsObject) error {
	if object == nil {
		return ErrNilObject
	}
	if slices.Contains(w.objects, object) {
		return errors.Wrapf(ErrDuplicateObject, "%q", object.Name)
	}

	w.objects = append(w.objects, object)
	w.logger.Debug("physics object registered",
		log.String("object", object.Name),
		log.String("shape", object.Mesh().Shape().String()),
		log.Int("count", len(w.objects)))

	return nil
}

// RemoveObject unregisters a body, keeping the order of the others.
// It reports whether the body was registered.
func (w *World) RemoveObject(object *actor.PhysicsObject) bool {
	k := slices.Index(w.objects, object)
	if k == -1 {
		return false
	}

	w.objects = slices.Delete(w.objects, k, k+1)
	w.Events.forget(object)
	w.logger.Debug("physics object unregistered",
		log.String("object", object.Name),
		log.Int("count", len(w.objects)))

	return true
}

// Update runs one simulation step: every pair is tested and colliding pairs exchange
// velocities, then every body is integrated over dt. Collision events are dispatched last.
func (w *World) Update(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Phase 1: pairwise detection and response, on the positions at the start of the step
	w.detectCollisions()

	// Phase 2: integration
	w.integrate(dt)

	// Phase 3: events
	w.Events.flush()
}

func (w *World) detectCollisions() {
	n := len(w.objects)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := w.objects[i], w.objects[j]
			if !Collide(a, b) {
				continue
			}

			w.Events.recordCollision(a, b)
			if a.IsTrigger || b.IsTrigger {
				continue
			}
			Respond(a, b)
		}
	}
}

func (w *World) integrate(dt float64) {
	task(w.Workers, w.objects, func(object *actor.PhysicsObject) {
		object.Update(dt, w.gravity)
	})
}
