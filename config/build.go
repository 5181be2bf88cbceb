package config

import (
	"strings"

	"github.com/akmonengine/sapling"
	"github.com/akmonengine/sapling/actor"
	"github.com/akmonengine/sapling/log"
	"github.com/akmonengine/sapling/scene"
	"github.com/pkg/errors"
)

// Mesh builds the collision mesh described by the body
func (b BodyConfig) Mesh() (actor.CollisionMesh, error) {
	switch strings.ToLower(b.Shape) {
	case "", "point":
		return actor.PointMesh(), nil
	case "box":
		if b.Size.X() <= 0 || b.Size.Y() <= 0 || b.Size.Z() <= 0 {
			return nil, errors.Wrapf(ErrInvalidConfig, "box size must be positive, got %v", b.Size)
		}
		return actor.BoxMesh(b.Size.X(), b.Size.Y(), b.Size.Z()), nil
	case "sphere":
		if !(b.Radius > 0) {
			return nil, errors.Wrapf(ErrInvalidConfig, "sphere radius must be positive, got %v", b.Radius)
		}
		return actor.SphereMesh(b.Radius), nil
	default:
		return nil, errors.Wrapf(ErrUnknownShape, "%q", b.Shape)
	}
}

// Build validates the config and constructs the scene with its world and bodies.
func (c *Config) Build(logger log.Log) (*scene.Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	gravity := sapling.DefaultGravity
	if c.World.Gravity != nil {
		gravity = *c.World.Gravity
	}
	opts := []sapling.Option{sapling.WithLogger(logger.With(log.String("scene", c.Name)))}
	if c.World.Workers > 0 {
		opts = append(opts, sapling.WithWorkers(c.World.Workers))
	}
	world := sapling.NewWorld(gravity, opts...)

	s := scene.NewScene(c.Name, world, logger)
	tree := s.Tree()

	created := make(map[string]scene.NodeID, len(c.Objects))
	for _, object := range c.Objects {
		id := tree.NewGameObject(object.Name, nil)

		transform, err := tree.Transform(id)
		if err != nil {
			return nil, err
		}
		transform.Position = object.Position
		transform.Rotation = object.Rotation
		if object.Scale != nil {
			transform.Scale = *object.Scale
		}

		parent := s.Root()
		if object.Parent != "" {
			parent = created[object.Parent]
		}
		if _, err := s.AddChild(parent, id); err != nil {
			return nil, errors.Wrapf(err, "add %q", object.Name)
		}
		created[object.Name] = id

		if object.Body != nil {
			mesh, err := object.Body.Mesh()
			if err != nil {
				return nil, errors.Wrapf(err, "%q", object.Name)
			}
			_, err = s.Attach(id, scene.BodySpec{
				Mass:         object.Body.Mass,
				Mesh:         mesh,
				Static:       object.Body.Static,
				Trigger:      object.Body.Trigger,
				Velocity:     object.Body.Velocity,
				Acceleration: object.Body.Acceleration,
			})
			if err != nil {
				return nil, err
			}
		}

		if object.Disabled {
			if err := tree.SetEnabled(id, false); err != nil {
				return nil, errors.Wrapf(err, "disable %q", object.Name)
			}
		}
	}

	logger.Info("scene built",
		log.String("scene", c.Name),
		log.Int("objects", len(c.Objects)),
		log.Int("bodies", world.Len()))

	return s, nil
}
