package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames = 60
	DefaultDT     = 1.0 / 60.0
)

var (
	ErrUnknownFormat = errors.New("unknown scene file format")
	ErrUnknownShape  = errors.New("unknown collision shape")
	ErrUnknownParent = errors.New("unknown parent object")
	ErrDuplicateName = errors.New("duplicate object name")
	ErrInvalidConfig = errors.New("invalid scene config")
)

// Config describes a scene, its physics world and its objects, in JSON or YAML.
type Config struct {
	Name    string         `json:"name" yaml:"name"`
	Frames  int            `json:"frames,omitempty" yaml:"frames,omitempty"`
	DT      float64        `json:"dt,omitempty" yaml:"dt,omitempty"`
	World   WorldConfig    `json:"world" yaml:"world"`
	Objects []ObjectConfig `json:"objects" yaml:"objects"`
}

type WorldConfig struct {
	// Gravity defaults to sapling.DefaultGravity
	Gravity *mgl64.Vec3 `json:"gravity,omitempty" yaml:"gravity,omitempty"`
	Workers int         `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// ObjectConfig is one GameObject. Parent names an object declared earlier in the list;
// empty means the scene root.
type ObjectConfig struct {
	Name     string      `json:"name" yaml:"name"`
	Parent   string      `json:"parent,omitempty" yaml:"parent,omitempty"`
	Position mgl64.Vec3  `json:"position" yaml:"position"`
	Scale    *mgl64.Vec3 `json:"scale,omitempty" yaml:"scale,omitempty"`
	Rotation mgl64.Vec3  `json:"rotation" yaml:"rotation"`
	Disabled bool        `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Body     *BodyConfig `json:"body,omitempty" yaml:"body,omitempty"`
}

type BodyConfig struct {
	Mass float64 `json:"mass" yaml:"mass"`
	// Shape is one of point, box or sphere; empty means point
	Shape string `json:"shape,omitempty" yaml:"shape,omitempty"`
	// Size is the full width, height and length of a box
	Size         mgl64.Vec3 `json:"size" yaml:"size"`
	Radius       float64    `json:"radius,omitempty" yaml:"radius,omitempty"`
	Static       bool       `json:"static,omitempty" yaml:"static,omitempty"`
	Trigger      bool       `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Velocity     mgl64.Vec3 `json:"velocity" yaml:"velocity"`
	Acceleration mgl64.Vec3 `json:"acceleration" yaml:"acceleration"`
}

// LoadJSON loads config from JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decode json scene")
	}
	return c.withDefaults(), nil
}

// LoadYAML loads config from YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decode yaml scene")
	}
	return c.withDefaults(), nil
}

// LoadFile picks the decoder from the file extension: .json, .yaml or .yml
func LoadFile(path string) (*Config, error) {
	var load func(io.Reader) (*Config, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		load = LoadJSON
	case ".yaml", ".yml":
		load = LoadYAML
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open scene")
	}
	defer f.Close()

	c, err := load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return c, nil
}

func (c *Config) withDefaults() *Config {
	if c.Frames == 0 {
		c.Frames = DefaultFrames
	}
	if c.DT == 0 {
		c.DT = DefaultDT
	}
	return c
}

// Validate checks names, parents, shapes and masses without building anything
func (c *Config) Validate() error {
	if c.Frames < 0 {
		return errors.Wrapf(ErrInvalidConfig, "frames must not be negative, got %d", c.Frames)
	}
	if !(c.DT > 0) {
		return errors.Wrapf(ErrInvalidConfig, "dt must be positive, got %v", c.DT)
	}
	if c.World.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.World.Workers)
	}

	declared := make(map[string]bool, len(c.Objects))
	for i, object := range c.Objects {
		if object.Name == "" {
			return errors.Wrapf(ErrInvalidConfig, "object #%d has no name", i)
		}
		if declared[object.Name] {
			return errors.Wrapf(ErrDuplicateName, "%q", object.Name)
		}
		if object.Parent != "" && !declared[object.Parent] {
			return errors.Wrapf(ErrUnknownParent, "%q for %q", object.Parent, object.Name)
		}
		if object.Body != nil {
			if !(object.Body.Mass > 0) {
				return errors.Wrapf(ErrInvalidConfig, "%q: mass must be positive, got %v", object.Name, object.Body.Mass)
			}
			if _, err := object.Body.Mesh(); err != nil {
				return errors.Wrapf(err, "%q", object.Name)
			}
		}
		declared[object.Name] = true
	}

	return nil
}
