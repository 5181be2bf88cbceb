package scene

import "github.com/pkg/errors"

var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrIndexOutOfRange = errors.New("child index out of range")
	ErrAlreadyParented = errors.New("node already has a parent")
	ErrCycle           = errors.New("node cannot be a child of itself or of its descendants")
	ErrStateUnchanged  = errors.New("node already in the requested state")
	ErrNotRoot         = errors.New("node is attached to a parent")
	ErrNotGameObject   = errors.New("node is not a game object")
	ErrNoBody          = errors.New("node has no physics body")
	ErrBodyAttached    = errors.New("node already has a physics body")
)
