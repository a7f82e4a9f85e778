package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/lighthouse/pkg/math"
)

// Handle indexes a model inside an Arena.
type Handle int

// NoHandle marks the absence of a parent.
const NoHandle Handle = -1

var (
	ErrInvalidHandle = errors.New("invalid model handle")
	ErrHasParent     = errors.New("model already has a parent")
	ErrCycle         = errors.New("attachment would create a cycle")
)

// Arena owns models. Parent/child links are handles, never pointers.
type Arena struct {
	nodes []Model
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add stores m as a root node and returns its handle.
func (a *Arena) Add(m Model) Handle {
	m.parent = NoHandle
	m.children = nil
	a.nodes = append(a.nodes, m)
	return Handle(len(a.nodes) - 1)
}

// Len returns the number of models.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Valid reports whether h refers to a model in this arena.
func (a *Arena) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(a.nodes)
}

// Get returns the model for h, or nil if h is invalid.
// The pointer is only valid until the next Add.
func (a *Arena) Get(h Handle) *Model {
	if !a.Valid(h) {
		return nil
	}
	return &a.nodes[h]
}

// FindByName returns the first model with the given name.
func (a *Arena) FindByName(name string) (Handle, bool) {
	for i := range a.nodes {
		if a.nodes[i].Name == name {
			return Handle(i), true
		}
	}
	return NoHandle, false
}

// Attach makes child a child of parent.
func (a *Arena) Attach(parent, child Handle) error {
	if !a.Valid(parent) || !a.Valid(child) {
		return fmt.Errorf("attach %d to %d: %w", child, parent, ErrInvalidHandle)
	}
	if a.nodes[child].parent != NoHandle {
		return fmt.Errorf("attach %q: %w", a.nodes[child].Name, ErrHasParent)
	}
	for p := parent; p != NoHandle; p = a.nodes[p].parent {
		if p == child {
			return fmt.Errorf("attach %q under %q: %w", a.nodes[child].Name, a.nodes[parent].Name, ErrCycle)
		}
	}

	a.nodes[child].parent = parent
	a.nodes[parent].children = append(a.nodes[parent].children, child)
	return nil
}

// Detach turns child back into a root node.
func (a *Arena) Detach(child Handle) error {
	if !a.Valid(child) {
		return fmt.Errorf("detach %d: %w", child, ErrInvalidHandle)
	}
	parent := a.nodes[child].parent
	if parent == NoHandle {
		return nil
	}

	siblings := a.nodes[parent].children
	for i, h := range siblings {
		if h == child {
			a.nodes[parent].children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	a.nodes[child].parent = NoHandle
	return nil
}

// Parent returns the parent of h, if any.
func (a *Arena) Parent(h Handle) (Handle, bool) {
	if !a.Valid(h) || a.nodes[h].parent == NoHandle {
		return NoHandle, false
	}
	return a.nodes[h].parent, true
}

// Children returns the children of h in attachment order.
func (a *Arena) Children(h Handle) []Handle {
	if !a.Valid(h) {
		return nil
	}
	out := make([]Handle, len(a.nodes[h].children))
	copy(out, a.nodes[h].children)
	return out
}

// WorldTransform composes the transforms from the root down to h.
func (a *Arena) WorldTransform(h Handle) math.Mat4 {
	if !a.Valid(h) {
		return math.Identity()
	}
	world := a.nodes[h].Transform
	for p := a.nodes[h].parent; p != NoHandle; p = a.nodes[p].parent {
		world = a.nodes[p].Transform.Mul(world)
	}
	return world
}
