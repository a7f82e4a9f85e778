// Package scene provides the registry the render loop draws from:
// the active camera and light plus an ordered list of models.
package scene

import (
	"fmt"

	"github.com/Faultbox/lighthouse/internal/engine/camera"
	"github.com/Faultbox/lighthouse/internal/engine/lighting"
	"github.com/Faultbox/lighthouse/internal/engine/model"
)

// Scene references models by handle; it does not own geometry.
// It must only be touched from the frame host's thread.
type Scene struct {
	// Nodes owns the models referenced by the draw list.
	Nodes *model.Arena

	camera *camera.Camera
	light  *lighting.Light
	models []model.Handle
}

// New creates an empty scene backed by its own arena.
func New() *Scene {
	return NewWithArena(model.NewArena())
}

// NewWithArena creates an empty scene drawing from an existing arena.
func NewWithArena(nodes *model.Arena) *Scene {
	return &Scene{Nodes: nodes}
}

// SetCamera replaces the active camera.
func (s *Scene) SetCamera(c *camera.Camera) {
	s.camera = c
}

// Camera returns the active camera, or nil.
func (s *Scene) Camera() *camera.Camera {
	return s.camera
}

// SetLight replaces the active light.
func (s *Scene) SetLight(l *lighting.Light) {
	s.light = l
}

// Light returns the active light, or nil.
func (s *Scene) Light() *lighting.Light {
	return s.light
}

// AddModel appends h to the draw order. Duplicates are allowed and are
// drawn twice.
func (s *Scene) AddModel(h model.Handle) error {
	if !s.Nodes.Valid(h) {
		return fmt.Errorf("add model %d: %w", h, model.ErrInvalidHandle)
	}
	s.models = append(s.models, h)
	return nil
}

// Spawn stores m in the arena and appends it to the draw order.
func (s *Scene) Spawn(m model.Model) model.Handle {
	h := s.Nodes.Add(m)
	s.models = append(s.models, h)
	return h
}

// Models returns the draw order.
func (s *Scene) Models() []model.Handle {
	out := make([]model.Handle, len(s.models))
	copy(out, s.models)
	return out
}

// Each calls fn for every model in draw order.
func (s *Scene) Each(fn func(h model.Handle, m *model.Model)) {
	for _, h := range s.models {
		fn(h, s.Nodes.Get(h))
	}
}
