// Package model provides transformable scene nodes and the arena that owns them.
package model

import (
	"github.com/Faultbox/lighthouse/internal/engine/material"
	"github.com/Faultbox/lighthouse/pkg/math"
)

// GPUHandle references uploaded mesh data. The zero value means nothing was uploaded.
type GPUHandle struct {
	VAO        uint32
	IndexCount int32
}

// Valid reports whether the handle points at uploaded geometry.
func (h GPUHandle) Valid() bool {
	return h.VAO != 0 && h.IndexCount > 0
}

// Model is a drawable node. Transform is local-to-parent and accumulates
// every rotate/translate call in call order.
type Model struct {
	Name      string
	Transform math.Mat4
	Material  *material.Material
	Mesh      GPUHandle

	parent   Handle
	children []Handle
}

// New creates a model with an identity transform.
func New(name string, mat *material.Material, mesh GPUHandle) Model {
	return Model{
		Name:      name,
		Transform: math.Identity(),
		Material:  mat,
		Mesh:      mesh,
		parent:    NoHandle,
	}
}
