// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PhongVertexShader passes world-space position and normal to the fragment stage.
//
//go:embed phong.vert
var PhongVertexShader string

// PhongFragmentShader evaluates the lighting model per fragment.
//
//go:embed phong.frag
var PhongFragmentShader string

// GouraudVertexShader evaluates the lighting model per vertex.
//
//go:embed gouraud.vert
var GouraudVertexShader string

// GouraudFragmentShader writes the interpolated vertex color.
//
//go:embed gouraud.frag
var GouraudFragmentShader string
