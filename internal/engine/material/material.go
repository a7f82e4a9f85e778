// Package material describes surface shading parameters shared between models.
package material

import "fmt"

// Shader identifies the shading technique a material is drawn with.
type Shader int

const (
	Phong Shader = iota
	Gouraud
)

// String returns the shader name used for program lookup.
func (s Shader) String() string {
	switch s {
	case Phong:
		return "phong"
	case Gouraud:
		return "gouraud"
	default:
		return fmt.Sprintf("Shader(%d)", int(s))
	}
}

// ParseShader converts a shader name to a Shader.
func ParseShader(name string) (Shader, error) {
	switch name {
	case "phong":
		return Phong, nil
	case "gouraud", "gourad":
		return Gouraud, nil
	}
	return 0, fmt.Errorf("unknown shader %q", name)
}

// Options configures a new Material.
type Options struct {
	Shader              Shader
	AmbientCoefficient  float32
	DiffuseCoefficient  float32
	SpecularCoefficient float32
	AmbientColor        Color
	DiffuseColor        Color
	Shininess           float32
}

// Material is immutable once built; many models may point at the same one.
type Material struct {
	shader              Shader
	ambientColor        Color
	diffuseColor        Color
	ambientCoefficient  float32
	diffuseCoefficient  float32
	specularCoefficient float32
	shininess           float32
}

// New builds a material, clamping both colors into [0,1] per channel.
func New(opts Options) *Material {
	return &Material{
		shader:              opts.Shader,
		ambientColor:        opts.AmbientColor.Clamp(),
		diffuseColor:        opts.DiffuseColor.Clamp(),
		ambientCoefficient:  opts.AmbientCoefficient,
		diffuseCoefficient:  opts.DiffuseCoefficient,
		specularCoefficient: opts.SpecularCoefficient,
		shininess:           opts.Shininess,
	}
}

// Shader returns the shading technique the material is drawn with.
func (m *Material) Shader() Shader { return m.shader }

// AmbientColor returns the clamped ambient color.
func (m *Material) AmbientColor() Color { return m.ambientColor }

// DiffuseColor returns the clamped diffuse color.
func (m *Material) DiffuseColor() Color { return m.diffuseColor }

// AmbientCoefficient returns the ambient reflection weight.
func (m *Material) AmbientCoefficient() float32 { return m.ambientCoefficient }

// DiffuseCoefficient returns the diffuse reflection weight.
func (m *Material) DiffuseCoefficient() float32 { return m.diffuseCoefficient }

// SpecularCoefficient returns the specular reflection weight.
func (m *Material) SpecularCoefficient() float32 { return m.specularCoefficient }

// Shininess returns the specular exponent.
func (m *Material) Shininess() float32 { return m.shininess }
