// Package lighting provides the scene light model.
package lighting

import "github.com/Faultbox/lighthouse/pkg/math"

// Light is a point light with separate ambient, diffuse and specular intensities.
type Light struct {
	Position          math.Vec3
	AmbientIntensity  float32
	DiffuseIntensity  float32
	SpecularIntensity float32
}

// Uniforms returns the intensities packed as (ambient, diffuse, specular)
// for shader upload.
func (l Light) Uniforms() [3]float32 {
	return [3]float32{l.AmbientIntensity, l.DiffuseIntensity, l.SpecularIntensity}
}
