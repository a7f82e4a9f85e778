package model

import "github.com/Faultbox/lighthouse/pkg/math"

// Every operation left-multiplies onto the current transform:
// new = delta * old. Calls do not commute.

// RotateAboutPivot rotates the model by angle radians about the given axis
// passing through pivot. The pivot is a fixed point of the rotation.
func (m *Model) RotateAboutPivot(pivot math.Vec3, axis math.Axis, angle float32) {
	toOrigin := math.Translate(-pivot.X, -pivot.Y, -pivot.Z)
	back := math.Translate(pivot.X, pivot.Y, pivot.Z)
	rot := math.Rotate(axis, angle)

	m.Transform = back.Mul(rot.Mul(toOrigin.Mul(m.Transform)))
}

// SetTranslation overwrites the translation column only. Rotation and
// scale are left untouched.
func (m *Model) SetTranslation(x, y, z float32) {
	m.Transform.SetTranslation(x, y, z)
}

// TranslateBy moves the model by (x, y, z) in parent space.
func (m *Model) TranslateBy(x, y, z float32) {
	m.Transform = math.Translate(x, y, z).Mul(m.Transform)
}

// Translation returns the translation column of the transform.
func (m *Model) Translation() math.Vec3 {
	return m.Transform.Translation()
}
