package math

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-5

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	matrices := []Mat4{
		Translate(1, 2, 3),
		RotateX(0.3),
		RotateY(-1.2).Mul(Translate(4, 0, -2)),
		Scale(2, 3, 4).Mul(RotateZ(2.5)),
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	}
	id := Identity()

	for _, m := range matrices {
		if got := id.Mul(m); got != m {
			t.Errorf("I * M should equal M: got %v, want %v", got, m)
		}
		if got := m.Mul(id); got != m {
			t.Errorf("M * I should equal M: got %v, want %v", got, m)
		}
	}
}

func TestMulOrder(t *testing.T) {
	// T * R applies the rotation first, then the translation.
	m := Translate(10, 0, 0).Mul(RotateZ(float32(math.Pi / 2)))
	got := m.TransformPoint(Vec3{1, 0, 0})

	if abs(got.X-10) > tolerance || abs(got.Y-1) > tolerance || abs(got.Z) > tolerance {
		t.Errorf("T*R applied to (1,0,0): got %v, want (10, 1, 0)", got)
	}

	// R * T translates first.
	m = RotateZ(float32(math.Pi / 2)).Mul(Translate(10, 0, 0))
	got = m.TransformPoint(Vec3{1, 0, 0})

	if abs(got.X) > tolerance || abs(got.Y-11) > tolerance || abs(got.Z) > tolerance {
		t.Errorf("R*T applied to (1,0,0): got %v, want (0, 11, 0)", got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v, want (5, 10, 15)", got)
	}
}

func TestSetTranslation(t *testing.T) {
	m := RotateY(0.7)
	rot := m

	m.SetTranslation(1, 2, 3)

	if got := m.Translation(); got != (Vec3{1, 2, 3}) {
		t.Errorf("Translation() = %v, want (1, 2, 3)", got)
	}
	for i := 0; i < 12; i++ {
		if m[i] != rot[i] {
			t.Errorf("SetTranslation changed element %d: got %f, want %f", i, m[i], rot[i])
		}
	}
}

func TestMulVec4(t *testing.T) {
	m := Translate(10, 20, 30)

	point := m.MulVec4(Vec4{1, 2, 3, 1})
	if point != (Vec4{11, 22, 33, 1}) {
		t.Errorf("MulVec4 point: got %v, want (11, 22, 33, 1)", point)
	}

	// Directions ignore translation.
	dir := m.MulVec4(Vec4{1, 2, 3, 0})
	if dir != (Vec4{1, 2, 3, 0}) {
		t.Errorf("MulVec4 direction: got %v, want (1, 2, 3, 0)", dir)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateRightHanded(t *testing.T) {
	quarter := float32(math.Pi / 2)
	tests := []struct {
		axis Axis
		in   Vec3
		want Vec3
	}{
		{AxisX, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{AxisY, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{AxisZ, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			got := Rotate(tt.axis, quarter).TransformPoint(tt.in)
			if got.Distance(tt.want) > tolerance {
				t.Errorf("Rotate(%v, pi/2) * %v = %v, want %v", tt.axis, tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateInverse(t *testing.T) {
	angles := []float32{0, 0.1, 1, -2.5, float32(math.Pi), 7}

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for _, angle := range angles {
			m := Rotate(axis, angle).Mul(Rotate(axis, -angle))
			if !m.ApproxEqual(Identity(), tolerance) {
				t.Errorf("Rotate(%v, %v) * Rotate(%v, %v) = %v, want identity", axis, angle, axis, -angle, m)
			}
		}
	}
}

func TestRotateUnknownAxisPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Rotate with unknown axis should panic")
		}
	}()
	Rotate(Axis(7), 1)
}

func TestParseAxis(t *testing.T) {
	for _, name := range []string{"x", "y", "z"} {
		axis, err := ParseAxis(name)
		if err != nil {
			t.Fatalf("ParseAxis(%q): %v", name, err)
		}
		if axis.String() != name {
			t.Errorf("ParseAxis(%q).String() = %q", name, axis.String())
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("ParseAxis(\"w\") should fail")
	}
}

func TestDetAndInverse(t *testing.T) {
	m := Translate(1, -2, 3).Mul(RotateY(0.4)).Mul(Scale(2, 2, 2))

	if det := m.Det(); abs(det-8) > 1e-4 {
		t.Errorf("Det() = %f, want 8", det)
	}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if got := m.Mul(inv); !got.ApproxEqual(Identity(), tolerance) {
		t.Errorf("M * M^-1 = %v, want identity", got)
	}
}

func TestInverseSingular(t *testing.T) {
	singular := []Mat4{
		{},
		Scale(1, 0, 1),
		Translate(4, 5, 6).Mul(Scale(0, 2, 2)),
	}

	for _, m := range singular {
		if m.Det() != 0 {
			t.Errorf("Det(%v) = %f, want 0", m, m.Det())
		}
		inv, err := m.Inverse()
		if !errors.Is(err, ErrSingularMatrix) {
			t.Errorf("Inverse(%v) error = %v, want ErrSingularMatrix", m, err)
		}
		if inv == Identity() {
			t.Errorf("Inverse(%v) returned identity for a singular matrix", m)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !Identity().IsFinite() {
		t.Error("identity should be finite")
	}
	m := Identity()
	m[5] = float32(math.NaN())
	if m.IsFinite() {
		t.Error("matrix with NaN should not be finite")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
