package math

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	// ErrDegenerateView is returned by LookAt when eye and target coincide
	// or when the viewing direction is parallel to up.
	ErrDegenerateView = errors.New("degenerate view")

	// ErrInvalidFrustum is returned when projection parameters violate their preconditions.
	ErrInvalidFrustum = errors.New("invalid frustum")

	// ErrSingularMatrix is returned by Inverse when the determinant is zero.
	ErrSingularMatrix = errors.New("singular matrix")
)

// degenerateEpsilon bounds the lengths treated as zero by LookAt.
const degenerateEpsilon = 1e-6

// Up is the world up direction used by cameras.
var Up = Vec3{0, 1, 0}

// LookAt returns a right-handed view matrix looking from eye to target.
// The camera looks down -Z in view space.
func LookAt(eye, target, up Vec3) (Mat4, error) {
	dir := target.Sub(eye)
	if dir.Length() < degenerateEpsilon {
		return Mat4{}, fmt.Errorf("%w: eye %v equals target", ErrDegenerateView, eye)
	}
	f := dir.Normalize()

	side := f.Cross(up)
	if side.Length() < degenerateEpsilon {
		return Mat4{}, fmt.Errorf("%w: direction %v parallel to up %v", ErrDegenerateView, f, up)
	}
	s := side.Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}, nil
}

// Perspective returns a symmetric perspective projection matrix.
// fovY is in radians, aspect is width/height. Depth maps to NDC [-1, 1]
// with near at -1 and far at +1.
func Perspective(fovY, aspect, near, far float32) (Mat4, error) {
	switch {
	case fovY <= 0 || fovY >= math32.Pi:
		return Mat4{}, fmt.Errorf("%w: field of view %v outside (0, pi)", ErrInvalidFrustum, fovY)
	case aspect <= 0:
		return Mat4{}, fmt.Errorf("%w: aspect ratio %v", ErrInvalidFrustum, aspect)
	case near <= 0 || far <= near:
		return Mat4{}, fmt.Errorf("%w: near %v far %v", ErrInvalidFrustum, near, far)
	}

	f := 1.0 / math32.Tan(fovY/2.0)
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}, nil
}

// Orthographic returns a symmetric orthographic projection of a box of the
// given extents centered at the view-space origin. Depth runs from -depth/2
// to +depth/2 along the viewing direction.
func Orthographic(width, height, depth float32) (Mat4, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return Mat4{}, fmt.Errorf("%w: box %vx%vx%v", ErrInvalidFrustum, width, height, depth)
	}
	return Ortho(-width/2, width/2, -height/2, height/2, -depth/2, depth/2), nil
}

// Ortho returns an orthographic projection matrix.
// left, right, bottom, top define the view frustum boundaries.
// near and far define the depth range.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}
