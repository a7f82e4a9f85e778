// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/lighthouse/pkg/math"
)

// FieldOfView is the fixed vertical field of view of perspective cameras (45 degrees).
const FieldOfView = math32.Pi / 4

// ErrUnsupported is returned when an operation does not apply to the camera's projection kind.
var ErrUnsupported = errors.New("unsupported by camera kind")

// Kind selects the projection model. It is fixed at construction.
type Kind int

const (
	Perspective Kind = iota
	Orthographic
)

func (k Kind) String() string {
	switch k {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// perspectiveParams is the payload of a perspective camera.
type perspectiveParams struct {
	Near, Far float32
}

// orthographicParams is the payload of an orthographic camera.
type orthographicParams struct {
	Width, Height, Depth float32
}

// Camera holds a location/target pair and the matrices derived from it.
// The view matrix is recomputed by every method that moves the camera.
type Camera struct {
	kind Kind

	location math.Vec3
	target   math.Vec3

	view       math.Mat4
	projection math.Mat4

	persp perspectiveParams
	ortho orthographicParams
}

// NewPerspective creates a perspective camera with a 45 degree vertical field of view.
func NewPerspective(location, target math.Vec3, aspect, near, far float32) (*Camera, error) {
	view, err := math.LookAt(location, target, math.Up)
	if err != nil {
		return nil, fmt.Errorf("camera view: %w", err)
	}
	projection, err := math.Perspective(FieldOfView, aspect, near, far)
	if err != nil {
		return nil, fmt.Errorf("camera projection: %w", err)
	}

	return &Camera{
		kind:       Perspective,
		location:   location,
		target:     target,
		view:       view,
		projection: projection,
		persp:      perspectiveParams{Near: near, Far: far},
	}, nil
}

// NewOrthographic creates an orthographic camera projecting a box of the given extents.
func NewOrthographic(location, target math.Vec3, width, height, depth float32) (*Camera, error) {
	view, err := math.LookAt(location, target, math.Up)
	if err != nil {
		return nil, fmt.Errorf("camera view: %w", err)
	}
	projection, err := math.Orthographic(width, height, depth)
	if err != nil {
		return nil, fmt.Errorf("camera projection: %w", err)
	}

	return &Camera{
		kind:       Orthographic,
		location:   location,
		target:     target,
		view:       view,
		projection: projection,
		ortho:      orthographicParams{Width: width, Height: height, Depth: depth},
	}, nil
}

// Kind returns the projection kind.
func (c *Camera) Kind() Kind { return c.kind }

// Location returns the camera position in world space.
func (c *Camera) Location() math.Vec3 { return c.location }

// Target returns the point the camera looks at.
func (c *Camera) Target() math.Vec3 { return c.target }

// ViewMatrix returns the look-at matrix for the current location and target.
func (c *Camera) ViewMatrix() math.Mat4 { return c.view }

// ProjectionMatrix returns the current projection matrix.
func (c *Camera) ProjectionMatrix() math.Mat4 { return c.projection }

// Near returns the near plane distance of a perspective camera, or zero.
func (c *Camera) Near() float32 { return c.persp.Near }

// Far returns the far plane distance of a perspective camera, or zero.
func (c *Camera) Far() float32 { return c.persp.Far }

// UpdateProjection recomputes the perspective projection for a new aspect ratio.
// Near and far stay unchanged. Orthographic cameras return ErrUnsupported.
func (c *Camera) UpdateProjection(aspect float32) error {
	if c.kind != Perspective {
		return fmt.Errorf("update projection on %s camera: %w", c.kind, ErrUnsupported)
	}

	projection, err := math.Perspective(FieldOfView, aspect, c.persp.Near, c.persp.Far)
	if err != nil {
		return fmt.Errorf("camera projection: %w", err)
	}
	c.projection = projection
	return nil
}

// Resize updates the projection for a viewport of the given pixel size.
func (c *Camera) Resize(width, height int) error {
	if height <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, math.ErrInvalidFrustum)
	}
	return c.UpdateProjection(float32(width) / float32(height))
}

// Orbit rotates the location by angle radians about the world Y axis through
// the origin (not through the target) and rebuilds the view matrix.
// The target is left untouched. If the new view would be degenerate the
// camera is unchanged and the error is returned.
func (c *Camera) Orbit(angle float32) error {
	location := math.RotateY(angle).MulVec4(c.location.Direction()).Vec3()

	view, err := math.LookAt(location, c.target, math.Up)
	if err != nil {
		return fmt.Errorf("orbit camera: %w", err)
	}

	c.location = location
	c.view = view
	return nil
}

// MoveTo places the camera at a new location, keeping the target.
func (c *Camera) MoveTo(location math.Vec3) error {
	view, err := math.LookAt(location, c.target, math.Up)
	if err != nil {
		return fmt.Errorf("move camera: %w", err)
	}

	c.location = location
	c.view = view
	return nil
}

// LookAt points the camera at a new target, keeping its location.
func (c *Camera) LookAt(target math.Vec3) error {
	view, err := math.LookAt(c.location, target, math.Up)
	if err != nil {
		return fmt.Errorf("retarget camera: %w", err)
	}

	c.target = target
	c.view = view
	return nil
}
