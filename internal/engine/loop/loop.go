// Package loop drives per-frame animation and draw submission.
package loop

import (
	"errors"

	"github.com/Faultbox/lighthouse/internal/engine/camera"
	"github.com/Faultbox/lighthouse/internal/engine/lighting"
	"github.com/Faultbox/lighthouse/internal/engine/material"
	"github.com/Faultbox/lighthouse/internal/engine/model"
	"github.com/Faultbox/lighthouse/internal/engine/scene"
	"github.com/Faultbox/lighthouse/pkg/math"
)

// ErrNoCamera is returned by Tick when the scene has no active camera.
var ErrNoCamera = errors.New("scene has no camera")

// UpdateFunc mutates the camera and models for one frame.
// dt is the time since the previous frame in seconds.
type UpdateFunc func(dt float32, cam *camera.Camera, nodes *model.Arena)

// Frame is the per-frame state handed to the submitter before any draw.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	Light      lighting.Light
}

// Submitter receives draw calls. Submission is fire-and-forget.
type Submitter interface {
	Begin(f Frame)
	Draw(mesh model.GPUHandle, transform math.Mat4, mat *material.Material)
	End()
}

// Loop tracks frame timing for one scene. It is not safe for concurrent use;
// the frame host calls Tick once per presented frame.
type Loop struct {
	scene     *scene.Scene
	update    UpdateFunc
	submitter Submitter

	lastTimeStamp float64
	started       bool
	frames        uint64
}

// New creates a loop. update may be nil for a static scene.
func New(s *scene.Scene, update UpdateFunc, submitter Submitter) *Loop {
	return &Loop{
		scene:     s,
		update:    update,
		submitter: submitter,
	}
}

// Start seeds the frame clock. Without it the first Tick has a zero delta.
func (l *Loop) Start(timestampMs float64) {
	l.lastTimeStamp = timestampMs
	l.started = true
}

// Frames returns the number of frames submitted so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Tick advances one frame: it computes the delta since the previous call,
// runs the update callback, then submits every model in draw order using
// the camera's matrices as they are after the update.
func (l *Loop) Tick(timestampMs float64) error {
	if !l.started {
		l.Start(timestampMs)
	}
	dt := float32((timestampMs - l.lastTimeStamp) / 1000)
	l.lastTimeStamp = timestampMs

	cam := l.scene.Camera()
	if cam == nil {
		return ErrNoCamera
	}

	if l.update != nil {
		l.update(dt, cam, l.scene.Nodes)
	}

	frame := Frame{
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(),
		Eye:        cam.Location(),
	}
	if light := l.scene.Light(); light != nil {
		frame.Light = *light
	}

	l.submitter.Begin(frame)
	l.scene.Each(func(h model.Handle, m *model.Model) {
		l.submitter.Draw(m.Mesh, l.scene.Nodes.WorldTransform(h), m.Material)
	})
	l.submitter.End()

	l.frames++
	return nil
}
