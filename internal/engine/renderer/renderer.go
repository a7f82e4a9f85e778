// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lighthouse/internal/assets"
	"github.com/Faultbox/lighthouse/internal/engine/loop"
	"github.com/Faultbox/lighthouse/internal/engine/material"
	"github.com/Faultbox/lighthouse/internal/engine/model"
	"github.com/Faultbox/lighthouse/internal/engine/shader"
	"github.com/Faultbox/lighthouse/internal/logger"
	"github.com/Faultbox/lighthouse/pkg/math"
)

// Vertex attribute locations shared by every program.
const (
	positionLocation = 0
	normalLocation   = 1
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor material.Color
}

// mesh tracks the GL objects behind one uploaded mesh.
type mesh struct {
	vao     uint32
	buffers [3]uint32 // positions, normals, indices
}

// Renderer owns the GL state for a frame and implements loop.Submitter.
type Renderer struct {
	config Config
	log    *zap.Logger

	programs *shader.Library
	meshes   []mesh

	current *shader.Program
	draws   int
	skipped int
	warned  bool
}

var _ loop.Submitter = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	c := cfg.ClearColor.Clamp()
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.programs, err = shader.NewLibrary()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader programs: %w", err)
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for i := range r.meshes {
		m := &r.meshes[i]
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(int32(len(m.buffers)), &m.buffers[0])
	}
	r.meshes = nil
	if r.programs != nil {
		r.programs.Close()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// CreateVertexBuffer uploads float data into a new static array buffer.
func CreateVertexBuffer(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	return vbo
}

// CreateIndexBuffer uploads 16-bit indices into a new static element buffer.
// The caller must have a vertex array bound for the binding to stick.
func CreateIndexBuffer(indices []uint16) uint32 {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	return ebo
}

// Upload copies a validated mesh to the GPU and returns the handle models draw with.
func (r *Renderer) Upload(m *assets.Mesh) (model.GPUHandle, error) {
	if err := m.Validate(); err != nil {
		return model.GPUHandle{}, err
	}
	indices := m.Indices()

	var gm mesh
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gm.buffers[0] = CreateVertexBuffer(m.Vertices)
	gl.VertexAttribPointer(positionLocation, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(positionLocation)

	gm.buffers[1] = CreateVertexBuffer(m.Normals)
	gl.VertexAttribPointer(normalLocation, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(normalLocation)

	gm.buffers[2] = CreateIndexBuffer(indices)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshes = append(r.meshes, gm)
	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", gm.vao),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", len(indices)),
	)
	return model.GPUHandle{VAO: gm.vao, IndexCount: int32(len(indices))}, nil
}

// Begin clears the frame and uploads the camera and light uniforms to every program.
func (r *Renderer) Begin(f loop.Frame) {
	r.current = nil
	r.draws = 0
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	intensity := f.Light.Uniforms()
	r.programs.Each(func(_ material.Shader, p *shader.Program) {
		gl.UseProgram(p.ID)
		gl.UniformMatrix4fv(p.View, 1, false, &f.View[0])
		gl.UniformMatrix4fv(p.Projection, 1, false, &f.Projection[0])
		gl.Uniform3f(p.Eye, f.Eye.X, f.Eye.Y, f.Eye.Z)
		gl.Uniform3f(p.LightPosition, f.Light.Position.X, f.Light.Position.Y, f.Light.Position.Z)
		gl.Uniform3fv(p.LightIntensity, 1, &intensity[0])
	})
}

// Draw issues one indexed draw. Models without geometry or material are skipped.
func (r *Renderer) Draw(h model.GPUHandle, transform math.Mat4, mat *material.Material) {
	if !h.Valid() || mat == nil {
		r.skipped++
		return
	}
	p, ok := r.programs.Get(mat.Shader())
	if !ok {
		r.skipped++
		return
	}
	if r.current != p {
		gl.UseProgram(p.ID)
		r.current = p
	}

	ambient, diffuse := mat.AmbientColor(), mat.DiffuseColor()
	coefficients := [3]float32{mat.AmbientCoefficient(), mat.DiffuseCoefficient(), mat.SpecularCoefficient()}

	gl.UniformMatrix4fv(p.Model, 1, false, transform.Ptr())
	gl.Uniform3fv(p.AmbientColor, 1, &ambient[0])
	gl.Uniform3fv(p.DiffuseColor, 1, &diffuse[0])
	gl.Uniform3fv(p.Coefficients, 1, &coefficients[0])
	gl.Uniform1f(p.Shininess, mat.Shininess())

	gl.BindVertexArray(h.VAO)
	gl.DrawElements(gl.TRIANGLES, h.IndexCount, gl.UNSIGNED_SHORT, nil)
	r.draws++
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	if r.skipped > 0 && !r.warned {
		r.log.Warn("skipped draws without geometry or material", zap.Int("count", r.skipped))
		r.warned = true
	}
}

// ReadPixels reads back the last presented frame as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.FRONT)
	defer gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// DrawCount returns the number of draws issued in the last frame.
func (r *Renderer) DrawCount() int {
	return r.draws
}
