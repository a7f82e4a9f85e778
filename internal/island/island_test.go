package island

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lighthouse/internal/assets"
	"github.com/Faultbox/lighthouse/internal/config"
	"github.com/Faultbox/lighthouse/internal/engine/loop"
	"github.com/Faultbox/lighthouse/internal/engine/material"
	"github.com/Faultbox/lighthouse/internal/engine/model"
	"github.com/Faultbox/lighthouse/pkg/math"
)

const triangleJSON = `{"meshes":[{"vertices":[0,0,0,1,0,0,0,1,0],"normals":[0,0,1,0,0,1,0,0,1],"faces":[[0,1,2]]}]}`

// fakeUploader hands out sequential VAO ids.
type fakeUploader struct {
	uploaded []*assets.Mesh
	err      error
}

func (f *fakeUploader) Upload(m *assets.Mesh) (model.GPUHandle, error) {
	if f.err != nil {
		return model.GPUHandle{}, f.err
	}
	f.uploaded = append(f.uploaded, m)
	return model.GPUHandle{VAO: uint32(len(f.uploaded)), IndexCount: int32(len(m.Indices()))}, nil
}

type nopSubmitter struct{ draws int }

func (*nopSubmitter) Begin(loop.Frame) {}
func (s *nopSubmitter) Draw(model.GPUHandle, math.Mat4, *material.Material) {
	s.draws++
}
func (*nopSubmitter) End() {}

func allMeshes() fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, name := range ModelNames {
		fsys[name+".json"] = &fstest.MapFile{Data: []byte(triangleJSON)}
	}
	return fsys
}

func build(t *testing.T, cfg *config.Config, fsys fstest.MapFS) (*Island, *fakeUploader) {
	t.Helper()
	up := &fakeUploader{}
	isl, err := Build(cfg, 16.0/9.0, assets.NewManager(fsys), up)
	require.NoError(t, err)
	return isl, up
}

func TestMaterials(t *testing.T) {
	m := NewMaterials()

	assert.Equal(t, material.Gouraud, m.Lighthouse.Shader())
	assert.Equal(t, material.Phong, m.House.Shader())
	assert.Equal(t, material.Gouraud, m.Island.Shader())
	assert.Equal(t, material.Phong, m.Roof.Shader())

	assert.Equal(t, float32(92), m.Roof.Shininess())
	assert.Equal(t, float32(0.1), m.Island.SpecularCoefficient())
	assert.Equal(t, material.MustParseColor("#1AC6E1"), m.House.DiffuseColor())

	stand, ok := m.For("stand")
	require.True(t, ok)
	assert.Same(t, m.Lighthouse, stand)

	turbine, ok := m.For("turbine")
	require.True(t, ok)
	assert.Same(t, m.Roof, turbine)

	_, ok = m.For("boat")
	assert.False(t, ok)
}

func TestBuildDrawOrder(t *testing.T) {
	isl, up := build(t, config.Default(), allMeshes())

	assert.Len(t, up.uploaded, len(ModelNames))

	var names []string
	isl.Scene.Each(func(_ model.Handle, m *model.Model) {
		names = append(names, m.Name)
		assert.True(t, m.Mesh.Valid(), m.Name)
		assert.NotNil(t, m.Material, m.Name)
	})
	assert.Equal(t, ModelNames, names)

	assert.Equal(t, TurbineName, isl.Scene.Nodes.Get(isl.Turbine).Name)
}

func TestBuildCameraAndLight(t *testing.T) {
	isl, _ := build(t, config.Default(), allMeshes())

	cam := isl.Scene.Camera()
	require.NotNil(t, cam)
	assert.Equal(t, math.Vec3{X: 0, Y: 13, Z: -18}, cam.Location())
	assert.Equal(t, math.Vec3{X: 0, Y: 3.5, Z: 0}, cam.Target())
	assert.Equal(t, float32(0.5), cam.Near())
	assert.Equal(t, float32(100), cam.Far())

	light := isl.Scene.Light()
	require.NotNil(t, light)
	assert.Equal(t, math.Vec3{X: 3, Y: 12, Z: 0}, light.Position)
	assert.Equal(t, [3]float32{0.5, 0.8, 1}, light.Uniforms())
}

func TestBuildMissingMesh(t *testing.T) {
	fsys := allMeshes()
	delete(fsys, "roof.json")

	_, err := Build(config.Default(), 1, assets.NewManager(fsys), &fakeUploader{})
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Scene.FallbackMeshes = true
	isl, up := build(t, cfg, fsys)

	roof, ok := isl.Scene.Nodes.FindByName("roof")
	require.True(t, ok)
	assert.Equal(t, int32(36), isl.Scene.Nodes.Get(roof).Mesh.IndexCount)
	assert.Len(t, up.uploaded, len(ModelNames))
}

func TestBuildFallbackKeepsParseErrors(t *testing.T) {
	fsys := allMeshes()
	fsys["house.json"] = &fstest.MapFile{Data: []byte(`{"meshes":[]}`)}

	cfg := config.Default()
	cfg.Scene.FallbackMeshes = true
	_, err := Build(cfg, 1, assets.NewManager(fsys), &fakeUploader{})
	assert.ErrorIs(t, err, assets.ErrInvalidMesh)
}

func TestBuildUploadError(t *testing.T) {
	boom := errors.New("out of video memory")
	_, err := Build(config.Default(), 1, assets.NewManager(allMeshes()), &fakeUploader{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestBuildInvalidCamera(t *testing.T) {
	_, err := Build(config.Default(), 0, assets.NewManager(allMeshes()), &fakeUploader{})
	assert.ErrorIs(t, err, math.ErrInvalidFrustum)
}

func TestUpdateOrbitsCamera(t *testing.T) {
	isl, _ := build(t, config.Default(), allMeshes())
	cam := isl.Scene.Camera()

	isl.Update(0.5, cam, isl.Scene.Nodes)

	// -0.2 rad/s for half a second.
	want := math.RotateY(-0.1).TransformPoint(math.Vec3{X: 0, Y: 13, Z: -18})
	loc := cam.Location()
	assert.InDelta(t, want.X, loc.X, 1e-4)
	assert.InDelta(t, want.Y, loc.Y, 1e-4)
	assert.InDelta(t, want.Z, loc.Z, 1e-4)
	assert.Equal(t, math.Vec3{X: 0, Y: 3.5, Z: 0}, cam.Target())
}

func TestUpdateSpinsOnlyTheTurbine(t *testing.T) {
	isl, _ := build(t, config.Default(), allMeshes())
	nodes := isl.Scene.Nodes
	pivot := math.Vec3{X: -0.421, Y: 8.091, Z: 1.760}

	isl.Update(0.25, isl.Scene.Camera(), nodes)

	turbine := nodes.Get(isl.Turbine)
	assert.False(t, turbine.Transform.ApproxEqual(math.Identity(), 1e-6))

	// The hub stays put.
	hub := turbine.Transform.TransformPoint(pivot)
	assert.InDelta(t, pivot.X, hub.X, 1e-4)
	assert.InDelta(t, pivot.Y, hub.Y, 1e-4)
	assert.InDelta(t, pivot.Z, hub.Z, 1e-4)

	// -2 rad/s about Z for a quarter second.
	want := math.Translate(pivot.X, pivot.Y, pivot.Z).
		Mul(math.RotateZ(-0.5)).
		Mul(math.Translate(-pivot.X, -pivot.Y, -pivot.Z))
	assert.True(t, turbine.Transform.ApproxEqual(want, 1e-5))

	isl.Scene.Each(func(h model.Handle, m *model.Model) {
		if h != isl.Turbine {
			assert.Equal(t, math.Identity(), m.Transform, m.Name)
		}
	})
}

func TestUpdateDrivesLoop(t *testing.T) {
	isl, _ := build(t, config.Default(), allMeshes())
	sub := &nopSubmitter{}
	l := loop.New(isl.Scene, isl.Update, sub)

	l.Start(0)
	require.NoError(t, l.Tick(16))
	require.NoError(t, l.Tick(33))

	assert.Equal(t, 2*len(ModelNames), sub.draws)
	assert.NotEqual(t, math.Vec3{X: 0, Y: 13, Z: -18}, isl.Scene.Camera().Location())
}

func TestBuildRejectsBadAxis(t *testing.T) {
	cfg := config.Default()
	cfg.Animation.TurbineAxis = "w"
	_, err := Build(cfg, 1, assets.NewManager(allMeshes()), &fakeUploader{})
	assert.Error(t, err)
}
