package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lighthouse/internal/engine/camera"
	"github.com/Faultbox/lighthouse/internal/engine/lighting"
	"github.com/Faultbox/lighthouse/internal/engine/model"
	"github.com/Faultbox/lighthouse/pkg/math"
)

func TestSceneStartsEmpty(t *testing.T) {
	s := New()
	assert.Nil(t, s.Camera())
	assert.Nil(t, s.Light())
	assert.Empty(t, s.Models())
	assert.Equal(t, 0, s.Nodes.Len())
}

func TestSetCameraReplaces(t *testing.T) {
	s := New()
	first, err := camera.NewPerspective(math.Vec3{X: 0, Y: 1, Z: 5}, math.Vec3{}, 1, 0.1, 10)
	require.NoError(t, err)
	second, err := camera.NewOrthographic(math.Vec3{X: 0, Y: 1, Z: 5}, math.Vec3{}, 4, 4, 20)
	require.NoError(t, err)

	s.SetCamera(first)
	s.SetCamera(second)
	assert.Same(t, second, s.Camera())
}

func TestSetLightReplaces(t *testing.T) {
	s := New()
	s.SetLight(&lighting.Light{Position: math.Vec3{X: 3, Y: 12}, AmbientIntensity: 0.5})
	next := &lighting.Light{DiffuseIntensity: 0.8}
	s.SetLight(next)

	assert.Same(t, next, s.Light())
	assert.Equal(t, float32(0), s.Light().AmbientIntensity)
}

func TestAddModelKeepsInsertionOrder(t *testing.T) {
	s := New()
	names := []string{"lighthouse", "house", "island", "roof", "stand", "turbine"}
	for _, name := range names {
		h := s.Nodes.Add(model.New(name, nil, model.GPUHandle{}))
		require.NoError(t, s.AddModel(h))
	}

	var got []string
	s.Each(func(_ model.Handle, m *model.Model) {
		got = append(got, m.Name)
	})
	assert.Equal(t, names, got)
}

func TestAddModelAllowsDuplicates(t *testing.T) {
	s := New()
	h := s.Spawn(model.New("roof", nil, model.GPUHandle{}))
	require.NoError(t, s.AddModel(h))

	assert.Equal(t, []model.Handle{h, h}, s.Models())
	assert.Equal(t, 1, s.Nodes.Len())
}

func TestAddModelRejectsUnknownHandle(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.AddModel(model.Handle(3)), model.ErrInvalidHandle)
}

func TestSharedArena(t *testing.T) {
	nodes := model.NewArena()
	h := nodes.Add(model.New("island", nil, model.GPUHandle{}))

	s := NewWithArena(nodes)
	require.NoError(t, s.AddModel(h))
	nodes.Get(h).TranslateBy(1, 0, 0)

	var seen math.Vec3
	s.Each(func(_ model.Handle, m *model.Model) { seen = m.Translation() })
	assert.Equal(t, math.Vec3{X: 1}, seen)
}
