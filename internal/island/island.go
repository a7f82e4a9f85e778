// Package island assembles the lighthouse island scene and animates it.
package island

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Faultbox/lighthouse/internal/assets"
	"github.com/Faultbox/lighthouse/internal/config"
	"github.com/Faultbox/lighthouse/internal/engine/camera"
	"github.com/Faultbox/lighthouse/internal/engine/lighting"
	"github.com/Faultbox/lighthouse/internal/engine/material"
	"github.com/Faultbox/lighthouse/internal/engine/model"
	"github.com/Faultbox/lighthouse/internal/engine/scene"
	"github.com/Faultbox/lighthouse/internal/logger"
	"github.com/Faultbox/lighthouse/pkg/math"
)

// ModelNames lists the island meshes in draw order.
var ModelNames = []string{"lighthouse", "house", "island", "roof", "stand", "turbine"}

// SceneName tags everything logged about the island.
const SceneName = "lighthouse-island"

// TurbineName is the model spun about its hub every frame.
const TurbineName = "turbine"

// MeshSource imports mesh data by name.
type MeshSource interface {
	ImportMesh(name string) (*assets.Mesh, error)
}

// Uploader copies mesh data to the GPU.
type Uploader interface {
	Upload(m *assets.Mesh) (model.GPUHandle, error)
}

// Materials are the four surfaces the island is painted with.
type Materials struct {
	Lighthouse *material.Material
	House      *material.Material
	Island     *material.Material
	Roof       *material.Material
}

// NewMaterials returns the island palette.
func NewMaterials() Materials {
	return Materials{
		Lighthouse: material.New(material.Options{
			Shader:              material.Gouraud,
			AmbientCoefficient:  0.6,
			DiffuseCoefficient:  0.9,
			SpecularCoefficient: 0.8,
			AmbientColor:        material.MustParseColor("#85BCBE"),
			DiffuseColor:        material.MustParseColor("#B2DDCC"),
			Shininess:           80,
		}),
		House: material.New(material.Options{
			Shader:              material.Phong,
			AmbientCoefficient:  0.2,
			DiffuseCoefficient:  0.9,
			SpecularCoefficient: 1,
			AmbientColor:        material.MustParseColor("#8B6A8D"),
			DiffuseColor:        material.MustParseColor("#1AC6E1"),
			Shininess:           80,
		}),
		Island: material.New(material.Options{
			Shader:              material.Gouraud,
			AmbientCoefficient:  0.8,
			DiffuseCoefficient:  0.6,
			SpecularCoefficient: 0.1,
			AmbientColor:        material.MustParseColor("#00E069"),
			DiffuseColor:        material.MustParseColor("#00F069"),
			Shininess:           10,
		}),
		Roof: material.New(material.Options{
			Shader:              material.Phong,
			AmbientCoefficient:  0.8,
			DiffuseCoefficient:  0.6,
			SpecularCoefficient: 1,
			AmbientColor:        material.MustParseColor("#ED4960"),
			DiffuseColor:        material.MustParseColor("#FF3957"),
			Shininess:           92,
		}),
	}
}

// For returns the material a model is drawn with. The stand shares the
// lighthouse surface and the turbine shares the roof.
func (m Materials) For(name string) (*material.Material, bool) {
	switch name {
	case "lighthouse", "stand":
		return m.Lighthouse, true
	case "house":
		return m.House, true
	case "island":
		return m.Island, true
	case "roof", "turbine":
		return m.Roof, true
	}
	return nil, false
}

// NewLight returns the single point light above the island.
func NewLight() *lighting.Light {
	return &lighting.Light{
		Position:          math.Vec3{X: 3, Y: 12, Z: 0},
		AmbientIntensity:  0.5,
		DiffuseIntensity:  0.8,
		SpecularIntensity: 1,
	}
}

// Island is the built scene plus the state its animation needs.
type Island struct {
	Scene   *scene.Scene
	Turbine model.Handle

	orbitSpeed   float32
	turbineSpeed float32
	pivot        math.Vec3
	axis         math.Axis

	log *zap.Logger
}

// Build imports and uploads every island mesh, then wires camera and light.
// Missing mesh files become cubes when fallback meshes are enabled.
func Build(cfg *config.Config, aspect float32, src MeshSource, up Uploader) (*Island, error) {
	axis, err := math.ParseAxis(cfg.Animation.TurbineAxis)
	if err != nil {
		return nil, fmt.Errorf("turbine axis: %w", err)
	}

	isl := &Island{
		Scene:        scene.New(),
		Turbine:      model.NoHandle,
		orbitSpeed:   cfg.Animation.OrbitSpeed,
		turbineSpeed: cfg.Animation.TurbineSpeed,
		pivot:        cfg.Animation.TurbinePivot,
		axis:         axis,
		log:          logger.Named("island", logger.Scene(SceneName)),
	}

	materials := NewMaterials()
	for _, name := range ModelNames {
		mesh, err := src.ImportMesh(name)
		if err != nil {
			if !cfg.Scene.FallbackMeshes || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("import %s: %w", name, err)
			}
			isl.log.Warn("mesh missing, drawing a cube", zap.String("model", name))
			mesh = assets.Cube()
		}

		handle, err := up.Upload(mesh)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", name, err)
		}

		mat, _ := materials.For(name)
		h := isl.Scene.Spawn(model.New(name, mat, handle))
		if name == TurbineName {
			isl.Turbine = h
		}
	}

	cam, err := camera.NewPerspective(cfg.Camera.Location, cfg.Camera.Target, aspect, cfg.Camera.Near, cfg.Camera.Far)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	isl.Scene.SetCamera(cam)
	isl.Scene.SetLight(NewLight())

	isl.log.Info("island built",
		zap.Int("models", len(isl.Scene.Models())),
		zap.Float32("aspect", aspect),
	)
	return isl, nil
}

// Update orbits the camera and spins the turbine about its hub.
// It satisfies loop.UpdateFunc.
func (i *Island) Update(dt float32, cam *camera.Camera, nodes *model.Arena) {
	if err := cam.Orbit(i.orbitSpeed * dt); err != nil {
		i.log.Debug("orbit skipped", zap.Error(err))
	}

	if turbine := nodes.Get(i.Turbine); turbine != nil {
		turbine.RotateAboutPivot(i.pivot, i.axis, i.turbineSpeed*dt)
	}
}
