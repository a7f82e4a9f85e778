// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/lighthouse/internal/engine/material"
	"github.com/Faultbox/lighthouse/internal/logger"
	"github.com/Faultbox/lighthouse/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Scene     SceneConfig     `yaml:"scene"`
	Audio     AudioConfig     `yaml:"audio"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	Fullscreen    bool           `yaml:"fullscreen"`
	VSync         bool           `yaml:"vsync"`
	ClearColor    material.Color `yaml:"clear_color"`
	ScreenshotDir string         `yaml:"screenshot_dir"`
}

// CameraConfig holds the initial perspective camera.
type CameraConfig struct {
	Location math.Vec3 `yaml:"location"`
	Target   math.Vec3 `yaml:"target"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
}

// AnimationConfig holds per-second animation rates in radians.
type AnimationConfig struct {
	OrbitSpeed   float32   `yaml:"orbit_speed"`
	TurbineSpeed float32   `yaml:"turbine_speed"`
	TurbinePivot math.Vec3 `yaml:"turbine_pivot"`
	TurbineAxis  string    `yaml:"turbine_axis"`
}

// SceneConfig holds asset locations.
type SceneConfig struct {
	AssetsDir      string `yaml:"assets_dir"`
	FallbackMeshes bool   `yaml:"fallback_meshes"` // Use a cube for missing mesh files
}

// AudioConfig holds ambient sound settings.
type AudioConfig struct {
	Ambient string  `yaml:"ambient"` // WAV file in the assets dir, empty disables sound
	Volume  float64 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			ClearColor:    material.RGB(0.53, 0.78, 0.92),
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Location: math.Vec3{X: 0, Y: 13, Z: -18},
			Target:   math.Vec3{X: 0, Y: 3.5, Z: 0},
			Near:     0.5,
			Far:      100,
		},
		Animation: AnimationConfig{
			OrbitSpeed:   -0.2,
			TurbineSpeed: -2,
			TurbinePivot: math.Vec3{X: -0.421, Y: 8.091, Z: 1.760},
			TurbineAxis:  "z",
		},
		Scene: SceneConfig{
			AssetsDir:      "assets",
			FallbackMeshes: false,
		},
		Audio: AudioConfig{
			Ambient: "",
			Volume:  0.6,
			Muted:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail deep inside the renderer.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera: near %v far %v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Location == c.Camera.Target {
		return fmt.Errorf("camera: location equals target %v", c.Camera.Target)
	}
	if _, err := math.ParseAxis(c.Animation.TurbineAxis); err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio: volume %v outside [0,1]", c.Audio.Volume)
	}
	if c.Scene.AssetsDir == "" {
		return fmt.Errorf("scene: assets_dir is empty")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
