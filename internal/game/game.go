// Package game hosts the frame loop: it owns the window, pumps input and
// presents one rendered island frame per iteration.
package game

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lighthouse/internal/assets"
	"github.com/Faultbox/lighthouse/internal/config"
	"github.com/Faultbox/lighthouse/internal/engine/audio"
	"github.com/Faultbox/lighthouse/internal/engine/debug"
	"github.com/Faultbox/lighthouse/internal/engine/input"
	"github.com/Faultbox/lighthouse/internal/engine/loop"
	"github.com/Faultbox/lighthouse/internal/engine/renderer"
	"github.com/Faultbox/lighthouse/internal/engine/window"
	"github.com/Faultbox/lighthouse/internal/island"
	"github.com/Faultbox/lighthouse/internal/logger"
)

// Title is the window title.
const Title = "Lighthouse"

// Game is the main viewer instance.
type Game struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	audio    *audio.Player
	shots    *debug.Screenshots

	island *island.Island
	loop   *loop.Loop
}

// New creates the window, uploads the island and prepares the frame loop.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}

	g.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Scene.AssetsDir),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.assets, err = openAssets(cfg.Scene)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.island, err = island.Build(cfg, float32(width)/float32(height), g.assets, g.renderer)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	g.loop = loop.New(g.island.Scene, g.island.Update, g.renderer)
	g.log = g.log.With(logger.Scene(island.SceneName))
	g.input = input.New()
	g.shots = debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "lighthouse")
	g.startAudio()

	g.log.Info("viewer initialized successfully")
	return g, nil
}

// openAssets opens the asset directory. With fallback meshes enabled a
// missing directory is tolerated and every model becomes a cube.
func openAssets(cfg config.SceneConfig) (*assets.Manager, error) {
	m, err := assets.NewDirManager(cfg.AssetsDir)
	if err == nil {
		return m, nil
	}
	if !cfg.FallbackMeshes {
		return nil, err
	}
	logger.Warn("asset dir unavailable, using fallback meshes", zap.Error(err))
	return assets.NewManager(os.DirFS(cfg.AssetsDir)), nil
}

// startAudio plays the ambient track. Sound is optional: failures are logged.
func (g *Game) startAudio() {
	track := g.config.Audio.Ambient
	if track == "" {
		return
	}

	p := audio.New(g.config.Audio.Volume)
	p.SetMuted(g.config.Audio.Muted)
	if err := p.Init(); err != nil {
		g.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	g.audio = p

	data, err := g.assets.Load(track)
	if err == nil {
		err = p.Play(track, data)
	}
	if err != nil {
		g.log.Warn("ambient track not played", zap.String("track", track), zap.Error(err))
	}
}

// Run starts the main loop and returns when the window is closed.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting frame loop")
	g.loop.Start(g.window.Ticks())

	for g.running {
		// 1. Process input
		if g.input.Update() {
			// Quit event received
			g.running = false
			break
		}
		g.handleEvents()
		if !g.running {
			break
		}

		// 2. Animate and render
		if err := g.loop.Tick(g.window.Ticks()); err != nil {
			return fmt.Errorf("frame %d: %w", g.loop.Frames(), err)
		}

		// 3. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			g.log.Debug("fps",
				logger.Frame(g.loop.Frames()),
				zap.Int("count", frameCount),
				zap.Duration("frame", elapsed/time.Duration(frameCount)),
				zap.Int("draws", g.renderer.DrawCount()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.resize()
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_F12:
				g.screenshot()
			case sdl.SCANCODE_M:
				if g.audio != nil {
					g.log.Info("audio", logger.Frame(g.loop.Frames()), zap.Bool("muted", g.audio.ToggleMute()))
				}
			}
		}
	}
}

// screenshot saves the last rendered frame.
func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	name, err := g.shots.Save(pixels, width, height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", logger.Frame(g.loop.Frames()), zap.String("file", name))
}

// resize keeps the projection and viewport in step with the drawable.
func (g *Game) resize() {
	width, height := g.window.DrawableSize()
	if err := g.island.Scene.Camera().Resize(width, height); err != nil {
		// Minimized windows report a zero height; keep the last projection.
		g.log.Debug("projection not updated", zap.Error(err))
		return
	}
	g.renderer.Resize(width, height)
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.assets != nil {
		hits, misses := g.assets.Stats()
		g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		g.assets.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
