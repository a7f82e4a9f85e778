// Package audio plays the looping ambient soundtrack of a scene.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playback is requested before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Player loops a single ambient track.
type Player struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	track    string

	level float64 // 0.0 to 1.0
	muted bool
}

// New creates a player at the given volume level.
func New(level float64) *Player {
	return &Player{level: clamp(level, 0, 1)}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	p.sampleRate = DefaultSampleRate
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	p.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopInternal()
	if p.initialized {
		speaker.Clear()
	}
	p.initialized = false
}

// Play decodes WAV data and loops it until Stop or Close.
func (p *Player) Play(name string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}

	p.stopInternal()

	streamer, looped, err := decodeLoop(data, p.sampleRate)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	p.ctrl = &beep.Ctrl{Streamer: looped}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 10}
	p.applyVolume()

	p.streamer = streamer
	p.track = name

	speaker.Play(p.volume)
	return nil
}

// decodeLoop decodes WAV data and wraps it in an endless stream at rate.
// The source loops before resampling so the resampler never sees an end.
func decodeLoop(data []byte, rate beep.SampleRate) (beep.StreamSeekCloser, beep.Streamer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode wav: %w", err)
	}

	looped, err := beep.Loop2(streamer)
	if err != nil {
		streamer.Close()
		return nil, nil, fmt.Errorf("loop: %w", err)
	}
	if format.SampleRate != rate {
		looped = beep.Resample(4, format.SampleRate, rate, looped)
	}
	return streamer, looped, nil
}

// Stop ends playback of the current track.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopInternal()
}

func (p *Player) stopInternal() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()

	p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.track = ""
}

// SetVolume sets the volume level (0.0 to 1.0).
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = clamp(level, 0, 1)
	p.applyVolume()
}

// Volume returns the volume level.
func (p *Player) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// SetMuted silences playback without stopping the track.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.applyVolume()
}

// ToggleMute flips the mute state and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.applyVolume()
	return p.muted
}

// Muted reports whether playback is silenced.
func (p *Player) Muted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.muted
}

// Track returns the name of the playing track, or "".
func (p *Player) Track() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.track
}

// applyVolume pushes level and mute state to the effect. Caller holds mu.
func (p *Player) applyVolume() {
	if p.volume == nil {
		return
	}
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Silent = p.muted || p.level <= 0
	p.volume.Volume = volumeToDb(p.level) / 20 // Base 10: 20 dB per unit
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
