package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"
)

// pcmWAV builds a mono 16-bit WAV file holding the given samples.
func pcmWAV(rate uint32, samples []int16) []byte {
	var buf bytes.Buffer
	dataLen := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, rate)
	binary.Write(&buf, binary.LittleEndian, rate*2)
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.lo, tt.hi)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNewPlayer(t *testing.T) {
	p := New(1.7)
	if p.Volume() != 1.0 {
		t.Errorf("volume = %f, want 1.0 (clamped)", p.Volume())
	}
	if p.Muted() {
		t.Error("new player should not be muted")
	}
	if p.Track() != "" {
		t.Errorf("new player track = %q, want empty", p.Track())
	}
}

func TestSetVolumeAndMute(t *testing.T) {
	p := New(0.6)

	p.SetVolume(0.5)
	if p.Volume() != 0.5 {
		t.Errorf("volume = %f, want 0.5", p.Volume())
	}
	p.SetVolume(-1.0)
	if p.Volume() != 0.0 {
		t.Errorf("volume = %f, want 0.0 (clamped)", p.Volume())
	}

	if !p.ToggleMute() || !p.Muted() {
		t.Error("ToggleMute should mute an unmuted player")
	}
	p.SetMuted(false)
	if p.Muted() {
		t.Error("SetMuted(false) should unmute")
	}
}

func TestPlayBeforeInit(t *testing.T) {
	p := New(1)
	err := p.Play("waves.wav", pcmWAV(44100, []int16{0, 1, 2}))
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before Init = %v, want ErrNotInitialized", err)
	}
	// Stop and Close are safe without a device.
	p.Stop()
	p.Close()
}

func TestDecodeLoopRejectsGarbage(t *testing.T) {
	if _, _, err := decodeLoop([]byte("not a wav file"), DefaultSampleRate); err == nil {
		t.Error("expected decode error for garbage data")
	}
}

func TestDecodeLoopRepeats(t *testing.T) {
	samples := []int16{1000, 2000, 3000, 4000}
	streamer, looped, err := decodeLoop(pcmWAV(uint32(DefaultSampleRate), samples), DefaultSampleRate)
	if err != nil {
		t.Fatalf("decodeLoop: %v", err)
	}
	defer streamer.Close()

	out := make([][2]float64, 3*len(samples)+1)
	n, ok := looped.Stream(out)
	if !ok || n != len(out) {
		t.Fatalf("Stream = (%d, %v), want (%d, true)", n, ok, len(out))
	}

	// Every period repeats the source.
	for i := len(samples); i < len(out); i++ {
		if out[i] != out[i%len(samples)] {
			t.Errorf("sample %d = %v, want %v", i, out[i], out[i%len(samples)])
		}
	}
	if out[0][0] <= 0 {
		t.Errorf("first sample = %v, want positive", out[0][0])
	}
}

func TestDecodeLoopRejectsEmptyTrack(t *testing.T) {
	if _, _, err := decodeLoop(pcmWAV(22050, nil), DefaultSampleRate); err == nil {
		t.Error("expected error for a track without samples")
	}
}

func TestDecodeLoopResampledRepeats(t *testing.T) {
	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = 8192
	}
	streamer, looped, err := decodeLoop(pcmWAV(22050, samples), DefaultSampleRate)
	if err != nil {
		t.Fatalf("decodeLoop: %v", err)
	}
	defer streamer.Close()

	// Ten source lengths at twice the rate crosses the loop point many times.
	out := make([][2]float64, 10000)
	type result struct {
		n  int
		ok bool
	}
	done := make(chan result, 1)
	go func() {
		n, ok := looped.Stream(out)
		done <- result{n, ok}
	}()

	var res result
	select {
	case res = <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Stream did not return at the loop point")
	}
	if !res.ok || res.n != len(out) {
		t.Fatalf("Stream = (%d, %v), want (%d, true)", res.n, res.ok, len(out))
	}

	for i, s := range out {
		if math.Abs(s[0]-0.25) > 1e-3 {
			t.Fatalf("sample %d = %v, want 0.25", i, s[0])
		}
	}

	// And it keeps going.
	if n, ok := looped.Stream(out[:100]); !ok || n != 100 {
		t.Errorf("second Stream = (%d, %v), want (100, true)", n, ok)
	}
}
