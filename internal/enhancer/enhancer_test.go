package enhancer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
)

func newTestEnhancer(dir string) Enhancer {
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Enhanced: filepath.Join(dir, "enhanced_files"),
		},
		Enhancement: config.EnhancementConfig{
			Enabled:           true,
			MaxIterations:     6,
			SampleSeconds:     30,
			CorrelationWeight: 0.5,
			ContrastWeight:    0.5,
		},
	}
	return New(cfg, logger.New("error"))
}

func writeTestWAV(t *testing.T, path string) []float64 {
	t.Helper()
	samples := noisySine(440, 8000, 0.25)
	if err := audio.SaveWAV(path, samples, 8000); err != nil {
		t.Fatalf("write test audio: %v", err)
	}
	return samples
}

func TestOptimizeReturnsGridParams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meeting.wav")
	writeTestWAV(t, path)

	e := newTestEnhancer(dir)
	h := audio.NewHandle(path, 8000, 1, 0.25)

	p, err := e.Optimize(context.Background(), h)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	found := false
	for _, c := range candidates(6) {
		if p == c {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Optimize returned %+v, not a grid candidate", p)
	}
	if len(h.History) != 1 {
		t.Fatalf("Optimize touched the handle: history grew to %d entries", len(h.History))
	}
}

func TestOptimizeLoadError(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnhancer(dir)
	h := audio.NewHandle(filepath.Join(dir, "missing.wav"), 8000, 1, 0)

	_, err := e.Optimize(context.Background(), h)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var ioErr *audio.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error %v does not wrap *audio.IOError", err)
	}
}

func TestApplyWritesEnhancedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meeting.wav")
	original := writeTestWAV(t, path)

	e := newTestEnhancer(dir)
	h := audio.NewHandle(path, 8000, 1, 0.25)

	p := Params{NoiseReduce: 0.5, VoiceEnhance: 1.5, VolumeBoost: 1.25}
	if err := e.Apply(context.Background(), h, p); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	wantPath := filepath.Join(dir, "enhanced_files", "meeting_enhanced.wav")
	if h.Path != wantPath {
		t.Fatalf("handle path = %q, want %q", h.Path, wantPath)
	}

	enhanced, rate, err := audio.LoadWAV(h.Path)
	if err != nil {
		t.Fatalf("load enhanced audio: %v", err)
	}
	if rate != 8000 {
		t.Fatalf("enhanced sample rate = %d, want 8000", rate)
	}
	if len(enhanced) != len(original) {
		t.Fatalf("enhanced length = %d, want %d", len(enhanced), len(original))
	}

	last := h.History[len(h.History)-1]
	if last.Stage != "enhanced" {
		t.Fatalf("last history stage = %q, want \"enhanced\"", last.Stage)
	}
	if last.Snapshot.Path != wantPath {
		t.Fatalf("history snapshot path = %q, want %q", last.Snapshot.Path, wantPath)
	}
}
