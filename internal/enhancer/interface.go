package enhancer

import (
	"context"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
)

// Params are the three enhancement strengths. NoiseReduce sharpens the
// spectral noise gate, VoiceEnhance emphasizes harmonic content,
// VolumeBoost scales the final signal before peak protection.
type Params struct {
	NoiseReduce  float64
	VoiceEnhance float64
	VolumeBoost  float64
}

// Enhancer tunes and applies spectral enhancement to normalized audio.
// Optimize never mutates the handle; Apply writes a derived file and
// updates the handle to point at it.
type Enhancer interface {
	Optimize(ctx context.Context, h *audio.Handle) (Params, error)
	Apply(ctx context.Context, h *audio.Handle, p Params) error
}
