package enhancer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
)

// Optimize searches the parameter grid over the opening window of the
// audio and returns the best-scoring parameters without touching the
// file or the handle.
func (e *implEnhancer) Optimize(ctx context.Context, h *audio.Handle) (Params, error) {
	samples, rate, err := audio.LoadWAV(h.Path)
	if err != nil {
		return Params{}, fmt.Errorf("load audio for optimization: %w", err)
	}
	if len(samples) == 0 {
		return Params{}, fmt.Errorf("optimize %s: audio contains no samples", h.Name)
	}

	window := samples
	if n := int(e.cfg.Enhancement.SampleSeconds * float64(rate)); n > 0 && n < len(window) {
		window = window[:n]
	}

	weights := ScoreWeights{
		Correlation: e.cfg.Enhancement.CorrelationWeight,
		Contrast:    e.cfg.Enhancement.ContrastWeight,
	}

	e.logger.Debug(ctx, "searching enhancement parameters for %s (up to %d candidates, %.1fs window)",
		h.Name, e.cfg.Enhancement.MaxIterations, float64(len(window))/float64(rate))

	best, score, err := searchParams(ctx, window, rate, e.cfg.Enhancement.MaxIterations, weights)
	if err != nil {
		return Params{}, fmt.Errorf("parameter search: %w", err)
	}

	e.logger.Info(ctx, "enhancement parameters for %s: noise=%.2f voice=%.2f volume=%.2f (score %.4f)",
		h.Name, best.NoiseReduce, best.VoiceEnhance, best.VolumeBoost, score)
	return best, nil
}

// Apply runs the enhancement over the whole file, writes the result
// next to the other derived artifacts and points the handle at it.
func (e *implEnhancer) Apply(ctx context.Context, h *audio.Handle, p Params) error {
	samples, rate, err := audio.LoadWAV(h.Path)
	if err != nil {
		return fmt.Errorf("load audio for enhancement: %w", err)
	}

	enhanced := Enhance(samples, p)

	outPath := filepath.Join(e.cfg.Paths.Enhanced, h.Name+"_enhanced.wav")
	if err := audio.SaveWAV(outPath, enhanced, rate); err != nil {
		return fmt.Errorf("write enhanced audio: %w", err)
	}

	h.Path = outPath
	h.Record("enhanced")

	e.logger.Info(ctx, "enhanced audio written to %s", outPath)
	return nil
}
