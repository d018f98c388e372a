package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
)

// Prepare normalizes the audio and optionally enhances it. A failed
// parameter search falls back to the normalized audio; a failed
// enhancement write is fatal since the handle may no longer match the
// file on disk.
func (p *implProcessor) Prepare(ctx context.Context, h *audio.Handle, enhance bool) error {
	if err := p.normalize(ctx, h); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	if !enhance {
		return nil
	}

	params, err := p.enhancer.Optimize(ctx, h)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("optimize enhancement: %w", err)
		}
		p.logger.Warn(ctx, "Enhancement optimization failed, continuing with normalized audio: %v", err)
		return nil
	}

	if err := p.enhancer.Apply(ctx, h, params); err != nil {
		return fmt.Errorf("apply enhancement: %w", err)
	}
	return nil
}
