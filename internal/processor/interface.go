package processor

import (
	"context"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/transcript"
)

// Processor defines the interface for audio transcription operations
type Processor interface {
	// Process runs the full pipeline for one audio file: preprocess,
	// diarize, transcribe and persist the speaker transcript.
	Process(ctx context.Context, audioPath string) (*transcript.Transcription, error)

	// Prepare normalizes the handle's audio to canonical mono WAV at
	// the configured rate and, when enhance is set, applies tuned
	// spectral enhancement. The handle tracks every derived file.
	Prepare(ctx context.Context, h *audio.Handle, enhance bool) error
}
