package export

import (
	"context"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/transcript"
)

// Exporter writes a transcription to an additional document format
// alongside the plain-text transcript.
type Exporter interface {
	Export(ctx context.Context, tr *transcript.Transcription, dir string) (string, error)
}
