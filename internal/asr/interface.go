package asr

import "context"

// Backend is the speech-to-text collaborator. It consumes mono float
// waveform slices at the pipeline's canonical sample rate and returns
// plain text.
//
// SupportsBatching declares whether TranscribeBatch accepts several
// slices in one call; batched invocation must return one text per
// slice in the same order. Backends that do not batch still implement
// TranscribeBatch as a sequential fallback.
type Backend interface {
	Transcribe(ctx context.Context, samples []float64, sampleRate int) (string, error)
	TranscribeBatch(ctx context.Context, batch [][]float64, sampleRate int) ([]string, error)
	SupportsBatching() bool
}
