package diarize

import "context"

// Label is an opaque speaker identifier produced by the diarization
// engine (e.g. "SPEAKER_00"). It is distinct from display names, which
// live in the transcript's override map.
type Label string

// Turn is one diarization interval. Turns arrive time-ordered and may
// overlap; consumers process them in the given order.
type Turn struct {
	Start   float64
	End     float64
	Speaker Label
}

// Diarizer produces ordered speaker turns for a normalized audio file
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]Turn, error)
}
