package executor

import "context"

// Executor defines the interface for running external audio tools
// (ffmpeg, ffprobe, the diarization command)
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
