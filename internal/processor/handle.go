package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
)

// ffprobe reports numeric values as JSON strings.
type probeResult struct {
	Streams []struct {
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// loadHandle probes a source file and builds its handle. WAV headers
// are read directly; every other format goes through ffprobe.
func (p *implProcessor) loadHandle(ctx context.Context, path string) (*audio.Handle, error) {
	if strings.ToLower(filepath.Ext(path)) == ".wav" {
		sampleRate, channels, duration, err := audio.ProbeWAV(path)
		if err != nil {
			return nil, err
		}
		return audio.NewHandle(path, sampleRate, channels, duration), nil
	}

	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=sample_rate,channels",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	}
	out, err := p.executor.Execute(ctx, "ffprobe", args...)
	if err != nil {
		return nil, &audio.IOError{Op: "probe", Path: path, Err: err}
	}

	var res probeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		return nil, &audio.IOError{Op: "probe", Path: path, Err: fmt.Errorf("parse ffprobe output: %w", err)}
	}
	if len(res.Streams) == 0 {
		return nil, &audio.IOError{Op: "probe", Path: path, Err: fmt.Errorf("no audio stream found")}
	}

	sampleRate, err := strconv.Atoi(res.Streams[0].SampleRate)
	if err != nil {
		return nil, &audio.IOError{Op: "probe", Path: path, Err: fmt.Errorf("bad sample rate %q", res.Streams[0].SampleRate)}
	}

	// some containers omit the format duration; it is informational only
	duration, err := strconv.ParseFloat(res.Format.Duration, 64)
	if err != nil {
		duration = 0
	}

	return audio.NewHandle(path, sampleRate, res.Streams[0].Channels, duration), nil
}
