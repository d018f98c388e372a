package processor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/diarize"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/transcript"
)

// SegmentError identifies the diarized turn whose transcription failed.
type SegmentError struct {
	Turn    int
	Speaker diarize.Label
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%s): %v", e.Turn, e.Speaker, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// transcribeTurns recognizes speech for every diarized turn and
// returns one segment per turn, in turn order. Turns whose time range
// holds no samples become empty segments without an ASR call.
func (p *implProcessor) transcribeTurns(ctx context.Context, samples []float64, sampleRate int, turns []diarize.Turn) ([]transcript.Segment, error) {
	segments := make([]transcript.Segment, len(turns))
	slices := make([][]float64, len(turns))
	var pending []int
	for i, t := range turns {
		segments[i].Speaker = t.Speaker
		s := sliceTurn(samples, sampleRate, t)
		if len(s) == 0 {
			continue
		}
		slices[i] = s
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return segments, nil
	}

	p.logger.Debug(ctx, "Transcribing %d of %d turns (batching=%v)",
		len(pending), len(turns), p.backend.SupportsBatching())

	var err error
	if p.backend.SupportsBatching() {
		err = p.transcribeBatched(ctx, slices, sampleRate, pending, segments)
	} else {
		err = p.transcribeConcurrent(ctx, slices, sampleRate, pending, segments)
	}
	if err != nil {
		return nil, err
	}
	return segments, nil
}

// sliceTurn cuts the turn's sample range out of the full signal. The
// end is clamped to the audio length; a start at or past the end
// yields nil.
func sliceTurn(samples []float64, sampleRate int, t diarize.Turn) []float64 {
	start := int(t.Start * float64(sampleRate))
	stop := int(t.End * float64(sampleRate))
	if start < 0 {
		start = 0
	}
	if stop > len(samples) {
		stop = len(samples)
	}
	if start >= stop {
		return nil
	}
	return samples[start:stop]
}

// transcribeConcurrent fans pending turns out to a bounded worker pool
// and collects texts by index, so output order never depends on
// completion order. The first error in turn order wins.
func (p *implProcessor) transcribeConcurrent(ctx context.Context, slices [][]float64, sampleRate int, pending []int, segments []transcript.Segment) error {
	sem := newSemaphore(p.cfg.Performance.SegmentWorkers)
	var wg sync.WaitGroup
	errs := make([]error, len(segments))

	for _, i := range pending {
		if err := sem.acquire(ctx); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.release()

			text, err := p.backend.Transcribe(ctx, slices[i], sampleRate)
			if err != nil {
				errs[i] = &SegmentError{Turn: i, Speaker: segments[i].Speaker, Err: err}
				return
			}
			segments[i].Text = strings.TrimSpace(text)
		}(i)
	}
	wg.Wait()

	for _, i := range pending {
		if errs[i] != nil {
			return errs[i]
		}
	}
	return nil
}

// transcribeBatched packs consecutive pending turns into batches under
// the configured memory budget and sends each batch in one call. A
// failed batch is reported against its first turn.
func (p *implProcessor) transcribeBatched(ctx context.Context, slices [][]float64, sampleRate int, pending []int, segments []transcript.Segment) error {
	budget := p.cfg.Performance.BatchMemoryMB * 1024 * 1024 / 8 // float64 samples per batch

	var batch [][]float64
	var idx []int
	size := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		texts, err := p.backend.TranscribeBatch(ctx, batch, sampleRate)
		if err != nil {
			return &SegmentError{Turn: idx[0], Speaker: segments[idx[0]].Speaker, Err: err}
		}
		for j, i := range idx {
			segments[i].Text = strings.TrimSpace(texts[j])
		}
		batch, idx, size = nil, nil, 0
		return nil
	}

	for _, i := range pending {
		if size > 0 && size+len(slices[i]) > budget {
			if err := flush(); err != nil {
				return err
			}
		}
		batch = append(batch, slices[i])
		idx = append(idx, i)
		size += len(slices[i])
	}
	return flush()
}
