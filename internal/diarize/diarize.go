package diarize

import (
	"context"
	"encoding/json"
	"fmt"
)

// Error reports a failed diarization call or malformed turns.
// Fatal for the pipeline run that triggered it.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("diarization of %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("diarization of %s: %s", e.Path, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// turnRecord mirrors the JSON the diarization command prints:
// a single array of {"start", "end", "speaker"} objects.
type turnRecord struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Diarize runs the external diarization command on the audio file and
// parses its stdout into validated speaker turns.
func (d *implDiarizer) Diarize(ctx context.Context, audioPath string) ([]Turn, error) {
	args := append(append([]string{}, d.cfg.Diarization.Args...), audioPath)

	d.logger.Info(ctx, "Running diarization: %s", audioPath)

	out, err := d.executor.Execute(ctx, d.cfg.Diarization.Command, args...)
	if err != nil {
		return nil, &Error{Path: audioPath, Reason: "command failed", Err: err}
	}

	var records []turnRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		return nil, &Error{Path: audioPath, Reason: "malformed output", Err: err}
	}

	turns := make([]Turn, len(records))
	for i, r := range records {
		turns[i] = Turn{Start: r.Start, End: r.End, Speaker: Label(r.Speaker)}
	}

	if err := validateTurns(audioPath, turns); err != nil {
		return nil, err
	}

	d.logger.Info(ctx, "Diarization found %d turns", len(turns))
	return turns, nil
}

// validateTurns rejects timelines the aggregator cannot rely on:
// negative timestamps, end before start, non-monotonic starts.
// Overlapping turns are allowed.
func validateTurns(audioPath string, turns []Turn) error {
	for i, t := range turns {
		if t.Start < 0 || t.End < 0 {
			return &Error{Path: audioPath, Reason: fmt.Sprintf("turn %d has a negative timestamp", i)}
		}
		if t.End < t.Start {
			return &Error{Path: audioPath, Reason: fmt.Sprintf("turn %d ends before it starts", i)}
		}
		if i > 0 && t.Start < turns[i-1].Start {
			return &Error{Path: audioPath, Reason: fmt.Sprintf("turn %d starts before turn %d", i, i-1)}
		}
	}
	return nil
}
