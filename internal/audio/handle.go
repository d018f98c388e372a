package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Snapshot captures the observable state of a handle at a stage boundary.
type Snapshot struct {
	Path            string
	Format          string
	SampleRate      int
	DurationSeconds float64
}

// HistoryEntry is one structured record in a handle's processing history.
type HistoryEntry struct {
	Stage    string
	Snapshot Snapshot
}

// Handle describes an audio asset on disk and its processing history.
// Exactly one pipeline owns a handle at a time; stages mutate it in
// place as they write derived files. SampleRate, Channels and
// DurationSeconds always describe the file currently at Path.
type Handle struct {
	SourcePath      string
	Name            string
	Path            string
	Format          string
	SampleRate      int
	Channels        int
	DurationSeconds float64
	History         []HistoryEntry
}

// NewHandle creates a handle for a source file and records the initial
// "loaded" history entry. Name is the source filename without extension.
func NewHandle(sourcePath string, sampleRate, channels int, duration float64) *Handle {
	base := filepath.Base(sourcePath)
	ext := strings.ToLower(filepath.Ext(base))

	h := &Handle{
		SourcePath:      sourcePath,
		Name:            strings.TrimSuffix(base, filepath.Ext(base)),
		Path:            sourcePath,
		Format:          ext,
		SampleRate:      sampleRate,
		Channels:        channels,
		DurationSeconds: duration,
	}
	h.Record("loaded")
	return h
}

// Record appends a history entry snapshotting the handle's current state.
func (h *Handle) Record(stage string) {
	h.History = append(h.History, HistoryEntry{
		Stage: stage,
		Snapshot: Snapshot{
			Path:            h.Path,
			Format:          h.Format,
			SampleRate:      h.SampleRate,
			DurationSeconds: h.DurationSeconds,
		},
	})
}

// FormatHistory renders the history as aligned text lines, one per stage.
// Data stays structured in History; this is display only.
func (h *Handle) FormatHistory() string {
	var b strings.Builder
	for _, e := range h.History {
		fmt.Fprintf(&b, "%-10s %-6s %6d Hz %8.2fs  %s\n",
			e.Stage, e.Snapshot.Format, e.Snapshot.SampleRate, e.Snapshot.DurationSeconds, e.Snapshot.Path)
	}
	return b.String()
}
