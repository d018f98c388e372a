package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/diarize"
)

// ErrNoTranscription reports that no usable speech text was produced
// for an audio file.
var ErrNoTranscription = errors.New("no transcription produced")

// Segment is one diarized turn with its recognized text, in the order
// the turn occurs in the audio.
type Segment struct {
	Speaker diarize.Label
	Text    string
}

// Block is a run of consecutive segments by the same speaker, merged
// into a single utterance.
type Block struct {
	Speaker diarize.Label
	Text    string
}

// Transcription holds the grouped transcript of one audio file along
// with display-name overrides for its speaker labels.
type Transcription struct {
	SourcePath string
	Name       string

	blocks    []Block
	overrides map[diarize.Label]string
}

// New groups segments into speaker blocks. Consecutive segments with
// the same label merge into one block; their texts are concatenated
// as-is, in audio order.
func New(sourcePath string, segments []Segment) (*Transcription, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("transcribe %s: %w", sourcePath, ErrNoTranscription)
	}

	base := filepath.Base(sourcePath)
	return &Transcription{
		SourcePath: sourcePath,
		Name:       strings.TrimSuffix(base, filepath.Ext(base)),
		blocks:     groupBySpeaker(segments),
		overrides:  make(map[diarize.Label]string),
	}, nil
}

func groupBySpeaker(segments []Segment) []Block {
	var blocks []Block
	for _, s := range segments {
		if n := len(blocks); n > 0 && blocks[n-1].Speaker == s.Speaker {
			blocks[n-1].Text += s.Text
			continue
		}
		blocks = append(blocks, Block{Speaker: s.Speaker, Text: s.Text})
	}
	return blocks
}

// Blocks returns a copy of the speaker blocks in audio order.
func (t *Transcription) Blocks() []Block {
	out := make([]Block, len(t.blocks))
	copy(out, t.blocks)
	return out
}

// AssignSpeakerName maps a diarization label to a display name.
// Assigning the same name again is a no-op; a different name replaces
// the previous one.
func (t *Transcription) AssignSpeakerName(label diarize.Label, name string) {
	t.overrides[label] = name
}

// SpeakerName resolves a label to its display name, falling back to
// the raw label when no name was assigned.
func (t *Transcription) SpeakerName(label diarize.Label) string {
	if name, ok := t.overrides[label]; ok {
		return name
	}
	return string(label)
}

// Render formats every block as one "<speaker>: <text>" line. Blocks
// with empty text still appear, so callers can see silent turns.
func (t *Transcription) Render() string {
	var b strings.Builder
	for _, blk := range t.blocks {
		fmt.Fprintf(&b, "%s: %s\n", t.SpeakerName(blk.Speaker), blk.Text)
	}
	return b.String()
}

func (t *Transcription) String() string {
	return t.Render()
}

// Persist writes the transcript to <dir>/<name>_transcript.txt,
// leaving out blocks with no text. It fails with ErrNoTranscription
// when no block has text to write.
func (t *Transcription) Persist(dir string) (string, error) {
	var b strings.Builder
	for _, blk := range t.blocks {
		if blk.Text == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", t.SpeakerName(blk.Speaker), blk.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("persist %s: %w", t.Name, ErrNoTranscription)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &audio.IOError{Op: "persist", Path: dir, Err: err}
	}

	path := filepath.Join(dir, t.Name+"_transcript.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", &audio.IOError{Op: "persist", Path: path, Err: err}
	}
	return path, nil
}
