package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/transcript"
)

func TestExportWritesDocx(t *testing.T) {
	tr, err := transcript.New("/audio/meeting.wav", []transcript.Segment{
		{Speaker: "SPEAKER_00", Text: "hello everyone"},
		{Speaker: "SPEAKER_01", Text: ""},
		{Speaker: "SPEAKER_01", Text: "good morning"},
	})
	if err != nil {
		t.Fatalf("build transcription: %v", err)
	}
	tr.AssignSpeakerName("SPEAKER_00", "Alice")

	dir := filepath.Join(t.TempDir(), "transcripts")
	path, err := New(logger.New("error")).Export(context.Background(), tr, dir)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if want := filepath.Join(dir, "meeting_transcript.docx"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat exported file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("exported file is empty")
	}
}
