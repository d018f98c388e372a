package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// sineWave builds a deterministic test signal.
func sineWave(n int, freq float64, rate int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return samples
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")

	want := sineWave(1600, 440, 16000)
	if err := SaveWAV(path, want, 16000); err != nil {
		t.Fatalf("SaveWAV() error = %v", err)
	}

	got, rate, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV() error = %v", err)
	}
	if rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if len(got) != len(want) {
		t.Fatalf("sample count = %d, want %d", len(got), len(want))
	}

	// 16-bit quantization allows roughly 1/32768 of error per sample
	const tol = 2.0 / 32768
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("sample %d = %v, want %v (±%v)", i, got[i], want[i], tol)
		}
	}
}

func TestSaveWAVClipsOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hot.wav")

	if err := SaveWAV(path, []float64{2.0, -3.0, 0.0}, 16000); err != nil {
		t.Fatalf("SaveWAV() error = %v", err)
	}

	got, _, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV() error = %v", err)
	}
	for i, v := range got {
		if v > 1.0 || v < -1.0 {
			t.Errorf("sample %d = %v, want within [-1, 1]", i, v)
		}
	}
}

func TestProbeWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.wav")

	// 2 seconds at 8 kHz
	if err := SaveWAV(path, sineWave(16000, 200, 8000), 8000); err != nil {
		t.Fatalf("SaveWAV() error = %v", err)
	}

	rate, channels, duration, err := ProbeWAV(path)
	if err != nil {
		t.Fatalf("ProbeWAV() error = %v", err)
	}
	if rate != 8000 {
		t.Errorf("rate = %d, want 8000", rate)
	}
	if channels != 1 {
		t.Errorf("channels = %d, want 1", channels)
	}
	if math.Abs(duration-2.0) > 0.01 {
		t.Errorf("duration = %v, want ~2.0", duration)
	}
}

func TestLoadWAVErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.wav")
	if err := os.WriteFile(garbage, []byte("not audio at all"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.wav")},
		{"not a wav file", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadWAV(tt.path)
			if err == nil {
				t.Fatal("LoadWAV() expected error")
			}
			var ioErr *IOError
			if !errors.As(err, &ioErr) {
				t.Errorf("error = %T, want *IOError", err)
			}
			if ioErr.Path != tt.path {
				t.Errorf("IOError.Path = %q, want %q", ioErr.Path, tt.path)
			}
		})
	}
}

func TestWAVBytes(t *testing.T) {
	samples := sineWave(160, 440, 16000)
	blob := WAVBytes(samples, 16000)

	if len(blob) != 44+len(samples)*2 {
		t.Fatalf("blob length = %d, want %d", len(blob), 44+len(samples)*2)
	}
	if string(blob[0:4]) != "RIFF" || string(blob[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(blob[12:16]) != "fmt " || string(blob[36:40]) != "data" {
		t.Error("missing fmt/data chunks")
	}
	if rate := binary.LittleEndian.Uint32(blob[24:28]); rate != 16000 {
		t.Errorf("header sample rate = %d, want 16000", rate)
	}
	if dataLen := binary.LittleEndian.Uint32(blob[40:44]); dataLen != uint32(len(samples)*2) {
		t.Errorf("data chunk length = %d, want %d", dataLen, len(samples)*2)
	}
}

func TestNewHandle(t *testing.T) {
	h := NewHandle("/audio/meeting.mp3", 44100, 2, 61.5)

	if h.Name != "meeting" {
		t.Errorf("Name = %q, want %q", h.Name, "meeting")
	}
	if h.Format != ".mp3" {
		t.Errorf("Format = %q, want %q", h.Format, ".mp3")
	}
	if h.Path != "/audio/meeting.mp3" {
		t.Errorf("Path = %q, want source path", h.Path)
	}
	if len(h.History) != 1 || h.History[0].Stage != "loaded" {
		t.Fatalf("History = %+v, want single loaded entry", h.History)
	}
	if h.History[0].Snapshot.SampleRate != 44100 {
		t.Errorf("snapshot rate = %d, want 44100", h.History[0].Snapshot.SampleRate)
	}
}

func TestHandleRecord(t *testing.T) {
	h := NewHandle("/audio/talk.wav", 44100, 1, 10)

	h.Path = "resampled_files/talk.wav"
	h.SampleRate = 16000
	h.Record("resampled")

	if len(h.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(h.History))
	}
	if h.History[1].Stage != "resampled" {
		t.Errorf("stage = %q, want %q", h.History[1].Stage, "resampled")
	}
	if h.History[1].Snapshot.SampleRate != 16000 {
		t.Errorf("snapshot rate = %d, want 16000", h.History[1].Snapshot.SampleRate)
	}
	// earlier snapshots must stay untouched
	if h.History[0].Snapshot.SampleRate != 44100 {
		t.Errorf("first snapshot rate = %d, want 44100", h.History[0].Snapshot.SampleRate)
	}
}
