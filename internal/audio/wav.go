package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LoadWAV decodes a mono PCM WAV file into float64 samples in [-1, 1]
// and returns them with the file's sample rate.
func LoadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, &IOError{Op: "decode", Path: path, Err: fmt.Errorf("not a valid WAV file")}
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, &IOError{Op: "decode", Path: path, Err: err}
	}
	if buf.Format.NumChannels != 1 {
		return nil, 0, &IOError{Op: "decode", Path: path,
			Err: fmt.Errorf("expected mono audio, got %d channels", buf.Format.NumChannels)}
	}

	bitDepth := int(d.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int(1) << (bitDepth - 1))

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return samples, buf.Format.SampleRate, nil
}

// SaveWAV writes mono float64 samples as a 16-bit PCM WAV file,
// creating the parent directory if needed. Samples outside [-1, 1]
// are clipped. On write failure no partial file is left behind.
func SaveWAV(path string, samples []float64, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	e := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           quantize(samples),
		SourceBitDepth: 16,
	}

	if err := e.Write(buf); err != nil {
		e.Close()
		f.Close()
		os.Remove(path)
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	if err := e.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	return nil
}

// ProbeWAV reads a WAV file's header info without decoding all samples.
func ProbeWAV(path string) (sampleRate, channels int, duration float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, 0, 0, &IOError{Op: "probe", Path: path, Err: fmt.Errorf("not a valid WAV file")}
	}

	dur, err := d.Duration()
	if err != nil {
		return 0, 0, 0, &IOError{Op: "probe", Path: path, Err: err}
	}

	return int(d.SampleRate), int(d.NumChans), dur.Seconds(), nil
}

// WAVBytes encodes mono samples as an in-memory 16-bit PCM WAV blob.
// The wav encoder needs a seekable writer, so the 44-byte RIFF header
// is assembled by hand here instead.
func WAVBytes(samples []float64, sampleRate int) []byte {
	data := quantize(samples)
	dataLen := uint32(len(data) * 2)

	var b bytes.Buffer
	b.Grow(44 + int(dataLen))

	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataLen))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&b, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&b, binary.LittleEndian, uint16(16))           // bits per sample

	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, dataLen)
	for _, v := range data {
		binary.Write(&b, binary.LittleEndian, int16(v))
	}

	return b.Bytes()
}

// quantize converts float samples in [-1, 1] to 16-bit integer values,
// clipping anything outside the range.
func quantize(samples []float64) []int {
	out := make([]int, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		out[i] = int(v * 32767)
	}
	return out
}
