package processor

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
)

// normalize rewrites the handle's audio as mono 16-bit PCM WAV at the
// configured sample rate. Non-WAV sources land in the converted
// folder, WAV sources with the wrong rate or channel count in the
// resampled folder. Audio already in canonical form is left untouched.
func (p *implProcessor) normalize(ctx context.Context, h *audio.Handle) error {
	target := p.cfg.Audio.SampleRate

	var outPath, stage string
	switch {
	case h.Format != ".wav":
		outPath = filepath.Join(p.cfg.Paths.Converted, h.Name+".wav")
		stage = "converted"
	case h.SampleRate != target || h.Channels != 1:
		outPath = filepath.Join(p.cfg.Paths.Resampled, h.Name+".wav")
		stage = "resampled"
	default:
		p.logger.Debug(ctx, "Audio already canonical (%d Hz mono WAV): %s", target, h.Path)
		return nil
	}

	p.logger.Info(ctx, "Normalizing audio: %s", h.Path)

	if err := p.transcode(ctx, h.Path, outPath); err != nil {
		return err
	}

	// Re-probe so the handle reflects the file ffmpeg actually wrote
	sampleRate, channels, duration, err := audio.ProbeWAV(outPath)
	if err != nil {
		return err
	}

	h.Path = outPath
	h.Format = ".wav"
	h.SampleRate = sampleRate
	h.Channels = channels
	h.DurationSeconds = duration
	h.Record(stage)

	p.logger.Info(ctx, "Audio %s: %s", stage, outPath)
	return nil
}

// transcode converts any ffmpeg-readable input to canonical WAV.
// A partial output file is removed on failure.
func (p *implProcessor) transcode(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &audio.IOError{Op: "convert", Path: dst, Err: err}
	}

	// FFmpeg arguments for normalization
	// -i: Input file
	// -vn: No video (drops cover art and video streams)
	// -ar: Canonical sample rate
	// -ac 1: Mono channel (diarization and ASR expect single channel)
	// -c:a pcm_s16le: PCM 16-bit little-endian format (uncompressed)
	// -threads 0: Use all available CPU threads
	// -y: Overwrite output file if exists
	args := []string{
		"-i", src,
		"-vn",
		"-ar", strconv.Itoa(p.cfg.Audio.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		dst,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		p.removeArtifact(ctx, dst)
		return &audio.IOError{Op: "convert", Path: src, Err: err}
	}
	return nil
}
