package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/diarize"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/transcript"
)

// Process orchestrates the entire transcription pipeline
func (p *implProcessor) Process(ctx context.Context, audioPath string) (*transcript.Transcription, error) {
	startTime := time.Now()
	runID := uuid.NewString()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcription run %s: %s", runID, audioPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Probe the source file
	h, err := p.loadHandle(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe audio: %w", err)
	}

	// Step 2: Normalize and optionally enhance
	if err := p.Prepare(ctx, h, p.cfg.Enhancement.Enabled); err != nil {
		return nil, fmt.Errorf("prepare audio: %w", err)
	}

	// Step 3: Split into speaker turns
	turns, err := p.diarizer.Diarize(ctx, h.Path)
	if err != nil {
		return nil, fmt.Errorf("diarize: %w", err)
	}
	p.logger.Info(ctx, "Diarization found %d speaker turns", len(turns))

	// Step 4: Recognize speech per turn
	samples, sampleRate, err := audio.LoadWAV(h.Path)
	if err != nil {
		return nil, fmt.Errorf("load prepared audio: %w", err)
	}
	segments, err := p.transcribeTurns(ctx, samples, sampleRate, turns)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	// Step 5: Group into speaker blocks and apply configured names
	tr, err := transcript.New(h.SourcePath, segments)
	if err != nil {
		return nil, err
	}
	for label, name := range p.cfg.Speakers {
		tr.AssignSpeakerName(diarize.Label(label), name)
	}

	// Step 6: Persist artifacts
	txtPath, err := tr.Persist(p.cfg.Paths.Transcripts)
	if err != nil {
		return nil, err
	}
	if p.exporter != nil {
		if _, err := p.exporter.Export(ctx, tr, p.cfg.Paths.Transcripts); err != nil {
			p.logger.Warn(ctx, "Failed to export DOCX transcript: %v", err)
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run %s completed successfully!", runID)
	p.logger.Info(ctx, "Audio lineage:\n%s", h.FormatHistory())
	p.logger.Info(ctx, "Transcript: %s", txtPath)
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return tr, nil
}
