package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
)

// transcribeRequest is the JSON body sent to the ASR server. Single
// calls are a batch of one; the server answers one text per segment,
// in order.
type transcribeRequest struct {
	SampleRate int         `json:"sample_rate"`
	Language   string      `json:"language,omitempty"`
	Segments   [][]float64 `json:"segments"`
}

type transcribeResponse struct {
	Texts []string `json:"texts"`
}

type implHTTP struct {
	endpoint string
	token    string
	language string
	client   *http.Client
	logger   logger.Logger
}

// NewHTTP creates a Backend that posts waveform segments as JSON to an
// ASR server (e.g. a local whisper service). The server handles whole
// batches in one request, so SupportsBatching is true.
func NewHTTP(cfg config.ASRConfig, log logger.Logger) Backend {
	return &implHTTP{
		endpoint: cfg.HTTP.Endpoint,
		token:    cfg.HTTP.Token,
		language: cfg.Language,
		client:   &http.Client{},
		logger:   log,
	}
}

func (t *implHTTP) SupportsBatching() bool { return true }

func (t *implHTTP) Transcribe(ctx context.Context, samples []float64, sampleRate int) (string, error) {
	texts, err := t.TranscribeBatch(ctx, [][]float64{samples}, sampleRate)
	if err != nil {
		return "", err
	}
	return texts[0], nil
}

func (t *implHTTP) TranscribeBatch(ctx context.Context, batch [][]float64, sampleRate int) ([]string, error) {
	body, err := json.Marshal(transcribeRequest{
		SampleRate: sampleRate,
		Language:   t.language,
		Segments:   batch,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("asr server returned %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var out transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Texts) != len(batch) {
		return nil, fmt.Errorf("asr server returned %d texts for %d segments", len(out.Texts), len(batch))
	}

	return out.Texts, nil
}
