package asr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/audio"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
)

const transcribePrompt = `Transcribe the speech in this audio clip verbatim. Return only the spoken words, with no timestamps, speaker labels or commentary. If the clip contains no speech, return nothing.`

type implGemini struct {
	mu         sync.Mutex
	currentKey int

	apiKeys  []string
	model    string
	language string
	logger   logger.Logger
}

// NewGemini creates a Backend that sends each waveform slice to a
// Gemini model as inline WAV data, rotating through the supplied API
// keys on quota errors. Segment workers may call it concurrently.
func NewGemini(cfg config.ASRConfig, log logger.Logger) Backend {
	return &implGemini{
		apiKeys:  cfg.Gemini.APIKeys,
		model:    cfg.Gemini.Model,
		language: cfg.Language,
		logger:   log,
	}
}

func (g *implGemini) SupportsBatching() bool { return false }

// Transcribe encodes the slice as WAV and asks the model for a verbatim
// transcription. An empty result is valid silence, not an error.
func (g *implGemini) Transcribe(ctx context.Context, samples []float64, sampleRate int) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}

	blob := audio.WAVBytes(samples, sampleRate)
	prompt := transcribePrompt
	if g.language != "" {
		prompt += fmt.Sprintf(" The audio is in %s.", g.language)
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.key(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		parts := []*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(blob, "audio/wav"),
		}
		contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

		result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key rate limited, rotating...")
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		// No candidates means the model heard no speech
		return "", nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// TranscribeBatch is a sequential fallback; the transcriber only
// batches against backends that report SupportsBatching.
func (g *implGemini) TranscribeBatch(ctx context.Context, batch [][]float64, sampleRate int) ([]string, error) {
	texts := make([]string, len(batch))
	for i, samples := range batch {
		text, err := g.Transcribe(ctx, samples, sampleRate)
		if err != nil {
			return nil, err
		}
		texts[i] = text
	}
	return texts, nil
}

func (g *implGemini) key() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey]
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
