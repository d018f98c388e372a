package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/config"
	"github.com/AugustinMORVAL/Audio-Transcriptor/internal/logger"
)

func httpBackend(endpoint, token string) Backend {
	return NewHTTP(config.ASRConfig{
		Language: "en",
		HTTP:     config.HTTPConfig{Endpoint: endpoint, Token: token},
	}, logger.New("error"))
}

func TestHTTPTranscribeBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}

		var req transcribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SampleRate != 16000 {
			t.Errorf("sample_rate = %d, want 16000", req.SampleRate)
		}
		if req.Language != "en" {
			t.Errorf("language = %q, want en", req.Language)
		}

		// Answer one text per segment, tagged by its sample count so
		// the test can verify ordering.
		texts := make([]string, len(req.Segments))
		for i, seg := range req.Segments {
			texts[i] = fmt.Sprintf("segment-%d", len(seg))
		}
		json.NewEncoder(w).Encode(transcribeResponse{Texts: texts})
	}))
	defer srv.Close()

	b := httpBackend(srv.URL, "secret")
	if !b.SupportsBatching() {
		t.Error("SupportsBatching() = false, want true")
	}

	batch := [][]float64{
		make([]float64, 10),
		make([]float64, 20),
		make([]float64, 30),
	}
	texts, err := b.TranscribeBatch(context.Background(), batch, 16000)
	if err != nil {
		t.Fatalf("TranscribeBatch() error = %v", err)
	}

	want := []string{"segment-10", "segment-20", "segment-30"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestHTTPTranscribeSingle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req transcribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Segments) != 1 {
			t.Errorf("got %d segments, want 1", len(req.Segments))
		}
		json.NewEncoder(w).Encode(transcribeResponse{Texts: []string{"hello world"}})
	}))
	defer srv.Close()

	b := httpBackend(srv.URL, "")
	text, err := b.Transcribe(context.Background(), make([]float64, 100), 16000)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q, want %q", text, "hello world")
	}
}

func TestHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := httpBackend(srv.URL, "")
	_, err := b.Transcribe(context.Background(), make([]float64, 10), 16000)
	if err == nil {
		t.Fatal("Transcribe() expected error on 503")
	}
}

func TestHTTPTextCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(transcribeResponse{Texts: []string{"only one"}})
	}))
	defer srv.Close()

	b := httpBackend(srv.URL, "")
	_, err := b.TranscribeBatch(context.Background(), [][]float64{{0}, {0}}, 16000)
	if err == nil {
		t.Fatal("TranscribeBatch() expected error on text count mismatch")
	}
}

func TestGeminiEmptySliceSkipsCall(t *testing.T) {
	b := NewGemini(config.ASRConfig{
		Gemini: config.GeminiConfig{APIKeys: []string{"k1"}, Model: "gemini-2.5-flash"},
	}, logger.New("error"))

	text, err := b.Transcribe(context.Background(), nil, 16000)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
	if b.SupportsBatching() {
		t.Error("SupportsBatching() = true, want false")
	}
}

func TestGeminiKeyRotation(t *testing.T) {
	g := &implGemini{apiKeys: []string{"k1", "k2", "k3"}}

	if g.key() != "k1" {
		t.Errorf("key() = %q, want k1", g.key())
	}
	g.rotateKey()
	if g.key() != "k2" {
		t.Errorf("key() = %q, want k2", g.key())
	}
	g.rotateKey()
	g.rotateKey() // wraps around
	if g.key() != "k1" {
		t.Errorf("key() = %q, want k1 after wrap", g.key())
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 429", fmt.Errorf("googleapi: Error 429: too many requests"), true},
		{"quota message", fmt.Errorf("quota exceeded for model"), true},
		{"resource exhausted", fmt.Errorf("rpc error: code = RESOURCE_EXHAUSTED"), true},
		{"unrelated error", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuotaError(tt.err); got != tt.want {
				t.Errorf("isQuotaError() = %v, want %v", got, tt.want)
			}
		})
	}
}
