package enhancer

import (
	"context"
	"testing"
)

func TestGridValues(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		end   float64
		count int
		first float64
		last  float64
	}{
		{"noise reduce", noiseReduceStart, noiseReduceEnd, 5, 0.25, 1.25},
		{"voice enhance", voiceEnhanceStart, voiceEnhanceEnd, 8, 1.0, 2.75},
		{"volume boost", volumeBoostStart, volumeBoostEnd, 4, 1.0, 1.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := gridValues(tt.start, tt.end)
			if len(vs) != tt.count {
				t.Fatalf("got %d values, want %d: %v", len(vs), tt.count, vs)
			}
			if vs[0] != tt.first || vs[len(vs)-1] != tt.last {
				t.Fatalf("range [%g, %g], want [%g, %g]", vs[0], vs[len(vs)-1], tt.first, tt.last)
			}
		})
	}
}

func TestCandidatesOrder(t *testing.T) {
	cs := candidates(0)

	if len(cs) != 5*8*4 {
		t.Fatalf("full grid has %d candidates, want %d", len(cs), 5*8*4)
	}

	want := []Params{
		{NoiseReduce: 0.25, VoiceEnhance: 1.0, VolumeBoost: 1.0},
		{NoiseReduce: 0.25, VoiceEnhance: 1.0, VolumeBoost: 1.25},
		{NoiseReduce: 0.25, VoiceEnhance: 1.0, VolumeBoost: 1.5},
		{NoiseReduce: 0.25, VoiceEnhance: 1.0, VolumeBoost: 1.75},
		{NoiseReduce: 0.25, VoiceEnhance: 1.25, VolumeBoost: 1.0},
	}
	for i, w := range want {
		if cs[i] != w {
			t.Errorf("candidate %d = %+v, want %+v", i, cs[i], w)
		}
	}

	// noise reduction advances slowest
	if cs[8*4].NoiseReduce != 0.5 {
		t.Errorf("candidate %d noise reduce = %g, want 0.5", 8*4, cs[8*4].NoiseReduce)
	}
}

func TestCandidatesCap(t *testing.T) {
	if got := len(candidates(50)); got != 50 {
		t.Fatalf("capped grid has %d candidates, want 50", got)
	}
	if got := len(candidates(1000)); got != 160 {
		t.Fatalf("over-capped grid has %d candidates, want 160", got)
	}
}

func TestSearchParamsPicksFirstBest(t *testing.T) {
	samples := noisySine(440, 8000, 0.25)
	const maxIter = 12

	best, bestScore, err := searchParams(context.Background(), samples, 8000, maxIter, DefaultScoreWeights)
	if err != nil {
		t.Fatalf("searchParams: %v", err)
	}

	grid := candidates(maxIter)
	wantIdx := 0
	wantScore := scoreCandidate(samples, 8000, grid[0], DefaultScoreWeights)
	for i, p := range grid[1:] {
		if s := scoreCandidate(samples, 8000, p, DefaultScoreWeights); s > wantScore {
			wantIdx = i + 1
			wantScore = s
		}
	}

	if best != grid[wantIdx] {
		t.Fatalf("selected %+v, want candidate %d %+v", best, wantIdx, grid[wantIdx])
	}
	if bestScore != wantScore {
		t.Fatalf("score %g, want %g", bestScore, wantScore)
	}
}

func TestSearchParamsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	samples := noisySine(440, 8000, 0.25)
	best, _, err := searchParams(ctx, samples, 8000, 10, DefaultScoreWeights)
	if err == nil {
		t.Fatal("expected context error")
	}
	if first := candidates(10)[0]; best != first {
		t.Fatalf("cancelled search returned %+v, want first candidate %+v", best, first)
	}
}

func TestScoreCandidateFlatSignal(t *testing.T) {
	flat := make([]float64, 4000)
	score := scoreCandidate(flat, 8000, Params{NoiseReduce: 0.5, VoiceEnhance: 1.5, VolumeBoost: 1.0}, DefaultScoreWeights)
	if score != score { // NaN check
		t.Fatal("flat signal produced NaN score")
	}
}
