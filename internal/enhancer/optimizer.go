package enhancer

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Search grid for the three enhancement parameters. Each range is
// half-open; gridValues steps from start up to but excluding end.
const (
	noiseReduceStart = 0.25
	noiseReduceEnd   = 1.5

	voiceEnhanceStart = 1.0
	voiceEnhanceEnd   = 3.0

	volumeBoostStart = 1.0
	volumeBoostEnd   = 2.0

	gridStep = 0.25
)

// ScoreWeights blends the two candidate quality measures: correlation
// with the original signal (fidelity) and spectral contrast gain over
// it (clarity).
type ScoreWeights struct {
	Correlation float64
	Contrast    float64
}

// DefaultScoreWeights balances fidelity and clarity evenly.
var DefaultScoreWeights = ScoreWeights{Correlation: 0.5, Contrast: 0.5}

func gridValues(start, end float64) []float64 {
	var vs []float64
	for i := 0; ; i++ {
		v := start + float64(i)*gridStep
		if v >= end-1e-9 {
			break
		}
		vs = append(vs, v)
	}
	return vs
}

// candidates enumerates the full parameter grid in a fixed order,
// noise reduction outermost and volume boost innermost, truncated to
// the iteration cap.
func candidates(maxIterations int) []Params {
	var cs []Params
	for _, nr := range gridValues(noiseReduceStart, noiseReduceEnd) {
		for _, ve := range gridValues(voiceEnhanceStart, voiceEnhanceEnd) {
			for _, vb := range gridValues(volumeBoostStart, volumeBoostEnd) {
				cs = append(cs, Params{NoiseReduce: nr, VoiceEnhance: ve, VolumeBoost: vb})
				if maxIterations > 0 && len(cs) >= maxIterations {
					return cs
				}
			}
		}
	}
	return cs
}

// scoreCandidate runs one trial enhancement over the sample window and
// scores the result. Correlation is computed over the overlapping
// prefix; a degenerate (constant) signal yields NaN and scores zero.
func scoreCandidate(samples []float64, sampleRate int, p Params, w ScoreWeights) float64 {
	enhanced := Enhance(samples, p)

	n := len(samples)
	if len(enhanced) < n {
		n = len(enhanced)
	}
	corr := stat.Correlation(samples[:n], enhanced[:n], nil)
	if math.IsNaN(corr) {
		corr = 0
	}

	gain := spectralContrast(enhanced, sampleRate) - spectralContrast(samples, sampleRate)

	return w.Correlation*corr + w.Contrast*gain
}

// searchParams walks the candidate grid and keeps the strictly best
// score, so earlier candidates win ties. The context is checked
// between trials; a cancelled search returns the best found so far
// along with the context error.
func searchParams(ctx context.Context, samples []float64, sampleRate int, maxIterations int, w ScoreWeights) (Params, float64, error) {
	grid := candidates(maxIterations)

	best := grid[0]
	bestScore := scoreCandidate(samples, sampleRate, best, w)

	for _, p := range grid[1:] {
		if err := ctx.Err(); err != nil {
			return best, bestScore, err
		}
		score := scoreCandidate(samples, sampleRate, p, w)
		if score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best, bestScore, nil
}
