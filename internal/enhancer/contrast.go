package enhancer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// contrastBandEdges are octave-spaced band boundaries in Hz; the last
// band runs from the final edge to the Nyquist frequency.
var contrastBandEdges = []float64{0, 200, 400, 800, 1600, 3200}

// contrastQuantile selects the top and bottom slice of each band's
// magnitudes when measuring peak and valley energy.
const contrastQuantile = 0.02

// spectralContrast measures the mean peak-to-valley spread, in dB,
// across octave bands and time frames. Higher values indicate clearer
// separation between speech harmonics and background noise.
func spectralContrast(samples []float64, sampleRate int) float64 {
	frames := stft(samples)
	if len(frames) == 0 {
		return 0
	}
	mag, _ := magPhase(frames)
	nBins := len(mag[0])

	binHz := float64(sampleRate) / float64(fftSize)
	edges := make([]int, 0, len(contrastBandEdges)+1)
	for _, hz := range contrastBandEdges {
		edges = append(edges, int(hz/binHz))
	}
	edges = append(edges, nBins)

	var contrasts []float64
	sorted := make([]float64, 0, nBins)
	for _, frame := range mag {
		for b := 0; b+1 < len(edges); b++ {
			lo, hi := edges[b], edges[b+1]
			if hi > len(frame) {
				hi = len(frame)
			}
			if hi-lo < 2 {
				continue
			}
			sorted = append(sorted[:0], frame[lo:hi]...)
			sort.Float64s(sorted)

			k := int(contrastQuantile * float64(len(sorted)))
			if k < 1 {
				k = 1
			}
			valley := stat.Mean(sorted[:k], nil)
			peak := stat.Mean(sorted[len(sorted)-k:], nil)
			contrasts = append(contrasts, 20*math.Log10((peak+eps)/(valley+eps)))
		}
	}
	if len(contrasts) == 0 {
		return 0
	}
	return stat.Mean(contrasts, nil)
}
