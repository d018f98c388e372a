package enhancer

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

const (
	fftSize = 2048
	hopSize = 512

	// noiseMedianWindow spans the time frames used to estimate the
	// noise floor of each frequency bin.
	noiseMedianWindow = 31

	// hpssKernel is the median window for the harmonic/percussive
	// split, applied along time and frequency respectively.
	hpssKernel = 31
	hpssPower  = 2.0

	eps = 1e-10
)

// Enhance transforms a waveform in three deterministic steps: spectral
// noise gating against a median-filtered noise floor, harmonic
// emphasis via a harmonic/percussive split, and a volume boost capped
// by peak normalization. Pure function of its inputs; the one-shot
// enhancer and the optimizer's trial runs share it.
func Enhance(samples []float64, p Params) []float64 {
	if len(samples) == 0 {
		return nil
	}

	frames := stft(samples)
	mag, phase := magPhase(frames)

	noiseFloor := medianAcrossTime(mag, noiseMedianWindow)

	denoised := make([][]complex128, len(frames))
	for i := range frames {
		denoised[i] = make([]complex128, len(frames[i]))
		for j := range frames[i] {
			m := mag[i][j]
			mask := clip((m-noiseFloor[i][j])/(m+eps), 0, 1)
			mask = math.Pow(mask, p.NoiseReduce)
			denoised[i][j] = complex(mask*m, 0) * phase[i][j]
		}
	}

	wave := istft(denoised, len(samples))

	harmonic, percussive := hpssSplit(wave)

	out := make([]float64, len(wave))
	for i := range out {
		out[i] = (harmonic[i]*p.VoiceEnhance + percussive[i]) * p.VolumeBoost
	}

	peakNormalize(out)
	return out
}

// hpssSplit separates sustained (harmonic) from transient (percussive)
// content: harmonics persist across time frames, percussive energy
// spreads across frequency bins, so median filtering along each axis
// yields the two envelopes that drive the soft masks.
func hpssSplit(samples []float64) (harmonic, percussive []float64) {
	frames := stft(samples)
	mag, _ := magPhase(frames)

	hEnv := medianAcrossTime(mag, hpssKernel)
	pEnv := medianAcrossFreq(mag, hpssKernel)

	hFrames := make([][]complex128, len(frames))
	pFrames := make([][]complex128, len(frames))
	for i := range frames {
		hFrames[i] = make([]complex128, len(frames[i]))
		pFrames[i] = make([]complex128, len(frames[i]))
		for j := range frames[i] {
			hp := math.Pow(hEnv[i][j], hpssPower)
			pp := math.Pow(pEnv[i][j], hpssPower)
			total := hp + pp + eps
			hFrames[i][j] = frames[i][j] * complex(hp/total, 0)
			pFrames[i][j] = frames[i][j] * complex(pp/total, 0)
		}
	}

	return istft(hFrames, len(samples)), istft(pFrames, len(samples))
}

// stft slices the signal into hop-spaced Hann-windowed frames and
// returns their spectra (frames x fftSize/2+1 bins). The tail is
// zero-padded to a whole frame.
func stft(samples []float64) [][]complex128 {
	padded := padToFrames(samples)
	nFrames := (len(padded)-fftSize)/hopSize + 1

	fft := fourier.NewFFT(fftSize)
	win := hannWindow(fftSize)
	buf := make([]float64, fftSize)

	frames := make([][]complex128, nFrames)
	for i := 0; i < nFrames; i++ {
		off := i * hopSize
		for j := 0; j < fftSize; j++ {
			buf[j] = padded[off+j] * win[j]
		}
		frames[i] = fft.Coefficients(nil, buf)
	}
	return frames
}

// istft reconstructs a signal of the given length by overlap-add,
// normalizing by the accumulated squared analysis window.
func istft(frames [][]complex128, length int) []float64 {
	if len(frames) == 0 {
		return make([]float64, length)
	}
	span := (len(frames)-1)*hopSize + fftSize

	fft := fourier.NewFFT(fftSize)
	win := hannWindow(fftSize)
	seq := make([]float64, fftSize)

	out := make([]float64, span)
	norm := make([]float64, span)
	for i, frame := range frames {
		fft.Sequence(seq, frame)
		off := i * hopSize
		for j := 0; j < fftSize; j++ {
			// gonum's inverse transform is unnormalized
			v := seq[j] / fftSize
			out[off+j] += v * win[j]
			norm[off+j] += win[j] * win[j]
		}
	}
	for i := range out {
		if norm[i] > eps {
			out[i] /= norm[i]
		}
	}

	if length > span {
		length = span
	}
	return out[:length]
}

func padToFrames(samples []float64) []float64 {
	n := len(samples)
	if n < fftSize {
		n = fftSize
	}
	if span := n - fftSize; span%hopSize != 0 {
		n += hopSize - span%hopSize
	}
	if n == len(samples) {
		return samples
	}
	padded := make([]float64, n)
	copy(padded, samples)
	return padded
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

func magPhase(frames [][]complex128) (mag [][]float64, phase [][]complex128) {
	mag = make([][]float64, len(frames))
	phase = make([][]complex128, len(frames))
	for i, frame := range frames {
		mag[i] = make([]float64, len(frame))
		phase[i] = make([]complex128, len(frame))
		for j, c := range frame {
			m := cmplx.Abs(c)
			mag[i][j] = m
			if m > 0 {
				phase[i][j] = c / complex(m, 0)
			} else {
				phase[i][j] = 1
			}
		}
	}
	return mag, phase
}

// medianAcrossTime median-filters each frequency bin along the time
// axis, clamping the window at the spectrogram edges.
func medianAcrossTime(mag [][]float64, window int) [][]float64 {
	nFrames := len(mag)
	if nFrames == 0 {
		return nil
	}
	nBins := len(mag[0])
	half := window / 2

	out := make([][]float64, nFrames)
	buf := make([]float64, 0, window)
	for i := range mag {
		out[i] = make([]float64, nBins)
		lo := max(0, i-half)
		hi := min(nFrames, i+half+1)
		for b := 0; b < nBins; b++ {
			buf = buf[:0]
			for k := lo; k < hi; k++ {
				buf = append(buf, mag[k][b])
			}
			out[i][b] = median(buf)
		}
	}
	return out
}

// medianAcrossFreq median-filters each time frame along the frequency
// axis, clamping the window at the bin edges.
func medianAcrossFreq(mag [][]float64, window int) [][]float64 {
	nFrames := len(mag)
	if nFrames == 0 {
		return nil
	}
	nBins := len(mag[0])
	half := window / 2

	out := make([][]float64, nFrames)
	buf := make([]float64, 0, window)
	for i := range mag {
		out[i] = make([]float64, nBins)
		for b := 0; b < nBins; b++ {
			lo := max(0, b-half)
			hi := min(nBins, b+half+1)
			buf = buf[:0]
			buf = append(buf, mag[i][lo:hi]...)
			out[i][b] = median(buf)
		}
	}
	return out
}

// median sorts v in place.
func median(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sort.Float64s(v)
	n := len(v)
	if n%2 == 1 {
		return v[n/2]
	}
	return 0.5 * (v[n/2-1] + v[n/2])
}

// peakNormalize scales the signal down when its peak exceeds 1.0,
// preserving relative dynamics. Quieter signals are left untouched.
func peakNormalize(samples []float64) {
	peak := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 1.0 {
		floats.Scale(1.0/peak, samples)
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
