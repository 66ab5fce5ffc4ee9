package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the FFT of data
// after removing its mean. Non-finite samples count as zero.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	var mean float64
	clean := make([]float64, len(data))
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		clean[i] = v
		mean += v
	}
	mean /= float64(len(clean))
	for i := range clean {
		clean[i] -= mean
	}

	spec := fft.FFTReal(clean)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// Dominant is the frequency in Hz of the largest bin above DC for a
// spectrum of samples taken every dt seconds. It is 0 for a flat signal.
func Dominant(ps []float64, dt float64) float64 {
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	best, bestMag := 0, 1e-9
	for i := 1; i < len(ps); i++ {
		if ps[i] > bestMag {
			best, bestMag = i, ps[i]
		}
	}
	n := 2 * len(ps)
	return float64(best) / (float64(n) * dt)
}
