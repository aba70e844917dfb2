package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with the radix-2
// Cooley-Tukey recursion. Inputs are zero-padded to the next power of
// two, so any length is accepted.
func FFT(data []float64) []complex128 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return fft(padded)
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitude of the first half of the FFT.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// DominantPeriod picks the strongest non-DC component of a uniformly
// sampled series and converts it to a period in time units. Returns 0
// when the spectrum is flat or the series too short.
func DominantPeriod(values []float64, dt float64) float64 {
	if len(values) < 4 || dt <= 0 {
		return 0
	}

	// Remove the mean so the DC bin does not dominate.
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	centered := make([]float64, len(values))
	for i, v := range values {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxPower == 0 {
		return 0
	}

	n := 1
	for n < len(values) {
		n *= 2
	}
	freq := float64(maxIdx) / (float64(n) * dt)
	return 1.0 / freq
}
