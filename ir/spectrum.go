package ir

import (
	"fmt"

	lin "github.com/sgreben/piecewiselinear"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Response is the magnitude spectrum of a signal up to Nyquist.
type Response struct {
	Frequencies  []float64 // Hz
	MagnitudesDB []float64
	SampleRate   int
}

// Spectrum computes the frequency response of samples.
//
// Samples are normalized by RescaleFactor(nBits) before the transform. For N input
// samples the response holds N/2 points, linearly spaced from 0 Hz to Nyquist
// inclusive.
func Spectrum(samples []float64, sampleRate, nBits int) (Response, error) {
	if sampleRate <= 0 {
		return Response{}, fmt.Errorf("sample rate %d must be positive", sampleRate)
	}
	ts, err := Normalize(samples, nBits)
	if err != nil {
		return Response{}, err
	}

	n := len(ts)
	half := n / 2
	resp := Response{
		Frequencies:  make([]float64, half),
		MagnitudesDB: make([]float64, half),
		SampleRate:   sampleRate,
	}
	if half == 0 {
		return resp, nil
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, ts)
	for i := 0; i < half; i++ {
		resp.MagnitudesDB[i] = magnitudeDB(coeffs[i])
	}

	nyquist := float64(sampleRate) / 2
	if half == 1 {
		resp.Frequencies[0] = 0
	} else {
		floats.Span(resp.Frequencies, 0, nyquist)
	}
	return resp, nil
}

func (r Response) Len() int {
	return len(r.Frequencies)
}

// At returns the magnitude in dB at freq, interpolated linearly between bins.
// Frequencies outside the response are clamped to its ends.
func (r Response) At(freq float64) float64 {
	if r.Len() == 0 {
		return MinDB
	}
	last := r.Len() - 1
	switch {
	case freq <= r.Frequencies[0]:
		return r.MagnitudesDB[0]
	case freq >= r.Frequencies[last]:
		return r.MagnitudesDB[last]
	}
	f := lin.Function{
		X: r.Frequencies,
		Y: r.MagnitudesDB,
	}
	return f.At(freq)
}

// Reading is the response magnitude at one frequency.
type Reading struct {
	Frequency   float64
	MagnitudeDB float64
}

// Readings samples the response at each of freqs.
func (r Response) Readings(freqs []float64) []Reading {
	readings := make([]Reading, len(freqs))
	for i, f := range freqs {
		readings[i] = Reading{
			Frequency:   f,
			MagnitudeDB: r.At(f),
		}
	}
	return readings
}
