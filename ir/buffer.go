package ir

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidBitDepth = errors.New("invalid bit depth")
	ErrEmptySignal     = errors.New("empty signal")
)

// Buffer is a single channel of samples together with the format it was read in.
//
// Samples are held at the container word scale: 24-bit PCM is left-justified into
// a 32-bit word, so a full scale 24-bit sample reads as roughly +/-2^31.
type Buffer struct {
	Samples    []float64
	SampleRate int
	// BitDepth is the bit depth of the waveform container, used when writing.
	BitDepth int
}

func (b Buffer) Len() int {
	return len(b.Samples)
}

// Duration in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// RescaleFactor returns 2^(nBits+7), the divisor that maps integer samples to the
// normalized range.
func RescaleFactor(nBits int) (float64, error) {
	if nBits < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBitDepth, nBits)
	}
	return math.Ldexp(1, nBits+7), nil
}

// Normalize returns a copy of samples divided by the rescale factor for nBits.
func Normalize(samples []float64, nBits int) ([]float64, error) {
	rf, err := RescaleFactor(nBits)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	floats.ScaleTo(out, 1/rf, samples)
	return out, nil
}

// Denormalize is the inverse of Normalize.
func Denormalize(samples []float64, nBits int) ([]float64, error) {
	rf, err := RescaleFactor(nBits)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	floats.ScaleTo(out, rf, samples)
	return out, nil
}
