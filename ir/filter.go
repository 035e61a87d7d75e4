package ir

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidFilter = errors.New("invalid filter parameter")

type FilterKind int

const (
	LowPass FilterKind = iota
	HighPass
)

func (k FilterKind) String() string {
	switch k {
	case LowPass:
		return "low-pass"
	case HighPass:
		return "high-pass"
	}
	return fmt.Sprintf("FilterKind(%d)", int(k))
}

// Filter is a designed digital filter. Apply returns a filtered copy of samples and
// leaves the input untouched.
type Filter interface {
	Apply(samples []float64) []float64
}

// FilterDesigner designs low-pass and high-pass filters for a given sample rate.
type FilterDesigner interface {
	DesignLowPass(order int, cutoff, sampleRate float64) (Filter, error)
	DesignHighPass(order int, cutoff, sampleRate float64) (Filter, error)
}

// ValidateFilter checks that a filter of the given order and cutoff can be designed at
// sampleRate. The cutoff must lie strictly between 0 and Nyquist.
func ValidateFilter(order int, cutoff, sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v must be positive", ErrInvalidFilter, sampleRate)
	}
	if order < 1 {
		return fmt.Errorf("%w: order %d must be at least 1", ErrInvalidFilter, order)
	}
	nyquist := sampleRate / 2
	if cutoff <= 0 || cutoff >= nyquist {
		return fmt.Errorf("%w: cutoff %vHz must be between 0 and %vHz", ErrInvalidFilter, cutoff, nyquist)
	}
	return nil
}

// Section is one second-order stage. a0 is normalized to 1.
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Poles of the section's transfer function.
func (s Section) Poles() [2]complex128 {
	// z^2 + A1 z + A2
	disc := complex(s.A1*s.A1-4*s.A2, 0)
	root := sqrtComplex(disc)
	return [2]complex128{
		(complex(-s.A1, 0) + root) / 2,
		(complex(-s.A1, 0) - root) / 2,
	}
}

func sqrtComplex(c complex128) complex128 {
	if real(c) >= 0 {
		return complex(math.Sqrt(real(c)), 0)
	}
	return complex(0, math.Sqrt(-real(c)))
}

// SOS is a cascade of second-order sections applied in order.
type SOS []Section

// Apply runs samples through the cascade in Direct Form II Transposed, starting
// from rest. The filter is causal, not zero-phase.
func (sos SOS) Apply(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	for _, s := range sos {
		var d0, d1 float64
		for i, x := range out {
			y := s.B0*x + d0
			d0 = s.B1*x - s.A1*y + d1
			d1 = s.B2*x - s.A2*y
			out[i] = y
		}
	}
	return out
}

// Order is the total filter order of the cascade.
func (sos SOS) Order() int {
	order := 0
	for _, s := range sos {
		if s.A2 == 0 && s.B2 == 0 {
			order++
		} else {
			order += 2
		}
	}
	return order
}

// Butterworth designs maximally flat cascades using the bilinear transform, with
// the analog prototype prewarped at the cutoff.
type Butterworth struct{}

func (Butterworth) DesignLowPass(order int, cutoff, sampleRate float64) (Filter, error) {
	return DesignButterworth(LowPass, order, cutoff, sampleRate)
}

func (Butterworth) DesignHighPass(order int, cutoff, sampleRate float64) (Filter, error) {
	return DesignButterworth(HighPass, order, cutoff, sampleRate)
}

// DesignButterworth returns the second-order sections of a Butterworth filter. Odd
// orders end with a first-order section.
func DesignButterworth(kind FilterKind, order int, cutoff, sampleRate float64) (SOS, error) {
	if err := ValidateFilter(order, cutoff, sampleRate); err != nil {
		return nil, fmt.Errorf("designing %s filter: %w", kind, err)
	}

	sos := make(SOS, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sos = append(sos, secondOrderSection(kind, cutoff, q, sampleRate))
	}
	if order%2 != 0 {
		sos = append(sos, firstOrderSection(kind, cutoff, sampleRate))
	}
	verifySections(sos)
	return sos, nil
}

// butterworthQ is the quality factor of pole pair index of an order-N prototype.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	return 1 / (2 * math.Sin(theta))
}

func secondOrderSection(kind FilterKind, cutoff, q, sampleRate float64) Section {
	w0 := 2 * math.Pi * cutoff / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	var b0, b1, b2 float64
	switch kind {
	case LowPass:
		b0 = (1 - cw) / 2
		b1 = 1 - cw
		b2 = (1 - cw) / 2
	case HighPass:
		b0 = (1 + cw) / 2
		b1 = -(1 + cw)
		b2 = (1 + cw) / 2
	}
	return Section{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

func firstOrderSection(kind FilterKind, cutoff, sampleRate float64) Section {
	k := math.Tan(math.Pi * cutoff / sampleRate)
	norm := 1 / (1 + k)

	s := Section{A1: (k - 1) * norm}
	switch kind {
	case LowPass:
		s.B0 = k * norm
		s.B1 = k * norm
	case HighPass:
		s.B0 = norm
		s.B1 = -norm
	}
	return s
}
