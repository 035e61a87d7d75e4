package ir

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidRatio = errors.New("invalid wet/dry ratio")

const (
	DefaultRatio       = 50
	DefaultFilterOrder = 2
	DefaultBits        = 24
)

// BlendParams configures a dry/wet blend. A zero HighPass or LowPass disables that
// filter.
type BlendParams struct {
	// Ratio is the percentage of wet signal in the mix, 0 to 100.
	Ratio int
	// HighPass is the cutoff in Hz of the high-pass filter applied to the wet signal.
	HighPass int
	// LowPass is the cutoff in Hz of the low-pass filter applied to the dry signal.
	LowPass int
	// Order of both filters.
	Order int
}

func DefaultBlendParams() BlendParams {
	return BlendParams{
		Ratio: DefaultRatio,
		Order: DefaultFilterOrder,
	}
}

func (p BlendParams) FiltersActive() bool {
	return p.HighPass != 0 || p.LowPass != 0
}

// Validate checks the parameters against a sample rate.
func (p BlendParams) Validate(sampleRate int) error {
	if p.Ratio < 0 || p.Ratio > 100 {
		return fmt.Errorf("%w: %d%% is outside 0-100", ErrInvalidRatio, p.Ratio)
	}
	if p.HighPass != 0 {
		if err := ValidateFilter(p.Order, float64(p.HighPass), float64(sampleRate)); err != nil {
			return fmt.Errorf("high-pass: %w", err)
		}
	}
	if p.LowPass != 0 {
		if err := ValidateFilter(p.Order, float64(p.LowPass), float64(sampleRate)); err != nil {
			return fmt.Errorf("low-pass: %w", err)
		}
	}
	return nil
}

// UnitImpulse returns a signal of length n that is 1 at index 0 and 0 elsewhere.
func UnitImpulse(n int) []float64 {
	if n == 0 {
		return nil
	}
	d := make([]float64, n)
	d[0] = 1
	return d
}

// Blend mixes a recorded impulse response (wet) with a unit impulse (dry) using
// Butterworth filters.
func Blend(samples []float64, sampleRate, nBits int, p BlendParams) ([]float64, error) {
	return BlendWith(Butterworth{}, samples, sampleRate, nBits, p)
}

// BlendWith is Blend with a caller supplied filter designer.
//
// The wet signal is the input divided by RescaleFactor(nBits). The high-pass filter
// shapes the wet signal only, the low-pass filter the dry signal only. The mix is
// scaled back to the input's range.
func BlendWith(d FilterDesigner, samples []float64, sampleRate, nBits int, p BlendParams) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}
	if err := p.Validate(sampleRate); err != nil {
		return nil, err
	}
	rf, err := RescaleFactor(nBits)
	if err != nil {
		return nil, err
	}

	wet := make([]float64, len(samples))
	floats.ScaleTo(wet, 1/rf, samples)
	dry := UnitImpulse(len(samples))

	if p.HighPass != 0 {
		hp, err := d.DesignHighPass(p.Order, float64(p.HighPass), float64(sampleRate))
		if err != nil {
			return nil, err
		}
		wet = hp.Apply(wet)
	}
	if p.LowPass != 0 {
		lp, err := d.DesignLowPass(p.Order, float64(p.LowPass), float64(sampleRate))
		if err != nil {
			return nil, err
		}
		dry = lp.Apply(dry)
	}

	r := float64(p.Ratio) / 100
	blended := make([]float64, len(samples))
	floats.ScaleTo(blended, 1-r, dry)
	floats.AddScaled(blended, r, wet)
	floats.Scale(rf, blended)
	return blended, nil
}
