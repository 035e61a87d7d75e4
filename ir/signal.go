package ir

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

var ErrChannelsDiffer = errors.New("channels differ, pass --stereo to use the left channel")

// Signal is the channel layout of a decoded waveform. It is either Mono or Stereo.
type Signal interface {
	Channels() int
	Len() int
}

type Mono struct {
	Samples []float64
}

func (m Mono) Channels() int { return 1 }
func (m Mono) Len() int      { return len(m.Samples) }

type Stereo struct {
	Left  []float64
	Right []float64
}

func (s Stereo) Channels() int { return 2 }
func (s Stereo) Len() int      { return len(s.Left) }

// SelectChannel reduces a signal to a single channel.
//
// Mono signals pass through. Stereo signals yield the left channel when stereo is
// set, or when both channels carry identical samples.
func SelectChannel(sig Signal, stereo bool) ([]float64, error) {
	switch s := sig.(type) {
	case Mono:
		return s.Samples, nil
	case Stereo:
		if stereo || floats.Equal(s.Left, s.Right) {
			return s.Left, nil
		}
		return nil, ErrChannelsDiffer
	default:
		return nil, ErrUnsupportedFormat
	}
}
