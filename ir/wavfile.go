package ir

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported waveform format")

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Recording is a decoded waveform file.
type Recording struct {
	Signal     Signal
	SampleRate int
	BitDepth   int
}

// containerShift is the left shift that places a sample of the given bit depth
// into its container word. Only 24-bit samples are packed into a wider word.
func containerShift(bitDepth int) int {
	if bitDepth == 24 {
		return 8
	}
	return 0
}

// unsignedOffset is the bias of unsigned sample encodings. 8-bit PCM is stored
// unsigned with silence at 128.
func unsignedOffset(bitDepth int) int {
	if bitDepth == 8 {
		return 128
	}
	return 0
}

func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// Load reads a PCM waveform file.
func Load(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("opening waveform: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return Recording{}, fmt.Errorf("%w: %s is not a RIFF/WAVE file", ErrUnsupportedFormat, path)
	}
	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return Recording{}, fmt.Errorf("%w: audio format %d is not PCM", ErrUnsupportedFormat, d.WavAudioFormat)
	}
	bitDepth := int(d.BitDepth)
	if !supportedBitDepth(bitDepth) {
		return Recording{}, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Recording{}, fmt.Errorf("decoding waveform: %w", err)
	}

	numChans := int(d.NumChans)
	scale := math.Ldexp(1, containerShift(bitDepth))
	channels, err := deinterleave(buf.Data, numChans, unsignedOffset(bitDepth), scale)
	if err != nil {
		return Recording{}, err
	}

	rec := Recording{
		SampleRate: int(d.SampleRate),
		BitDepth:   bitDepth,
	}
	switch numChans {
	case 1:
		rec.Signal = Mono{Samples: channels[0]}
	case 2:
		rec.Signal = Stereo{Left: channels[0], Right: channels[1]}
	}
	return rec, nil
}

func deinterleave(data []int, numChans, offset int, scale float64) ([][]float64, error) {
	if numChans < 1 || numChans > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, numChans)
	}
	frames := len(data) / numChans
	channels := make([][]float64, numChans)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < numChans; c++ {
			channels[c][i] = float64(data[i*numChans+c]-offset) * scale
		}
	}
	return channels, nil
}

// LoadChannel reads a waveform file and reduces it to a single channel.
func LoadChannel(path string, stereo bool) (Buffer, error) {
	rec, err := Load(path)
	if err != nil {
		return Buffer{}, err
	}
	samples, err := SelectChannel(rec.Signal, stereo)
	if err != nil {
		return Buffer{}, fmt.Errorf("%s: %w", path, err)
	}
	return Buffer{
		Samples:    samples,
		SampleRate: rec.SampleRate,
		BitDepth:   rec.BitDepth,
	}, nil
}

// Save writes a mono PCM waveform file in the buffer's bit depth. Samples are
// rounded and clipped to the range of that bit depth. 8-bit files are written
// unsigned.
func Save(path string, b Buffer) error {
	if !supportedBitDepth(b.BitDepth) {
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, b.BitDepth)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, b.SampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating waveform: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, b.SampleRate, b.BitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  b.SampleRate,
		},
		Data:           quantize(b.Samples, b.BitDepth),
		SourceBitDepth: b.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing waveform: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing waveform: %w", err)
	}
	return nil
}

func quantize(samples []float64, bitDepth int) []int {
	scale := math.Ldexp(1, -containerShift(bitDepth))
	hi := math.Ldexp(1, bitDepth-1) - 1
	lo := -math.Ldexp(1, bitDepth-1)
	offset := unsignedOffset(bitDepth)

	out := make([]int, len(samples))
	for i, s := range samples {
		v := math.Round(s * scale)
		switch {
		case math.IsNaN(v):
			v = 0
		case v > hi:
			v = hi
		case v < lo:
			v = lo
		}
		out[i] = int(v) + offset
	}
	return out
}
