package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	goir "github.com/jdginn/go-ir-tools/ir"
	irConfig "github.com/jdginn/go-ir-tools/ir/config"
)

func parse(t *testing.T, args ...string) (*BlendCmd, error) {
	t.Helper()
	var cli BlendCmd
	parser, err := kong.New(&cli, kong.Configuration(irConfig.KongLoader))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	return &cli, err
}

// writeIR writes a decaying 24-bit impulse response at 48kHz.
func writeIR(t *testing.T, path string) {
	t.Helper()
	samples := make([]float64, 4800)
	amp := 8_000_000
	for i := 0; i < len(samples); i += 100 {
		samples[i] = float64(amp>>(i/100%20)) * 256
	}
	require.NoError(t, goir.Save(path, goir.Buffer{Samples: samples, SampleRate: 48000, BitDepth: 24}))
}

func TestDefaults(t *testing.T) {
	cli, err := parse(t, "hall.wav")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("hall.wav", cli.Input)
	assert.Equal(50, cli.Ratio)
	assert.Equal(0, cli.HighPass)
	assert.Equal(0, cli.LowPass)
	assert.Equal(2, cli.Order)
	assert.Equal(24, cli.NBits)
	assert.False(cli.Stereo)
	assert.Equal("output", cli.Output)
	assert.Empty(cli.SavePreset)
	assert.Equal(goir.DefaultBlendParams(), cli.params())
}

func TestFlags(t *testing.T) {
	cli, err := parse(t, "hall.wav",
		"--ratio", "70", "--high-pass", "80", "--low-pass", "12000", "--order", "4",
		"--n-bits", "16", "--stereo", "-o", "blends", "--save-preset", "p.yaml", "-v")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(goir.BlendParams{Ratio: 70, HighPass: 80, LowPass: 12000, Order: 4}, cli.params())
	assert.Equal(16, cli.NBits)
	assert.True(cli.Stereo)
	assert.Equal("blends", cli.Output)
	assert.Equal("p.yaml", cli.SavePreset)
	assert.True(cli.Verbose)
}

func TestPresetTracksFlags(t *testing.T) {
	cli, err := parse(t, "hall.wav", "--ratio", "30")
	require.NoError(t, err)

	preset := cli.preset()
	assert.Equal(t, 30, *preset.Ratio)
	cli.Ratio = 60
	assert.Equal(t, 60, *preset.Ratio)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"ratio_above_range", []string{"--ratio", "150"}, "ratio"},
		{"ratio_below_range", []string{"--ratio=-1"}, "ratio"},
		{"negative_high_pass", []string{"--high-pass=-5"}, "high_pass"},
		{"negative_low_pass", []string{"--low-pass=-5"}, "low_pass"},
		{"zero_order", []string{"--order", "0"}, "order"},
		{"zero_bits", []string{"--n-bits", "0"}, "n_bits"},
		{"empty_output", []string{"--output="}, "output"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, append([]string{"hall.wav"}, tc.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestConfigPreset(t *testing.T) {
	dir := t.TempDir()
	preset := filepath.Join(dir, "preset.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("ratio: 30\nlow_pass: 9000\noutput: blends\n"), 0644))

	cli, err := parse(t, "hall.wav", "--config", preset, "--ratio", "40")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(40, cli.Ratio)
	assert.Equal(9000, cli.LowPass)
	assert.Equal(2, cli.Order)
	assert.Equal(filepath.Join(dir, "blends"), cli.Output)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ratio: 500\n"), 0644))
	_, err = parse(t, "hall.wav", "--config", bad)
	assert.Error(err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hall.wav")
	writeIR(t, input)
	out := filepath.Join(dir, "out")

	cli, err := parse(t, input, "--ratio", "70", "--high-pass", "80", "-o", out)
	require.NoError(t, err)
	require.NoError(t, cli.Run(zap.NewNop()))

	rec, err := goir.Load(filepath.Join(out, "hall-70-HP80-ORDER2.wav"))
	require.NoError(t, err)
	assert.Equal(t, 48000, rec.SampleRate)
	assert.Equal(t, 24, rec.BitDepth)
	assert.Equal(t, 4800, rec.Signal.Len())
}

func TestRunWetOnlyCopiesInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hall.wav")
	writeIR(t, input)

	cli, err := parse(t, input, "--ratio", "100", "-o", dir)
	require.NoError(t, err)
	require.NoError(t, cli.Run(zap.NewNop()))

	want, err := os.ReadFile(input)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "hall-100.wav"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunRejectsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hall.wav")
	writeIR(t, input)

	tests := []struct {
		name  string
		input string
		args  []string
		err   error
	}{
		{"high_pass_at_nyquist", input, []string{"--high-pass", "24000"}, goir.ErrInvalidFilter},
		{"low_pass_above_nyquist", input, []string{"--low-pass", "30000"}, goir.ErrInvalidFilter},
		{"missing_input", filepath.Join(dir, "missing.wav"), nil, os.ErrNotExist},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "fresh")
			cli, err := parse(t, append([]string{tc.input, "-o", out}, tc.args...)...)
			require.NoError(t, err)

			assert.ErrorIs(t, cli.Run(zap.NewNop()), tc.err)
			_, err = os.Stat(out)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestRunSavePreset(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hall.wav")
	writeIR(t, input)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	preset := filepath.Join(dir, "presets", "saved.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(preset), 0755))

	cli, err := parse(t, input, "--ratio", "65", "--low-pass", "9000", "-o", "blends", "--save-preset", preset)
	require.NoError(t, err)
	require.NoError(t, cli.Run(zap.NewNop()))

	abs, err := filepath.Abs("blends")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(abs, "hall-65-LP9000-ORDER2.wav"))
	require.NoError(t, err)

	// loaded from a different directory, the preset still targets the same output
	loaded, err := irConfig.LoadFromFile(preset, irConfig.LoadOptions{ValidateImmediately: true, ResolvePaths: true})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(abs, *loaded.Output)
	assert.Equal(65, *loaded.Ratio)
	assert.Equal(9000, *loaded.LowPass)
	assert.Equal(0, *loaded.HighPass)
	assert.Equal(2, *loaded.Order)
	assert.Equal(24, *loaded.NBits)
	// the command's own output flag is left as given
	assert.Equal("blends", cli.Output)
}
