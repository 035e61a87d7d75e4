package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	goir "github.com/jdginn/go-ir-tools/ir"
	irConfig "github.com/jdginn/go-ir-tools/ir/config"
	"github.com/jdginn/go-ir-tools/logger"
)

type BlendCmd struct {
	Input      string          `arg:"" name:"input" help:"Input .wav file"`
	Ratio      int             `name:"ratio" default:"50" help:"Wet/Dry ratio in %"`
	HighPass   int             `name:"high-pass" default:"0" help:"Frequency on which to apply high-pass filtering on wet signal"`
	LowPass    int             `name:"low-pass" default:"0" help:"Frequency on which to apply low-pass filtering on dry signal"`
	Order      int             `name:"order" default:"2" help:"Order of high/low-pass filters"`
	NBits      int             `name:"n-bits" default:"24" help:"Number of bits of the signal"`
	Stereo     bool            `name:"stereo" help:"Use the left channel of a stereo file"`
	Output     string          `name:"output" short:"o" default:"output" help:"Output directory"`
	Config     kong.ConfigFlag `name:"config" help:"Load settings from a YAML preset"`
	SavePreset string          `name:"save-preset" help:"Write the effective settings to a YAML preset"`
	Verbose    bool            `name:"verbose" short:"v" help:"Enable debug logging"`
}

func (c *BlendCmd) params() goir.BlendParams {
	return goir.BlendParams{
		Ratio:    c.Ratio,
		HighPass: c.HighPass,
		LowPass:  c.LowPass,
		Order:    c.Order,
	}
}

func (c *BlendCmd) preset() *irConfig.Preset {
	return &irConfig.Preset{
		Ratio:    &c.Ratio,
		HighPass: &c.HighPass,
		LowPass:  &c.LowPass,
		Order:    &c.Order,
		NBits:    &c.NBits,
		Stereo:   &c.Stereo,
		Output:   &c.Output,
	}
}

func (c *BlendCmd) Validate() error {
	if errs := c.preset().Validate(); len(errs) > 0 {
		return errors.New(irConfig.FormatValidationErrors(errs))
	}
	return nil
}

func (c *BlendCmd) Run(log *zap.Logger) error {
	params := c.params()

	buf, err := goir.LoadChannel(c.Input, c.Stereo)
	if err != nil {
		return err
	}
	// cutoffs are checked against the input's Nyquist before anything is written
	if err := params.Validate(buf.SampleRate); err != nil {
		return err
	}

	outPath, err := goir.BlendOutputPath(c.Output, c.Input, params)
	if err != nil {
		return err
	}
	log.Debug("loaded impulse response",
		zap.String("path", c.Input),
		zap.Int("samples", buf.Len()),
		zap.Int("sample_rate", buf.SampleRate),
		zap.Int("bit_depth", buf.BitDepth),
	)

	blended, err := goir.Blend(buf.Samples, buf.SampleRate, c.NBits, params)
	if err != nil {
		return err
	}
	log.Debug("blended",
		zap.Int("ratio", params.Ratio),
		zap.Int("high_pass", params.HighPass),
		zap.Int("low_pass", params.LowPass),
		zap.Int("order", params.Order),
	)

	if err := goir.Save(outPath, goir.Buffer{
		Samples:    blended,
		SampleRate: buf.SampleRate,
		BitDepth:   buf.BitDepth,
	}); err != nil {
		return err
	}
	log.Info("wrote blended impulse response", zap.String("path", outPath))

	if c.SavePreset != "" {
		if err := c.savePreset(); err != nil {
			return err
		}
		log.Info("wrote preset", zap.String("path", c.SavePreset))
	}
	return nil
}

// savePreset writes the effective settings with the output directory made absolute,
// so the preset writes to the same place wherever it is loaded from.
func (c *BlendCmd) savePreset() error {
	preset := c.preset()
	output, err := filepath.Abs(c.Output)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}
	preset.Output = &output
	return irConfig.SaveToFile(preset, c.SavePreset)
}

func main() {
	var cli BlendCmd
	ctx := kong.Parse(&cli,
		kong.Name("blend"),
		kong.Description("Compute a dry/wet impulse response based on a given .wav impulse response file"),
		kong.UsageOnError(),
		kong.Configuration(irConfig.KongLoader),
	)

	log, err := logger.New(cli.Verbose)
	ctx.FatalIfErrorf(err)
	defer log.Sync()

	if err := cli.Run(log); err != nil {
		log.Fatal("blend failed", zap.Error(err))
	}
}
