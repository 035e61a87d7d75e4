package main

import (
	"errors"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/jdginn/go-ir-tools/interact"
	goir "github.com/jdginn/go-ir-tools/ir"
	irConfig "github.com/jdginn/go-ir-tools/ir/config"
	"github.com/jdginn/go-ir-tools/logger"
)

type PlotResponseCmd struct {
	File    string          `arg:"" name:"file" help:"Waveform file to analyse"`
	Save    bool            `name:"save" help:"Write <file>.fresponse.png instead of displaying the plot"`
	Stereo  bool            `name:"stereo" help:"Use the left channel of a stereo file"`
	NBits   int             `name:"n-bits" default:"24" help:"Number of bits of the signal"`
	Browse  bool            `name:"browse" help:"Browse the response at the labelled frequencies in the terminal"`
	Config  kong.ConfigFlag `name:"config" help:"Load settings from a YAML preset"`
	Verbose bool            `name:"verbose" short:"v" help:"Enable debug logging"`
}

func (c *PlotResponseCmd) Validate() error {
	preset := irConfig.Preset{NBits: &c.NBits, Stereo: &c.Stereo}
	if errs := preset.Validate(); len(errs) > 0 {
		return errors.New(irConfig.FormatValidationErrors(errs))
	}
	return nil
}

func (c *PlotResponseCmd) Run(log *zap.Logger) error {
	buf, err := goir.LoadChannel(c.File, c.Stereo)
	if err != nil {
		return err
	}

	resp, err := goir.Spectrum(buf.Samples, buf.SampleRate, c.NBits)
	if err != nil {
		return err
	}
	readings := resp.Readings(goir.TickFrequencies)
	for _, r := range readings {
		log.Debug("response", zap.Float64("hz", r.Frequency), zap.Float64("db", r.MagnitudeDB))
	}

	title := filepath.Base(c.File)
	p, err := goir.PlotResponse(resp, title)
	if err != nil {
		return err
	}

	if c.Save {
		path := goir.ResponseImagePath(c.File)
		if err := goir.SavePlot(p, path); err != nil {
			return err
		}
		log.Info("wrote frequency response", zap.String("path", path))
	} else {
		path, err := goir.ShowPlot(p, c.File)
		if err != nil {
			return err
		}
		log.Debug("displaying frequency response", zap.String("path", path))
	}

	if c.Browse {
		return interact.Interact(title, readings)
	}
	return nil
}

func main() {
	var cli PlotResponseCmd
	ctx := kong.Parse(&cli,
		kong.Name("plot_response"),
		kong.Description("Plot the frequency response of a .wav file"),
		kong.UsageOnError(),
		kong.Configuration(irConfig.KongLoader),
	)

	log, err := logger.New(cli.Verbose)
	ctx.FatalIfErrorf(err)
	defer log.Sync()

	if err := cli.Run(log); err != nil {
		log.Fatal("plot_response failed", zap.Error(err))
	}
}
