package ir

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// TickFrequencies are the labelled frequencies on the response plot.
var TickFrequencies = []float64{20, 50, 100, 250, 500, 1500, 3000, 5000, 10_000, 20_000}

const (
	plotMinHz = 20.0
	plotMaxHz = 20_000.0
	plotMinDB = -30.0
	plotMaxDB = 30.0

	plotWidth  = 12 * vg.Inch
	plotHeight = 7 * vg.Inch
)

type responseXYs Response

func (r responseXYs) Len() int {
	return len(r.Frequencies)
}

func (r responseXYs) XY(i int) (float64, float64) {
	return r.Frequencies[i], r.MagnitudesDB[i]
}

// PlotResponse draws magnitude in dB against frequency on a log axis.
func PlotResponse(resp Response, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Magnitude (dB)"

	// The log scale cannot place 0 Hz.
	pts := make(plotter.XYs, 0, resp.Len())
	xys := responseXYs(resp)
	for i := 0; i < xys.Len(); i++ {
		x, y := xys.XY(i)
		if x <= 0 || math.IsInf(y, 0) || math.IsNaN(y) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("plotting response: %w", ErrEmptySignal)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plotting response: %w", err)
	}
	p.Add(plotter.NewGrid(), line)

	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.ConstantTicks(frequencyTicks(TickFrequencies))
	p.X.Tick.Label.Rotation = 40 * math.Pi / 180
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min, p.X.Max = plotMinHz, plotMaxHz
	p.Y.Min, p.Y.Max = plotMinDB, plotMaxDB
	return p, nil
}

func frequencyTicks(freqs []float64) []plot.Tick {
	ticks := make([]plot.Tick, len(freqs))
	for i, f := range freqs {
		ticks[i] = plot.Tick{Value: f, Label: fmt.Sprintf("%gHz", f)}
	}
	return ticks
}

// SavePlot writes the plot as an image. The format follows the file extension.
func SavePlot(p *plot.Plot, path string) error {
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

// ResponseImagePath is the image written next to a waveform file.
func ResponseImagePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".fresponse.png"
}

// DisplayImagePath is where ShowPlot renders the plot for name. The path only
// depends on the base name, so reruns overwrite the previous image.
func DisplayImagePath(name string) string {
	return filepath.Join(os.TempDir(), "goir", ResponseImagePath(filepath.Base(name)))
}

// ShowPlot renders the plot to DisplayImagePath(name) and opens it in the
// platform's image viewer. It returns the path of the rendered image.
func ShowPlot(p *plot.Plot, name string) (string, error) {
	path := DisplayImagePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating display dir: %w", err)
	}
	if err := SavePlot(p, path); err != nil {
		return "", err
	}
	if err := viewerCommand(path).Start(); err != nil {
		return path, fmt.Errorf("opening viewer: %w", err)
	}
	return path, nil
}

func viewerCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
