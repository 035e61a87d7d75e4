package ir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputDir is where blended impulse responses are written.
const DefaultOutputDir = "output"

// BlendFileName derives the output file name from the input path and the blend
// parameters, e.g. "hall-70-HP80-LP12000-ORDER2.wav". The order is only included
// when a filter is active.
func BlendFileName(input string, p BlendParams) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	fmt.Fprintf(&b, "%s-%d", base, p.Ratio)
	if p.HighPass != 0 {
		fmt.Fprintf(&b, "-HP%d", p.HighPass)
	}
	if p.LowPass != 0 {
		fmt.Fprintf(&b, "-LP%d", p.LowPass)
	}
	if p.FiltersActive() {
		fmt.Fprintf(&b, "-ORDER%d", p.Order)
	}
	b.WriteString(".wav")
	return b.String()
}

// EnsureOutputDir creates dir and any missing parents.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// BlendOutputPath creates dir if needed and returns the path of the blended file.
func BlendOutputPath(dir, input string, p BlendParams) (string, error) {
	if err := EnsureOutputDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, BlendFileName(input, p)), nil
}
