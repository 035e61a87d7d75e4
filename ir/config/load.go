package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of preset loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
}

// LoadFromFile loads a Preset from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}

	preset, err := decode(data, opts)
	if err != nil {
		return nil, err
	}

	if opts.ResolvePaths {
		preset.ResolvePaths(NewPathResolver(filepath.Dir(path)))
	}
	return preset, nil
}

func decode(data []byte, opts LoadOptions) (*Preset, error) {
	preset := &Preset{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(preset); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing preset file: %w", err)
	}

	if opts.ValidateImmediately {
		if errs := preset.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors:\n%s", FormatValidationErrors(errs))
		}
	}
	return preset, nil
}

// SaveToFile saves a Preset to a YAML file
func SaveToFile(preset *Preset, path string) error {
	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("marshaling preset: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing preset file: %w", err)
	}

	return nil
}

// ResolvePaths resolves the relative output directory against the resolver's base
func (p *Preset) ResolvePaths(resolver *PathResolver) {
	if p.Output != nil && *p.Output != "" {
		out := resolver.ResolvePath(*p.Output)
		p.Output = &out
	}
}

// Resolver exposes the preset to kong. Flags given on the command line take
// precedence over preset values.
func (p *Preset) Resolver() kong.Resolver {
	values := p.FlagValues()
	return kong.ResolverFunc(func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			return nil, nil
		}
		return v, nil
	})
}

// KongLoader is a kong.ConfigurationLoader for YAML presets. Presets loaded from a
// file have their paths resolved relative to that file.
func KongLoader(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}
	preset, err := decode(data, LoadOptions{ValidateImmediately: true})
	if err != nil {
		return nil, err
	}
	if f, ok := r.(*os.File); ok {
		preset.ResolvePaths(NewPathResolver(filepath.Dir(f.Name())))
	}
	return preset.Resolver(), nil
}
