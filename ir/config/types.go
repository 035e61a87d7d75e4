package config

// Preset holds saved settings for the blend and plot_response commands. Unset
// fields leave the corresponding flag alone.
type Preset struct {
	Ratio    *int    `yaml:"ratio,omitempty"`     // wet percentage, 0-100
	HighPass *int    `yaml:"high_pass,omitempty"` // Hz, 0 disables
	LowPass  *int    `yaml:"low_pass,omitempty"`  // Hz, 0 disables
	Order    *int    `yaml:"order,omitempty"`
	NBits    *int    `yaml:"n_bits,omitempty"`
	Stereo   *bool   `yaml:"stereo,omitempty"`
	Output   *string `yaml:"output,omitempty"` // output directory
}

// FlagValues maps command-line flag names to the values set in the preset.
func (p *Preset) FlagValues() map[string]any {
	values := map[string]any{}
	if p.Ratio != nil {
		values["ratio"] = *p.Ratio
	}
	if p.HighPass != nil {
		values["high-pass"] = *p.HighPass
	}
	if p.LowPass != nil {
		values["low-pass"] = *p.LowPass
	}
	if p.Order != nil {
		values["order"] = *p.Order
	}
	if p.NBits != nil {
		values["n-bits"] = *p.NBits
	}
	if p.Stereo != nil {
		values["stereo"] = *p.Stereo
	}
	if p.Output != nil {
		values["output"] = *p.Output
	}
	return values
}
