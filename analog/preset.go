// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package analog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Preset is a stored session configuration. Zero fields take the
// module defaults: 16-bit, 128 SPS, channel 0, the range's divider.
type Preset struct {
	Resolution int     `yaml:"resolution"`
	Range      string  `yaml:"range"`
	Rate       int     `yaml:"rate"`
	Channel    int     `yaml:"channel"`
	Divider    float64 `yaml:"divider"`
}

// LoadPreset reads a preset from a YAML file.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("error reading preset: %w", err)
	}
	var p Preset
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return Preset{}, fmt.Errorf("error parsing preset %s: %w", path, err)
	}
	if p.Range == "" {
		return Preset{}, fmt.Errorf("preset %s names no range", path)
	}
	return p, nil
}

// Apply configures the session from the preset. The session still needs
// SyncDevices before sampling.
func (p Preset) Apply(s *Session) error {
	bits := p.Resolution
	if bits == 0 {
		bits = 16
	}
	if err := s.SetResolution(bits); err != nil {
		return err
	}
	if err := s.SetRange(p.Range); err != nil {
		return err
	}
	rate := p.Rate
	if rate == 0 {
		rate = 128
	}
	if err := s.SetRate(rate); err != nil {
		return err
	}
	if err := s.SetChannel(p.Channel); err != nil {
		return err
	}
	if p.Divider != 0 {
		if err := s.SetDividerGain(p.Divider); err != nil {
			return err
		}
	}
	return nil
}
