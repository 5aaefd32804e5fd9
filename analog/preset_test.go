// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package analog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePreset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApplyPreset(t *testing.T) {
	path := writePreset(t, `
resolution: 12
range: 4-20mA
rate: 250
channel: 6
divider: 0.47523809523809524
`)
	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	s := NewSession(&fakeAcquirer{})
	if err := p.Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.Resolution() != 12 || s.Rate() != 250 || s.Channel() != 6 {
		t.Errorf("Applied session = %d-bit, %d SPS, channel %d", s.Resolution(), s.Rate(), s.Channel())
	}
	if r, ok := s.Range(); !ok || r.Key != "4-20mA" {
		t.Errorf("Applied range = %v", r.Key)
	}
	if s.DividerGain() != AltDividerGain {
		t.Errorf("DividerGain = %v", s.DividerGain())
	}
	if s.Synced() {
		t.Error("Preset must not mark devices synced")
	}
}

func TestPresetDefaults(t *testing.T) {
	p, err := LoadPreset(writePreset(t, "range: 0-10V\n"))
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	s := NewSession(&fakeAcquirer{})
	if err := p.Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.Resolution() != 16 || s.Rate() != 128 || s.Channel() != 0 {
		t.Errorf("Defaults = %d-bit, %d SPS, channel %d", s.Resolution(), s.Rate(), s.Channel())
	}
	if s.DividerGain() != DefaultDividerGain {
		t.Errorf("DividerGain = %v", s.DividerGain())
	}
}

func TestPresetRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
		expected error
	}{
		{"unknown range", "range: 0-100V\n", ErrUnknownRange},
		{"bad rate", "range: 0-10V\nrate: 100\n", nil},
		{"bad channel", "range: 0-10V\nchannel: 9\n", ErrInvalidChannel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := LoadPreset(writePreset(t, tc.contents))
			if err != nil {
				t.Fatalf("LoadPreset: %v", err)
			}
			err = p.Apply(NewSession(&fakeAcquirer{}))
			if err == nil {
				t.Fatal("Expected Apply to fail")
			}
			if tc.expected != nil && !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestLoadPresetWithoutRange(t *testing.T) {
	if _, err := LoadPreset(writePreset(t, "rate: 128\n")); err == nil {
		t.Error("Expected an error for a preset without a range")
	}
}

func TestLoadPresetMissingFile(t *testing.T) {
	if _, err := LoadPreset(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
