// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package analog

import (
	"errors"
	"fmt"

	"github.com/iotextra/analogio/ads1x15"
)

// Kind distinguishes voltage ranges from shunt-sensed current ranges.
type Kind int

// Available measurement kinds.
const (
	Voltage Kind = iota
	Current
)

var kindNames = map[Kind]string{
	Voltage: "voltage",
	Current: "current",
}

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	return kindNames[k]
}

// Hardware divider gains selected by the input jumpers. The default
// network runs two 49.9k resistors in parallel ahead of the op amp
// (24.95/105); cutting the jumpers leaves one resistor (49.9/105).
const (
	DefaultDividerGain = 0.237619047619048
	AltDividerGain     = 0.47523809523809524
)

// ShuntOhms is the sense resistance converting a current loop into a
// voltage at the converter input.
const ShuntOhms = 0.249

// ErrUnknownRange reports a range key with no catalog entry.
var ErrUnknownRange = errors.New("unknown measurement range")

// Range describes one named measurement range: its physical bounds, the
// PGA setting with headroom for the divided signal, and the analog
// front-end factors undone during conversion. Current ranges carry the
// shunt resistance; their Min and Max are in milliamps.
type Range struct {
	Key         string
	Kind        Kind
	Min         float64
	Max         float64
	Bipolar     bool
	Gain        ads1x15.Gain
	DividerGain float64
	Offset      float64
	Shunt       float64
}

// Unit returns the range's display unit.
func (r Range) Unit() string {
	if r.Kind == Current {
		return "mA"
	}
	return "V"
}

// Clamp truncates a physical value into the range's bounds.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// String implements the Stringer interface for Range.
func (r Range) String() string {
	return fmt.Sprintf("%s (ADC range %s)", r.Key, r.Gain)
}

// The catalog. Authoring order is the menu order; tests rely on it
// being stable.
var voltageRanges = []Range{
	{Key: "0-0.5V", Kind: Voltage, Min: 0, Max: 0.5, Gain: ads1x15.Gain8, DividerGain: DefaultDividerGain},
	{Key: "0-5V", Kind: Voltage, Min: 0, Max: 5.0, Gain: ads1x15.Gain1, DividerGain: DefaultDividerGain},
	{Key: "0-10V", Kind: Voltage, Min: 0, Max: 10.0, Gain: ads1x15.Gain2_3, DividerGain: DefaultDividerGain},
	{Key: "±0.5V", Kind: Voltage, Min: -0.5, Max: 0.5, Bipolar: true, Gain: ads1x15.Gain8, DividerGain: DefaultDividerGain},
	{Key: "±5V", Kind: Voltage, Min: -5.0, Max: 5.0, Bipolar: true, Gain: ads1x15.Gain1, DividerGain: DefaultDividerGain},
	{Key: "±10V", Kind: Voltage, Min: -10.0, Max: 10.0, Bipolar: true, Gain: ads1x15.Gain2_3, DividerGain: DefaultDividerGain},
}

var currentRanges = []Range{
	{Key: "0-20mA", Kind: Current, Min: 0, Max: 20, Gain: ads1x15.Gain1, DividerGain: DefaultDividerGain, Shunt: ShuntOhms},
	{Key: "4-20mA", Kind: Current, Min: 4, Max: 20, Gain: ads1x15.Gain1, DividerGain: DefaultDividerGain, Shunt: ShuntOhms},
	{Key: "±20mA", Kind: Current, Min: -20, Max: 20, Bipolar: true, Gain: ads1x15.Gain1, DividerGain: DefaultDividerGain, Shunt: ShuntOhms},
	{Key: "0-40mA", Kind: Current, Min: 0, Max: 40, Gain: ads1x15.Gain2_3, DividerGain: DefaultDividerGain, Shunt: ShuntOhms},
}

var rangesByKey = func() map[string]Range {
	m := make(map[string]Range)
	for _, r := range append(voltageRanges[:len(voltageRanges):len(voltageRanges)], currentRanges...) {
		m[r.Key] = r
	}
	return m
}()

// Ranges returns the catalog entries of one kind in authoring order.
func Ranges(kind Kind) []Range {
	var src []Range
	switch kind {
	case Voltage:
		src = voltageRanges
	case Current:
		src = currentRanges
	}
	out := make([]Range, len(src))
	copy(out, src)
	return out
}

// AllRanges returns the full catalog, voltage ranges first.
func AllRanges() []Range {
	return append(Ranges(Voltage), Ranges(Current)...)
}

// LookupRange finds a catalog entry by its key.
func LookupRange(key string) (Range, error) {
	r, ok := rangesByKey[key]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownRange, key)
	}
	return r, nil
}
