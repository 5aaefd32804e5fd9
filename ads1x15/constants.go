// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ads1x15

import (
	"errors"
	"fmt"
	"time"
)

// I2C addresses selected by the ADDR pin.
const (
	AddrGND uint16 = 0x48
	AddrVDD uint16 = 0x49
	AddrSDA uint16 = 0x4A
	AddrSCL uint16 = 0x4B
)

// Addresses lists the converter addresses in device-index order. The
// analog input module wires its four converters this way: U4 at 0x48,
// U2 at 0x49, U3 at 0x4A and the fourth unit at 0x4B.
var Addresses = [4]uint16{AddrGND, AddrVDD, AddrSDA, AddrSCL}

// NumDevices is the number of converters on the module's shared bus.
const NumDevices = len(Addresses)

// Supported converter resolutions in bits. The ADS1115 is the 16-bit
// part; the ADS1015 is the pin-compatible 12-bit part.
const (
	Bits16 = 16
	Bits12 = 12
)

var (
	ErrInvalidGain     = errors.New("gain index outside 0..5")
	ErrUnsupportedRate = errors.New("unsupported sample rate")
	ErrInvalidPair     = errors.New("invalid differential input pair")
	ErrNoSuchDevice    = errors.New("no such device index")
	ErrBadResolution   = errors.New("resolution must be 16 or 12 bits")
)

// Gain identifies a PGA setting. The value doubles as the device code
// written into the config register's PGA field.
type Gain byte

// Available PGA settings.
const (
	Gain2_3 Gain = iota // ±6.144V, 2/3x
	Gain1               // ±4.096V, 1x
	Gain2               // ±2.048V, 2x
	Gain4               // ±1.024V, 4x
	Gain8               // ±0.512V, 8x
	Gain16              // ±0.256V, 16x
)

// fullScales maps each PGA setting to its full-scale input span in
// volts. Spans strictly decrease as the gain index increases.
var fullScales = map[Gain]float64{
	Gain2_3: 6.144,
	Gain1:   4.096,
	Gain2:   2.048,
	Gain4:   1.024,
	Gain8:   0.512,
	Gain16:  0.256,
}

// GainFromIndex converts a numeric PGA index into a Gain.
func GainFromIndex(index int) (Gain, error) {
	g := Gain(index)
	if _, ok := fullScales[g]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidGain, index)
	}
	return g, nil
}

// FullScale returns the PGA setting's full-scale input span in volts.
func (g Gain) FullScale() float64 {
	return fullScales[g]
}

// Code returns the device code programmed into the config register for
// this PGA setting.
func (g Gain) Code() int {
	return int(g)
}

// ConfigBits returns the PGA field positioned for the config word.
func (g Gain) ConfigBits() uint16 {
	return uint16(g) << pgaShift
}

// String implements the Stringer interface for Gain.
func (g Gain) String() string {
	return fmt.Sprintf("±%gV", fullScales[g])
}

// Rates lists the supported sample rates in samples per second, in
// device rate-index order. The table applies to the 16-bit parts; the
// 12-bit parts run faster but reuse the same index encoding.
var Rates = []int{8, 16, 32, 64, 128, 250, 475, 860}

var rateIndexes = map[int]int{
	8:   0,
	16:  1,
	32:  2,
	64:  3,
	128: 4,
	250: 5,
	475: 6,
	860: 7,
}

// RateIndex maps a sample rate in SPS to the device rate index.
func RateIndex(sps int) (int, error) {
	index, ok := rateIndexes[sps]
	if !ok {
		return 0, fmt.Errorf("%w: %d SPS", ErrUnsupportedRate, sps)
	}
	return index, nil
}

// conversionTime returns the nominal duration of one conversion at the
// given rate index, used to bound the ready-bit poll.
func conversionTime(rateIndex int) time.Duration {
	if rateIndex < 0 || rateIndex >= len(Rates) {
		rateIndex = 0
	}
	return time.Second / time.Duration(Rates[rateIndex])
}
