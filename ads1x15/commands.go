// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ads1x15

type register byte

// Register addresses. All registers are 16 bits wide and are transferred
// big endian on the wire.
const (
	regConversion register = 0x00
	regConfig     register = 0x01
	regLoThresh   register = 0x02
	regHiThresh   register = 0x03
)

var registers = map[register]string{
	regConversion: "Conversion result",
	regConfig:     "Configuration",
	regLoThresh:   "Comparator low threshold",
	regHiThresh:   "Comparator high threshold",
}

func (r register) String() string {
	return registers[r]
}

// Config register bit fields. Writing configOS starts a single-shot
// conversion; on read, the bit is set once the converter is idle again.
const (
	configOS         uint16 = 0x8000
	configModeSingle uint16 = 0x0100
	configCompOff    uint16 = 0x0003

	muxShift  = 12
	pgaShift  = 9
	rateShift = 5
)

// Input multiplexer values for the differential pairs the converter
// supports. The first channel is the positive input.
const (
	muxDiff01 uint16 = 0x0
	muxDiff03 uint16 = 0x1
	muxDiff13 uint16 = 0x2
	muxDiff23 uint16 = 0x3
)

// muxValues maps a differential input pair to its MUX field value.
var muxValues = map[[2]int]uint16{
	{0, 1}: muxDiff01,
	{0, 3}: muxDiff03,
	{1, 3}: muxDiff13,
	{2, 3}: muxDiff23,
}

// packConfig assembles the config register word for a single-shot
// differential conversion with the comparator disabled.
func packConfig(mux uint16, gain Gain, rateIndex int) uint16 {
	return configOS |
		mux<<muxShift |
		gain.ConfigBits() |
		configModeSingle |
		uint16(rateIndex)<<rateShift |
		configCompOff
}

// Issued as the second byte after an I2C general call to power the
// converter down.
const generalCallShutdown byte = 0x06
