// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ads1x15

import (
	"encoding/binary"
	"fmt"
)

// Full-scale counts for a signed conversion code at each resolution.
const (
	counts16 = 32768
	counts12 = 2048
)

// Volts converts a signed conversion code into the voltage at the
// converter's input pins for the given PGA setting and resolution.
func Volts(code int16, gain Gain, bits int) float64 {
	counts := float64(counts16)
	if bits == Bits12 {
		counts = counts12
	}
	return gain.FullScale() * float64(code) / counts
}

// DecodeCode decodes the 2-byte conversion register contents into a
// signed conversion code. The 12-bit parts left-align their result, so
// the word is shifted down to sign-extended 12-bit counts.
func DecodeCode(data []byte, bits int) (int16, error) {
	if len(data) != 2 {
		return 0, fmt.Errorf("conversion word must be 2 bytes, got %d", len(data))
	}
	code := int16(binary.BigEndian.Uint16(data))
	if bits == Bits12 {
		code >>= 4
	}
	return code, nil
}

// EncodeWord encodes a 16-bit register value into the 2-byte big-endian
// sequence the converter expects.
func EncodeWord(w uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, w)
	return b
}
