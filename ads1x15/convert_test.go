// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ads1x15

import (
	"fmt"
	"math"
	"testing"
)

func TestVolts(t *testing.T) {
	testCases := []struct {
		code     int16
		gain     Gain
		bits     int
		expected float64
	}{
		{0, Gain2_3, Bits16, 0.0},
		{32767, Gain2_3, Bits16, 6.1438125},
		{-32768, Gain1, Bits16, -4.096},
		{16384, Gain2, Bits16, 1.024},
		{-16384, Gain8, Bits16, -0.256},
		{1024, Gain1, Bits12, 2.048},
		{-2048, Gain2_3, Bits12, -6.144},
		{2047, Gain16, Bits12, 0.255875},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("code %d at %s %d-bit", tc.code, tc.gain, tc.bits), func(t *testing.T) {
			t.Parallel()
			computed := Volts(tc.code, tc.gain, tc.bits)
			if math.Abs(computed-tc.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tc.expected, computed)
			}
		})
	}
}

func TestDecodeCode(t *testing.T) {
	testCases := []struct {
		given    []byte
		bits     int
		expected int16
	}{
		{[]byte{0x00, 0x00}, Bits16, 0},
		{[]byte{0x7f, 0xff}, Bits16, 32767},
		{[]byte{0x80, 0x00}, Bits16, -32768},
		{[]byte{0xff, 0xff}, Bits16, -1},
		{[]byte{0x7f, 0xf0}, Bits12, 2047},
		{[]byte{0x80, 0x00}, Bits12, -2048},
		{[]byte{0xff, 0xf0}, Bits12, -1},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("decode %#x at %d bits", tc.given, tc.bits), func(t *testing.T) {
			t.Parallel()
			computed, err := DecodeCode(tc.given, tc.bits)
			if err != nil {
				t.Fatalf("Unexpected error %v", err)
			}
			if computed != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, computed)
			}
		})
	}
}

func TestBadDecodeCode(t *testing.T) {
	for _, data := range [][]byte{{0x00}, {0x00, 0x00, 0x00}, nil} {
		t.Run(fmt.Sprintf("decode %#x", data), func(t *testing.T) {
			if _, err := DecodeCode(data, Bits16); err == nil {
				t.Error("Expected an error for a malformed conversion word")
			}
		})
	}
}

func TestPackConfig(t *testing.T) {
	testCases := []struct {
		mux       uint16
		gain      Gain
		rateIndex int
		expected  uint16
	}{
		{muxDiff01, Gain2_3, 0, 0x8103},
		{muxDiff01, Gain1, 4, 0x8383},
		{muxDiff23, Gain8, 7, 0xb9e3},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("mux %d gain %s rate %d", tc.mux, tc.gain, tc.rateIndex), func(t *testing.T) {
			t.Parallel()
			computed := packConfig(tc.mux, tc.gain, tc.rateIndex)
			if computed != tc.expected {
				t.Errorf("Expected %#04x, got %#04x", tc.expected, computed)
			}
		})
	}
}

func TestEncodeWordRoundTrip(t *testing.T) {
	for _, w := range []uint16{0x0000, 0x8383, 0xffff} {
		data := EncodeWord(w)
		if len(data) != 2 || uint16(data[0])<<8|uint16(data[1]) != w {
			t.Errorf("EncodeWord(%#04x) = %#x", w, data)
		}
	}
}
