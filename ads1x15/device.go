// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ads1x15

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// readyPollInterval paces the OS-bit poll while a conversion runs.
const readyPollInterval = 500 * time.Microsecond

// Device models a single ADS1115 or ADS1015 converter on the I2C bus.
type Device struct {
	conn i2c.Dev
	gain Gain
	bits int
}

// NewDevice returns a Device for the converter at the given address.
// The PGA defaults to ±4.096V on a 16-bit part until Configure is
// called.
func NewDevice(bus i2c.Bus, addr uint16) *Device {
	return &Device{
		conn: i2c.Dev{Bus: bus, Addr: addr},
		gain: Gain1,
		bits: Bits16,
	}
}

// Configure programs the converter's PGA setting and records the part's
// resolution. The config register is written without the start bit,
// which both latches the PGA field and verifies the part answers at its
// address.
func (d *Device) Configure(gain Gain, bits int) error {
	if _, ok := fullScales[gain]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidGain, gain)
	}
	if bits != Bits16 && bits != Bits12 {
		return fmt.Errorf("%w: %d", ErrBadResolution, bits)
	}
	cfg := muxDiff01<<muxShift | gain.ConfigBits() | configModeSingle | configCompOff
	if err := d.writeRegister(regConfig, cfg); err != nil {
		return fmt.Errorf("error programming gain on 0x%02x: %w", d.conn.Addr, err)
	}
	d.gain = gain
	d.bits = bits
	return nil
}

// ReadDifferential runs one single-shot conversion of the difference
// between the two input channels at the given rate index and returns
// the signed conversion code.
func (d *Device) ReadDifferential(chan1, chan2, rateIndex int) (int16, error) {
	mux, ok := muxValues[[2]int{chan1, chan2}]
	if !ok {
		return 0, fmt.Errorf("%w: A%d-A%d", ErrInvalidPair, chan1, chan2)
	}
	if rateIndex < 0 || rateIndex >= len(Rates) {
		return 0, fmt.Errorf("%w: rate index %d", ErrUnsupportedRate, rateIndex)
	}
	cfg := packConfig(mux, d.gain, rateIndex)
	if err := d.writeRegister(regConfig, cfg); err != nil {
		return 0, fmt.Errorf("error starting conversion on 0x%02x: %w", d.conn.Addr, err)
	}
	if err := d.waitReady(rateIndex); err != nil {
		return 0, err
	}
	data, err := d.readRegister(regConversion)
	if err != nil {
		return 0, fmt.Errorf("error reading conversion from 0x%02x: %w", d.conn.Addr, err)
	}
	return DecodeCode(data, d.bits)
}

// Voltage converts a conversion code from this device into volts using
// its programmed PGA setting and resolution.
func (d *Device) Voltage(code int16) float64 {
	return Volts(code, d.gain, d.bits)
}

// waitReady polls the config register until the converter reports the
// conversion complete. The deadline allows two nominal conversion
// periods plus bus slack.
func (d *Device) waitReady(rateIndex int) error {
	deadline := time.Now().Add(2*conversionTime(rateIndex) + 5*time.Millisecond)
	for {
		data, err := d.readRegister(regConfig)
		if err != nil {
			return fmt.Errorf("error polling 0x%02x for conversion: %w", d.conn.Addr, err)
		}
		if data[0]&0x80 != 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("conversion timed out on 0x%02x", d.conn.Addr)
		}
		time.Sleep(readyPollInterval)
	}
}

func (d *Device) writeRegister(reg register, value uint16) error {
	w := append([]byte{byte(reg)}, EncodeWord(value)...)
	return d.conn.Tx(w, nil)
}

func (d *Device) readRegister(reg register) ([]byte, error) {
	r := make([]byte, 2)
	if err := d.conn.Tx([]byte{byte(reg)}, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Bank owns the module's four converters, indexed by device number.
// It satisfies the analog package's Acquirer interface. A single mutex
// serializes bus transactions; the module shares one I2C bus and at
// most one conversion may be inflight.
type Bank struct {
	mu      sync.Mutex
	bus     i2c.Bus
	devices [NumDevices]*Device
}

// OpenBank returns a Bank with one Device per module address.
func OpenBank(bus i2c.Bus) *Bank {
	b := Bank{bus: bus}
	for i, addr := range Addresses {
		b.devices[i] = NewDevice(bus, addr)
	}
	return &b
}

// Close powers every converter down with an I2C general call.
func (b *Bank) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	gc := i2c.Dev{Bus: b.bus, Addr: 0x00}
	if err := gc.Tx([]byte{generalCallShutdown}, nil); err != nil {
		return fmt.Errorf("error shutting converters down: %w", err)
	}
	return nil
}

// NumDevices reports how many converters the bank exposes.
func (b *Bank) NumDevices() int {
	return len(b.devices)
}

func (b *Bank) device(index int) (*Device, error) {
	if index < 0 || index >= len(b.devices) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchDevice, index)
	}
	return b.devices[index], nil
}

// SyncGain programs the PGA setting and resolution on one converter.
func (b *Bank) SyncGain(device, gainCode, bits int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, err := b.device(device)
	if err != nil {
		return err
	}
	gain, err := GainFromIndex(gainCode)
	if err != nil {
		return err
	}
	return d.Configure(gain, bits)
}

// ReadDifferential runs one conversion on the given converter and
// differential pair.
func (b *Bank) ReadDifferential(device, chan1, chan2, rateIndex int) (int16, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, err := b.device(device)
	if err != nil {
		return 0, err
	}
	return d.ReadDifferential(chan1, chan2, rateIndex)
}

// CodeToVoltage converts a conversion code using the converter's
// currently programmed PGA setting and resolution.
func (b *Bank) CodeToVoltage(device int, code int16) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, err := b.device(device)
	if err != nil {
		return 0, err
	}
	return d.Voltage(code), nil
}
