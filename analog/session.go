// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package analog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iotextra/analogio/ads1x15"
)

// Acquirer is the capability the session needs from the converter bank:
// run one differential conversion, convert a code to the voltage at the
// converter input, and program a PGA setting. *ads1x15.Bank satisfies
// it.
type Acquirer interface {
	ReadDifferential(device, chan1, chan2, rateIndex int) (int16, error)
	CodeToVoltage(device int, code int16) (float64, error)
	SyncGain(device, gainCode, bits int) error
	NumDevices() int
}

// LimitStatus classifies a reading against its range bounds.
type LimitStatus int

// Available limit statuses. A reading within limitMargin of a bound is
// flagged even when it was not clamped.
const (
	LimitNone LimitStatus = iota
	LimitMin
	LimitMax
	LimitError
)

// limitMargin is the absolute nearness threshold, in the range's own
// unit. It is the same margin for every range regardless of width.
const limitMargin = 0.001

var limitNames = map[LimitStatus]string{
	LimitNone:  "",
	LimitMin:   "[MIN]",
	LimitMax:   "[MAX]",
	LimitError: "ERROR",
}

// String implements the Stringer interface for LimitStatus.
func (s LimitStatus) String() string {
	return limitNames[s]
}

// Reading is one acquired sample. When Err is non-nil the acquisition
// failed: Status is LimitError and the numeric fields are meaningless.
type Reading struct {
	Channel  int         `json:"channel"`
	Raw      int16       `json:"raw"`
	BusVolts float64     `json:"bus_volts"`
	Value    float64     `json:"value"`
	Unit     string      `json:"unit"`
	Status   LimitStatus `json:"status"`
	Err      error       `json:"-"`
}

// OK reports whether the reading carries a valid value.
func (r Reading) OK() bool {
	return r.Err == nil
}

// Session errors.
var (
	ErrNotConfigured = errors.New("session not fully configured")
	ErrStaleGain     = errors.New("device gain is stale; run SyncDevices")
)

type sessionState int

const (
	stateUnconfigured sessionState = iota
	stateConfigured
	stateSynced
	stateSampling
)

// Session holds the measurement configuration and drives the raw-to-
// physical conversion pipeline. It moves through four states:
// unconfigured until every setting is present, configured once they
// are, synced after SyncDevices pushes the PGA setting to the bank, and
// sampling from the first Sample on. Changing the range or resolution
// drops it back to configured until the next SyncDevices.
type Session struct {
	mu sync.Mutex

	acq Acquirer

	bits       int
	rng        Range
	hasRange   bool
	divider    float64
	rate       int
	rateIndex  int
	hasRate    bool
	channel    int
	hasChannel bool

	state sessionState
}

// NewSession returns an unconfigured session over the given bank.
func NewSession(acq Acquirer) *Session {
	return &Session{acq: acq, divider: DefaultDividerGain}
}

// SetResolution selects the converter resolution, 16 or 12 bits.
// Invalidates any previous device sync.
func (s *Session) SetResolution(bits int) error {
	if bits != ads1x15.Bits16 && bits != ads1x15.Bits12 {
		return fmt.Errorf("%w: %d", ads1x15.ErrBadResolution, bits)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bits = bits
	s.reconfigure()
	return nil
}

// SetRange selects a measurement range by catalog key and adopts its
// divider gain. Invalidates any previous device sync.
func (s *Session) SetRange(key string) error {
	r, err := LookupRange(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = r
	s.hasRange = true
	s.divider = r.DividerGain
	s.reconfigure()
	return nil
}

// SetRate selects the polling rate in samples per second.
func (s *Session) SetRate(sps int) error {
	index, err := ads1x15.RateIndex(sps)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = sps
	s.rateIndex = index
	s.hasRate = true
	s.advance()
	return nil
}

// SetChannel selects the logical input channel.
func (s *Session) SetChannel(channel int) error {
	if _, _, _, err := Route(channel); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channel = channel
	s.hasChannel = true
	s.advance()
	return nil
}

// SetDividerGain overrides the hardware divider gain, for channels
// whose jumpers differ from the range's default network.
func (s *Session) SetDividerGain(gain float64) error {
	if gain <= 0 || gain > 1 {
		return fmt.Errorf("divider gain %g outside (0,1]", gain)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.divider = gain
	s.advance()
	return nil
}

// reconfigure drops the session out of the synced state after a change
// that must be pushed to the devices.
func (s *Session) reconfigure() {
	if s.configured() {
		s.state = stateConfigured
	} else {
		s.state = stateUnconfigured
	}
}

// advance promotes an unconfigured session once every setting is
// present, without touching an existing sync.
func (s *Session) advance() {
	if s.state == stateUnconfigured && s.configured() {
		s.state = stateConfigured
	}
}

func (s *Session) configured() bool {
	return s.bits != 0 && s.hasRange && s.hasRate && s.hasChannel && s.divider > 0
}

// SyncDevices programs the selected range's PGA setting and the session
// resolution on every converter in the bank. Idempotent; must be rerun
// after any range or resolution change.
func (s *Session) SyncDevices() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured() {
		return ErrNotConfigured
	}
	for dev := 0; dev < s.acq.NumDevices(); dev++ {
		if err := s.acq.SyncGain(dev, s.rng.Gain.Code(), s.bits); err != nil {
			return fmt.Errorf("error syncing device %d: %w", dev, err)
		}
	}
	s.state = stateSynced
	return nil
}

// Sample acquires one reading on the selected channel and runs it
// through the conversion pipeline: undo the hardware divider, divide by
// the shunt for current ranges, add the zero offset, clamp into the
// range bounds, and classify the limit status. A capability failure is
// reported inside the Reading, never as an error; the returned error is
// reserved for configuration preconditions.
func (s *Session) Sample() (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured() {
		return Reading{}, ErrNotConfigured
	}
	if s.state < stateSynced {
		return Reading{}, ErrStaleGain
	}
	s.state = stateSampling

	device, chan1, chan2, err := Route(s.channel)
	if err != nil {
		return Reading{}, err
	}
	reading := Reading{Channel: s.channel, Unit: s.rng.Unit()}

	raw, err := s.acq.ReadDifferential(device, chan1, chan2, s.rateIndex)
	if err != nil {
		reading.Status = LimitError
		reading.Err = err
		return reading, nil
	}
	volts, err := s.acq.CodeToVoltage(device, raw)
	if err != nil {
		reading.Status = LimitError
		reading.Err = err
		return reading, nil
	}

	scaled := volts / s.divider
	value := scaled
	if s.rng.Kind == Current {
		// The divided shunt voltage over 0.249 ohms tracks the
		// catalog's milliamp bounds; both sides stay in that
		// convention.
		value = scaled / s.rng.Shunt
	}
	value += s.rng.Offset
	value = s.rng.Clamp(value)

	reading.Raw = raw
	reading.BusVolts = volts
	reading.Value = value
	reading.Status = s.rng.classify(value)
	return reading, nil
}

// classify flags values at or near the range bounds. Evaluated after
// the clamp, so a clamped value is always flagged.
func (r Range) classify(v float64) LimitStatus {
	switch {
	case v <= r.Min+limitMargin:
		return LimitMin
	case v >= r.Max-limitMargin:
		return LimitMax
	}
	return LimitNone
}

// Interval is the monitoring cadence, 10 seconds divided by the
// polling rate. Much slower than the converter's conversion time.
func (s *Session) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasRate || s.rate == 0 {
		return time.Second
	}
	return time.Duration(float64(10*time.Second) / float64(s.rate))
}

// Synced reports whether the device gain matches the selected range.
func (s *Session) Synced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state >= stateSynced
}

// Configured reports whether every setting is present.
func (s *Session) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured()
}

// Range returns the selected range. The boolean is false before
// SetRange.
func (s *Session) Range() (Range, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng, s.hasRange
}

// Channel returns the selected logical channel.
func (s *Session) Channel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channel
}

// Rate returns the selected polling rate in SPS.
func (s *Session) Rate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

// Resolution returns the selected converter resolution in bits.
func (s *Session) Resolution() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bits
}

// DividerGain returns the active hardware divider gain.
func (s *Session) DividerGain() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.divider
}

// Summary renders a human-readable configuration block for the monitor
// header.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	if !s.configured() {
		fmt.Fprintf(&b, "Session not configured")
		return b.String()
	}
	fmt.Fprintf(&b, "Channel: %d\n", s.channel)
	fmt.Fprintf(&b, "Range: %s\n", s.rng.Key)
	fmt.Fprintf(&b, "Polling Rate: %d SPS\n", s.rate)
	fmt.Fprintf(&b, "Bit Depth: %d-bit\n", s.bits)
	fmt.Fprintf(&b, "ADC Gain: %d (%s)\n", s.rng.Gain.Code(), s.rng.Gain)
	fmt.Fprintf(&b, "Hardware Gain: %g", s.divider)
	if !s.stateSyncedLocked() {
		fmt.Fprintf(&b, "\nDevices: NOT SYNCED")
	}
	return b.String()
}

func (s *Session) stateSyncedLocked() bool {
	return s.state >= stateSynced
}
