// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package analog

import (
	"context"
	"log"
	"time"
)

// Monitor repeatedly samples a synced session at the cadence derived
// from its polling rate and hands each reading to a handler. A failed
// sample is reported like any other reading; there is no retry policy.
type Monitor struct {
	Session *Session

	// Log receives per-tick failures. Nil disables logging.
	Log *log.Logger
}

// Run samples until the context is cancelled. Cancellation is honored
// between ticks, never mid-transaction. The only errors that stop the
// loop are configuration preconditions (ErrNotConfigured, ErrStaleGain)
// surfaced by Sample; a cancelled context returns ctx.Err().
func (m *Monitor) Run(ctx context.Context, emit func(Reading)) error {
	ticker := time.NewTicker(m.Session.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			reading, err := m.Session.Sample()
			if err != nil {
				return err
			}
			if !reading.OK() && m.Log != nil {
				m.Log.Printf("channel %d read failed: %v", reading.Channel, reading.Err)
			}
			emit(reading)
		}
	}
}
