// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package analog

import (
	"errors"
	"fmt"
)

// NumChannels is the number of logical input channels on the module.
// Each converter contributes two differential pairs.
const NumChannels = 8

// ErrInvalidChannel reports a channel number outside 0..7.
var ErrInvalidChannel = errors.New("channel outside 0..7")

// Route maps a logical channel to the converter that serves it and the
// differential input pair on that converter. Even channels use A0-A1,
// odd channels A2-A3.
func Route(channel int) (device, chan1, chan2 int, err error) {
	if channel < 0 || channel >= NumChannels {
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	device = channel / 2
	if channel%2 == 0 {
		return device, 0, 1, nil
	}
	return device, 2, 3, nil
}
