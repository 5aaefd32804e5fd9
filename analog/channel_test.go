// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package analog

import (
	"errors"
	"fmt"
	"testing"
)

func TestRoute(t *testing.T) {
	testCases := []struct {
		channel int
		device  int
		chan1   int
		chan2   int
	}{
		{0, 0, 0, 1},
		{1, 0, 2, 3},
		{2, 1, 0, 1},
		{3, 1, 2, 3},
		{4, 2, 0, 1},
		{5, 2, 2, 3},
		{6, 3, 0, 1},
		{7, 3, 2, 3},
	}
	seen := make(map[string]bool)
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("channel %d", tc.channel), func(t *testing.T) {
			device, chan1, chan2, err := Route(tc.channel)
			if err != nil {
				t.Fatalf("Route failed: %v", err)
			}
			if device != tc.device || chan1 != tc.chan1 || chan2 != tc.chan2 {
				t.Errorf("Route(%d) = (%d, A%d-A%d), want (%d, A%d-A%d)",
					tc.channel, device, chan1, chan2, tc.device, tc.chan1, tc.chan2)
			}
			key := fmt.Sprintf("%d/%d-%d", device, chan1, chan2)
			if seen[key] {
				t.Errorf("Routing target %s reused", key)
			}
			seen[key] = true
		})
	}
	if len(seen) != NumChannels {
		t.Errorf("Expected %d distinct targets, got %d", NumChannels, len(seen))
	}
}

func TestRouteRejectsInvalidChannels(t *testing.T) {
	for _, channel := range []int{-1, 8, 100} {
		t.Run(fmt.Sprintf("channel %d", channel), func(t *testing.T) {
			if _, _, _, err := Route(channel); !errors.Is(err, ErrInvalidChannel) {
				t.Errorf("Expected ErrInvalidChannel, got %v", err)
			}
		})
	}
}
