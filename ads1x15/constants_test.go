// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ads1x15

import (
	"errors"
	"fmt"
	"testing"

	c "github.com/smartystreets/goconvey/convey"
)

func TestGainTable(t *testing.T) {
	testCases := []struct {
		index     int
		fullScale float64
	}{
		{0, 6.144},
		{1, 4.096},
		{2, 2.048},
		{3, 1.024},
		{4, 0.512},
		{5, 0.256},
	}
	c.Convey("Given the PGA gain table", t, func() {
		for _, testCase := range testCases {
			conveyance := fmt.Sprintf("When gain index %d is looked up", testCase.index)
			c.Convey(conveyance, func() {
				g, err := GainFromIndex(testCase.index)
				c.So(err, c.ShouldBeNil)
				conveyance := fmt.Sprintf("Then the full scale should be ±%gV", testCase.fullScale)
				c.Convey(conveyance, func() {
					c.So(g.FullScale(), c.ShouldEqual, testCase.fullScale)
					c.So(g.Code(), c.ShouldEqual, testCase.index)
				})
			})
		}
		c.Convey("When the spans are compared in index order", func() {
			c.Convey("Then each span should be smaller than the last", func() {
				for i := 1; i <= 5; i++ {
					c.So(fullScales[Gain(i)], c.ShouldBeLessThan, fullScales[Gain(i-1)])
				}
			})
		})
	})
}

func TestGainFromIndexRejectsOutOfRange(t *testing.T) {
	for _, index := range []int{-1, 6, 42} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			if _, err := GainFromIndex(index); !errors.Is(err, ErrInvalidGain) {
				t.Errorf("Expected ErrInvalidGain, got %v", err)
			}
		})
	}
}

func TestRateTableIsABijection(t *testing.T) {
	c.Convey("Given the rate table", t, func() {
		c.Convey("When every supported rate is mapped", func() {
			c.Convey("Then rates map to device indexes in table order", func() {
				seen := make(map[int]bool)
				for i, sps := range Rates {
					index, err := RateIndex(sps)
					c.So(err, c.ShouldBeNil)
					c.So(index, c.ShouldEqual, i)
					c.So(seen[index], c.ShouldBeFalse)
					seen[index] = true
				}
				c.So(len(seen), c.ShouldEqual, len(Rates))
			})
		})
	})
}

func TestRateIndexRejectsUnsupportedRates(t *testing.T) {
	for _, sps := range []int{0, 1, 100, 500, 1600, -8} {
		t.Run(fmt.Sprintf("%d SPS", sps), func(t *testing.T) {
			if _, err := RateIndex(sps); !errors.Is(err, ErrUnsupportedRate) {
				t.Errorf("Expected ErrUnsupportedRate, got %v", err)
			}
		})
	}
}
