// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Command analogmon monitors one channel of the IoTextra analog input
// module. The four ADS1115/ADS1015 converters are reached over the
// platform's I2C bus; the session is configured from flags or a YAML
// preset and can be reconfigured live from the TUI command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/iotextra/analogio/ads1x15"
	"github.com/iotextra/analogio/analog"
)

func main() {
	busName := flag.String("bus", "", "I2C bus name (empty for the platform default)")
	presetFile := flag.String("preset", "", "YAML session preset to load")
	rangeKey := flag.String("range", "", "measurement range key (see -list)")
	rate := flag.Int("rate", 0, "polling rate in SPS")
	channel := flag.Int("channel", -1, "logical input channel 0-7")
	bits := flag.Int("bits", 0, "converter resolution: 16 (ADS1115) or 12 (ADS1015)")
	altDivider := flag.Bool("alt-divider", false, "channel jumpers are cut (one 49.9k resistor)")
	logFile := flag.String("log", "analogmon.log", "event log file")
	list := flag.Bool("list", false, "list the measurement ranges and exit")
	flag.Parse()

	if *list {
		listRanges()
		return
	}

	// The TUI owns the terminal, so events go to a file.
	f, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer f.Close()
	logger := log.New(f, "", log.LstdFlags|log.Lmicroseconds)

	if _, err := host.Init(); err != nil {
		log.Fatalf("Failed to initialize host: %v", err)
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		log.Fatalf("Failed to open I2C bus: %v", err)
	}
	defer bus.Close()

	bank := ads1x15.OpenBank(bus)
	defer bank.Close()

	session := analog.NewSession(bank)
	if *presetFile != "" {
		preset, err := analog.LoadPreset(*presetFile)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		if err := preset.Apply(session); err != nil {
			log.Fatalf("Failed to apply preset: %v", err)
		}
		logger.Printf("Applied preset %s", *presetFile)
	}
	if err := applyFlags(session, *rangeKey, *rate, *channel, *bits, *altDivider); err != nil {
		log.Fatal(err)
	}

	if session.Configured() {
		if err := session.SyncDevices(); err != nil {
			// Recoverable from the TUI with the sync command.
			logger.Printf("Device sync failed: %v", err)
		} else {
			logger.Printf("Devices synced:\n%s", session.Summary())
		}
	}

	p := tea.NewProgram(newModel(session, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}

// applyFlags layers command-line settings over the preset.
func applyFlags(s *analog.Session, rangeKey string, rate, channel, bits int, altDivider bool) error {
	if bits != 0 {
		if err := s.SetResolution(bits); err != nil {
			return fmt.Errorf("-bits: %w", err)
		}
	}
	if rangeKey != "" {
		if err := s.SetRange(rangeKey); err != nil {
			return fmt.Errorf("-range: %w", err)
		}
	}
	if rate != 0 {
		if err := s.SetRate(rate); err != nil {
			return fmt.Errorf("-rate: %w", err)
		}
	}
	if channel >= 0 {
		if err := s.SetChannel(channel); err != nil {
			return fmt.Errorf("-channel: %w", err)
		}
	}
	if altDivider {
		if err := s.SetDividerGain(analog.AltDividerGain); err != nil {
			return fmt.Errorf("-alt-divider: %w", err)
		}
	}
	return nil
}

func listRanges() {
	fmt.Println("Voltage ranges:")
	for _, r := range analog.Ranges(analog.Voltage) {
		fmt.Printf("  %s\n", r)
	}
	fmt.Println("Current ranges:")
	for _, r := range analog.Ranges(analog.Current) {
		fmt.Printf("  %s\n", r)
	}
	fmt.Printf("Polling rates (SPS): %v\n", ads1x15.Rates)
}
