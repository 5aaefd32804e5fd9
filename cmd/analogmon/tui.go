// Copyright (c) 2026 The analog developers. All rights reserved.
// Project site: https://github.com/iotextra/analogio
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iotextra/analogio/analog"
)

const maxLines = 256

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#575B7E")).
			Padding(0, 1)

	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	limitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// monitorEvent carries one monitor tick (or its shutdown) into the TUI.
type monitorEvent struct {
	reading analog.Reading
	err     error
	done    bool
}

type eventMsg monitorEvent

type model struct {
	session *analog.Session
	log     *log.Logger

	viewport  viewport.Model
	textInput textinput.Model
	ready     bool

	events  chan monitorEvent
	cancel  context.CancelFunc
	running bool

	lines  []string
	status string
}

func newModel(session *analog.Session, logger *log.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "range 0-10V | rate 128 | channel 3 | bits 16 | divider alt | sync | run | stop"
	ti.Focus()
	return model{
		session:   session,
		log:       logger,
		textInput: ti,
		status:    "Configure the session, sync, then run.",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// waitEvent re-arms the listener for the monitor goroutine's channel.
func waitEvent(events chan monitorEvent) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			cmd := m.handleCommand(strings.TrimSpace(m.textInput.Value()))
			m.textInput.Reset()
			return m, cmd
		case tea.KeyCtrlC, tea.KeyEsc:
			m.stopMonitor()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := 10
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.Style = baseStyle
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}

	case eventMsg:
		if msg.done {
			m.running = false
			if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
				m.status = fmt.Sprintf("Monitor stopped: %v", msg.err)
				m.log.Printf("Monitor stopped: %v", msg.err)
			} else {
				m.status = "Monitor stopped."
			}
			return m, nil
		}
		m.appendReading(msg.reading)
		return m, waitEvent(m.events)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *model) appendReading(r analog.Reading) {
	var line string
	if !r.OK() {
		line = fmt.Sprintf(" %d | %9s | %13s | %v",
			r.Channel, "ERROR", errorStyle.Render("ERROR"), r.Err)
	} else {
		flag := ""
		if r.Status != analog.LimitNone {
			flag = " " + limitStyle.Render(r.Status.String())
		}
		line = fmt.Sprintf(" %d | %9d | %10.4f %-2s |%s", r.Channel, r.Raw, r.Value, r.Unit, flag)
	}
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLines {
		m.lines = m.lines[len(m.lines)-maxLines:]
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// handleCommand applies one command-line entry to the session.
func (m *model) handleCommand(input string) tea.Cmd {
	if input == "" {
		return nil
	}
	fields := strings.Fields(input)
	verb := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	var err error
	switch verb {
	case "range":
		err = m.session.SetRange(arg)
	case "rate":
		var sps int
		if sps, err = strconv.Atoi(arg); err == nil {
			err = m.session.SetRate(sps)
		}
	case "channel":
		var ch int
		if ch, err = strconv.Atoi(arg); err == nil {
			err = m.session.SetChannel(ch)
		}
	case "bits":
		var b int
		if b, err = strconv.Atoi(arg); err == nil {
			err = m.session.SetResolution(b)
		}
	case "divider":
		switch arg {
		case "default":
			err = m.session.SetDividerGain(analog.DefaultDividerGain)
		case "alt":
			err = m.session.SetDividerGain(analog.AltDividerGain)
		default:
			var g float64
			if g, err = strconv.ParseFloat(arg, 64); err == nil {
				err = m.session.SetDividerGain(g)
			}
		}
	case "sync":
		if err = m.session.SyncDevices(); err == nil {
			m.status = "Devices synced."
			m.log.Printf("Devices synced:\n%s", m.session.Summary())
		}
	case "run":
		return m.startMonitor()
	case "stop":
		m.stopMonitor()
		m.status = "Stopping monitor..."
		return nil
	case "quit", "q":
		m.stopMonitor()
		return tea.Quit
	default:
		err = fmt.Errorf("unknown command %q", verb)
	}

	if err != nil {
		m.status = err.Error()
		m.log.Printf("Command %q failed: %v", input, err)
	} else if verb != "sync" {
		m.status = fmt.Sprintf("OK: %s", input)
	}
	return nil
}

func (m *model) startMonitor() tea.Cmd {
	if m.running {
		m.status = "Monitor already running."
		return nil
	}
	if !m.session.Synced() {
		m.status = "Devices not synced; run sync first."
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.events = make(chan monitorEvent)
	m.running = true
	m.status = fmt.Sprintf("Monitoring channel %d at %v intervals.", m.session.Channel(), m.session.Interval())
	m.log.Printf("Monitor started:\n%s", m.session.Summary())

	events := m.events
	mon := analog.Monitor{Session: m.session, Log: m.log}
	go func() {
		err := mon.Run(ctx, func(r analog.Reading) {
			events <- monitorEvent{reading: r}
		})
		events <- monitorEvent{err: err, done: true}
	}()
	return waitEvent(events)
}

func (m *model) stopMonitor() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	title := titleStyle.Render("IoTextra Analog Module Monitor")
	header := headerStyle.Render(m.session.Summary())
	status := statusStyle.Render(m.status)
	columns := headerStyle.Render("Ch |  Raw val. | Physical value | Limit")
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s",
		title, header, status, columns, m.viewport.View(), m.textInput.View())
}
