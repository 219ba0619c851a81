// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/sortview"
)

// frameMsg carries a rendered frame from Present.
type frameMsg string

// titleMsg carries a status line from SetTitle.
type titleMsg string

var statusStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#ffffff")).
	Background(lipgloss.Color("#3c3c64"))

// model is the bubbletea model. It only displays what the view sends it
// and forwards key presses.
type model struct {
	view   *View
	frame  string
	title  string
	width  int
	height int
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
		return m, nil
	case titleMsg:
		m.title = string(msg)
		return m, tea.SetWindowTitle(m.title)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		// Keys typed faster than the input is read arrive as one message.
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
			for _, r := range msg.Runes {
				m.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
			return m, nil
		}
		m.key(msg)
		return m, nil
	}
	return m, nil
}

func (m *model) key(msg tea.KeyMsg) {
	if cmd, ok := keyCommand(msg); ok {
		m.view.Send(cmd)
	}
}

func (m *model) View() string {
	style := statusStyle
	if m.width > 0 {
		style = style.Width(m.width).MaxWidth(m.width)
	}
	status := style.Render(m.title)
	if m.frame == "" {
		return status
	}
	return m.frame + "\n" + status
}

func keyCommand(msg tea.KeyMsg) (sortview.Command, bool) {
	switch msg.String() {
	case "s", "S":
		return sortview.CommandRestart, true
	case "p", "P":
		return sortview.CommandSnapshot, true
	case "q", "Q", "esc", "ctrl+c":
		return sortview.CommandQuit, true
	}
	return sortview.CommandNone, false
}
