// Package tui provides the full-screen menu picker.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Picker is a bubbletea model for choosing one entry from a short list.
type Picker struct {
	theme    Theme
	keymap   KeyMap
	help     help.Model
	title    string
	items    []string
	cursor   int
	chosen   int
	quitting bool
}

// NewPicker creates a picker over items with the cursor on the first one.
func NewPicker(title string, items []string) Picker {
	return Picker{
		theme:  DefaultTheme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		title:  title,
		items:  items,
		chosen: -1,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keymap.ForceQuit), key.Matches(msg, p.keymap.Quit):
			p.quitting = true
			return p, tea.Quit

		case key.Matches(msg, p.keymap.Up):
			p.cursor--
			if p.cursor < 0 {
				p.cursor = len(p.items) - 1
			}

		case key.Matches(msg, p.keymap.Down):
			p.cursor++
			if p.cursor >= len(p.items) {
				p.cursor = 0
			}

		case key.Matches(msg, p.keymap.Home):
			p.cursor = 0

		case key.Matches(msg, p.keymap.End):
			p.cursor = len(p.items) - 1

		case key.Matches(msg, p.keymap.Select):
			if len(p.items) == 0 {
				return p, nil
			}
			p.chosen = p.cursor
			return p, tea.Quit

		case key.Matches(msg, p.keymap.Number):
			n := int(msg.String()[0] - '0')
			if n <= len(p.items) {
				p.cursor = n - 1
				p.chosen = p.cursor
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	if p.chosen >= 0 || p.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.theme.Title.Render(p.title))
	b.WriteString("\n")

	for i, item := range p.items {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == p.cursor {
			b.WriteString(p.theme.Selected.Render("› " + line))
		} else {
			b.WriteString(p.theme.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return p.theme.Box.Render(b.String()) + "\n" + p.theme.Muted.Render(p.help.View(p.keymap)) + "\n"
}

// Chosen returns the picked index, or false when the picker was dismissed.
func (p Picker) Chosen() (int, bool) {
	return p.chosen, p.chosen >= 0
}
