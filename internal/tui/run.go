package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/fintrack/internal/cli"
	tea "github.com/charmbracelet/bubbletea"
)

// Chooser shows a Picker for every menu round. It satisfies cli.Chooser.
type Chooser struct {
	input  io.Reader
	output io.Writer
}

var _ cli.Chooser = (*Chooser)(nil)

// NewChooser creates a chooser drawing on output and reading keys from input.
func NewChooser(input io.Reader, output io.Writer) *Chooser {
	return &Chooser{input: input, output: output}
}

// Choose runs a picker until an item is selected. Dismissing the picker or
// canceling ctx yields cli.ErrInputCancelled.
func (c *Chooser) Choose(ctx context.Context, title string, items []string) (int, error) {
	program := tea.NewProgram(
		NewPicker(title, items),
		tea.WithContext(ctx),
		tea.WithInput(c.input),
		tea.WithOutput(c.output),
	)

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return 0, cli.ErrInputCancelled
		}
		return 0, fmt.Errorf("failed to run menu picker: %w", err)
	}

	picker, ok := final.(Picker)
	if !ok {
		return 0, fmt.Errorf("unexpected picker model %T", final)
	}

	idx, ok := picker.Chosen()
	if !ok {
		return 0, cli.ErrInputCancelled
	}
	return idx, nil
}
