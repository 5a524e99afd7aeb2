package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Prompter gathers typed values from a line-oriented terminal. Malformed
// numbers are reported and asked for again rather than aborting the action.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// PromptString asks for a free-form line. Surrounding whitespace is trimmed.
func (p *Prompter) PromptString(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

// PromptFloat asks until the answer parses as a finite number.
func (p *Prompter) PromptFloat(ctx context.Context, label string) (float64, error) {
	for {
		answer, err := p.PromptString(ctx, label)
		if err != nil {
			return 0, err
		}

		value, err := strconv.ParseFloat(answer, 64)
		if err == nil && !math.IsNaN(value) && !math.IsInf(value, 0) {
			return value, nil
		}
		p.complain("%q is not a number", answer)
	}
}

// PromptInt asks until the answer parses as an integer.
func (p *Prompter) PromptInt(ctx context.Context, label string) (int64, error) {
	for {
		answer, err := p.PromptString(ctx, label)
		if err != nil {
			return 0, err
		}

		value, err := strconv.ParseInt(answer, 10, 64)
		if err == nil {
			return value, nil
		}
		p.complain("%q is not a whole number", answer)
	}
}

// PromptOptionalInt is PromptInt where an empty answer means "none".
func (p *Prompter) PromptOptionalInt(ctx context.Context, label string) (*int64, error) {
	for {
		answer, err := p.PromptString(ctx, label+" (blank for none)")
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}

		value, err := strconv.ParseInt(answer, 10, 64)
		if err == nil {
			return &value, nil
		}
		p.complain("%q is not a whole number", answer)
	}
}

// Choose prints numbered items and returns the index of the picked one.
func (p *Prompter) Choose(ctx context.Context, title string, items []string) (int, error) {
	var b strings.Builder
	b.WriteString("\n" + FormatTitle(title) + "\n")
	for i, item := range items {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, item)
	}
	if _, err := fmt.Fprint(p.writer, b.String()); err != nil {
		return 0, fmt.Errorf("failed to write menu: %w", err)
	}

	for {
		answer, err := p.PromptString(ctx, "Choose an option")
		if err != nil {
			return 0, err
		}

		choice, err := strconv.Atoi(answer)
		if err == nil && choice >= 1 && choice <= len(items) {
			return choice - 1, nil
		}
		p.complain("Please pick a number between 1 and %d", len(items))
	}
}

func (p *Prompter) complain(format string, args ...any) {
	_, _ = fmt.Fprintln(p.writer, FormatError(fmt.Sprintf(format, args...)))
}
