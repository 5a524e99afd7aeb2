package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader reads menu answers from a terminal or script without
// blocking past context cancellation.
type NonBlockingReader struct {
	buf *bufio.Reader
	mu  sync.Mutex
}

// NewNonBlockingReader wraps in. It panics on a nil reader.
func NewNonBlockingReader(in io.Reader) *NonBlockingReader {
	if in == nil {
		panic("cli: nil reader")
	}
	return &NonBlockingReader{buf: bufio.NewReader(in)}
}

type readResult struct {
	err  error
	text string
}

// ReadString reads through delim. A canceled ctx returns ErrInputCancelled;
// the pending read is abandoned and finishes in the background.
func (r *NonBlockingReader) ReadString(ctx context.Context, delim byte) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	done := make(chan readResult, 1)
	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		text, err := r.buf.ReadString(delim)
		done <- readResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-done:
		return res.text, res.err
	}
}

// ReadLine returns the next trimmed line. A last line with no newline is
// still returned; io.EOF comes only once nothing is left.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.ReadString(ctx, '\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
