package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReader_ReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "menu choice", input: "3\n", want: []string{"3"}},
		{name: "padded amount", input: "  12.50 \n", want: []string{"12.50"}},
		{name: "blank answer", input: "\n", want: []string{""}},
		{name: "script of answers", input: "1\nGroceries\n9\n", want: []string{"1", "Groceries", "9"}},
		{name: "last line unterminated", input: "2\n2024-03", want: []string{"2", "2024-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewNonBlockingReader(strings.NewReader(tt.input))
			ctx := context.Background()

			for _, want := range tt.want {
				got, err := r.ReadLine(ctx)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			_, err := r.ReadLine(ctx)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestNonBlockingReader_Cancellation(t *testing.T) {
	t.Run("already canceled", func(t *testing.T) {
		r := NewNonBlockingReader(strings.NewReader("1\n"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		pr, pw := io.Pipe()
		t.Cleanup(func() {
			_ = pw.Close()
			_ = pr.Close()
		})

		r := NewNonBlockingReader(pr)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := r.ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})
}

func TestNewNonBlockingReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewNonBlockingReader(nil) })
}
