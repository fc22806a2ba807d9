package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes spanish", input: "s\n", want: true},
		{name: "yes accented", input: "sí\n", want: true},
		{name: "uppercase yes", input: "Y\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "garbage defaults to no", input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConfirmer(strings.NewReader(tt.input), &out)

			got, err := c.Confirm(context.Background(), "¿Continuar?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "(y/N)")
		})
	}
}

func TestConfirmHardDeleteRequiresTypedWord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "typed word", input: "eliminar\n", want: true},
		{name: "case insensitive", input: "ELIMINAR\n", want: true},
		{name: "bare yes is not enough", input: "y\n", want: false},
		{name: "empty", input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConfirmer(strings.NewReader(tt.input), &out)

			got, err := c.ConfirmHardDelete(context.Background(), "la cuenta 'Nómina'")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "PERMANENTE")
		})
	}
}

func TestConfirmCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never delivers a line.
	c := NewConfirmer(blockingReader{}, &bytes.Buffer{})
	_, err := c.Confirm(ctx, "¿Continuar?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}

type blockingReader struct{}

func (blockingReader) Read(_ []byte) (int, error) {
	select {}
}
