package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatStat(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		money bool
		want  string
	}{
		{name: "count renders as bare integer", value: 2, money: false, want: "2"},
		{name: "money keeps cents", value: 99.99, money: true, want: "$99.99"},
		{name: "large amount gets currency prefix", value: 120000, money: true, want: "$120000.00"},
		{name: "percentage stays bare", value: 87.4, money: false, want: "87"},
		{name: "zero amount", value: 0, money: true, want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatStat(tt.value, tt.money))
		})
	}
}

func TestRunDestructiveSoftSkipsBar(t *testing.T) {
	var out bytes.Buffer
	calls := 0

	err := runDestructive(&out, false, "Eliminando cuenta", func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, out.String())
}

func TestRunDestructiveHardRendersProgress(t *testing.T) {
	var out bytes.Buffer

	err := runDestructive(&out, true, "Eliminando cuenta", func() error { return nil })

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Eliminando cuenta")
}

func TestRunDestructivePropagatesError(t *testing.T) {
	var out bytes.Buffer
	backendErr := errors.New("409")

	err := runDestructive(&out, true, "Eliminando cuenta", func() error { return backendErr })

	assert.ErrorIs(t, err, backendErr)
}
