package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RUMBO_DIR", "planes")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty stays empty", in: "", want: ""},
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/datos/rumbo.db", want: filepath.Join(home, "datos", "rumbo.db")},
		{name: "env var", in: "/srv/$RUMBO_DIR/cache", want: "/srv/planes/cache"},
		{name: "tilde plus env var", in: "~/$RUMBO_DIR", want: filepath.Join(home, "planes")},
		{name: "absolute path untouched", in: "/etc/rumbo.yaml", want: "/etc/rumbo.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestExpandPathLeavesMidStringTilde(t *testing.T) {
	got := ExpandPath("/backups/~old")
	require.Equal(t, "/backups/~old", got)
}
