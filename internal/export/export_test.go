package export

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvallesteros/rumbo/internal/service"
)

func sampleDocument() *service.ReportDocument {
	return &service.ReportDocument{
		Header: service.HeaderBlock{
			Title:       "Reporte financiero",
			Subtitle:    "Resumen de junio 2025",
			UserName:    "Ana",
			GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		Tables: []service.TableSpec{
			{
				Name:   "Resumen",
				Header: []string{"Indicador", "Valor"},
				Rows: [][]string{
					{"Saldo total", "$1500000.00"},
					{"Cuentas activas", "2"},
				},
			},
			{
				Name:   "Cuentas",
				Header: []string{"Nombre", "Saldo"},
			},
		},
	}
}

func TestPDFExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	exporter := NewPDFExporter(dir, slog.Default())

	path, err := exporter.Export(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.Contains(t, path, "reporte-2025-06-01")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPDFExportCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exporter := NewPDFExporter(t.TempDir(), slog.Default())
	_, err := exporter.Export(ctx, sampleDocument())
	assert.Error(t, err)
}

func TestSheetsConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SheetsConfig
		wantErr bool
	}{
		{
			name: "valid OAuth2 config",
			config: SheetsConfig{
				ClientID:      "client-id",
				ClientSecret:  "client-secret",
				RefreshToken:  "refresh-token",
				BatchSize:     500,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: false,
		},
		{
			name: "valid service account config",
			config: SheetsConfig{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          500,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
			wantErr: false,
		},
		{
			name: "no authentication method",
			config: SheetsConfig{
				BatchSize: 500,
			},
			wantErr: true,
		},
		{
			name: "both authentication methods",
			config: SheetsConfig{
				ClientID:           "client-id",
				ClientSecret:       "client-secret",
				RefreshToken:       "refresh-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          500,
			},
			wantErr: true,
		},
		{
			name: "zero batch size",
			config: SheetsConfig{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          0,
			},
			wantErr: true,
		},
		{
			name: "negative retry attempts",
			config: SheetsConfig{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          500,
				RetryAttempts:      -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrepareValuesLayout(t *testing.T) {
	values := prepareValues(sampleDocument())

	// Header block: two rows plus a separator.
	require.Greater(t, len(values), 3)
	assert.Equal(t, "Reporte financiero", values[0][0])
	assert.Equal(t, "Ana", values[1][0])
	assert.Empty(t, values[2])

	// First table starts right after the header block.
	assert.Equal(t, "Resumen", values[3][0])
	assert.Equal(t, "Indicador", values[4][0])
	assert.Equal(t, "Saldo total", values[5][0])

	// Tables are separated by a blank row.
	assert.Empty(t, values[7])
	assert.Equal(t, "Cuentas", values[8][0])
}
