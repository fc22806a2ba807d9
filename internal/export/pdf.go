// Package export renders assembled reports to external destinations.
// Two exporters exist: a local PDF file and a Google Sheets spreadsheet.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mvallesteros/rumbo/internal/service"
)

// PDFExporter renders a report document to a PDF file on disk.
type PDFExporter struct {
	logger *slog.Logger
	dir    string
}

// NewPDFExporter creates a PDF exporter writing into dir. The directory
// is created on first export.
func NewPDFExporter(dir string, logger *slog.Logger) *PDFExporter {
	return &PDFExporter{dir: dir, logger: logger}
}

// Export implements service.Exporter. It returns the path of the
// generated file.
func (e *PDFExporter) Export(ctx context.Context, doc *service.ReportDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	e.renderHeader(pdf, doc.Header)
	for _, table := range doc.Tables {
		e.renderTable(pdf, table)
	}

	path := filepath.Join(e.dir, fileName(doc.Header.GeneratedAt))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}

	e.logger.Info("report exported",
		"format", "pdf",
		"path", path,
		"tables", len(doc.Tables))

	return path, nil
}

func (e *PDFExporter) renderHeader(pdf *fpdf.Fpdf, h service.HeaderBlock) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, h.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, h.Subtitle, "", 1, "L", false, 0, "")
	if h.UserName != "" {
		pdf.CellFormat(0, 6, h.UserName, "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, h.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) renderTable(pdf *fpdf.Fpdf, table service.TableSpec) {
	if len(table.Header) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, table.Name, "", 1, "L", false, 0, "")

	// A4 portrait leaves ~190mm of printable width.
	colWidth := 190.0 / float64(len(table.Header))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, cell := range table.Header {
		pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(table.Rows) == 0 {
		pdf.CellFormat(190, 7, "Sin registros", "1", 1, "C", false, 0, "")
	}
	for _, row := range table.Rows {
		for i := 0; i < len(table.Header); i++ {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func fileName(generatedAt time.Time) string {
	return fmt.Sprintf("reporte-%s.pdf", generatedAt.Format("2006-01-02-150405"))
}
