package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 277.0
	pdfLineHeight = 5.0
)

// PDFExporter renders datasets as a landscape A4 table whose rows grow to fit wrapped text.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ContentType is the MIME type of the output.
func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

// Render writes a PDF with an optional title and the dataset as a table.
func (e *PDFExporter) Render(w io.Writer, data Dataset, title string) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := columnWidths(data)

	pdf.AddPage()
	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(226, 232, 240)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		cells := make([][]string, len(data.Headers))
		lines := 1
		for i, header := range data.Headers {
			split := pdf.SplitLines([]byte(tr(row[header])), widths[i]-2)
			cells[i] = make([]string, len(split))
			for j, line := range split {
				cells[i][j] = string(line)
			}
			if len(split) > lines {
				lines = len(split)
			}
		}
		height := float64(lines) * pdfLineHeight
		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
			writeHeader()
		}

		x, y := pdf.GetXY()
		for i := range data.Headers {
			pdf.Rect(x, y, widths[i], height, "D")
			pdf.SetXY(x+1, y)
			pdf.MultiCell(widths[i]-2, pdfLineHeight, strings.Join(cells[i], "\n"), "", "L", false)
			x += widths[i]
			pdf.SetXY(x, y)
		}
		pdf.SetXY(10, y+height)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func columnWidths(data Dataset) []float64 {
	widths := make([]float64, len(data.Headers))
	if len(data.Widths) != len(data.Headers) {
		for i := range widths {
			widths[i] = pdfPageWidth / float64(len(widths))
		}
		return widths
	}
	var total float64
	for _, w := range data.Widths {
		total += w
	}
	for i, w := range data.Widths {
		widths[i] = pdfPageWidth * w / total
	}
	return widths
}
