package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Complaint", "Responses"},
		Widths:  []float64{2, 1},
		Rows: []map[string]string{
			{"Complaint": "The hostel fan has been broken, since Monday", "Responses": "DOI: noted"},
			{"Complaint": "No water"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Render(&buf, sampleDataset(), "ignored"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Complaint,Responses", lines[0])
	assert.Equal(t, `"The hostel fan has been broken, since Monday",DOI: noted`, lines[1])
	assert.Equal(t, "No water,", lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	assert.Error(t, NewCSVExporter().Render(&bytes.Buffer{}, Dataset{}, ""))
}

func TestPDFExporterRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter().Render(&buf, sampleDataset(), "My complaints"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "application/pdf", NewPDFExporter().ContentType())
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths(sampleDataset())
	require.Len(t, widths, 2)
	assert.InDelta(t, pdfPageWidth*2/3, widths[0], 0.001)

	equal := columnWidths(Dataset{Headers: []string{"a", "b", "c", "d"}})
	assert.InDelta(t, pdfPageWidth/4, equal[0], 0.001)
}
