package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/view"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/export"
)

// ExportFormat names a download format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ParseExportFormat accepts csv and pdf in any case.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportFormatCSV, "":
		return ExportFormatCSV, nil
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw))
	}
}

type exportRenderer interface {
	Render(w io.Writer, data export.Dataset, title string) error
	ContentType() string
}

type timeFormatter interface {
	FormatTime(raw string) string
}

// ExportRequest describes one download.
type ExportRequest struct {
	Format     ExportFormat
	Title      string
	RegNo      string
	Complaints []models.Complaint
	// WithStudent adds the student name and reg no columns.
	WithStudent bool
}

// ExportService renders complaint lists as downloadable files.
type ExportService struct {
	renderers map[ExportFormat]exportRenderer
	times     timeFormatter
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to pkg/export.
func NewExportService(times timeFormatter, logger *zap.Logger, csv, pdf exportRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		renderers: map[ExportFormat]exportRenderer{ExportFormatCSV: csv, ExportFormatPDF: pdf},
		times:     times,
		logger:    logger,
		now:       time.Now,
	}
}

// ContentType returns the MIME type for format.
func (s *ExportService) ContentType(format ExportFormat) string {
	if r, ok := s.renderers[format]; ok {
		return r.ContentType()
	}
	return "application/octet-stream"
}

// Filename builds the attachment name for req.
func (s *ExportService) Filename(req ExportRequest) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("complaints_%s_%s.%s", sanitizeFilename(req.RegNo), timestamp, req.Format)
}

// Export writes req to w.
func (s *ExportService) Export(w io.Writer, req ExportRequest) error {
	renderer, ok := s.renderers[req.Format]
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}
	if err := renderer.Render(w, s.dataset(req), req.Title); err != nil {
		s.logger.Error("export failed", zap.String("format", string(req.Format)), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return nil
}

func (s *ExportService) dataset(req ExportRequest) export.Dataset {
	headers := []string{"Complaint ID"}
	widths := []float64{1}
	if req.WithStudent {
		headers = append(headers, "Student Name", "Student Reg No")
		widths = append(widths, 1.5, 1.2)
	}
	headers = append(headers, "Complaint", "Date", "Responses")
	widths = append(widths, 3, 1.4, 3)

	rows := make([]map[string]string, 0, len(req.Complaints))
	for _, c := range req.Complaints {
		row := map[string]string{
			"Complaint ID": c.ComplaintID.String(),
			"Complaint":    view.SafeValue(c.Complaint),
			"Date":         s.formatTime(c.Timestamp),
			"Responses":    s.formatResponses(c.Responses),
		}
		if req.WithStudent {
			row["Student Name"] = view.SafeValue(c.StudentName)
			row["Student Reg No"] = view.SafeValue(c.StudentRegNo)
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows, Widths: widths}
}

func (s *ExportService) formatResponses(responses []models.Response) string {
	if len(responses) == 0 {
		return "No responses yet."
	}
	parts := make([]string, 0, len(responses))
	for _, r := range responses {
		parts = append(parts, fmt.Sprintf("%s: %s (%s)", view.SafeValue(r.DOIName), view.SafeValue(r.ResponseMessage), s.formatTime(r.ResponseTime)))
	}
	return strings.Join(parts, "\n")
}

func (s *ExportService) formatTime(raw string) string {
	if s.times == nil {
		return view.FormatTime(raw)
	}
	return s.times.FormatTime(raw)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := strings.ToLower(replacer.Replace(raw))
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
