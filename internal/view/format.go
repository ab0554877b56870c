package view

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/config"
)

// NotAvailable stands in for any empty value on screen.
const NotAvailable = "N/A"

// DefaultTimeLayout mimics a browser's en-US locale string.
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999",
	time.RFC1123,
	time.RFC1123Z,
}

// SafeValue returns v, or N/A when v is blank.
func SafeValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotAvailable
	}
	return v
}

// TimeFormatter renders API timestamps for display.
type TimeFormatter struct {
	layout   string
	location *time.Location
}

// NewTimeFormatter builds a formatter from display settings.
func NewTimeFormatter(cfg config.DisplayConfig) (*TimeFormatter, error) {
	layout := cfg.TimeLayout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	loc := time.UTC
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load display timezone %q: %w", cfg.Timezone, err)
		}
	}
	return &TimeFormatter{layout: layout, location: loc}, nil
}

// FormatTime returns N/A for blank input, the timestamp in the display layout when it
// parses, and the raw value otherwise.
func (f *TimeFormatter) FormatTime(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NotAvailable
	}
	layout, loc := DefaultTimeLayout, time.UTC
	if f != nil {
		layout, loc = f.layout, f.location
	}
	for _, in := range inputLayouts {
		if t, err := time.Parse(in, trimmed); err == nil {
			return t.In(loc).Format(layout)
		}
	}
	return raw
}

// FormatTime formats with the default layout in UTC.
func FormatTime(raw string) string {
	var f *TimeFormatter
	return f.FormatTime(raw)
}

// PendingFor drops every complaint regNo has already answered and keeps the order of the rest.
func PendingFor(complaints []models.Complaint, regNo string) []models.Complaint {
	return PendingKeeping(complaints, regNo, "")
}

// PendingKeeping is PendingFor, except the complaint keepID stays listed even when regNo
// has answered it.
func PendingKeeping(complaints []models.Complaint, regNo, keepID string) []models.Complaint {
	pending := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if (keepID != "" && c.ComplaintID.String() == keepID) || !c.AnsweredBy(regNo) {
			pending = append(pending, c)
		}
	}
	return pending
}

func capitalize(v string) string {
	if v == "" {
		return v
	}
	r := []rune(v)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
