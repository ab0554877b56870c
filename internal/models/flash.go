package models

import "time"

// FlashKind drives how a status message is styled.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	// FlashAlert is shown as a blocking dialog instead of an inline line.
	FlashAlert FlashKind = "alert"
)

// Flash is a one-off status message shown next to a form or as an alert.
type Flash struct {
	Kind       FlashKind     `json:"kind"`
	Text       string        `json:"text"`
	ClearAfter time.Duration `json:"clear_after,omitempty"`
}

// ClearAfterMillis is the self-clear delay in milliseconds, 0 when the message stays.
func (f *Flash) ClearAfterMillis() int64 {
	if f == nil {
		return 0
	}
	return f.ClearAfter.Milliseconds()
}

// IsAlert reports whether the message should pop up.
func (f *Flash) IsAlert() bool {
	return f != nil && f.Kind == FlashAlert
}

func NewFlash(kind FlashKind, text string) *Flash {
	return &Flash{Kind: kind, Text: text}
}
