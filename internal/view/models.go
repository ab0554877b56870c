package view

import (
	"strings"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
)

// ProfileView is the profile as shown in headers and the profile section.
type ProfileView struct {
	FullName    string
	FirstName   string
	RegNo       string
	Department  string
	Faculty     string
	PhoneNumber string
	Gender      string
	Role        string
}

// NewProfileView applies the display fallbacks to p.
func NewProfileView(p models.UserProfile) ProfileView {
	gender, role := NotAvailable, NotAvailable
	if p.Gender != "" {
		gender = capitalize(p.Gender)
	}
	if p.Role != "" {
		role = strings.ToUpper(p.Role)
	}
	return ProfileView{
		FullName:    DisplayName(p),
		FirstName:   SafeValue(p.FirstName),
		RegNo:       SafeValue(p.RegNo),
		Department:  SafeValue(p.Department),
		Faculty:     SafeValue(p.Faculty),
		PhoneNumber: SafeValue(p.PhoneNumber),
		Gender:      gender,
		Role:        role,
	}
}

// DisplayName joins the safe name parts, so a missing part shows as N/A.
func DisplayName(p models.UserProfile) string {
	return strings.TrimSpace(SafeValue(p.Surname) + " " + SafeValue(p.FirstName) + " " + SafeValue(p.OtherNames))
}

// ResponseView is one DOI reply ready for display.
type ResponseView struct {
	DOIName string
	Message string
	Time    string
}

// ComplaintView is one complaint ready for display.
type ComplaintView struct {
	ID           string
	StudentName  string
	StudentRegNo string
	// ReplyRegNo is the unmodified student reg no posted back with a response.
	ReplyRegNo string
	Complaint  string
	Date       string
	Responses  []ResponseView
}

// HasResponses reports whether any reply is attached.
func (c ComplaintView) HasResponses() bool {
	return len(c.Responses) > 0
}

// NewComplaintViews converts complaints, keeping both complaint and response order.
func NewComplaintViews(complaints []models.Complaint, f *TimeFormatter) []ComplaintView {
	views := make([]ComplaintView, 0, len(complaints))
	for _, c := range complaints {
		responses := make([]ResponseView, 0, len(c.Responses))
		for _, r := range c.Responses {
			responses = append(responses, ResponseView{
				DOIName: SafeValue(r.DOIName),
				Message: SafeValue(r.ResponseMessage),
				Time:    f.FormatTime(r.ResponseTime),
			})
		}
		views = append(views, ComplaintView{
			ID:           c.ComplaintID.String(),
			StudentName:  SafeValue(c.StudentName),
			StudentRegNo: SafeValue(c.StudentRegNo),
			ReplyRegNo:   c.StudentRegNo,
			Complaint:    SafeValue(c.Complaint),
			Date:         f.FormatTime(c.Timestamp),
			Responses:    responses,
		})
	}
	return views
}
