package models

import "strings"

// Role identifies which dashboard a profile belongs to.
type Role string

const (
	RoleStudent Role = "student"
	RoleDOI     Role = "doi"
)

// NormalizeRole lower-cases and trims a role as sent by the API.
func NormalizeRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// UserProfile is the logged-in user as returned by the SIFMS login call. It is the only
// value kept in a session slot.
type UserProfile struct {
	Surname     string `json:"surname"`
	FirstName   string `json:"first_name"`
	OtherNames  string `json:"other_names"`
	FullName    string `json:"full_name"`
	RegNo       string `json:"reg_no"`
	Department  string `json:"department"`
	Faculty     string `json:"faculty"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
}

// NormalizedRole returns the profile role in canonical form.
func (p UserProfile) NormalizedRole() Role {
	return NormalizeRole(p.Role)
}

// WithFullName fills FullName from the name parts when the API left it empty.
func (p UserProfile) WithFullName() UserProfile {
	if strings.TrimSpace(p.FullName) == "" {
		p.FullName = strings.TrimSpace(strings.Join([]string{p.Surname, p.FirstName, p.OtherNames}, " "))
	}
	return p
}
