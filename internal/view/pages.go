package view

import (
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
)

// Dashboard section names.
const (
	SectionDashboard = "dashboard"
	SectionMake      = "make"
	SectionPersonal  = "personal"
	SectionViewAll   = "view-all"
	SectionRespond   = "respond"
	SectionProfile   = "profile"
)

// SectionLink is one sidebar entry.
type SectionLink struct {
	Name   string
	Label  string
	Active bool
}

var studentSections = []SectionLink{
	{Name: SectionDashboard, Label: "Dashboard"},
	{Name: SectionMake, Label: "Make Complaint"},
	{Name: SectionPersonal, Label: "My Complaints"},
	{Name: SectionProfile, Label: "Profile"},
}

var doiSections = []SectionLink{
	{Name: SectionDashboard, Label: "Dashboard"},
	{Name: SectionViewAll, Label: "View All Complaints"},
	{Name: SectionRespond, Label: "Respond to Complaints"},
	{Name: SectionPersonal, Label: "My Complaints"},
	{Name: SectionMake, Label: "Make Complaint"},
	{Name: SectionProfile, Label: "Profile"},
}

// Sections lists the sidebar of role's dashboard with active marked.
func Sections(role models.Role, active string) []SectionLink {
	src := studentSections
	if role == models.RoleDOI {
		src = doiSections
	}
	links := make([]SectionLink, len(src))
	for i, link := range src {
		link.Active = link.Name == active
		links[i] = link
	}
	return links
}

// ResolveSection returns section when role's dashboard has it, dashboard otherwise.
func ResolveSection(role models.Role, section string) string {
	for _, link := range Sections(role, "") {
		if link.Name == section {
			return section
		}
	}
	return SectionDashboard
}

// LoginPage backs the landing page with its login form.
type LoginPage struct {
	Flash *models.Flash
	RegNo string
}

// SignupPage backs the registration form. Form is echoed back after a failure and
// zeroed after a success.
type SignupPage struct {
	Flash *models.Flash
	Form  models.SignupForm
}

// ListSection is a rendered complaint list, or the message shown in its place.
type ListSection struct {
	Loaded  bool
	Items   []ComplaintView
	Message string
	Error   bool
}

// MakeSection is the complaint form state.
type MakeSection struct {
	Flash *models.Flash
	Draft string
}

// RespondSection lists pending complaints with one reply box each.
type RespondSection struct {
	ListSection
	// Drafts holds reply text by complaint id, kept when a response fails.
	Drafts map[string]string
}

// Draft returns the kept reply for id.
func (s RespondSection) Draft(id string) string {
	return s.Drafts[id]
}

// DashboardPage backs both dashboards.
type DashboardPage struct {
	Role     models.Role
	Profile  ProfileView
	Active   string
	Sections []SectionLink
	Flash    *models.Flash
	Make     MakeSection
	Personal ListSection
	All      ListSection
	Respond  RespondSection
}

// IsDOI reports whether the DOI layout applies.
func (p DashboardPage) IsDOI() bool {
	return p.Role == models.RoleDOI
}

// BasePath is the dashboard route for the page's role.
func (p DashboardPage) BasePath() string {
	if p.IsDOI() {
		return "/doi"
	}
	return "/student"
}

// NewDashboardPage prepares the role dashboard for profile with section active. The route
// decides the layout; the profile's own role is only displayed.
func NewDashboardPage(role models.Role, profile models.UserProfile, active string) *DashboardPage {
	if role != models.RoleDOI {
		role = models.RoleStudent
	}
	active = ResolveSection(role, active)
	return &DashboardPage{
		Role:     role,
		Profile:  NewProfileView(profile),
		Active:   active,
		Sections: Sections(role, active),
		Respond:  RespondSection{Drafts: map[string]string{}},
	}
}
