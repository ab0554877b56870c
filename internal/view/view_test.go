package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/config"
)

func TestSafeValue(t *testing.T) {
	assert.Equal(t, NotAvailable, SafeValue(""))
	assert.Equal(t, NotAvailable, SafeValue("   "))
	assert.Equal(t, "Ada", SafeValue("Ada"))
}

func TestFormatTime(t *testing.T) {
	f, err := NewTimeFormatter(config.DisplayConfig{TimeLayout: "2006-01-02 15:04", Timezone: "Africa/Lagos"})
	require.NoError(t, err)

	assert.Equal(t, NotAvailable, f.FormatTime(""))
	assert.Equal(t, "2024-01-02 11:00", f.FormatTime("2024-01-02T10:00:00Z"))
	assert.Equal(t, "2024-01-02 11:00", f.FormatTime("Tue, 02 Jan 2024 10:00:00 GMT"))
	assert.Equal(t, "yesterday", f.FormatTime("yesterday"))

	assert.Equal(t, "1/2/2024, 10:00:00 AM", FormatTime("2024-01-02 10:00:00"))
}

func TestNewTimeFormatterRejectsUnknownZone(t *testing.T) {
	_, err := NewTimeFormatter(config.DisplayConfig{Timezone: "Mars/Olympus"})
	assert.Error(t, err)
}

func TestPendingForExcludesExactlyAnswered(t *testing.T) {
	complaints := []models.Complaint{
		{ComplaintID: "1", Responses: []models.Response{{DOIRegNo: "DOI/1"}}},
		{ComplaintID: "2"},
		{ComplaintID: "3", Responses: []models.Response{{DOIRegNo: "DOI/2"}}},
		{ComplaintID: "4", Responses: []models.Response{{DOIRegNo: "DOI/2"}, {DOIRegNo: "DOI/1"}}},
		{ComplaintID: "5", Responses: []models.Response{{DOIRegNo: "doi/1"}}},
	}

	pending := PendingFor(complaints, "DOI/1")
	ids := make([]string, 0, len(pending))
	for _, c := range pending {
		ids = append(ids, c.ComplaintID.String())
	}
	assert.Equal(t, []string{"2", "3", "5"}, ids)
	assert.Empty(t, PendingFor(nil, "DOI/1"))
}

func TestPendingKeepingRetainsFailedReply(t *testing.T) {
	complaints := []models.Complaint{
		{ComplaintID: "1", Responses: []models.Response{{DOIRegNo: "DOI/1"}}},
		{ComplaintID: "2", Responses: []models.Response{{DOIRegNo: "DOI/1"}}},
		{ComplaintID: "3"},
	}

	pending := PendingKeeping(complaints, "DOI/1", "2")
	require.Len(t, pending, 2)
	assert.Equal(t, "2", pending[0].ComplaintID.String())
	assert.Equal(t, "3", pending[1].ComplaintID.String())
	assert.Len(t, PendingKeeping(complaints, "DOI/1", ""), 1)
}

func TestNewProfileView(t *testing.T) {
	v := NewProfileView(models.UserProfile{
		Surname:   "Okafor",
		FirstName: "Ada",
		Gender:    "female",
		Role:      "doi",
	})
	assert.Equal(t, "Okafor Ada N/A", v.FullName)
	assert.Equal(t, "Female", v.Gender)
	assert.Equal(t, "DOI", v.Role)
	assert.Equal(t, NotAvailable, v.Department)

	empty := NewProfileView(models.UserProfile{})
	assert.Equal(t, "N/A N/A N/A", empty.FullName)
	assert.Equal(t, NotAvailable, empty.Gender)
	assert.Equal(t, NotAvailable, empty.Role)
}

func TestResolveSection(t *testing.T) {
	assert.Equal(t, SectionRespond, ResolveSection(models.RoleDOI, SectionRespond))
	assert.Equal(t, SectionDashboard, ResolveSection(models.RoleStudent, SectionRespond))
	assert.Equal(t, SectionDashboard, ResolveSection(models.RoleStudent, "bogus"))
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	f, err := NewTimeFormatter(config.DisplayConfig{})
	require.NoError(t, err)
	r, err := NewRenderer(f)
	require.NoError(t, err)
	return r
}

func TestRenderPersonalEmptyMessage(t *testing.T) {
	r := newTestRenderer(t)
	page := NewDashboardPage(models.RoleStudent, models.UserProfile{RegNo: "CS/001/20", Role: "student"}, SectionPersonal)
	page.Personal = ListSection{Loaded: true, Message: "You have no complaints yet."}

	var buf bytes.Buffer
	require.NoError(t, r.Section(&buf, SectionPersonal, page))
	assert.Contains(t, buf.String(), "You have no complaints yet.")
	assert.NotContains(t, buf.String(), "complaint-item")
}

func TestRenderPersonalResponsesByRole(t *testing.T) {
	r := newTestRenderer(t)
	complaints := []models.Complaint{{ComplaintID: "7", Complaint: "No water", Timestamp: "2024-01-02T10:00:00Z"}}

	student := NewDashboardPage(models.RoleStudent, models.UserProfile{Role: "student"}, SectionPersonal)
	student.Personal = ListSection{Loaded: true, Items: NewComplaintViews(complaints, r.Times())}
	var buf bytes.Buffer
	require.NoError(t, r.Section(&buf, SectionPersonal, student))
	assert.Contains(t, buf.String(), "No water")
	assert.Contains(t, buf.String(), "1/2/2024, 10:00:00 AM")
	assert.NotContains(t, buf.String(), "No responses yet.")

	doi := NewDashboardPage(models.RoleDOI, models.UserProfile{Role: "doi"}, SectionPersonal)
	doi.Personal = student.Personal
	buf.Reset()
	require.NoError(t, r.Section(&buf, SectionPersonal, doi))
	assert.Contains(t, buf.String(), "No responses yet.")
}

func TestRenderEscapesServerText(t *testing.T) {
	r := newTestRenderer(t)
	page := NewDashboardPage(models.RoleDOI, models.UserProfile{Role: "doi"}, SectionViewAll)
	page.All = ListSection{Loaded: true, Items: NewComplaintViews([]models.Complaint{
		{ComplaintID: "1", Complaint: "<script>alert(1)</script>"},
	}, r.Times())}

	var buf bytes.Buffer
	require.NoError(t, r.Section(&buf, SectionViewAll, page))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.Contains(t, buf.String(), "No responses yet.")
}

func TestRenderRespondKeepsDraft(t *testing.T) {
	r := newTestRenderer(t)
	page := NewDashboardPage(models.RoleDOI, models.UserProfile{Role: "doi", RegNo: "DOI/1"}, SectionRespond)
	page.Respond.ListSection = ListSection{Loaded: true, Items: NewComplaintViews([]models.Complaint{
		{ComplaintID: "9", StudentRegNo: "CS/001/20", Complaint: "Broken fan"},
	}, r.Times())}
	page.Respond.Drafts["9"] = "We are on it"

	var buf bytes.Buffer
	require.NoError(t, r.Section(&buf, SectionRespond, page))
	out := buf.String()
	assert.Contains(t, out, `name="complaint_id" value="9"`)
	assert.Contains(t, out, `value="CS/001/20"`)
	assert.Contains(t, out, "We are on it</textarea>")
}

func TestRenderPages(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "login", LoginPage{Flash: models.NewFlash(models.FlashError, "Invalid credentials. Please try again.")}))
	assert.Contains(t, buf.String(), "Invalid credentials. Please try again.")

	buf.Reset()
	require.NoError(t, r.Page(&buf, "signup", SignupPage{}))
	assert.Contains(t, buf.String(), `action="/signup"`)

	buf.Reset()
	page := NewDashboardPage(models.RoleDOI, models.UserProfile{Surname: "Okafor", FirstName: "Ada", Role: "doi"}, "")
	page.Flash = models.NewFlash(models.FlashAlert, "Response submitted successfully!")
	require.NoError(t, r.Page(&buf, "dashboard", page))
	out := buf.String()
	assert.Contains(t, out, "Welcome, Okafor Ada N/A")
	assert.Contains(t, out, "Welcome, Ada!")
	assert.Contains(t, out, `data-message="Response submitted successfully!"`)

	assert.Error(t, r.Page(&buf, "missing", nil))
}

func TestStaticAssetsEmbedded(t *testing.T) {
	_, err := Static().Open("app.js")
	assert.NoError(t, err)
	_, err = Static().Open("app.css")
	assert.NoError(t, err)
}
