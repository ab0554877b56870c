package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/middleware"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/service"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/view"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/logger"
)

type complaintService interface {
	Submit(ctx context.Context, profile models.UserProfile, form models.ComplaintForm) (string, error)
	Mine(ctx context.Context, regNo string) ([]models.Complaint, error)
	All(ctx context.Context, regNo string) ([]models.Complaint, error)
	Pending(ctx context.Context, regNo string) ([]models.Complaint, error)
	PendingKeeping(ctx context.Context, regNo, keepID string) ([]models.Complaint, error)
	Respond(ctx context.Context, profile models.UserProfile, form models.RespondForm) (string, error)
	RefreshDOI(ctx context.Context, regNo string) service.DOILists
}

type exportService interface {
	ContentType(format service.ExportFormat) string
	Filename(req service.ExportRequest) string
	Export(w io.Writer, req service.ExportRequest) error
}

// DashboardHandler serves the student and DOI dashboards.
type DashboardHandler struct {
	complaints complaintService
	exports    exportService
	renderer   *view.Renderer
	cookies    middleware.Cookies
	logger     *zap.Logger
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(complaints complaintService, exports exportService, renderer *view.Renderer, cookies middleware.Cookies, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		complaints: complaints,
		exports:    exports,
		renderer:   renderer,
		cookies:    cookies,
		logger:     logger,
	}
}

// Page renders the role's dashboard with the section named by ?section.
func (h *DashboardHandler) Page(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)
		page := view.NewDashboardPage(role, session.Profile, c.Query("section"))
		page.Flash = h.cookies.TakeFlash(c)
		h.load(c.Request.Context(), page, session.Profile.RegNo)
		renderPage(c, h.logger, h.renderer, http.StatusOK, "dashboard", page)
	}
}

// Section renders a single section fragment for in-page navigation.
func (h *DashboardHandler) Section(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)
		page := view.NewDashboardPage(role, session.Profile, c.Param("section"))
		h.load(c.Request.Context(), page, session.Profile.RegNo)
		renderSection(c, h.logger, h.renderer, page.Active, page)
	}
}

// SubmitComplaint files a complaint from the "make" section and refreshes the lists that
// show it.
func (h *DashboardHandler) SubmitComplaint(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)
		page := view.NewDashboardPage(role, session.Profile, view.SectionMake)

		var form models.ComplaintForm
		_ = c.ShouldBind(&form)

		ctx := c.Request.Context()
		message, err := h.complaints.Submit(ctx, session.Profile, form)
		if err != nil {
			page.Make.Flash = models.NewFlash(models.FlashError, errorMessage(err))
			page.Make.Draft = form.Complaint
			renderPage(c, h.logger, h.renderer, errorStatus(err), "dashboard", page)
			return
		}

		page.Make.Flash = models.NewFlash(models.FlashSuccess, message)
		regNo := session.Profile.RegNo
		if page.IsDOI() {
			h.fillDOI(page, h.complaints.RefreshDOI(ctx, regNo))
		} else {
			mine, err := h.complaints.Mine(ctx, regNo)
			page.Personal = personalSection(h.times(), mine, err)
		}
		renderPage(c, h.logger, h.renderer, http.StatusOK, "dashboard", page)
	}
}

// Respond posts a DOI reply. Success clears the reply box and refreshes all three lists.
// A rejected reply keeps its complaint card and the typed text. An incomplete form goes
// back to the respond section without touching the API.
func (h *DashboardHandler) Respond(c *gin.Context) {
	session := sessionFromContext(c)
	page := view.NewDashboardPage(models.RoleDOI, session.Profile, view.SectionRespond)

	var form models.RespondForm
	_ = c.ShouldBind(&form)

	ctx := c.Request.Context()
	regNo := session.Profile.RegNo
	message, err := h.complaints.Respond(ctx, session.Profile, form)
	if errors.Is(err, appErrors.ErrValidation) {
		h.cookies.SetFlash(c, models.NewFlash(models.FlashAlert, errorMessage(err)))
		c.Redirect(http.StatusSeeOther, "/"+string(models.RoleDOI)+"?section="+view.SectionRespond)
		return
	}
	if err != nil {
		page.Flash = models.NewFlash(models.FlashAlert, errorMessage(err))
		id := strings.TrimSpace(form.ComplaintID)
		page.Respond.Drafts[id] = form.ResponseMessage
		pending, perr := h.complaints.PendingKeeping(ctx, regNo, id)
		page.Respond.ListSection = respondSection(h.times(), pending, perr)
		renderPage(c, h.logger, h.renderer, errorStatus(err), "dashboard", page)
		return
	}

	page.Flash = models.NewFlash(models.FlashAlert, message)
	h.fillDOI(page, h.complaints.RefreshDOI(ctx, regNo))
	renderPage(c, h.logger, h.renderer, http.StatusOK, "dashboard", page)
}

// Export downloads the complaints the user can see: their own for a student, every
// complaint for a DOI.
func (h *DashboardHandler) Export(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)
		back := "/" + string(role) + "?section=" + view.SectionProfile

		format, err := service.ParseExportFormat(c.Query("format"))
		if err != nil {
			h.cookies.SetFlash(c, models.NewFlash(models.FlashAlert, errorMessage(err)))
			c.Redirect(http.StatusSeeOther, back)
			return
		}

		ctx := c.Request.Context()
		req := service.ExportRequest{Format: format, RegNo: session.Profile.RegNo}
		if role == models.RoleDOI {
			req.Title = "All Complaints"
			req.WithStudent = true
			req.Complaints, err = h.complaints.All(ctx, session.Profile.RegNo)
		} else {
			req.Title = "My Complaints"
			req.Complaints, err = h.complaints.Mine(ctx, session.Profile.RegNo)
		}
		if err != nil {
			h.cookies.SetFlash(c, models.NewFlash(models.FlashAlert, errorMessage(err)))
			c.Redirect(http.StatusSeeOther, back)
			return
		}

		var buf bytes.Buffer
		if err := h.exports.Export(&buf, req); err != nil {
			logger.ForRequest(h.logger, c).Error("export complaints failed", zap.Error(err))
			h.cookies.SetFlash(c, models.NewFlash(models.FlashAlert, errorMessage(err)))
			c.Redirect(http.StatusSeeOther, back)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exports.Filename(req)))
		c.Data(http.StatusOK, h.exports.ContentType(format), buf.Bytes())
	}
}

// load fetches what the active section shows. Other sections stay unloaded.
func (h *DashboardHandler) load(ctx context.Context, page *view.DashboardPage, regNo string) {
	times := h.times()
	switch page.Active {
	case view.SectionPersonal:
		mine, err := h.complaints.Mine(ctx, regNo)
		page.Personal = personalSection(times, mine, err)
	case view.SectionViewAll:
		all, err := h.complaints.All(ctx, regNo)
		page.All = allSection(times, all, err)
	case view.SectionRespond:
		pending, err := h.complaints.Pending(ctx, regNo)
		page.Respond.ListSection = respondSection(times, pending, err)
	}
}

func (h *DashboardHandler) fillDOI(page *view.DashboardPage, lists service.DOILists) {
	times := h.times()
	page.Personal = personalSection(times, lists.Mine.Complaints, lists.Mine.Err)
	page.All = allSection(times, lists.All.Complaints, lists.All.Err)
	page.Respond.ListSection = respondSection(times, lists.Pending.Complaints, lists.Pending.Err)
}

func (h *DashboardHandler) times() *view.TimeFormatter {
	if h.renderer == nil {
		return nil
	}
	return h.renderer.Times()
}

func personalSection(times *view.TimeFormatter, complaints []models.Complaint, err error) view.ListSection {
	return listSection(times, complaints, err, service.MsgMineEmpty)
}

func allSection(times *view.TimeFormatter, complaints []models.Complaint, err error) view.ListSection {
	if errors.Is(err, appErrors.ErrRejected) {
		return view.ListSection{Loaded: true, Message: service.MsgAllEmpty}
	}
	return listSection(times, complaints, err, service.MsgAllEmpty)
}

func respondSection(times *view.TimeFormatter, complaints []models.Complaint, err error) view.ListSection {
	return listSection(times, complaints, err, service.MsgPendingEmpty)
}

func listSection(times *view.TimeFormatter, complaints []models.Complaint, err error, empty string) view.ListSection {
	if err != nil {
		return view.ListSection{Loaded: true, Message: errorMessage(err), Error: true}
	}
	if len(complaints) == 0 {
		return view.ListSection{Loaded: true, Message: empty}
	}
	return view.ListSection{Loaded: true, Items: view.NewComplaintViews(complaints, times)}
}
