package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/response"
)

type complaintLister interface {
	Mine(ctx context.Context, regNo string) ([]models.Complaint, error)
	All(ctx context.Context, regNo string) ([]models.Complaint, error)
	Pending(ctx context.Context, regNo string) ([]models.Complaint, error)
}

// ComplaintAPIHandler exposes the complaint lists as JSON for the logged-in user.
type ComplaintAPIHandler struct {
	complaints complaintLister
}

// NewComplaintAPIHandler creates a new handler.
func NewComplaintAPIHandler(complaints complaintLister) *ComplaintAPIHandler {
	return &ComplaintAPIHandler{complaints: complaints}
}

// Mine godoc
// @Summary List my complaints
// @Description Complaints filed by the logged-in user
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/complaints/mine [get]
func (h *ComplaintAPIHandler) Mine(c *gin.Context) {
	h.list(c, h.complaints.Mine)
}

// All godoc
// @Summary List all complaints
// @Description Every complaint visible to the logged-in DOI
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/complaints/all [get]
func (h *ComplaintAPIHandler) All(c *gin.Context) {
	h.list(c, h.complaints.All)
}

// Pending godoc
// @Summary List pending complaints
// @Description Complaints the logged-in DOI has not answered yet
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/complaints/pending [get]
func (h *ComplaintAPIHandler) Pending(c *gin.Context) {
	h.list(c, h.complaints.Pending)
}

func (h *ComplaintAPIHandler) list(c *gin.Context, fetch func(context.Context, string) ([]models.Complaint, error)) {
	session := sessionFromContext(c)
	complaints, err := fetch(c.Request.Context(), session.Profile.RegNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, complaints, map[string]interface{}{"count": len(complaints)})
}
