package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/sifms"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/view"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
)

// Messages shown by the dashboard sections.
const (
	MsgComplaintEmpty     = "Complaint cannot be empty."
	MsgComplaintSubmitted = "Complaint submitted successfully!"
	MsgComplaintRejected  = "Failed to submit complaint."
	MsgComplaintTransport = "Network error while submitting complaint."

	MsgRegNoMissing      = "Registration number missing."
	MsgMineRejected      = "Unable to load complaints."
	MsgMineEmpty         = "You have no complaints yet."
	MsgMineTransport     = "Error connecting to server."
	MsgAllEmpty          = "No complaints found."
	MsgAllTransport      = "Error loading complaints."
	MsgPendingEmpty      = "No complaints to respond to."
	MsgPendingRejected   = "No complaints available."
	MsgPendingTransport  = "Failed to load complaints."
	MsgResponseEmpty     = "Please enter a response."
	MsgResponseSubmitted = "Response submitted successfully!"
	MsgResponseRejected  = "Failed to respond."
	MsgResponseTransport = "An error occurred while responding."
)

type complaintClient interface {
	SubmitComplaint(ctx context.Context, regNo, complaint string) (*sifms.Result, error)
	ListAllComplaints(ctx context.Context, regNo string) (*sifms.ComplaintsResult, error)
	ListMyComplaints(ctx context.Context, regNo string) (*sifms.ComplaintsResult, error)
	Respond(ctx context.Context, req sifms.RespondRequest) (*sifms.Result, error)
}

// ComplaintList is the outcome of one list fetch. Err carries the message to show in
// place of the list; an empty, error-free list is a valid outcome.
type ComplaintList struct {
	Complaints []models.Complaint
	Err        error
}

// DOILists are the three lists a DOI dashboard refreshes together.
type DOILists struct {
	Mine    ComplaintList
	All     ComplaintList
	Pending ComplaintList
}

// ComplaintService files complaints and responses and fetches complaint lists. Every
// fetch is independent; nothing is cached between them.
type ComplaintService struct {
	client    complaintClient
	validator *validator.Validate
	logger    *zap.Logger
}

// NewComplaintService constructs a ComplaintService.
func NewComplaintService(client complaintClient, validate *validator.Validate, logger *zap.Logger) *ComplaintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ComplaintService{client: client, validator: validate, logger: logger}
}

// Submit files form on behalf of profile and returns the confirmation message.
func (s *ComplaintService) Submit(ctx context.Context, profile models.UserProfile, form models.ComplaintForm) (string, error) {
	form.Normalize()
	if err := s.validator.Struct(form); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgComplaintEmpty)
	}

	res, err := s.client.SubmitComplaint(ctx, profile.RegNo, form.Complaint)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, MsgComplaintTransport)
	}
	if !res.OK() {
		return "", appErrors.Clone(appErrors.ErrRejected, res.MessageOr(MsgComplaintRejected))
	}

	s.logger.Info("complaint submitted", zap.String("reg_no", profile.RegNo))
	return MsgComplaintSubmitted, nil
}

// Mine lists the complaints regNo filed. A missing regNo fails without a call. The
// result is empty, never nil, when regNo has filed nothing.
func (s *ComplaintService) Mine(ctx context.Context, regNo string) ([]models.Complaint, error) {
	if regNo == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgRegNoMissing)
	}

	res, err := s.client.ListMyComplaints(ctx, regNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, MsgMineTransport)
	}
	if !res.OK() {
		return nil, appErrors.Clone(appErrors.ErrRejected, res.MessageOr(MsgMineRejected))
	}
	if res.Complaints == nil {
		return nil, appErrors.Clone(appErrors.ErrUpstream, MsgMineTransport)
	}
	return res.Complaints, nil
}

// All lists every complaint visible to regNo. A rejection reads the same as an empty list.
func (s *ComplaintService) All(ctx context.Context, regNo string) ([]models.Complaint, error) {
	res, err := s.client.ListAllComplaints(ctx, regNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, MsgAllTransport)
	}
	if !res.OK() {
		return nil, appErrors.Clone(appErrors.ErrRejected, MsgAllEmpty)
	}
	if res.Complaints == nil {
		return []models.Complaint{}, nil
	}
	return res.Complaints, nil
}

// Pending lists the complaints regNo has not answered yet, in API order.
func (s *ComplaintService) Pending(ctx context.Context, regNo string) ([]models.Complaint, error) {
	return s.PendingKeeping(ctx, regNo, "")
}

// PendingKeeping lists pending complaints but keeps keepID, so a reply that just failed
// stays on screen with its text.
func (s *ComplaintService) PendingKeeping(ctx context.Context, regNo, keepID string) ([]models.Complaint, error) {
	res, err := s.client.ListAllComplaints(ctx, regNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, MsgPendingTransport)
	}
	if !res.OK() || res.Complaints == nil {
		return nil, appErrors.Clone(appErrors.ErrRejected, MsgPendingRejected)
	}
	return view.PendingKeeping(res.Complaints, regNo, keepID), nil
}

// Respond attaches form as a response from the DOI profile and returns the confirmation.
func (s *ComplaintService) Respond(ctx context.Context, profile models.UserProfile, form models.RespondForm) (string, error) {
	form.Normalize()
	if form.ResponseMessage == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, MsgResponseEmpty)
	}
	if err := s.validator.Struct(form); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgResponseRejected)
	}

	res, err := s.client.Respond(ctx, sifms.RespondRequest{
		DOIRegNo:        profile.RegNo,
		StudentRegNo:    form.StudentRegNo,
		ComplaintID:     form.ComplaintID,
		ResponseMessage: form.ResponseMessage,
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, MsgResponseTransport)
	}
	if !res.OK() {
		return "", appErrors.Clone(appErrors.ErrRejected, res.MessageOr(MsgResponseRejected))
	}

	s.logger.Info("complaint answered",
		zap.String("doi_reg_no", profile.RegNo),
		zap.String("complaint_id", form.ComplaintID),
	)
	return MsgResponseSubmitted, nil
}

// RefreshDOI fetches the personal, all and pending lists concurrently and waits for all
// three. Each list fails or succeeds on its own.
func (s *ComplaintService) RefreshDOI(ctx context.Context, regNo string) DOILists {
	var (
		lists DOILists
		wg    sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		lists.Mine.Complaints, lists.Mine.Err = s.Mine(ctx, regNo)
	}()
	go func() {
		defer wg.Done()
		lists.All.Complaints, lists.All.Err = s.All(ctx, regNo)
	}()
	go func() {
		defer wg.Done()
		lists.Pending.Complaints, lists.Pending.Err = s.Pending(ctx, regNo)
	}()
	wg.Wait()
	return lists
}
