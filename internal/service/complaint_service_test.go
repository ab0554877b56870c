package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/sifms"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
)

type stubComplaintClient struct {
	mu sync.Mutex

	submitResult *sifms.Result
	submitErr    error
	allResult    *sifms.ComplaintsResult
	allErr       error
	mineResult   *sifms.ComplaintsResult
	mineErr      error
	respondRes   *sifms.Result
	respondErr   error

	calls       map[string]int
	lastRespond sifms.RespondRequest
}

func (s *stubComplaintClient) count(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[op]++
}

func (s *stubComplaintClient) SubmitComplaint(_ context.Context, _, _ string) (*sifms.Result, error) {
	s.count(sifms.OpSubmitComplaint)
	return s.submitResult, s.submitErr
}

func (s *stubComplaintClient) ListAllComplaints(_ context.Context, _ string) (*sifms.ComplaintsResult, error) {
	s.count(sifms.OpListAllComplaints)
	return s.allResult, s.allErr
}

func (s *stubComplaintClient) ListMyComplaints(_ context.Context, _ string) (*sifms.ComplaintsResult, error) {
	s.count(sifms.OpListMyComplaints)
	return s.mineResult, s.mineErr
}

func (s *stubComplaintClient) Respond(_ context.Context, req sifms.RespondRequest) (*sifms.Result, error) {
	s.count(sifms.OpRespond)
	s.lastRespond = req
	return s.respondRes, s.respondErr
}

func messageOf(err error) string {
	return appErrors.FromError(err).Message
}

func TestComplaintServiceSubmit(t *testing.T) {
	client := &stubComplaintClient{submitResult: &sifms.Result{Status: sifms.StatusSuccess, HTTPStatus: http.StatusCreated}}
	svc := NewComplaintService(client, nil, nil)
	profile := models.UserProfile{RegNo: "CS/001/20"}

	_, err := svc.Submit(context.Background(), profile, models.ComplaintForm{Complaint: "   "})
	assert.Equal(t, MsgComplaintEmpty, messageOf(err))
	assert.Zero(t, client.calls[sifms.OpSubmitComplaint])

	msg, err := svc.Submit(context.Background(), profile, models.ComplaintForm{Complaint: "No water"})
	require.NoError(t, err)
	assert.Equal(t, MsgComplaintSubmitted, msg)

	client.submitResult = &sifms.Result{Status: "error", HTTPStatus: http.StatusBadRequest}
	_, err = svc.Submit(context.Background(), profile, models.ComplaintForm{Complaint: "No water"})
	assert.Equal(t, MsgComplaintRejected, messageOf(err))

	client.submitResult, client.submitErr = nil, appErrors.ErrUpstream
	_, err = svc.Submit(context.Background(), profile, models.ComplaintForm{Complaint: "No water"})
	assert.Equal(t, MsgComplaintTransport, messageOf(err))
}

func TestComplaintServiceMine(t *testing.T) {
	client := &stubComplaintClient{mineResult: &sifms.ComplaintsResult{
		Result:     sifms.Result{Status: sifms.StatusSuccess, HTTPStatus: http.StatusOK},
		Complaints: []models.Complaint{},
	}}
	svc := NewComplaintService(client, nil, nil)

	_, err := svc.Mine(context.Background(), "")
	assert.Equal(t, MsgRegNoMissing, messageOf(err))
	assert.Zero(t, client.calls[sifms.OpListMyComplaints])

	list, err := svc.Mine(context.Background(), "CS/001/20")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	client.mineResult = &sifms.ComplaintsResult{Result: sifms.Result{Status: "error", Message: "Student not found", HTTPStatus: http.StatusNotFound}}
	_, err = svc.Mine(context.Background(), "CS/001/20")
	assert.Equal(t, "Student not found", messageOf(err))

	client.mineResult, client.mineErr = nil, appErrors.ErrUpstream
	_, err = svc.Mine(context.Background(), "CS/001/20")
	assert.Equal(t, MsgMineTransport, messageOf(err))
}

func TestComplaintServiceAllAndPending(t *testing.T) {
	complaints := []models.Complaint{
		{ComplaintID: "1", Responses: []models.Response{{DOIRegNo: "DOI/1"}}},
		{ComplaintID: "2"},
	}
	client := &stubComplaintClient{allResult: &sifms.ComplaintsResult{
		Result:     sifms.Result{Status: sifms.StatusSuccess, HTTPStatus: http.StatusOK},
		Complaints: complaints,
	}}
	svc := NewComplaintService(client, nil, nil)

	all, err := svc.All(context.Background(), "DOI/1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.Pending(context.Background(), "DOI/1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.OpaqueID("2"), pending[0].ComplaintID)

	kept, err := svc.PendingKeeping(context.Background(), "DOI/1", "1")
	require.NoError(t, err)
	assert.Len(t, kept, 2)

	client.allResult = &sifms.ComplaintsResult{Result: sifms.Result{Status: "error", HTTPStatus: http.StatusForbidden}}
	_, err = svc.All(context.Background(), "DOI/1")
	assert.Equal(t, MsgAllEmpty, messageOf(err))
	_, err = svc.Pending(context.Background(), "DOI/1")
	assert.Equal(t, MsgPendingRejected, messageOf(err))

	client.allResult, client.allErr = nil, appErrors.ErrUpstream
	_, err = svc.All(context.Background(), "DOI/1")
	assert.Equal(t, MsgAllTransport, messageOf(err))
	_, err = svc.Pending(context.Background(), "DOI/1")
	assert.Equal(t, MsgPendingTransport, messageOf(err))
}

func TestComplaintServiceRespond(t *testing.T) {
	client := &stubComplaintClient{respondRes: &sifms.Result{Status: "error", Message: "Complaint already closed", HTTPStatus: http.StatusBadRequest}}
	svc := NewComplaintService(client, nil, nil)
	doi := models.UserProfile{RegNo: "DOI/1", Role: "doi"}

	_, err := svc.Respond(context.Background(), doi, models.RespondForm{ComplaintID: "9", ResponseMessage: "  "})
	assert.Equal(t, MsgResponseEmpty, messageOf(err))
	assert.Zero(t, client.calls[sifms.OpRespond])

	form := models.RespondForm{ComplaintID: "9", StudentRegNo: "CS/001/20", ResponseMessage: " Fixed "}
	_, err = svc.Respond(context.Background(), doi, form)
	assert.True(t, errors.Is(err, appErrors.ErrRejected))
	assert.Equal(t, "Complaint already closed", messageOf(err))
	assert.Equal(t, sifms.RespondRequest{DOIRegNo: "DOI/1", StudentRegNo: "CS/001/20", ComplaintID: "9", ResponseMessage: "Fixed"}, client.lastRespond)

	client.respondRes = &sifms.Result{Status: sifms.StatusSuccess, HTTPStatus: http.StatusOK}
	msg, err := svc.Respond(context.Background(), doi, form)
	require.NoError(t, err)
	assert.Equal(t, MsgResponseSubmitted, msg)

	client.respondRes, client.respondErr = nil, appErrors.ErrUpstream
	_, err = svc.Respond(context.Background(), doi, form)
	assert.Equal(t, MsgResponseTransport, messageOf(err))
}

func TestComplaintServiceRefreshDOIFetchesAllThree(t *testing.T) {
	client := &stubComplaintClient{
		allResult: &sifms.ComplaintsResult{
			Result:     sifms.Result{Status: sifms.StatusSuccess, HTTPStatus: http.StatusOK},
			Complaints: []models.Complaint{{ComplaintID: "1"}},
		},
		mineErr: appErrors.ErrUpstream,
	}
	svc := NewComplaintService(client, nil, nil)

	lists := svc.RefreshDOI(context.Background(), "DOI/1")
	assert.Equal(t, MsgMineTransport, messageOf(lists.Mine.Err))
	assert.NoError(t, lists.All.Err)
	assert.Len(t, lists.All.Complaints, 1)
	assert.NoError(t, lists.Pending.Err)
	assert.Len(t, lists.Pending.Complaints, 1)
	assert.Equal(t, 2, client.calls[sifms.OpListAllComplaints])
	assert.Equal(t, 1, client.calls[sifms.OpListMyComplaints])
}
