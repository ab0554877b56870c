package sifms

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/config"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/middleware/requestid"
)

const (
	testHost = "http://sifms.test"
	testBase = testHost + "/api/v1/sifms"
	apiRoot  = "/api/v1/sifms"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveUpstreamCall(operation, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, operation+":"+outcome)
}

func newTestClient(obs Observer) *Client {
	return NewClient(config.APIConfig{BaseURL: testBase + "/"}, nil, nil, obs)
}

func TestLoginSuccessDecodesProfile(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Post(apiRoot + PathLogin).
		MatchType("json").
		JSON(map[string]string{"reg_no": "CS/001/20", "password": "secret"}).
		Reply(http.StatusOK).
		JSON(map[string]interface{}{
			"status":  "success",
			"message": "Login successful",
			"data": map[string]string{
				"surname":    "Okafor",
				"first_name": "Ada",
				"reg_no":     "CS/001/20",
				"role":       "student",
			},
		})

	obs := &recordingObserver{}
	res, err := newTestClient(obs).Login(context.Background(), "CS/001/20", "secret")
	require.NoError(t, err)
	require.True(t, res.OK())
	require.NotNil(t, res.Profile)
	assert.Equal(t, "Okafor", res.Profile.Surname)
	assert.Equal(t, "CS/001/20", res.Profile.RegNo)
	assert.Equal(t, []string{"login:success"}, obs.calls)
	assert.True(t, gock.IsDone())
}

func TestLoginRejectedKeepsServerMessage(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Post(apiRoot + PathLogin).
		Reply(http.StatusUnauthorized).
		JSON(map[string]string{"status": "error", "message": "Wrong password"})

	obs := &recordingObserver{}
	res, err := newTestClient(obs).Login(context.Background(), "CS/001/20", "nope")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Nil(t, res.Profile)
	assert.Equal(t, "Wrong password", res.MessageOr("fallback"))
	assert.Equal(t, http.StatusUnauthorized, res.HTTPStatus)
	assert.Equal(t, []string{"login:rejected"}, obs.calls)
}

func TestSuccessStatusRequires2xx(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Post(apiRoot + PathComplaint).
		Reply(http.StatusInternalServerError).
		JSON(map[string]string{"status": "success", "message": "odd"})

	res, err := newTestClient(nil).SubmitComplaint(context.Background(), "CS/001/20", "Broken fan")
	require.NoError(t, err)
	assert.False(t, res.OK())
}

func TestListMyComplaintsEscapesRegNo(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Get(apiRoot + PathMyComplaints).
		MatchParam("reg_no", "CS/001/20").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{
			"status": "success",
			"data": []map[string]interface{}{
				{
					"complaint_id":   42,
					"student_reg_no": "CS/001/20",
					"complaint":      "No water",
					"timestamp":      "2024-01-02T10:00:00Z",
					"responses": []map[string]string{
						{"doi_reg_no": "DOI/1", "response_message": "On it"},
					},
				},
			},
		})

	res, err := newTestClient(nil).ListMyComplaints(context.Background(), "CS/001/20")
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Len(t, res.Complaints, 1)
	assert.Equal(t, "42", string(res.Complaints[0].ComplaintID))
	require.Len(t, res.Complaints[0].Responses, 1)
	assert.Equal(t, "On it", res.Complaints[0].Responses[0].ResponseMessage)
	assert.True(t, gock.IsDone())
}

func TestListAllComplaintsEmptyData(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Post(apiRoot + PathAllComplaints).
		MatchType("json").
		JSON(map[string]string{"reg_no": "DOI/1"}).
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"status": "success", "data": []interface{}{}})

	res, err := newTestClient(nil).ListAllComplaints(context.Background(), "DOI/1")
	require.NoError(t, err)
	require.NotNil(t, res.Complaints)
	assert.Empty(t, res.Complaints)
}

func TestRespondSendsPayloadAndRequestID(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Post(apiRoot + PathRespondComplain).
		MatchHeader(requestid.HeaderKey, "req-123").
		MatchType("json").
		JSON(map[string]string{
			"doi_reg_no":       "DOI/1",
			"student_reg_no":   "CS/001/20",
			"complaint_id":     "42",
			"response_message": "Fixed",
		}).
		Reply(http.StatusOK).
		JSON(map[string]string{"status": "success", "message": "Response recorded"})

	ctx := requestid.WithValue(context.Background(), "req-123")
	res, err := newTestClient(nil).Respond(ctx, RespondRequest{
		DOIRegNo:        "DOI/1",
		StudentRegNo:    "CS/001/20",
		ComplaintID:     "42",
		ResponseMessage: "Fixed",
	})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.True(t, gock.IsDone())
}

func TestTransportFailureIsUpstreamError(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Post(apiRoot + PathRegister).
		ReplyError(errors.New("connection refused"))

	obs := &recordingObserver{}
	res, err := newTestClient(obs).Register(context.Background(), RegisterRequest{RegNo: "CS/001/20"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
	assert.Equal(t, []string{"register:transport"}, obs.calls)
}

func TestNonJSONBodyIsUpstreamError(t *testing.T) {
	defer gock.Off()

	gock.New(testHost).
		Post(apiRoot + PathRegister).
		Reply(http.StatusBadGateway).
		BodyString("<html>Bad gateway</html>")

	_, err := newTestClient(nil).Register(context.Background(), RegisterRequest{RegNo: "CS/001/20"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
}

func TestMessageOrFallback(t *testing.T) {
	var nilResult *Result
	assert.Equal(t, "fallback", nilResult.MessageOr("fallback"))
	assert.Equal(t, "fallback", (&Result{Message: "  "}).MessageOr("fallback"))
	assert.Equal(t, "Registered", (&Result{Message: "Registered"}).MessageOr("fallback"))
	assert.False(t, nilResult.OK())
}
