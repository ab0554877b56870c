// Package sifms is the portal's client for the remote SIFMS complaints API.
//
// Every call is a single attempt: no retries and no backoff. The caller's context is the
// only cancellation signal, so a page render abandoned by the browser aborts its fetches.
package sifms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/config"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/middleware/requestid"
)

// API paths relative to the configured base URL.
const (
	PathRegister        = "/register/student"
	PathLogin           = "/login"
	PathComplaint       = "/complaint"
	PathAllComplaints   = "/all/complaints"
	PathMyComplaints    = "/student/complaints"
	PathRespondComplain = "/respond/complaint"
)

// Operation names used in logs and metrics.
const (
	OpRegister          = "register"
	OpLogin             = "login"
	OpSubmitComplaint   = "submit_complaint"
	OpListAllComplaints = "list_all_complaints"
	OpListMyComplaints  = "list_my_complaints"
	OpRespond           = "respond"
)

// Call outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport"
)

// StatusSuccess is the envelope status of an accepted call.
const StatusSuccess = "success"

const maxBodyBytes = 4 << 20

// Observer receives one observation per finished call.
type Observer interface {
	ObserveUpstreamCall(operation, outcome string, duration time.Duration)
}

// Result is the tagged envelope every SIFMS endpoint answers with.
type Result struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	HTTPStatus int             `json:"-"`
}

// OK reports whether the API accepted the call.
func (r *Result) OK() bool {
	return r != nil && r.HTTPStatus >= 200 && r.HTTPStatus < 300 && r.Status == StatusSuccess
}

// MessageOr returns the API message, or fallback when the API sent none.
func (r *Result) MessageOr(fallback string) string {
	if r == nil || strings.TrimSpace(r.Message) == "" {
		return fallback
	}
	return r.Message
}

// ProfileResult is the outcome of a login.
type ProfileResult struct {
	Result
	Profile *models.UserProfile
}

// ComplaintsResult is the outcome of a complaint listing. Complaints is nil when the API
// sent no data array.
type ComplaintsResult struct {
	Result
	Complaints []models.Complaint
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Surname     string `json:"surname"`
	FirstName   string `json:"first_name"`
	OtherNames  string `json:"other_names"`
	RegNo       string `json:"reg_no"`
	Department  string `json:"department"`
	Faculty     string `json:"faculty"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

// RespondRequest attaches a DOI response to a complaint.
type RespondRequest struct {
	DOIRegNo        string `json:"doi_reg_no"`
	StudentRegNo    string `json:"student_reg_no"`
	ComplaintID     string `json:"complaint_id"`
	ResponseMessage string `json:"response_message"`
}

// Client talks to the SIFMS API.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient constructs a Client. A nil httpClient gets a client whose transport is
// resolved per request from http.DefaultTransport.
func NewClient(cfg config.APIConfig, httpClient *http.Client, logger *zap.Logger, observer Observer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		logger:   logger,
		observer: observer,
	}
}

// Login authenticates a user and returns the stored profile on success.
func (c *Client) Login(ctx context.Context, regNo, password string) (*ProfileResult, error) {
	res, err := c.do(ctx, OpLogin, http.MethodPost, PathLogin, nil, map[string]string{
		"reg_no":   regNo,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	out := &ProfileResult{Result: *res}
	if res.OK() && hasData(res.Data) {
		var profile models.UserProfile
		if err := json.Unmarshal(res.Data, &profile); err != nil {
			return nil, c.malformed(OpLogin, err)
		}
		out.Profile = &profile
	}
	return out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	return c.do(ctx, OpRegister, http.MethodPost, PathRegister, nil, req)
}

// SubmitComplaint files a complaint on behalf of regNo.
func (c *Client) SubmitComplaint(ctx context.Context, regNo, complaint string) (*Result, error) {
	return c.do(ctx, OpSubmitComplaint, http.MethodPost, PathComplaint, nil, map[string]string{
		"reg_no":    regNo,
		"complaint": complaint,
	})
}

// ListAllComplaints returns every complaint visible to regNo.
func (c *Client) ListAllComplaints(ctx context.Context, regNo string) (*ComplaintsResult, error) {
	res, err := c.do(ctx, OpListAllComplaints, http.MethodPost, PathAllComplaints, nil, map[string]string{
		"reg_no": regNo,
	})
	if err != nil {
		return nil, err
	}
	return c.complaints(OpListAllComplaints, res)
}

// ListMyComplaints returns the complaints filed by regNo.
func (c *Client) ListMyComplaints(ctx context.Context, regNo string) (*ComplaintsResult, error) {
	query := url.Values{}
	query.Set("reg_no", regNo)

	res, err := c.do(ctx, OpListMyComplaints, http.MethodGet, PathMyComplaints, query, nil)
	if err != nil {
		return nil, err
	}
	return c.complaints(OpListMyComplaints, res)
}

// Respond attaches a response to a complaint.
func (c *Client) Respond(ctx context.Context, req RespondRequest) (*Result, error) {
	return c.do(ctx, OpRespond, http.MethodPost, PathRespondComplain, nil, req)
}

func (c *Client) complaints(op string, res *Result) (*ComplaintsResult, error) {
	out := &ComplaintsResult{Result: *res}
	if res.OK() && hasData(res.Data) {
		var list []models.Complaint
		if err := json.Unmarshal(res.Data, &list); err != nil {
			return nil, c.malformed(op, err)
		}
		if list == nil {
			list = []models.Complaint{}
		}
		out.Complaints = list
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body interface{}) (*Result, error) {
	start := time.Now()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode "+op+" payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build "+op+" request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.HeaderKey, reqID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, OutcomeTransport, start)
		c.logger.Warn("sifms call failed", zap.String("operation", op), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("sifms %s failed", op))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.observe(op, OutcomeTransport, start)
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("read sifms %s response", op))
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		c.observe(op, OutcomeTransport, start)
		c.logger.Warn("sifms returned a non-JSON body",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("decode sifms %s response", op))
	}
	res.HTTPStatus = resp.StatusCode

	outcome := OutcomeSuccess
	if !res.OK() {
		outcome = OutcomeRejected
		c.logger.Info("sifms rejected call",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", res.Message),
		)
	}
	c.observe(op, outcome, start)

	return &res, nil
}

func (c *Client) malformed(op string, err error) error {
	c.logger.Warn("sifms returned malformed data", zap.String("operation", op), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("decode sifms %s data", op))
}

func (c *Client) observe(op, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstreamCall(op, outcome, time.Since(start))
	}
}

func hasData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
