package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/sifms"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
)

// Messages shown by the login and signup pages.
const (
	MsgLoginMissingFields  = "Please enter your registration number and password."
	MsgLoginSuccess        = "Login successful!"
	MsgLoginRejected       = "Invalid credentials. Please try again."
	MsgLoginTransport      = "Error: Something went wrong. Please check your connection."
	MsgUnknownRole         = "Unknown role. Please contact the administrator."
	MsgSignupMissingFields = "⚠️ Please fill in all required fields."
	MsgSignupTransport     = "⚠️ An error occurred. Please try again."

	signupSuccessPrefix = "🎉 "
	signupFailurePrefix = "⚠️ "
)

type authClient interface {
	Login(ctx context.Context, regNo, password string) (*sifms.ProfileResult, error)
	Register(ctx context.Context, req sifms.RegisterRequest) (*sifms.Result, error)
}

type profileStore interface {
	Open(ctx context.Context, profile models.UserProfile) (*models.Session, error)
	Save(ctx context.Context, id string, profile models.UserProfile) (*models.Session, error)
}

// LoginResult is a successful login. Role decides the dashboard; any other value
// leaves the user on the login page.
type LoginResult struct {
	Session *models.Session
	Role    models.Role
}

// KnownRole reports whether a dashboard exists for the role.
func (r *LoginResult) KnownRole() bool {
	return r.Role == models.RoleStudent || r.Role == models.RoleDOI
}

// AuthService logs users in against the SIFMS API and registers new accounts.
type AuthService struct {
	client    authClient
	sessions  profileStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(client authClient, sessions profileStore, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{client: client, sessions: sessions, validator: validate, logger: logger}
}

// Login authenticates the form and stores the returned profile. A live currentID has its
// profile overwritten; otherwise a new session is opened.
func (s *AuthService) Login(ctx context.Context, form models.LoginForm, currentID string) (*LoginResult, error) {
	form.Normalize()
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgLoginMissingFields)
	}

	res, err := s.client.Login(ctx, form.RegNo, form.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, MsgLoginTransport)
	}
	if !res.OK() {
		return nil, appErrors.Clone(appErrors.ErrRejected, res.MessageOr(MsgLoginRejected))
	}
	if res.Profile == nil {
		s.logger.Warn("login succeeded without a profile", zap.String("reg_no", form.RegNo))
		return nil, appErrors.Clone(appErrors.ErrUpstream, MsgLoginTransport)
	}

	profile := res.Profile.WithFullName()
	session, err := s.storeProfile(ctx, currentID, profile)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, MsgLoginTransport)
	}

	role := profile.NormalizedRole()
	s.logger.Info("user logged in", zap.String("reg_no", profile.RegNo), zap.String("role", string(role)))
	return &LoginResult{Session: session, Role: role}, nil
}

func (s *AuthService) storeProfile(ctx context.Context, currentID string, profile models.UserProfile) (*models.Session, error) {
	if currentID != "" {
		session, err := s.sessions.Save(ctx, currentID, profile)
		if !errors.Is(err, appErrors.ErrSessionNotFound) {
			return session, err
		}
	}
	return s.sessions.Open(ctx, profile)
}

// Register creates an account and returns the message to show on success.
func (s *AuthService) Register(ctx context.Context, form models.SignupForm) (string, error) {
	form.Normalize()
	if err := s.validator.Struct(form); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgSignupMissingFields)
	}

	res, err := s.client.Register(ctx, sifms.RegisterRequest{
		Surname:     form.Surname,
		FirstName:   form.FirstName,
		OtherNames:  form.OtherNames,
		RegNo:       form.RegNo,
		Department:  form.Department,
		Faculty:     form.Faculty,
		PhoneNumber: form.PhoneNumber,
		Gender:      form.Gender,
		Role:        form.Role,
		Password:    form.Password,
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, MsgSignupTransport)
	}
	if !res.OK() {
		return "", appErrors.Clone(appErrors.ErrRejected, signupFailurePrefix+res.MessageOr("Registration failed."))
	}

	s.logger.Info("account registered", zap.String("reg_no", form.RegNo), zap.String("role", form.Role))
	return signupSuccessPrefix + res.MessageOr("Registration successful."), nil
}
