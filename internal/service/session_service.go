package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
)

type sessionRepository interface {
	Save(ctx context.Context, slot string, session *models.Session) error
	Load(ctx context.Context, id, slot string) (*models.Session, error)
	Clear(ctx context.Context, id, slot string) error
}

type sessionMetrics interface {
	RecordSessionOperation(operation, outcome string)
}

// SessionConfig controls session tokens.
type SessionConfig struct {
	Secret string
	Issuer string
	// TTL of zero issues tokens without an expiry.
	TTL time.Duration
}

// SessionService owns the lifecycle of the single "userData" slot each browser session has.
type SessionService struct {
	repo    sessionRepository
	metrics sessionMetrics
	logger  *zap.Logger
	config  SessionConfig
	now     func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, metrics sessionMetrics, logger *zap.Logger, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Issuer == "" {
		config.Issuer = "sifms-portal"
	}
	return &SessionService{repo: repo, metrics: metrics, logger: logger, config: config, now: time.Now}
}

// Open starts a new session holding profile.
func (s *SessionService) Open(ctx context.Context, profile models.UserProfile) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		Profile:   profile,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, models.SessionSlot, session); err != nil {
		s.record("open", err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session")
	}
	s.record("open", nil)
	return session, nil
}

// Load returns the session for id, or ErrSessionNotFound.
func (s *SessionService) Load(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, appErrors.ErrSessionNotFound
	}
	session, err := s.repo.Load(ctx, id, models.SessionSlot)
	s.record("load", err)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

// Save overwrites the profile held by session id and returns the updated session.
func (s *SessionService) Save(ctx context.Context, id string, profile models.UserProfile) (*models.Session, error) {
	session, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Profile = profile
	err = s.repo.Save(ctx, models.SessionSlot, session)
	s.record("save", err)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session")
	}
	return session, nil
}

// Close clears the slot. Closing an unknown session is a no-op.
func (s *SessionService) Close(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	err := s.repo.Clear(ctx, id, models.SessionSlot)
	s.record("clear", err)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}

// Token signs the cookie value for session.
func (s *SessionService) Token(session *models.Session) (string, error) {
	issuedAt := s.now().UTC()
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       session.ID,
			Issuer:   s.config.Issuer,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if s.config.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(s.config.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return signed, nil
}

// ParseToken validates a cookie value and returns the session id it carries.
func (s *SessionService) ParseToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", appErrors.ErrSessionNotFound
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrSessionInvalid.Code, appErrors.ErrSessionInvalid.Status, "invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", appErrors.Clone(appErrors.ErrSessionInvalid, "invalid session claims")
	}
	return claims.ID, nil
}

// Resolve turns a cookie value into its live session.
func (s *SessionService) Resolve(ctx context.Context, tokenString string) (*models.Session, error) {
	id, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, id)
}

func (s *SessionService) record(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, appErrors.ErrSessionNotFound):
		outcome = "miss"
	default:
		outcome = "error"
		s.logger.Error("session store failure", zap.String("operation", op), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordSessionOperation(op, outcome)
	}
}
