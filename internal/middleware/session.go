package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/logger"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/response"
)

// ContextSessionKey is the gin context key holding the loaded *models.Session.
const ContextSessionKey = "portalSession"

// MsgSessionExpired is shown when a dashboard is opened without a session.
const MsgSessionExpired = "Session expired. Please log in again."

type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

// Session loads the session named by the cookie into the context. Requests without a
// usable session pass through untouched.
func Session(resolver sessionResolver, cookies Cookies, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.SessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := resolver.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ContextSessionKey, session)
		case errors.Is(err, appErrors.ErrSessionNotFound), errors.Is(err, appErrors.ErrSessionInvalid):
			cookies.ClearSession(c)
		default:
			logger.ForRequest(log, c).Error("session lookup failed", zap.Error(err))
		}
		c.Next()
	}
}

// CurrentSession returns the session loaded for this request, or nil.
func CurrentSession(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// RequireSession guards the dashboards: without a session the browser is sent back to
// the landing page with an alert.
func RequireSession(cookies Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) != nil {
			c.Next()
			return
		}
		cookies.SetFlash(c, models.NewFlash(models.FlashAlert, MsgSessionExpired))
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
	}
}

// RequireSessionJSON guards the JSON endpoints with a 401 envelope.
func RequireSessionJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) != nil {
			c.Next()
			return
		}
		response.Error(c, appErrors.ErrSessionNotFound)
	}
}
