package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/middleware"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/service"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/view"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/logger"
)

type authService interface {
	Login(ctx context.Context, form models.LoginForm, currentID string) (*service.LoginResult, error)
	Register(ctx context.Context, form models.SignupForm) (string, error)
}

type sessionService interface {
	Token(session *models.Session) (string, error)
	ParseToken(token string) (string, error)
	Close(ctx context.Context, id string) error
}

// AuthHandler serves the landing, signup and logout routes.
type AuthHandler struct {
	auth      authService
	sessions  sessionService
	renderer  *view.Renderer
	cookies   middleware.Cookies
	signupTTL time.Duration
	logger    *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(auth authService, sessions sessionService, renderer *view.Renderer, cookies middleware.Cookies, signupTTL time.Duration, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		auth:      auth,
		sessions:  sessions,
		renderer:  renderer,
		cookies:   cookies,
		signupTTL: signupTTL,
		logger:    logger,
	}
}

// LoginPage renders the landing page with any queued flash.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	renderPage(c, h.logger, h.renderer, http.StatusOK, "login", view.LoginPage{Flash: h.cookies.TakeFlash(c)})
}

// Login authenticates the posted form and sends the user to their dashboard.
func (h *AuthHandler) Login(c *gin.Context) {
	var form models.LoginForm
	_ = c.ShouldBind(&form)

	var currentID string
	if current := middleware.CurrentSession(c); current != nil {
		currentID = current.ID
	}
	res, err := h.auth.Login(c.Request.Context(), form, currentID)
	if err != nil {
		form.Normalize()
		renderPage(c, h.logger, h.renderer, errorStatus(err), "login", view.LoginPage{
			Flash: models.NewFlash(models.FlashAlert, errorMessage(err)),
			RegNo: form.RegNo,
		})
		return
	}

	token, err := h.sessions.Token(res.Session)
	if err != nil {
		logger.ForRequest(h.logger, c).Error("sign session token failed", zap.Error(err))
		renderPage(c, h.logger, h.renderer, http.StatusInternalServerError, "login", view.LoginPage{
			Flash: models.NewFlash(models.FlashAlert, service.MsgLoginTransport),
		})
		return
	}
	h.cookies.SetSession(c, token)

	if !res.KnownRole() {
		logger.ForRequest(h.logger, c).Warn("login with unknown role", zap.String("role", string(res.Role)))
		renderPage(c, h.logger, h.renderer, http.StatusOK, "login", view.LoginPage{
			Flash: models.NewFlash(models.FlashAlert, service.MsgUnknownRole),
			RegNo: res.Session.Profile.RegNo,
		})
		return
	}

	h.cookies.SetFlash(c, models.NewFlash(models.FlashSuccess, service.MsgLoginSuccess))
	c.Redirect(http.StatusSeeOther, "/"+string(res.Role))
}

// SignupPage renders an empty registration form.
func (h *AuthHandler) SignupPage(c *gin.Context) {
	renderPage(c, h.logger, h.renderer, http.StatusOK, "signup", view.SignupPage{Flash: h.cookies.TakeFlash(c)})
}

// Signup registers the posted account. The form is cleared on success and echoed back,
// without the password, on failure.
func (h *AuthHandler) Signup(c *gin.Context) {
	var form models.SignupForm
	_ = c.ShouldBind(&form)

	message, err := h.auth.Register(c.Request.Context(), form)
	if err != nil {
		form.Normalize()
		form.Password = ""
		flash := models.NewFlash(models.FlashError, errorMessage(err))
		flash.ClearAfter = h.signupTTL
		renderPage(c, h.logger, h.renderer, errorStatus(err), "signup", view.SignupPage{Flash: flash, Form: form})
		return
	}

	flash := models.NewFlash(models.FlashSuccess, message)
	flash.ClearAfter = h.signupTTL
	renderPage(c, h.logger, h.renderer, http.StatusOK, "signup", view.SignupPage{Flash: flash})
}

// Logout clears the session slot and the cookie, then returns to the landing page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.cookies.SessionToken(c); token != "" {
		if id, err := h.sessions.ParseToken(token); err == nil {
			if err := h.sessions.Close(c.Request.Context(), id); err != nil {
				logger.ForRequest(h.logger, c).Error("close session failed", zap.Error(err))
			}
		}
	}
	h.cookies.ClearSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}
