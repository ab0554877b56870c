package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/middleware"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/view"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/logger"
)

const htmlContentType = "text/html; charset=utf-8"

func sessionFromContext(c *gin.Context) *models.Session {
	return middleware.CurrentSession(c)
}

// errorMessage is the text shown to the user for err.
func errorMessage(err error) string {
	return appErrors.FromError(err).Message
}

func errorStatus(err error) int {
	return appErrors.FromError(err).Status
}

// renderPage buffers the page so a template failure still yields a clean 500.
func renderPage(c *gin.Context, log *zap.Logger, renderer *view.Renderer, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := renderer.Page(&buf, name, data); err != nil {
		logger.ForRequest(log, c).Error("render page failed", zap.String("page", name), zap.Error(err))
		c.String(http.StatusInternalServerError, appErrors.ErrInternal.Message)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, htmlContentType, buf.Bytes())
}

func renderSection(c *gin.Context, log *zap.Logger, renderer *view.Renderer, name string, data interface{}) {
	var buf bytes.Buffer
	if err := renderer.Section(&buf, name, data); err != nil {
		logger.ForRequest(log, c).Error("render section failed", zap.String("section", name), zap.Error(err))
		c.String(http.StatusInternalServerError, appErrors.ErrInternal.Message)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}
