package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/signer"
)

// FlashCookieName carries a one-shot message across a redirect.
const FlashCookieName = "sifms_flash"

// Cookies issues the portal's session and flash cookies.
type Cookies struct {
	SessionName string
	Secure      bool
	// SessionTTL of zero issues a browser-session cookie.
	SessionTTL time.Duration
	// FlashSigner signs flash cookies; nil leaves them plain base64.
	FlashSigner *signer.Signer
}

func (k Cookies) set(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   k.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetSession stores the signed session token.
func (k Cookies) SetSession(c *gin.Context, token string) {
	k.set(c, k.SessionName, token, int(k.SessionTTL/time.Second))
}

// ClearSession expires the session cookie.
func (k Cookies) ClearSession(c *gin.Context) {
	k.set(c, k.SessionName, "", -1)
}

// SessionToken reads the session token from the request.
func (k Cookies) SessionToken(c *gin.Context) string {
	token, err := c.Cookie(k.SessionName)
	if err != nil {
		return ""
	}
	return token
}

// SetFlash queues flash for the next page render.
func (k Cookies) SetFlash(c *gin.Context, flash *models.Flash) {
	if flash == nil {
		return
	}
	raw, err := json.Marshal(flash)
	if err != nil {
		return
	}
	value := base64.RawURLEncoding.EncodeToString(raw)
	if k.FlashSigner != nil {
		if value, err = k.FlashSigner.Sign(raw); err != nil {
			return
		}
	}
	k.set(c, FlashCookieName, value, 60)
}

// TakeFlash returns the queued flash, if any, and expires the cookie.
func (k Cookies) TakeFlash(c *gin.Context) *models.Flash {
	value, err := c.Cookie(FlashCookieName)
	if err != nil || value == "" {
		return nil
	}
	k.set(c, FlashCookieName, "", -1)

	var raw []byte
	if k.FlashSigner != nil {
		raw, err = k.FlashSigner.Verify(value)
	} else {
		raw, err = base64.RawURLEncoding.DecodeString(value)
	}
	if err != nil {
		return nil
	}
	var flash models.Flash
	if err := json.Unmarshal(raw, &flash); err != nil || flash.Text == "" {
		return nil
	}
	return &flash
}
