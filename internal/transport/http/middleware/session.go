package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-webapps/internal/session"
)

const ContextSessionKey = "session"

type CookieConfig struct {
	Name   string
	Secure bool
	// MaxAge in seconds
	MaxAge int
}

// Sessions resolves the session cookie on every request. A store failure is
// logged and the request proceeds anonymously.
func Sessions(manager *session.Manager, cookie CookieConfig, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookie.Name)

		sess, err := manager.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.WarnContext(c.Request.Context(), "resolve session failed", "error", err)
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// CurrentSession never returns nil.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSessionKey); ok {
		if sess, ok := v.(*session.Session); ok && sess != nil {
			return sess
		}
	}
	return &session.Session{}
}

func SetSession(c *gin.Context, cookie CookieConfig, sess *session.Session, token string) {
	c.Set(ContextSessionKey, sess)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, token, cookie.MaxAge, "/", "", cookie.Secure, true)
}

func ClearSession(c *gin.Context, cookie CookieConfig) {
	c.Set(ContextSessionKey, &session.Session{})
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}
