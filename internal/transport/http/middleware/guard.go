package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-webapps/internal/transport/http/response"
)

// RequireLogin redirects anonymous requests to loginPath.
func RequireLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			response.Redirect(c, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfLoggedIn keeps authenticated users away from the register and
// login pages.
func RedirectIfLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).Authenticated() {
			response.Text(c, http.StatusOK, response.MsgAlreadyLoggedIn)
			c.Abort()
			return
		}
		c.Next()
	}
}
