package response

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-webapps/internal/view"
)

const (
	MsgInternal         = "Internal Server Error"
	MsgAlreadyLoggedIn  = "You are already logged in. Please logout first."
	MsgLogoutFailed     = "Error logging out"
	MsgInvalidStudentID = "invalid student id"
)

// HTML renders a page into a buffer first so a template failure never leaves
// a half written body behind.
func HTML(c *gin.Context, r view.Renderer, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return err
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
	return nil
}

// Text writes a plain text body.
func Text(c *gin.Context, status int, message string) {
	c.String(status, message)
}

// Failure logs the cause and answers with a generic message only.
func Failure(c *gin.Context, logger *slog.Logger, status int, message string, err error) {
	if err != nil {
		logger.ErrorContext(c.Request.Context(), message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"error", err,
		)
	}
	c.String(status, message)
}

// Redirect answers a form post or link with 302 Found.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
