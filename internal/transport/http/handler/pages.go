package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-webapps/internal/transport/http/response"
	"campus-webapps/internal/view"
)

// pages bundles page rendering with the logger used for failures.
type pages struct {
	renderer view.Renderer
	logger   *slog.Logger
}

func (p pages) render(c *gin.Context, status int, name string, data any) {
	if err := response.HTML(c, p.renderer, status, name, data); err != nil {
		p.fail(c, http.StatusInternalServerError, response.MsgInternal, err)
	}
}

func (p pages) fail(c *gin.Context, status int, message string, err error) {
	response.Failure(c, p.logger, status, message, err)
}
