package handlers

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFiles embed.FS

// pageCSP allows only same-origin assets; the page has no inline script.
const pageCSP = "default-src 'self'; script-src 'self'; style-src 'self'; connect-src 'self'; img-src 'self' data:; frame-ancestors 'none'"

// StaticFS exposes the page assets (script, stylesheet) for /static.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Home godoc
// @ID          home
// @Summary     Chat page
// @Tags        Chat
// @Produce     html
// @Success     200
// @Router      / [get]
func (h *Handlers) Home(c *gin.Context) {
	page, err := staticFiles.ReadFile("static/chat.html")
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "page unavailable")
		return
	}
	c.Header("Content-Security-Policy", pageCSP)
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
