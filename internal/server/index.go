package restapi

import (
	"net/http"

	"github.com/addrsplit/addrsplit/internal/extract"
	"github.com/addrsplit/addrsplit/internal/i18n"
	"github.com/gin-gonic/gin"
	gi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

// IndexHandler serves the HTML form at /.
type IndexHandler struct {
	page gin.H
}

// NewIndexHandler registers GET / on r with the page texts from loc.
func NewIndexHandler(r *gin.Engine, loc *gi18n.Localizer) *IndexHandler {
	handler := &IndexHandler{page: gin.H{
		"Lang":        i18n.Localize(loc, "page_lang"),
		"Title":       i18n.Localize(loc, "page_title"),
		"Placeholder": i18n.Localize(loc, "page_placeholder"),
		"Submit":      i18n.Localize(loc, "page_submit"),
		"Fields":      extract.Fields,
	}}
	r.GET("/", handler.Index)
	return handler
}

// Index renders the form.
func (h *IndexHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page)
}
