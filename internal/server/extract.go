package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/addrsplit/addrsplit/internal/extract"
	"github.com/addrsplit/addrsplit/internal/i18n"
	"github.com/addrsplit/addrsplit/internal/log"
	"github.com/gin-gonic/gin"
	gi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	Address *string `json:"address"`
}

// ExtractHandler serves POST /extract.
type ExtractHandler struct {
	extract   ExtractFunc
	localizer *gi18n.Localizer
}

// NewExtractHandler registers POST /extract on r, calling fn for each request.
func NewExtractHandler(r *gin.Engine, fn ExtractFunc, loc *gi18n.Localizer) *ExtractHandler {
	handler := &ExtractHandler{extract: fn, localizer: loc}
	r.POST("/extract", handler.Extract)
	return handler
}

// Extract answers 200 with the populated fields, 400 when the address is
// missing or blank, and 500 when the pipeline fails.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Address == nil || strings.TrimSpace(*req.Address) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.t("server_error_invalid_address")})
		return
	}

	record, err := h.extract(*req.Address)
	if err != nil {
		if errors.Is(err, extract.ErrEmptyAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": h.t("server_error_invalid_address")})
			return
		}
		log.Debug(log.Basic, "extract failed: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf(h.t("server_error_processing"), err.Error()),
		})
		return
	}

	log.Debug(log.Detailed, "extracted %d fields\n", len(record))
	if record == nil {
		record = extract.Record{}
	}
	c.JSON(http.StatusOK, record)
}

func (h *ExtractHandler) t(id string) string {
	return i18n.Localize(h.localizer, id)
}
