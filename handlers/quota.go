package handlers

import (
	"net/http"
	"time"

	"studiofit/utils"

	"github.com/gin-gonic/gin"
)

// CheckStudioQuota handles GET /api/quota. The optional date query parameter
// (RFC3339) selects the week; it defaults to the current week.
func (h *BookingHandler) CheckStudioQuota(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		date = parsed
	}

	status, err := h.Engine.CheckStudioQuota(c.Request.Context(), date)
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
