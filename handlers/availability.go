package handlers

import (
	"net/http"
	"time"

	"studiofit/utils"

	"github.com/gin-gonic/gin"
)

// CheckAvailability handles GET /api/availability. Query parameters:
// trainerId, start, end (RFC3339), excludeSessionId (optional).
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	trainerID := c.Query("trainerId")
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start time", err.Error())
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end time", err.Error())
		return
	}

	result := h.Engine.CheckAvailability(c.Request.Context(), trainerID, start, end, c.Query("excludeSessionId"))
	c.JSON(http.StatusOK, result)
}
