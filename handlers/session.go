package handlers

import (
	"net/http"

	"studiofit/models"
	"studiofit/utils"

	"github.com/gin-gonic/gin"
)

// GetSession handles GET /api/sessions/:id.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, participants, err := h.Engine.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":      session,
		"participants": participants,
	})
}

// UpdateSessionStatus handles PATCH /api/sessions/:id/status.
func (h *BookingHandler) UpdateSessionStatus(c *gin.Context) {
	var body struct {
		Status models.SessionStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid status request", err.Error())
		return
	}

	if err := h.Engine.UpdateSessionStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": body.Status})
}

// ResizeSession handles PATCH /api/sessions/:id/capacity.
func (h *BookingHandler) ResizeSession(c *gin.Context) {
	var body struct {
		MaxParticipants int `json:"maxParticipants"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid capacity request", err.Error())
		return
	}

	if err := h.Engine.ResizeSession(c.Request.Context(), c.Param("id"), body.MaxParticipants); err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"maxParticipants": body.MaxParticipants})
}

// DeleteSession handles DELETE /api/sessions/:id.
func (h *BookingHandler) DeleteSession(c *gin.Context) {
	if err := h.Engine.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
