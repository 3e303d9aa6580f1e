package handlers

import (
	"net/http"

	"studiofit/models"
	"studiofit/services/scheduling"
	"studiofit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling engine over HTTP. Presentation,
// authentication and authorization are the caller's responsibility.
type BookingHandler struct {
	Engine scheduling.BookingEngine
	Logger *zap.Logger
}

func NewBookingHandler(engine scheduling.BookingEngine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req scheduling.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	result, err := h.Engine.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// AddParticipant handles POST /api/sessions/:id/participants.
func (h *BookingHandler) AddParticipant(c *gin.Context) {
	var req scheduling.ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid participant request", err.Error())
		return
	}

	result, err := h.Engine.AddParticipant(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UpdateParticipantStatus handles
// PATCH /api/sessions/:id/participants/:memberID/status.
func (h *BookingHandler) UpdateParticipantStatus(c *gin.Context) {
	var body struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid status request", err.Error())
		return
	}

	result, err := h.Engine.UpdateParticipantStatus(c.Request.Context(), c.Param("id"), c.Param("memberID"), body.Status)
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveWaitlisted handles DELETE /api/sessions/:id/waitlist/:participantID.
func (h *BookingHandler) RemoveWaitlisted(c *gin.Context) {
	err := h.Engine.RemoveWaitlisted(c.Request.Context(), c.Param("id"), c.Param("participantID"))
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// renderEngineError maps the engine's error taxonomy onto HTTP statuses.
func (h *BookingHandler) renderEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch scheduling.CodeOf(err) {
	case scheduling.CodeValidation:
		status = http.StatusBadRequest
	case scheduling.CodeNotFound:
		status = http.StatusNotFound
	case scheduling.CodeCapacity:
		status = http.StatusConflict
	case scheduling.CodeConcurrency:
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("engine request failed", zap.Error(err))
	}
	utils.JSONError(c, status, "booking request failed", err.Error())
}
