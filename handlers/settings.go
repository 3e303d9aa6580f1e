package handlers

import (
	"net/http"

	settingsRepo "studiofit/database/repository/settings"
	"studiofit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler exposes the administrator-mutable weekly quota ceiling.
type SettingsHandler struct {
	Settings settingsRepo.SettingsRepository
	Logger   *zap.Logger
}

func NewSettingsHandler(settings settingsRepo.SettingsRepository, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{Settings: settings, Logger: logger}
}

// GetWeeklyQuota handles GET /api/settings/weekly-quota.
func (h *SettingsHandler) GetWeeklyQuota(c *gin.Context) {
	quota, err := h.Settings.GetWeeklyQuota(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to read weekly quota", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to read weekly quota", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeklyQuota": quota})
}

// SetWeeklyQuota handles PUT /api/settings/weekly-quota.
func (h *SettingsHandler) SetWeeklyQuota(c *gin.Context) {
	var body struct {
		WeeklyQuota int `json:"weeklyQuota"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid quota request", err.Error())
		return
	}
	if body.WeeklyQuota < 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid quota request", "weekly quota must be non-negative")
		return
	}

	if err := h.Settings.SetWeeklyQuota(c.Request.Context(), body.WeeklyQuota); err != nil {
		h.Logger.Error("failed to store weekly quota", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to store weekly quota", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeklyQuota": body.WeeklyQuota})
}
