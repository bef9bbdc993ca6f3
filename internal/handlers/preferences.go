package handlers

import (
	"errors"
	"net/http"

	"sweather/internal/models"
	"sweather/internal/service"

	"github.com/gin-gonic/gin"
)

// SetThemeRequest is the payload for a theme change.
type SetThemeRequest struct {
	// Allowed: light, dark
	Theme string `json:"theme" binding:"required" example:"dark"`
}

// SetLanguageRequest is the payload for a language change.
type SetLanguageRequest struct {
	// Allowed: en, ar, fr
	Language string `json:"language" binding:"required" example:"ar"`
}

// @Summary      Get preferences
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  map[string]string  "theme, language"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/preferences [get]
// @Security     BearerAuth
func (h *Handler) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Preferences.Get())
}

// @Summary      Set theme
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body   SetThemeRequest  true  "Theme payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/preferences/theme [put]
// @Security     BearerAuth
func (h *Handler) setTheme(c *gin.Context) {
	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Preferences.SetTheme(c.Request.Context(), models.Theme(req.Theme)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.services.Preferences.Get())
}

// @Summary      Set language
// @Description  Persists the language and re-fetches the displayed forecast so condition text is re-localized.
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body   SetLanguageRequest  true  "Language payload"
// @Success      200   {object}  map[string]interface{}  "preferences, state, forecast"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/preferences/language [put]
// @Security     BearerAuth
func (h *Handler) setLanguage(c *gin.Context) {
	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Forecast.ChangeLanguage(c.Request.Context(), models.Language(req.Language))
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedLang) || errors.Is(err, service.ErrInvalidLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to change language", "preferences_set_language_failed", err)
		return
	}
	_, snap := h.services.Forecast.State()
	c.JSON(http.StatusOK, gin.H{
		"preferences": h.services.Preferences.Get(),
		"state":       st,
		"forecast":    snap,
	})
}
