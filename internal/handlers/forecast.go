package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sweather/internal/models"
	"sweather/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInvalidDayIndex = "day index out of range"
	errNoForecastYet   = "no forecast loaded"
	errDetailRequired  = "no forecast is displayed in the summary view"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// stateResponse is the envelope every forecast endpoint returns: the
// view state plus the snapshot when one is loaded.
type stateResponse struct {
	State    models.ViewState         `json:"state"`
	Forecast *models.ForecastSnapshot `json:"forecast,omitempty"`
}

func (h *Handler) currentStateResponse() stateResponse {
	st, snap := h.services.Forecast.State()
	return stateResponse{State: st, Forecast: snap}
}

func (h *Handler) respondWithState(c *gin.Context) {
	c.JSON(http.StatusOK, h.currentStateResponse())
}

// SearchRequest is the payload for an explicit location search.
type SearchRequest struct {
	// Free-text location: city name, "lat,lon" or an IATA/ZIP code the provider accepts
	Query string `json:"query" example:"Tokyo"`
}

// SelectDayRequest picks a forecast day for the detail view.
type SelectDayRequest struct {
	Index *int `json:"index" binding:"required" example:"2"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Refresh forecast for the detected location
// @Description  Resolves the location automatically (device fix, then IP) and fetches a fresh 7-day forecast.
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "state, forecast"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/forecast/refresh [post]
// @Security     BearerAuth
func (h *Handler) refreshForecast(c *gin.Context) {
	st := h.services.Forecast.Refresh(c.Request.Context())
	_, snap := h.services.Forecast.State()
	c.JSON(http.StatusOK, stateResponse{State: st, Forecast: snap})
}

// @Summary      Search a location
// @Description  Fetches the forecast for an explicit query. Empty queries are ignored and return the current state.
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        body  body   SearchRequest  true  "Search payload"
// @Success      200   {object}  map[string]interface{}  "state, forecast"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/forecast/search [post]
// @Security     BearerAuth
func (h *Handler) searchForecast(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st := h.services.Forecast.Search(c.Request.Context(), req.Query)
	_, snap := h.services.Forecast.State()
	c.JSON(http.StatusOK, stateResponse{State: st, Forecast: snap})
}

// @Summary      Get view state
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "state, forecast"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/forecast/state [get]
// @Security     BearerAuth
func (h *Handler) getForecastState(c *gin.Context) {
	h.respondWithState(c)
}

// @Summary      Select a day
// @Description  Enters the detail view for the given day index. Valid only when a forecast is displayed.
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        body  body   SelectDayRequest  true  "Day index"
// @Success      200   {object}  map[string]interface{}  "state, forecast"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/forecast/day [post]
// @Security     BearerAuth
func (h *Handler) selectDay(c *gin.Context) {
	var req SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Forecast.SelectDay(*req.Index); err != nil {
		switch {
		case errors.Is(err, service.ErrDayOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDayIndex})
		case errors.Is(err, service.ErrNotInSummary):
			c.JSON(http.StatusConflict, gin.H{"error": errDetailRequired})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to select day", "forecast_select_day_failed", err)
		}
		return
	}
	h.respondWithState(c)
}

// @Summary      Next day
// @Description  Advances the detail selection, clamped to the last day. No-op outside the detail view.
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "state, forecast"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/forecast/day/next [post]
// @Security     BearerAuth
func (h *Handler) nextDay(c *gin.Context) {
	h.services.Forecast.NextDay()
	h.respondWithState(c)
}

// @Summary      Previous day
// @Description  Moves the detail selection back, clamped to the first day. No-op outside the detail view.
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "state, forecast"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/forecast/day/prev [post]
// @Security     BearerAuth
func (h *Handler) prevDay(c *gin.Context) {
	h.services.Forecast.PrevDay()
	h.respondWithState(c)
}

// @Summary      Back to summary
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "state, forecast"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/forecast/summary [post]
// @Security     BearerAuth
func (h *Handler) backToSummary(c *gin.Context) {
	h.services.Forecast.BackToSummary()
	h.respondWithState(c)
}

// @Summary      Hourly forecast for a day
// @Description  Returns the hour sequence for a day. For today only hours at or after the current time remain.
// @Tags         forecast
// @Produce      json
// @Param        index  path  int  true  "Day index"
// @Success      200  {object}  map[string]interface{}  "count, hours"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/forecast/day/{index}/hours [get]
// @Security     BearerAuth
func (h *Handler) getDayHours(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day index must be an integer"})
		return
	}
	hours, err := h.services.Forecast.HoursForDay(index)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoForecast):
			c.JSON(http.StatusConflict, gin.H{"error": errNoForecastYet})
		case errors.Is(err, service.ErrDayOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDayIndex})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to load hours", "forecast_hours_failed", err, "index", index)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(hours),
		"hours": hours,
	})
}
