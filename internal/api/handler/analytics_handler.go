package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type AnalyticsHandler struct {
	analyticsService ports.AnalyticsService
}

func NewAnalyticsHandler(analyticsService ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type usageEventRequest struct {
	GameID         string    `json:"game_id" validate:"required"`
	Players        int       `json:"players" validate:"gte=0"`
	Revenue        float64   `json:"revenue" validate:"gte=0"`
	SessionMinutes float64   `json:"session_minutes" validate:"gte=0"`
	Device         string    `json:"device" validate:"omitempty,oneof=mobile desktop tablet"`
	Region         string    `json:"region"`
	Returning      bool      `json:"returning"`
	Timestamp      time.Time `json:"timestamp"`
}

type ingestEventsRequest struct {
	Events []usageEventRequest `json:"events" validate:"required,min=1,dive"`
}

// Ingest accepts a batch of gameplay usage samples from game servers.
//
// @Summary      Ingest usage events
// @Tags         analytics
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  ingestEventsRequest  true  "Usage samples"
// @Success      202   "accepted"
// @Failure      422   {object}  errorResponse
// @Router       /v1/analytics/events [post]
func (h *AnalyticsHandler) Ingest(c echo.Context) error {
	var req ingestEventsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	events := make([]ports.UsageEventInput, 0, len(req.Events))
	for _, e := range req.Events {
		events = append(events, ports.UsageEventInput{
			GameID:         e.GameID,
			Players:        e.Players,
			Revenue:        e.Revenue,
			SessionMinutes: e.SessionMinutes,
			Device:         e.Device,
			Region:         e.Region,
			Returning:      e.Returning,
			Timestamp:      e.Timestamp,
		})
	}

	if err := h.analyticsService.Ingest(c.Request().Context(), events); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// Report aggregates stored events into the dashboard view.
//
// @Summary      Analytics report
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        game_id  query     string  false  "Scope to one game"
// @Param        days     query     int     false  "Window length in days (default 7, max 90)"
// @Success      200      {object}  ports.AnalyticsReport
// @Router       /v1/analytics/report [get]
func (h *AnalyticsHandler) Report(c echo.Context) error {
	report, err := h.analyticsService.Report(c.Request().Context(), ports.ReportInput{
		GameID: c.QueryParam("game_id"),
		Days:   queryInt(c, "days"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
