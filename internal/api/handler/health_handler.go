package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by the Mongo and Redis connection wrappers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	version string
	mongo   Pinger
	redis   Pinger
}

func NewHealthHandler(version string, mongo, redis Pinger) *HealthHandler {
	return &HealthHandler{version: version, mongo: mongo, redis: redis}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Live reports process liveness only.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Version: h.version})
}

// Ready reports whether the backing stores answer within two seconds.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"mongo": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := h.mongo.Ping(ctx); err != nil {
		checks["mongo"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	resp := healthResponse{Status: "ok", Version: h.version, Checks: checks}
	if status != http.StatusOK {
		resp.Status = "degraded"
	}
	return c.JSON(status, resp)
}
