package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type banUserRequest struct {
	Reason string `json:"reason"`
}

type broadcastRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type broadcastResponse struct {
	Recipients int `json:"recipients"`
}

type listUsersResponse struct {
	Items      []*domain.User `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// ListUsers returns a page of user accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "Filter by role"
// @Param        banned  query     bool    false  "Filter by ban state"
// @Param        search  query     string  false  "Search name or email"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listUsersResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := ports.ListUsersFilter{
		Role:   c.QueryParam("role"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	if raw := c.QueryParam("banned"); raw != "" {
		banned, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "banned must be a boolean")
		}
		filter.Banned = &banned
	}

	result, err := h.adminService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// BanUser deactivates an account. Banned users fail login and session
// validation until reinstated.
//
// @Summary      Ban a user
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string          true   "User ID"
// @Param        body  body  banUserRequest  false  "Ban reason"
// @Success      204   "banned"
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id}/ban [post]
func (h *AdminHandler) BanUser(c echo.Context) error {
	var req banUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.adminService.BanUser(c.Request().Context(), c.Param("id"), req.Reason); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UnbanUser reinstates a banned account.
//
// @Summary      Unban a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204  "reinstated"
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id}/unban [post]
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	if err := h.adminService.UnbanUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Features returns the current feature flag set.
//
// @Summary      Get feature flags
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FeatureFlags
// @Router       /v1/admin/features [get]
func (h *AdminHandler) Features(c echo.Context) error {
	flags, err := h.adminService.Features(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flags)
}

// SetFeatures replaces the feature flag set.
//
// @Summary      Update feature flags
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.FeatureFlags  true  "Flags"
// @Success      200   {object}  domain.FeatureFlags
// @Router       /v1/admin/features [put]
func (h *AdminHandler) SetFeatures(c echo.Context) error {
	var flags domain.FeatureFlags
	if err := c.Bind(&flags); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.adminService.SetFeatures(c.Request().Context(), flags); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flags)
}

// Broadcast queues an announcement notification for every active user.
//
// @Summary      Broadcast an announcement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      broadcastRequest  true  "Announcement"
// @Success      202   {object}  broadcastResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/broadcast [post]
func (h *AdminHandler) Broadcast(c echo.Context) error {
	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	recipients, err := h.adminService.Broadcast(c.Request().Context(), req.Title, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, broadcastResponse{Recipients: recipients})
}
