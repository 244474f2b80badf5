package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maqsafnadatabase3/Ropoilet/internal/api/metrics"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type BugHandler struct {
	bugService ports.BugService
}

func NewBugHandler(bugService ports.BugService) *BugHandler {
	return &BugHandler{bugService: bugService}
}

type reportBugRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	Priority         string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	ProjectID        string `json:"project_id"`
	DiscordMessageID string `json:"discord_message_id"`
}

type updateBugStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

type assignBugRequest struct {
	Assignee string `json:"assignee" validate:"required"`
}

type listBugsResponse struct {
	Items      []*domain.Bug `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// Report files a new bug.
//
// @Summary      Report a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reportBugRequest  true  "Bug details"
// @Success      201   {object}  domain.Bug
// @Failure      422   {object}  errorResponse
// @Router       /v1/bugs [post]
func (h *BugHandler) Report(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reportBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	bug, err := h.bugService.ReportBug(c.Request().Context(), ports.ReportBugInput{
		Title:            req.Title,
		Description:      req.Description,
		Priority:         req.Priority,
		ProjectID:        req.ProjectID,
		Reporter:         userID,
		DiscordMessageID: req.DiscordMessageID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bug)
}

// Get returns a single bug by ID.
//
// @Summary      Get a bug
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bug ID"
// @Success      200  {object}  domain.Bug
// @Failure      404  {object}  errorResponse
// @Router       /v1/bugs/{id} [get]
func (h *BugHandler) Get(c echo.Context) error {
	bug, err := h.bugService.GetBug(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bug)
}

// List returns bugs matching the given filters.
//
// @Summary      List bugs
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        priority    query     string  false  "Filter by priority"
// @Param        project_id  query     string  false  "Filter by project"
// @Param        assignee    query     string  false  "Filter by assignee"
// @Param        search      query     string  false  "Search title and description"
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listBugsResponse
// @Router       /v1/bugs [get]
func (h *BugHandler) List(c echo.Context) error {
	result, err := h.bugService.ListBugs(c.Request().Context(), ports.ListBugsFilter{
		Status:    domain.BugStatus(c.QueryParam("status")),
		Priority:  c.QueryParam("priority"),
		ProjectID: c.QueryParam("project_id"),
		Assignee:  c.QueryParam("assignee"),
		Search:    c.QueryParam("search"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listBugsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus moves a bug through its lifecycle state machine.
//
// @Summary      Update bug status
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Bug ID"
// @Param        body  body      updateBugStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Bug
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bugs/{id}/status [patch]
func (h *BugHandler) UpdateStatus(c echo.Context) error {
	var req updateBugStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	bug, err := h.bugService.UpdateStatus(c.Request().Context(), c.Param("id"), domain.BugStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.BugTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, bug)
}

// Assign sets the assignee of a bug.
//
// @Summary      Assign a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Bug ID"
// @Param        body  body      assignBugRequest  true  "Assignee"
// @Success      200   {object}  domain.Bug
// @Failure      404   {object}  errorResponse
// @Router       /v1/bugs/{id}/assign [patch]
func (h *BugHandler) Assign(c echo.Context) error {
	var req assignBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	bug, err := h.bugService.AssignBug(c.Request().Context(), c.Param("id"), req.Assignee)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bug)
}
