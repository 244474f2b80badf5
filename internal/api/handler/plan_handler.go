package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type PlanHandler struct {
	planService ports.PlanService
}

func NewPlanHandler(planService ports.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type planRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Tier        string   `json:"tier" validate:"required,oneof=free premium enterprise"`
	Price       float64  `json:"price" validate:"gte=0"`
	Period      string   `json:"period" validate:"omitempty,oneof=month year"`
	Features    []string `json:"features"`
}

type listPlansResponse struct {
	Items []*domain.Plan `json:"items"`
}

// List returns all plans ordered by price. Open to every authenticated user;
// the pricing page reads from here.
//
// @Summary      List subscription plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listPlansResponse
// @Router       /v1/plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.planService.ListPlans(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPlansResponse{Items: plans})
}

// Create adds a new plan. Admin only.
//
// @Summary      Create a subscription plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      planRequest  true  "Plan details"
// @Success      201   {object}  domain.Plan
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/plans [post]
func (h *PlanHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plan, err := h.planService.CreatePlan(c.Request().Context(), ports.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		Tier:        req.Tier,
		Price:       req.Price,
		Period:      req.Period,
		Features:    req.Features,
	}, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

// Update rewrites a plan and notifies its active subscribers. Admin only.
//
// @Summary      Update a subscription plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Plan ID"
// @Param        body  body      planRequest  true  "Plan details"
// @Success      200   {object}  domain.Plan
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/plans/{id} [put]
func (h *PlanHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plan, err := h.planService.UpdatePlan(c.Request().Context(), c.Param("id"), ports.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		Tier:        req.Tier,
		Price:       req.Price,
		Period:      req.Period,
		Features:    req.Features,
	}, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete removes a plan and notifies its active subscribers. Admin only.
//
// @Summary      Delete a subscription plan
// @Tags         plans
// @Security     BearerAuth
// @Param        id  path  string  true  "Plan ID"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/plans/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.planService.DeletePlan(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
