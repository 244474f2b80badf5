package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maqsafnadatabase3/Ropoilet/internal/api/metrics"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type AssistantHandler struct {
	assistantService ports.AssistantService
}

func NewAssistantHandler(assistantService ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

type chatRequest struct {
	Messages []ports.ChatMessage `json:"messages" validate:"required,min=1"`
}

type templatesResponse struct {
	Items []ports.ScriptTemplate `json:"items"`
}

// Chat forwards the conversation to the LLM backend and returns its reply.
//
// @Summary      Assistant chat
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Conversation history, oldest first"
// @Success      200   {object}  ports.ChatResult
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	result, err := h.assistantService.Chat(c.Request().Context(), req.Messages)
	metrics.AssistantRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "assistant backend unavailable")
	}

	metrics.AssistantRequestsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, result)
}

// Templates returns the canned Lua script starting points.
//
// @Summary      Script templates
// @Tags         assistant
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  templatesResponse
// @Router       /v1/assistant/templates [get]
func (h *AssistantHandler) Templates(c echo.Context) error {
	return c.JSON(http.StatusOK, templatesResponse{Items: h.assistantService.Templates()})
}
