package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=direct team announcement"`
}

type listMessagesResponse struct {
	Items      []*domain.Message `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Send delivers a message from the caller.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      422   {object}  errorResponse
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if domain.MessageType(req.Type) == domain.MessageAnnouncement && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	msg, err := h.messageService.SendMessage(c.Request().Context(), ports.SendMessageInput{
		SenderID:    userID,
		SenderName:  ctxEmail(c),
		RecipientID: req.RecipientID,
		Content:     req.Content,
		Type:        domain.MessageType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// List returns the caller's inbox: their direct messages plus all team and
// announcement traffic.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "Filter by type"
// @Param        search  query     string  false  "Search message content"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listMessagesResponse
// @Router       /v1/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.messageService.ListMessages(c.Request().Context(), ports.ListMessagesFilter{
		UserID: userID,
		Type:   domain.MessageType(c.QueryParam("type")),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listMessagesResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
