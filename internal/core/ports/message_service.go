package ports

import (
	"context"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// SendMessageInput carries the data needed to send a message.
type SendMessageInput struct {
	SenderID    string
	SenderName  string
	RecipientID string
	Content     string
	Type        domain.MessageType
}

// ListMessagesFilter carries query parameters for the inbox.
type ListMessagesFilter struct {
	// UserID scopes direct messages to sender or recipient; team and
	// announcement messages are visible to everyone.
	UserID string
	Type   domain.MessageType
	Search string
	Page   int
	Limit  int
}

// ListMessagesResult is returned by ListMessages.
type ListMessagesResult struct {
	Items      []*domain.Message
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MessageService defines use-case operations for messaging.
type MessageService interface {
	SendMessage(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	ListMessages(ctx context.Context, filter ListMessagesFilter) (*ListMessagesResult, error)
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	List(ctx context.Context, filter ListMessagesFilter) ([]*domain.Message, int64, error)
}
