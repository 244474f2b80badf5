package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type messageService struct {
	repo ports.MessageRepository
	log  zerolog.Logger
}

// NewMessageService returns a MessageService implementation.
func NewMessageService(repo ports.MessageRepository, log zerolog.Logger) ports.MessageService {
	return &messageService{repo: repo, log: log}
}

func (s *messageService) SendMessage(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	msgType := input.Type
	if msgType == "" {
		msgType = domain.MessageDirect
	}
	if !domain.ValidMessageType(msgType) {
		return nil, domain.ErrInvalidMessageType
	}
	// Announcements reach everyone; only admins may send them, which the
	// transport layer enforces before calling here.

	msg := &domain.Message{
		ID:          uuid.NewString(),
		SenderID:    input.SenderID,
		SenderName:  input.SenderName,
		RecipientID: input.RecipientID,
		Content:     content,
		Type:        msgType,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.log.Error().Err(err).Msg("failed to store message")
		return nil, err
	}

	return msg, nil
}

func (s *messageService) ListMessages(ctx context.Context, filter ports.ListMessagesFilter) (*ports.ListMessagesResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListMessagesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}
