package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type stubMessageRepo struct {
	messages []*domain.Message
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	clone := *m
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *stubMessageRepo) List(_ context.Context, _ ports.ListMessagesFilter) ([]*domain.Message, int64, error) {
	return r.messages, int64(len(r.messages)), nil
}

func TestMessageService_SendMessage_TrimsAndDefaults(t *testing.T) {
	repo := &stubMessageRepo{}
	svc := NewMessageService(repo, zerolog.Nop())

	msg, err := svc.SendMessage(context.Background(), ports.SendMessageInput{
		SenderID: "u1", RecipientID: "u2", Content: "  hello there  ",
	})
	if err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
	if msg.Content != "hello there" {
		t.Fatalf("content must be trimmed, got %q", msg.Content)
	}
	if msg.Type != domain.MessageDirect {
		t.Fatalf("empty type defaults to direct, got %s", msg.Type)
	}
}

func TestMessageService_SendMessage_EmptyContent(t *testing.T) {
	svc := NewMessageService(&stubMessageRepo{}, zerolog.Nop())

	if _, err := svc.SendMessage(context.Background(), ports.SendMessageInput{
		SenderID: "u1", Content: "   ",
	}); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestMessageService_SendMessage_UnknownType(t *testing.T) {
	svc := NewMessageService(&stubMessageRepo{}, zerolog.Nop())

	if _, err := svc.SendMessage(context.Background(), ports.SendMessageInput{
		SenderID: "u1", Content: "hi", Type: "whisper",
	}); !errors.Is(err, domain.ErrInvalidMessageType) {
		t.Fatalf("expected ErrInvalidMessageType, got %v", err)
	}
}
