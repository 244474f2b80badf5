package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type stubCompletionClient struct {
	lastReq ports.CompletionRequest
	resp    *ports.CompletionResponse
	err     error
}

func (c *stubCompletionClient) Complete(_ context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func TestAssistantService_Chat_PrependsSystemPrompt(t *testing.T) {
	client := &stubCompletionClient{resp: &ports.CompletionResponse{Content: "print(\"hi\")", Model: "gpt-4"}}
	svc := NewAssistantService(client, "", zerolog.Nop())

	result, err := svc.Chat(context.Background(), []ports.ChatMessage{
		{Role: "user", Content: "How do I detect a touch?"},
	})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if result.Content != "print(\"hi\")" {
		t.Fatalf("unexpected reply: %s", result.Content)
	}

	msgs := client.lastReq.Messages
	if len(msgs) != 2 || msgs[0].Role != "system" {
		t.Fatalf("system prompt must lead the conversation: %+v", msgs)
	}
	if msgs[0].Content != assistantSystemPrompt {
		t.Fatalf("wrong system prompt: %s", msgs[0].Content)
	}
	if client.lastReq.Model != defaultAssistantModel {
		t.Fatalf("empty model must fall back to default, got %s", client.lastReq.Model)
	}
}

func TestAssistantService_Chat_EmptyConversation(t *testing.T) {
	svc := NewAssistantService(&stubCompletionClient{}, "", zerolog.Nop())

	if _, err := svc.Chat(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty conversation")
	}
}

func TestAssistantService_Chat_TruncatesLongHistory(t *testing.T) {
	client := &stubCompletionClient{resp: &ports.CompletionResponse{Content: "ok"}}
	svc := NewAssistantService(client, "gpt-4", zerolog.Nop())

	history := make([]ports.ChatMessage, 0, 100)
	for i := 0; i < 100; i++ {
		history = append(history, ports.ChatMessage{Role: "user", Content: fmt.Sprintf("turn %d", i)})
	}

	if _, err := svc.Chat(context.Background(), history); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}

	msgs := client.lastReq.Messages
	if len(msgs) != maxHistoryMessages+1 {
		t.Fatalf("expected %d messages (history cap + system), got %d", maxHistoryMessages+1, len(msgs))
	}
	if msgs[len(msgs)-1].Content != "turn 99" {
		t.Fatalf("truncation must keep the newest turns, got %s", msgs[len(msgs)-1].Content)
	}
}

func TestAssistantService_Chat_BackendError(t *testing.T) {
	client := &stubCompletionClient{err: errors.New("upstream 500")}
	svc := NewAssistantService(client, "gpt-4", zerolog.Nop())

	if _, err := svc.Chat(context.Background(), []ports.ChatMessage{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatalf("backend errors must propagate")
	}
}

func TestAssistantService_Templates(t *testing.T) {
	svc := NewAssistantService(&stubCompletionClient{}, "", zerolog.Nop())

	templates := svc.Templates()
	if len(templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(templates))
	}
	for _, tpl := range templates {
		if tpl.Name == "" || tpl.Code == "" {
			t.Fatalf("template missing name or code: %+v", tpl.Name)
		}
	}
}
