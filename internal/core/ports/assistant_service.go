package ports

import "context"

// ChatMessage is a single turn in an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the assistant's reply plus usage accounting.
type ChatResult struct {
	Content          string `json:"content"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

// ScriptTemplate is a canned Lua starting point offered by the assistant page.
type ScriptTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// AssistantService is the pass-through to the chat-completion backend.
type AssistantService interface {
	Chat(ctx context.Context, history []ChatMessage) (*ChatResult, error)
	Templates() []ScriptTemplate
}

// CompletionRequest is the provider-neutral chat-completion request.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
}

// CompletionResponse is the provider-neutral chat-completion response.
type CompletionResponse struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CompletionClient is the opaque remote LLM boundary.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
