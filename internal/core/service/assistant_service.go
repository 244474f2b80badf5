package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

const assistantSystemPrompt = "You are a helpful AI assistant specialized in Roblox Lua scripting. " +
	"Provide clear, well-commented code examples and explanations. " +
	"Always consider Roblox-specific APIs and best practices."

const (
	defaultAssistantModel       = "gpt-4"
	defaultAssistantTemperature = 0.7
	defaultAssistantMaxTokens   = 1000
	maxHistoryMessages          = 40
)

type assistantService struct {
	client ports.CompletionClient
	model  string
	log    zerolog.Logger
}

// NewAssistantService returns an AssistantService that forwards conversations
// to the chat-completion backend with the Lua scripting system prompt.
func NewAssistantService(client ports.CompletionClient, model string, log zerolog.Logger) ports.AssistantService {
	if model == "" {
		model = defaultAssistantModel
	}
	return &assistantService{client: client, model: model, log: log}
}

func (s *assistantService) Chat(ctx context.Context, history []ports.ChatMessage) (*ports.ChatResult, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("assistant chat: empty conversation")
	}
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	messages := make([]ports.ChatMessage, 0, len(history)+1)
	messages = append(messages, ports.ChatMessage{Role: "system", Content: assistantSystemPrompt})
	messages = append(messages, history...)

	resp, err := s.client.Complete(ctx, ports.CompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: defaultAssistantTemperature,
		MaxTokens:   defaultAssistantMaxTokens,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("assistant completion failed")
		return nil, err
	}

	return &ports.ChatResult{
		Content:          resp.Content,
		Model:            resp.Model,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
	}, nil
}

func (s *assistantService) Templates() []ports.ScriptTemplate {
	return scriptTemplates
}

// scriptTemplates are the canned starting points shown next to the chat.
var scriptTemplates = []ports.ScriptTemplate{
	{
		Name:        "Player Join Handler",
		Description: "Basic script to handle player joining events",
		Code: `local Players = game:GetService("Players")

Players.PlayerAdded:Connect(function(player)
    print(player.Name .. " has joined the game!")

    -- Create leaderstats
    local leaderstats = Instance.new("Folder")
    leaderstats.Name = "leaderstats"
    leaderstats.Parent = player

    local coins = Instance.new("IntValue")
    coins.Name = "Coins"
    coins.Value = 0
    coins.Parent = leaderstats
end)`,
	},
	{
		Name:        "Part Touch Detector",
		Description: "Script to detect when a player touches a part",
		Code: `local part = script.Parent

part.Touched:Connect(function(hit)
    local humanoid = hit.Parent:FindFirstChild("Humanoid")
    if humanoid then
        local player = game.Players:GetPlayerFromCharacter(hit.Parent)
        if player then
            print(player.Name .. " touched the part!")
            -- Add your logic here
        end
    end
end)`,
	},
	{
		Name:        "GUI Button Handler",
		Description: "Basic GUI button click handler",
		Code: `local Players = game:GetService("Players")
local player = Players.LocalPlayer
local playerGui = player:WaitForChild("PlayerGui")

local screenGui = playerGui:WaitForChild("ScreenGui")
local button = screenGui:WaitForChild("TextButton")

button.MouseButton1Click:Connect(function()
    print("Button was clicked!")
    -- Add your button logic here
end)`,
	},
}
