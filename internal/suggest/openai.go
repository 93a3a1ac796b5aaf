package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

const analyzePromptFormat = `As an expert trading analyst, analyze the following trading data and provide 3-5 actionable insights.

Trading Data:
%s

Look for patterns in winning trades, common mistakes in losing trades, risk management practices, and setup effectiveness.

Respond in this EXACT format:

Title: [suggestion title]
Description: [detailed explanation]`

const chatSystemPrompt = `You are a personalized trading assistant with access to the user's trading history. Reference their specific performance, offer actionable advice based on their data, and answer directly.`

// OpenAIProvider implements Provider using the OpenAI chat completion API.
// It is an alternative to the gemini bridge for users with an OpenAI key.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Analyze asks the model for structured suggestions over the trade history.
func (p *OpenAIProvider) Analyze(ctx context.Context, trades []models.Trade) (string, error) {
	data, err := json.Marshal(trades)
	if err != nil {
		return "", fmt.Errorf("encoding trades: %w", err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(analyzePromptFormat, data)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// Chat answers a question with the trade summary and recent history as
// context.
func (p *OpenAIProvider) Chat(ctx context.Context, question string, history []ChatMessage, trades []models.Trade) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt + "\n\n" + summarizeTrades(trades)},
	}

	// Only the last few turns matter for context.
	start := 0
	if len(history) > 5 {
		start = len(history) - 5
	}
	for _, msg := range history[start:] {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: question})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func summarizeTrades(trades []models.Trade) string {
	if len(trades) == 0 {
		return "The user has no recorded trades yet."
	}

	var wins, losses int
	var totalPnL float64
	for _, t := range trades {
		totalPnL += t.PnL
		switch {
		case t.PnL > 0:
			wins++
		case t.PnL < 0:
			losses++
		}
	}

	winRate := float64(wins) / float64(len(trades)) * 100
	return fmt.Sprintf(
		"Trading History Summary:\n- Total Trades: %d\n- Winning Trades: %d (%.1f%% win rate)\n- Losing Trades: %d\n- Average PnL: %.2f",
		len(trades), wins, winRate, losses, totalPnL/float64(len(trades)),
	)
}
