// Package suggest generates AI-backed trading suggestions and chat replies
// from the user's trade history, degrading to a canned suggestion set when
// the provider is unavailable.
package suggest

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// Suggestion is one actionable insight derived from the trade history.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ChatMessage is one turn of the suggestion chat.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Provider produces raw suggestion text and chat replies. Implementations
// exist for the gemini bridge service and for OpenAI.
type Provider interface {
	Analyze(ctx context.Context, trades []models.Trade) (string, error)
	Chat(ctx context.Context, question string, history []ChatMessage, trades []models.Trade) (string, error)
}

// cannedSuggestions is the degraded result used on any provider failure.
// Failures here never propagate to the caller.
var cannedSuggestions = []Suggestion{
	{
		Title:       "Review your losing trades",
		Description: "Look for shared mistakes across your losing trades, such as entries without confirmation or ignored stop losses.",
		Category:    "general",
	},
	{
		Title:       "Size positions consistently",
		Description: "Large swings in position size amplify drawdowns. Keep risk per trade near your configured percentage.",
		Category:    "risk",
	},
	{
		Title:       "Stick to your best setups",
		Description: "Concentrate on the strategies with the highest win rate in your analytics breakdown and cut the rest.",
		Category:    "strategy",
	},
}

// Service coordinates suggestion generation with graceful degradation.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a suggestion service over the given provider.
func NewService(provider Provider, logger zerolog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Suggestions analyzes the trade history and returns structured suggestions.
// On any provider failure it returns the canned set and no error; the second
// result reports whether that degraded path was taken.
func (s *Service) Suggestions(ctx context.Context, trades []models.Trade) ([]Suggestion, bool) {
	if s.provider == nil || len(trades) == 0 {
		return cannedSuggestions, true
	}

	text, err := s.provider.Analyze(ctx, trades)
	if err != nil {
		s.logger.Warn().Err(err).Msg("suggestion provider failed, using canned suggestions")
		return cannedSuggestions, true
	}

	suggestions := ParseSuggestions(text)
	if len(suggestions) == 0 {
		s.logger.Warn().Msg("suggestion provider returned no parseable suggestions")
		return cannedSuggestions, true
	}
	return suggestions, false
}

// Chat answers a free-form question about the trade history. Provider
// failures surface to the caller so the UI can offer a retry.
func (s *Service) Chat(ctx context.Context, question string, history []ChatMessage, trades []models.Trade) (string, error) {
	if s.provider == nil {
		return "", errors.NewUnexpectedError("chat", errors.ErrConfigInvalid)
	}
	return s.provider.Chat(ctx, question, history, trades)
}
