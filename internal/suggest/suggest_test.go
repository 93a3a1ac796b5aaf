package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

type fakeProvider struct {
	analyzeText string
	analyzeErr  error
	chatReply   string
	chatErr     error
	lastTrades  []models.Trade
}

func (f *fakeProvider) Analyze(_ context.Context, trades []models.Trade) (string, error) {
	f.lastTrades = trades
	return f.analyzeText, f.analyzeErr
}

func (f *fakeProvider) Chat(_ context.Context, _ string, _ []ChatMessage, trades []models.Trade) (string, error) {
	f.lastTrades = trades
	return f.chatReply, f.chatErr
}

func sampleTrades() []models.Trade {
	return []models.Trade{{
		ID:        1,
		Symbol:    "AAPL",
		Strategy:  "Breakout",
		Position:  models.SideLong,
		PnL:       50,
		EntryDate: models.NewDate(time.Now()),
		Tags:      models.TagSet{},
	}}
}

func TestSuggestionsParsesProviderText(t *testing.T) {
	provider := &fakeProvider{analyzeText: "Title: Tighten stops\nDescription: Your losing trades run too far past the entry."}
	svc := NewService(provider, zerolog.Nop())

	got, degraded := svc.Suggestions(context.Background(), sampleTrades())
	if degraded {
		t.Error("provider text should not be flagged as degraded")
	}
	if len(got) != 1 {
		t.Fatalf("got %d suggestions", len(got))
	}
	if got[0].Title != "Tighten stops" || got[0].Category != "general" {
		t.Errorf("suggestion = %+v", got[0])
	}
}

func TestSuggestionsFallsBackOnProviderError(t *testing.T) {
	provider := &fakeProvider{analyzeErr: errors.New("provider down")}
	svc := NewService(provider, zerolog.Nop())

	got, degraded := svc.Suggestions(context.Background(), sampleTrades())
	if !degraded {
		t.Error("provider failure should be flagged as degraded")
	}
	if len(got) != len(cannedSuggestions) {
		t.Fatalf("expected canned set, got %d suggestions", len(got))
	}
	if got[0].Title != cannedSuggestions[0].Title {
		t.Errorf("got %+v", got[0])
	}
}

func TestSuggestionsFallsBackWithoutProviderOrTrades(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	if got, degraded := svc.Suggestions(context.Background(), sampleTrades()); !degraded || len(got) != len(cannedSuggestions) {
		t.Errorf("nil provider should yield degraded canned set, got %d", len(got))
	}

	withProvider := NewService(&fakeProvider{analyzeText: "Title: x\nDescription: y"}, zerolog.Nop())
	if got, degraded := withProvider.Suggestions(context.Background(), nil); !degraded || len(got) != len(cannedSuggestions) {
		t.Errorf("empty history should yield degraded canned set, got %d", len(got))
	}
}

func TestChatPropagatesErrors(t *testing.T) {
	provider := &fakeProvider{chatErr: errors.New("timeout")}
	svc := NewService(provider, zerolog.Nop())

	if _, err := svc.Chat(context.Background(), "why?", nil, sampleTrades()); err == nil {
		t.Error("chat errors must surface to the caller")
	}

	nilSvc := NewService(nil, zerolog.Nop())
	if _, err := nilSvc.Chat(context.Background(), "why?", nil, nil); err == nil {
		t.Error("chat without a provider must fail, not panic")
	}
}

func TestParseSuggestionsMultiple(t *testing.T) {
	text := strings.Join([]string{
		"Title: First",
		"Description: first description",
		"",
		"Title: Second",
		"Description: second description",
	}, "\n")

	got := ParseSuggestions(text)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions", len(got))
	}
	if got[1].Title != "Second" || got[1].Description != "second description" {
		t.Errorf("second = %+v", got[1])
	}
}

func TestParseSuggestionsIgnoresOrphans(t *testing.T) {
	// A description without a preceding title, and a title without a
	// description, both drop out.
	got := ParseSuggestions("Description: orphan\nTitle: no description follows")
	if len(got) != 1 || got[0].Title != "Trading Insight" {
		t.Errorf("got %+v", got)
	}
}

func TestParseSuggestionsFreeTextFallback(t *testing.T) {
	got := ParseSuggestions("Just some unstructured advice about trading.")
	if len(got) != 1 {
		t.Fatalf("got %d suggestions", len(got))
	}
	if got[0].Title != "Trading Insight" || got[0].Category != "general" {
		t.Errorf("fallback = %+v", got[0])
	}

	long := strings.Repeat("a", 600)
	if got := ParseSuggestions(long); len(got[0].Description) != 500 {
		t.Errorf("long text should truncate to 500, got %d", len(got[0].Description))
	}
}

func TestParseSuggestionsEmpty(t *testing.T) {
	if got := ParseSuggestions("   \n  "); len(got) != 0 {
		t.Errorf("blank text should yield nothing, got %+v", got)
	}
}
