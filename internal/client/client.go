// Package client presents one interface for trade CRUD, analytics and
// settings, routed to either the in-process mock service or a remote HTTP
// backend. The backend is chosen once at construction time; callers never
// branch on which one is active.
package client

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sahastranshpratap/trading-helping-tool/internal/analytics"
	"github.com/sahastranshpratap/trading-helping-tool/internal/config"
	"github.com/sahastranshpratap/trading-helping-tool/internal/generator"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
	"github.com/sahastranshpratap/trading-helping-tool/internal/store"
)

// Client is the stable interface UI-facing code programs against. Both
// backends resolve with the same value shapes and signal the same error
// taxonomy: NotFoundError for missing ids, RequestFailedError for transport
// failures.
type Client interface {
	ListTrades(ctx context.Context, filter store.TradeFilter) (*store.TradePage, error)
	GetTrade(ctx context.Context, id int) (models.Trade, error)
	CreateTrade(ctx context.Context, trade models.Trade) (models.Trade, error)
	UpdateTrade(ctx context.Context, id int, patch models.TradePatch) (models.Trade, error)
	DeleteTrade(ctx context.Context, id int) error
	GetAnalytics(ctx context.Context, tf analytics.Timeframe) (analytics.Summary, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) error
}

// New constructs the configured backend: a latency-simulating mock service
// seeded with generated demo trades, or an HTTP client against the remote
// backend. Settings live in the local settings store either way.
func New(cfg *config.Config, settings *store.SettingsStore, logger zerolog.Logger) Client {
	if cfg.API.UseMockData {
		trades := generator.Generate(generator.Options{
			Count:          cfg.Generator.Count,
			DayRange:       cfg.Generator.DayRange,
			WinProbability: &cfg.Generator.WinProbability,
		})
		logger.Debug().Int("trades", len(trades)).Msg("mock backend initialized")
		return NewMockClient(store.NewMemoryTradeStore(trades...), settings, cfg.API.MockLatency)
	}
	logger.Debug().Str("base_url", cfg.API.BaseURL).Msg("HTTP backend initialized")
	return NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, settings, logger)
}
