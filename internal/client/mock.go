package client

import (
	"context"
	"time"

	"github.com/sahastranshpratap/trading-helping-tool/internal/analytics"
	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
	"github.com/sahastranshpratap/trading-helping-tool/internal/store"
)

// MockClient emulates the remote trade-management API over an in-memory
// collection, with artificial latency so callers exercise the same async
// paths they would against a real backend.
type MockClient struct {
	trades   *store.MemoryTradeStore
	settings *store.SettingsStore
	latency  time.Duration
	now      func() time.Time
}

// NewMockClient creates a mock backend over the given stores. A zero latency
// disables the artificial delay, which tests rely on.
func NewMockClient(trades *store.MemoryTradeStore, settings *store.SettingsStore, latency time.Duration) *MockClient {
	return &MockClient{
		trades:   trades,
		settings: settings,
		latency:  latency,
		now:      time.Now,
	}
}

// delay simulates network latency, honoring context cancellation.
func (c *MockClient) delay(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.latency):
		return nil
	}
}

// ListTrades filters the collection and returns a page of results.
func (c *MockClient) ListTrades(ctx context.Context, filter store.TradeFilter) (*store.TradePage, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	return c.trades.List(ctx, filter)
}

// GetTrade returns a trade by id or a NotFoundError.
func (c *MockClient) GetTrade(ctx context.Context, id int) (models.Trade, error) {
	if err := c.delay(ctx); err != nil {
		return models.Trade{}, err
	}
	return c.trades.GetByID(ctx, id)
}

// CreateTrade assigns the next free id and stores the trade.
func (c *MockClient) CreateTrade(ctx context.Context, trade models.Trade) (models.Trade, error) {
	if err := c.delay(ctx); err != nil {
		return models.Trade{}, err
	}
	return c.trades.Create(ctx, trade)
}

// UpdateTrade merges the patch into the stored trade.
func (c *MockClient) UpdateTrade(ctx context.Context, id int, patch models.TradePatch) (models.Trade, error) {
	if err := c.delay(ctx); err != nil {
		return models.Trade{}, err
	}
	return c.trades.Update(ctx, id, patch)
}

// DeleteTrade removes a trade by id.
func (c *MockClient) DeleteTrade(ctx context.Context, id int) error {
	if err := c.delay(ctx); err != nil {
		return err
	}
	return c.trades.Delete(ctx, id)
}

// GetAnalytics computes the summary over the current collection.
func (c *MockClient) GetAnalytics(ctx context.Context, tf analytics.Timeframe) (analytics.Summary, error) {
	if err := c.delay(ctx); err != nil {
		return analytics.Summary{}, err
	}
	trades, err := c.trades.All(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Compute(trades, tf, c.now()), nil
}

// GetSettings loads settings from the local store.
func (c *MockClient) GetSettings(ctx context.Context) (models.Settings, error) {
	if err := c.delay(ctx); err != nil {
		return models.Settings{}, err
	}
	return c.settings.Load()
}

// UpdateSettings overwrites the persisted settings wholesale.
func (c *MockClient) UpdateSettings(ctx context.Context, settings models.Settings) error {
	if err := c.delay(ctx); err != nil {
		return err
	}
	return c.settings.Save(settings)
}

// SimulateNetworkError resolves with the error shape of an unreachable
// backend. The mock never signals network failures except through this
// helper.
func (c *MockClient) SimulateNetworkError(ctx context.Context) error {
	if err := c.delay(ctx); err != nil {
		return err
	}
	return errors.NewRequestFailedError(0, "Network Error", nil)
}

// SimulateServerError resolves with the error shape of a backend 500.
func (c *MockClient) SimulateServerError(ctx context.Context) error {
	if err := c.delay(ctx); err != nil {
		return err
	}
	return errors.NewRequestFailedError(500, "Internal Server Error", nil)
}
