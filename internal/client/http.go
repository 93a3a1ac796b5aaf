package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sahastranshpratap/trading-helping-tool/internal/analytics"
	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/logging"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
	"github.com/sahastranshpratap/trading-helping-tool/internal/store"
	"github.com/sahastranshpratap/trading-helping-tool/pkg/utils"
)

// HTTPClient talks to the remote journal backend. Non-2xx responses surface
// as RequestFailedError, except 404 on id-based lookups which maps to the
// same NotFoundError the mock backend signals.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	settings *store.SettingsStore
	logger   zerolog.Logger
	retry    utils.RetryConfig
}

// NewHTTPClient creates a client against the given base URL, e.g.
// "http://localhost:5000/api".
func NewHTTPClient(baseURL string, timeout time.Duration, settings *store.SettingsStore, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		settings: settings,
		logger:   logger,
		retry:    utils.DefaultRetryConfig(),
	}
}

// ListTrades fetches trades matching the filter. The backend returns a bare
// array; pagination metadata is computed here from the results so both
// backends resolve with the same shape.
func (c *HTTPClient) ListTrades(ctx context.Context, filter store.TradeFilter) (*store.TradePage, error) {
	query := url.Values{}
	if filter.Symbol != "" {
		query.Set("symbol", filter.Symbol)
	}
	if filter.Strategy != "" {
		query.Set("strategy", filter.Strategy)
	}
	if filter.Position != "" {
		query.Set("position", string(filter.Position))
	}
	if filter.StartDate != nil {
		query.Set("startDate", filter.StartDate.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		query.Set("endDate", filter.EndDate.Format("2006-01-02"))
	}

	var trades []models.Trade
	endpoint := "/trades"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	if err := c.getJSON(ctx, endpoint, &trades); err != nil {
		return nil, err
	}

	return store.Paginate(trades, filter.Page, filter.PageSize), nil
}

// GetTrade fetches a single trade by id.
func (c *HTTPClient) GetTrade(ctx context.Context, id int) (models.Trade, error) {
	var trade models.Trade
	if err := c.getJSON(ctx, "/trades/"+strconv.Itoa(id), &trade); err != nil {
		return models.Trade{}, mapNotFound(err, id)
	}
	return trade, nil
}

// CreateTrade posts a new trade; the backend assigns the id.
func (c *HTTPClient) CreateTrade(ctx context.Context, trade models.Trade) (models.Trade, error) {
	var created models.Trade
	if err := c.doJSON(ctx, http.MethodPost, "/trades", trade, &created); err != nil {
		return models.Trade{}, err
	}
	return created, nil
}

// UpdateTrade sends a partial update for the trade.
func (c *HTTPClient) UpdateTrade(ctx context.Context, id int, patch models.TradePatch) (models.Trade, error) {
	var updated models.Trade
	if err := c.doJSON(ctx, http.MethodPut, "/trades/"+strconv.Itoa(id), patch, &updated); err != nil {
		return models.Trade{}, mapNotFound(err, id)
	}
	return updated, nil
}

// DeleteTrade removes a trade by id.
func (c *HTTPClient) DeleteTrade(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/trades/"+strconv.Itoa(id), nil, nil); err != nil {
		return mapNotFound(err, id)
	}
	return nil
}

// GetAnalytics fetches the performance summary for the timeframe.
func (c *HTTPClient) GetAnalytics(ctx context.Context, tf analytics.Timeframe) (analytics.Summary, error) {
	var summary analytics.Summary
	err := c.getJSON(ctx, "/performance-metrics?timeRange="+url.QueryEscape(string(tf)), &summary)
	if err != nil {
		return analytics.Summary{}, err
	}
	return summary, nil
}

// GetSettings loads settings from the local store; preferences stay on the
// client regardless of backend.
func (c *HTTPClient) GetSettings(_ context.Context) (models.Settings, error) {
	return c.settings.Load()
}

// UpdateSettings overwrites the persisted settings wholesale.
func (c *HTTPClient) UpdateSettings(_ context.Context, settings models.Settings) error {
	return c.settings.Save(settings)
}

// getJSON issues a GET with retry on transport-level failures. Responses
// with an HTTP status are never retried.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	_, err := utils.RetryWithResult(ctx, c.retry, func() (struct{}, error) {
		err := c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
		var reqErr *errors.RequestFailedError
		if errors.As(err, &reqErr) && reqErr.Status != 0 {
			return struct{}{}, utils.Permanent(err)
		}
		return struct{}{}, err
	})
	return utils.Unwrap(err)
}

// doJSON performs one request/response cycle against the backend.
func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewUnexpectedError("encode request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return errors.NewUnexpectedError("build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	logging.LogAPICall(c.logger, method, endpoint, time.Since(start), err)
	if err != nil {
		return errors.NewRequestFailedError(0, "backend unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewRequestFailedError(resp.StatusCode, readErrorMessage(resp), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewUnexpectedError("decode response", err)
	}
	return nil
}

// readErrorMessage extracts a message from an error response body, falling
// back to the status text.
func readErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(data) > 0 {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil {
			if payload.Message != "" {
				return payload.Message
			}
			if payload.Error != "" {
				return payload.Error
			}
		}
	}
	return http.StatusText(resp.StatusCode)
}

// mapNotFound converts a 404 RequestFailedError into the NotFoundError the
// mock backend signals, keeping the facade's error contract identical.
func mapNotFound(err error, id int) error {
	var reqErr *errors.RequestFailedError
	if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
		return errors.NewNotFoundError("trade", id)
	}
	return err
}
