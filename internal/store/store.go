// Package store provides the journal's data collections: an in-memory trade
// store with an explicit lifecycle for tests, and a file-backed settings
// store.
package store

import (
	"context"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// TradeStore defines the operations over the trade collection.
type TradeStore interface {
	List(ctx context.Context, filter TradeFilter) (*TradePage, error)
	GetByID(ctx context.Context, id int) (models.Trade, error)
	Create(ctx context.Context, trade models.Trade) (models.Trade, error)
	Update(ctx context.Context, id int, patch models.TradePatch) (models.Trade, error)
	Delete(ctx context.Context, id int) error
}

// TradeFilter restricts a List call. Zero values mean "no restriction".
type TradeFilter struct {
	// Symbol matches as a case-insensitive substring.
	Symbol string
	// Strategy matches exactly.
	Strategy string
	// Position matches exactly.
	Position models.Side
	// StartDate and EndDate bound the entry date inclusively.
	StartDate *models.Date
	EndDate   *models.Date
	// Page and PageSize control pagination metadata. Defaults: 1 and 25.
	Page     int
	PageSize int
}

// Matches reports whether a trade passes the filter.
func (f TradeFilter) Matches(t models.Trade) bool {
	if f.Symbol != "" && !t.MatchesSymbol(f.Symbol) {
		return false
	}
	if f.Strategy != "" && t.Strategy != f.Strategy {
		return false
	}
	if f.Position != "" && t.Position != f.Position {
		return false
	}
	if f.StartDate != nil && t.EntryDate.Before(f.StartDate.Time) {
		return false
	}
	if f.EndDate != nil && t.EntryDate.After(f.EndDate.Time) {
		return false
	}
	return true
}

// TradePage is a filtered trade list plus pagination metadata computed from
// the filter results.
type TradePage struct {
	Trades     []models.Trade `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// Paginate slices an already-filtered trade list to the requested page and
// wraps it with pagination metadata. Page and pageSize default to 1 and 25.
// A page past the end yields an empty slice, not an error.
func Paginate(trades []models.Trade, page, pageSize int) *TradePage {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 25
	}

	total := len(trades)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &TradePage{
		Trades:     trades[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
}
