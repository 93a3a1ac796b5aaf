package store

import (
	"context"
	"sort"
	"sync"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// MemoryTradeStore is an in-memory trade collection scoped to the process
// lifetime. It is constructed explicitly (no package-level state) so tests
// control its init and reset.
type MemoryTradeStore struct {
	mu     sync.RWMutex
	trades map[int]models.Trade
}

// NewMemoryTradeStore constructs a store pre-populated with the given trades.
func NewMemoryTradeStore(trades ...models.Trade) *MemoryTradeStore {
	s := &MemoryTradeStore{trades: make(map[int]models.Trade, len(trades))}
	for _, t := range trades {
		s.trades[t.ID] = t.Clone()
	}
	return s
}

// Reset replaces the whole collection.
func (s *MemoryTradeStore) Reset(trades ...models.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = make(map[int]models.Trade, len(trades))
	for _, t := range trades {
		s.trades[t.ID] = t.Clone()
	}
}

// List returns trades matching the filter, ordered by id, plus pagination
// metadata computed from the filtered results.
func (s *MemoryTradeStore) List(_ context.Context, filter TradeFilter) (*TradePage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Trade
	for _, t := range s.trades {
		if filter.Matches(t) {
			matched = append(matched, t.Clone())
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})

	return Paginate(matched, filter.Page, filter.PageSize), nil
}

// All returns every trade ordered by id, without pagination.
func (s *MemoryTradeStore) All(_ context.Context) ([]models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]models.Trade, 0, len(s.trades))
	for _, t := range s.trades {
		trades = append(trades, t.Clone())
	}
	sort.Slice(trades, func(i, j int) bool {
		return trades[i].ID < trades[j].ID
	})
	return trades, nil
}

// GetByID returns the matching trade or a NotFoundError.
func (s *MemoryTradeStore) GetByID(_ context.Context, id int) (models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trades[id]
	if !ok {
		return models.Trade{}, errors.NewNotFoundError("trade", id)
	}
	return t.Clone(), nil
}

// Create assigns the next id (max existing id + 1, or 1 when empty) and
// appends the trade.
func (s *MemoryTradeStore) Create(_ context.Context, trade models.Trade) (models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for id := range s.trades {
		if id > maxID {
			maxID = id
		}
	}
	trade.ID = maxID + 1
	s.trades[trade.ID] = trade.Clone()
	return trade, nil
}

// Update merges the patch into the existing trade by id.
func (s *MemoryTradeStore) Update(_ context.Context, id int, patch models.TradePatch) (models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.trades[id]
	if !ok {
		return models.Trade{}, errors.NewNotFoundError("trade", id)
	}
	updated := patch.Apply(existing)
	updated.ID = id
	s.trades[id] = updated.Clone()
	return updated, nil
}

// Delete removes a trade by id.
func (s *MemoryTradeStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trades[id]; !ok {
		return errors.NewNotFoundError("trade", id)
	}
	delete(s.trades, id)
	return nil
}
