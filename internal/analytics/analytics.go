// Package analytics reduces a list of trades into an analytics summary.
// Compute is a pure function: the same input list and timeframe always
// produce the same summary, and the input is never mutated.
package analytics

import (
	"encoding/json"
	"time"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// ProfitFactor is gross profit divided by gross loss magnitude. When there
// are profits but no losses the ratio is undefined and Infinite is set
// instead of overloading the numeric value.
type ProfitFactor struct {
	Ratio    float64
	Infinite bool
}

// MarshalJSON emits the string "inf" for the infinite sentinel and a plain
// number otherwise.
func (pf ProfitFactor) MarshalJSON() ([]byte, error) {
	if pf.Infinite {
		return json.Marshal("inf")
	}
	return json.Marshal(pf.Ratio)
}

// UnmarshalJSON accepts either a number or the string "inf".
func (pf *ProfitFactor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*pf = ProfitFactor{Infinite: true}
		return nil
	}
	var ratio float64
	if err := json.Unmarshal(data, &ratio); err != nil {
		return err
	}
	*pf = ProfitFactor{Ratio: ratio}
	return nil
}

// TradeRef identifies a notable trade within a summary.
type TradeRef struct {
	ID     int         `json:"id"`
	Symbol string      `json:"symbol"`
	PnL    float64     `json:"pnl"`
	Date   models.Date `json:"date"`
}

// CategoryPerformance holds the per-key breakdown for a grouping dimension.
type CategoryPerformance struct {
	Name        string  `json:"name"`
	Performance float64 `json:"performance"`
	WinRate     float64 `json:"winRate"`
	TradeCount  int     `json:"tradeCount"`
}

// Summary is the full analytics result for one timeframe. It is derived on
// demand and never persisted.
type Summary struct {
	WinRate      float64                          `json:"winRate"`
	ProfitFactor ProfitFactor                     `json:"profitFactor"`
	AveragePnL   float64                          `json:"averagePnL"`
	TotalPnL     float64                          `json:"totalPnL"`
	TotalTrades  int                              `json:"totalTrades"`
	GrossProfit  float64                          `json:"grossProfit"`
	GrossLoss    float64                          `json:"grossLoss"`
	BestTrade    *TradeRef                        `json:"bestTrade"`
	WorstTrade   *TradeRef                        `json:"worstTrade"`
	ByStrategy   []CategoryPerformance            `json:"byStrategy"`
	BySymbol     []CategoryPerformance            `json:"bySymbol"`
	ByTimeOfDay  []CategoryPerformance            `json:"byTimeOfDay"`
	TagAnalysis  map[string][]CategoryPerformance `json:"tagAnalysis"`
}

// Compute reduces trades to a Summary, restricted to entry dates within
// [now - window, now] for bounded timeframes. An empty input yields the
// degenerate summary (zero rates, nil best/worst) rather than an error.
func Compute(trades []models.Trade, tf Timeframe, now time.Time) Summary {
	filtered := filterByWindow(trades, tf, now)

	summary := Summary{
		TotalTrades: len(filtered),
		TagAnalysis: map[string][]CategoryPerformance{},
	}

	var wins int
	for i := range filtered {
		t := &filtered[i]
		summary.TotalPnL += t.PnL
		switch {
		case t.PnL > 0:
			wins++
			summary.GrossProfit += t.PnL
		case t.PnL < 0:
			summary.GrossLoss += -t.PnL
		}

		if summary.BestTrade == nil || t.PnL > summary.BestTrade.PnL {
			summary.BestTrade = newTradeRef(t)
		}
		if summary.WorstTrade == nil || t.PnL < summary.WorstTrade.PnL {
			summary.WorstTrade = newTradeRef(t)
		}
	}

	if len(filtered) > 0 {
		summary.WinRate = float64(wins) / float64(len(filtered)) * 100
		summary.AveragePnL = summary.TotalPnL / float64(len(filtered))
	}
	summary.ProfitFactor = profitFactor(summary.GrossProfit, summary.GrossLoss)

	summary.ByStrategy = groupBy(filtered, func(t *models.Trade) []string {
		return []string{t.Strategy}
	})
	summary.BySymbol = groupBy(filtered, func(t *models.Trade) []string {
		return []string{t.Symbol}
	})
	summary.ByTimeOfDay = groupBy(filtered, func(t *models.Trade) []string {
		return []string{t.TimeOfDay}
	})

	for _, category := range tagCategories(filtered) {
		category := category
		summary.TagAnalysis[category] = groupBy(filtered, func(t *models.Trade) []string {
			return t.Tags[category]
		})
	}

	return summary
}

func profitFactor(grossProfit, grossLoss float64) ProfitFactor {
	if grossLoss > 0 {
		return ProfitFactor{Ratio: grossProfit / grossLoss}
	}
	if grossProfit > 0 {
		return ProfitFactor{Infinite: true}
	}
	return ProfitFactor{}
}

func filterByWindow(trades []models.Trade, tf Timeframe, now time.Time) []models.Trade {
	start, bounded := tf.Window(now)
	if !bounded {
		return trades
	}
	var filtered []models.Trade
	for _, t := range trades {
		if t.EntryDate.Before(start) || t.EntryDate.After(now) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func newTradeRef(t *models.Trade) *TradeRef {
	return &TradeRef{
		ID:     t.ID,
		Symbol: t.Symbol,
		PnL:    t.PnL,
		Date:   t.EntryDate,
	}
}

// groupBy buckets trades by the keys a trade yields for one dimension.
// Single-valued dimensions (strategy, symbol) yield one key per trade;
// tag categories may yield several, so a trade can appear in multiple
// buckets of the same dimension. Keys are emitted in first-seen order so
// output is fully determined by the input.
func groupBy(trades []models.Trade, keys func(*models.Trade) []string) []CategoryPerformance {
	type bucket struct {
		pnl   float64
		wins  int
		count int
	}

	var order []string
	buckets := map[string]*bucket{}

	for i := range trades {
		t := &trades[i]
		seen := map[string]bool{}
		for _, key := range keys(t) {
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			b, ok := buckets[key]
			if !ok {
				b = &bucket{}
				buckets[key] = b
				order = append(order, key)
			}
			b.pnl += t.PnL
			b.count++
			if t.PnL > 0 {
				b.wins++
			}
		}
	}

	result := make([]CategoryPerformance, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		winRate := 0.0
		if b.count > 0 {
			winRate = float64(b.wins) / float64(b.count) * 100
		}
		result = append(result, CategoryPerformance{
			Name:        key,
			Performance: b.pnl,
			WinRate:     winRate,
			TradeCount:  b.count,
		})
	}
	return result
}

func tagCategories(trades []models.Trade) []string {
	var order []string
	seen := map[string]bool{}
	for i := range trades {
		for _, category := range trades[i].Tags.Categories() {
			if !seen[category] {
				seen[category] = true
				order = append(order, category)
			}
		}
	}
	return order
}
