package analytics

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tradeWithPnL(id int, symbol, strategy string, pnl float64, daysAgo int) models.Trade {
	return models.Trade{
		ID:        id,
		Symbol:    symbol,
		Strategy:  strategy,
		Position:  models.SideLong,
		Quantity:  10,
		PnL:       pnl,
		EntryDate: models.NewDate(testNow.AddDate(0, 0, -daysAgo)),
		TimeOfDay: "Morning",
		Tags:      models.TagSet{},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeBasicSummary(t *testing.T) {
	trades := []models.Trade{
		tradeWithPnL(1, "AAPL", "Breakout", 50, 1),
		tradeWithPnL(2, "MSFT", "Breakout", -20, 2),
		tradeWithPnL(3, "AAPL", "Reversal", 30, 3),
	}

	s := Compute(trades, TimeframeAll, testNow)

	if s.TotalTrades != 3 {
		t.Errorf("TotalTrades = %d, want 3", s.TotalTrades)
	}
	if !almostEqual(s.WinRate, 200.0/3.0) {
		t.Errorf("WinRate = %f, want %f", s.WinRate, 200.0/3.0)
	}
	if !almostEqual(s.TotalPnL, 60) {
		t.Errorf("TotalPnL = %f, want 60", s.TotalPnL)
	}
	if !almostEqual(s.GrossProfit, 80) {
		t.Errorf("GrossProfit = %f, want 80", s.GrossProfit)
	}
	if !almostEqual(s.GrossLoss, 20) {
		t.Errorf("GrossLoss = %f, want 20", s.GrossLoss)
	}
	if s.ProfitFactor.Infinite || !almostEqual(s.ProfitFactor.Ratio, 4) {
		t.Errorf("ProfitFactor = %+v, want ratio 4", s.ProfitFactor)
	}
	if !almostEqual(s.AveragePnL, 20) {
		t.Errorf("AveragePnL = %f, want 20", s.AveragePnL)
	}
	if s.BestTrade == nil || s.BestTrade.ID != 1 {
		t.Errorf("BestTrade = %+v, want trade 1", s.BestTrade)
	}
	if s.WorstTrade == nil || s.WorstTrade.ID != 2 {
		t.Errorf("WorstTrade = %+v, want trade 2", s.WorstTrade)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	s := Compute(nil, TimeframeAll, testNow)

	if s.TotalTrades != 0 {
		t.Errorf("TotalTrades = %d, want 0", s.TotalTrades)
	}
	if s.WinRate != 0 || s.AveragePnL != 0 || s.TotalPnL != 0 {
		t.Errorf("expected zero rates, got %+v", s)
	}
	if s.ProfitFactor.Infinite || s.ProfitFactor.Ratio != 0 {
		t.Errorf("ProfitFactor = %+v, want zero value", s.ProfitFactor)
	}
	if s.BestTrade != nil || s.WorstTrade != nil {
		t.Error("expected nil best/worst trade for empty input")
	}
	if len(s.ByStrategy) != 0 || len(s.BySymbol) != 0 {
		t.Error("expected empty breakdowns for empty input")
	}
}

func TestComputeBreakEvenTrade(t *testing.T) {
	trades := []models.Trade{
		tradeWithPnL(1, "AAPL", "Breakout", 100, 1),
		tradeWithPnL(2, "MSFT", "Breakout", 0, 2),
	}

	s := Compute(trades, TimeframeAll, testNow)

	// Break-even trades count in totals but are neither wins nor losses.
	if s.TotalTrades != 2 {
		t.Errorf("TotalTrades = %d, want 2", s.TotalTrades)
	}
	if !almostEqual(s.WinRate, 50) {
		t.Errorf("WinRate = %f, want 50", s.WinRate)
	}
	if !almostEqual(s.GrossProfit, 100) || s.GrossLoss != 0 {
		t.Errorf("gross = %f/%f, want 100/0", s.GrossProfit, s.GrossLoss)
	}
	if !s.ProfitFactor.Infinite {
		t.Errorf("ProfitFactor = %+v, want infinite", s.ProfitFactor)
	}
}

func TestComputeAllLosses(t *testing.T) {
	trades := []models.Trade{
		tradeWithPnL(1, "AAPL", "Breakout", -30, 1),
		tradeWithPnL(2, "MSFT", "Breakout", -10, 2),
	}

	s := Compute(trades, TimeframeAll, testNow)

	if s.WinRate != 0 {
		t.Errorf("WinRate = %f, want 0", s.WinRate)
	}
	if s.ProfitFactor.Infinite || s.ProfitFactor.Ratio != 0 {
		t.Errorf("ProfitFactor = %+v, want zero ratio", s.ProfitFactor)
	}
	if s.BestTrade == nil || s.BestTrade.ID != 2 {
		t.Errorf("BestTrade = %+v, want trade 2 (smallest loss)", s.BestTrade)
	}
}

func TestComputeTimeframeFiltering(t *testing.T) {
	trades := []models.Trade{
		tradeWithPnL(1, "AAPL", "Breakout", 50, 2),
		tradeWithPnL(2, "MSFT", "Breakout", 25, 20),
		tradeWithPnL(3, "TSLA", "Reversal", -10, 100),
	}

	cases := []struct {
		tf   Timeframe
		want int
	}{
		{TimeframeDay, 0},
		{TimeframeWeek, 1},
		{TimeframeMonth, 2},
		{TimeframeYear, 3},
		{TimeframeAll, 3},
	}

	for _, tc := range cases {
		s := Compute(trades, tc.tf, testNow)
		if s.TotalTrades != tc.want {
			t.Errorf("Compute(%s).TotalTrades = %d, want %d", tc.tf, s.TotalTrades, tc.want)
		}
	}
}

func TestComputeGroupByFirstSeenOrder(t *testing.T) {
	trades := []models.Trade{
		tradeWithPnL(1, "TSLA", "Reversal", 10, 1),
		tradeWithPnL(2, "AAPL", "Breakout", 20, 2),
		tradeWithPnL(3, "TSLA", "Breakout", -5, 3),
	}

	s := Compute(trades, TimeframeAll, testNow)

	gotSymbols := make([]string, len(s.BySymbol))
	for i, c := range s.BySymbol {
		gotSymbols[i] = c.Name
	}
	if !reflect.DeepEqual(gotSymbols, []string{"TSLA", "AAPL"}) {
		t.Errorf("BySymbol order = %v, want [TSLA AAPL]", gotSymbols)
	}

	tsla := s.BySymbol[0]
	if tsla.TradeCount != 2 || !almostEqual(tsla.Performance, 5) || !almostEqual(tsla.WinRate, 50) {
		t.Errorf("TSLA bucket = %+v", tsla)
	}
}

func TestComputeTagAnalysis(t *testing.T) {
	trade := tradeWithPnL(1, "AAPL", "Breakout", 40, 1)
	trade.Tags = models.TagSet{
		"patterns": {"Flag", "Breakout"},
		"mistakes": {"FOMO"},
	}
	other := tradeWithPnL(2, "MSFT", "Breakout", -15, 2)
	other.Tags = models.TagSet{
		"patterns": {"Flag"},
	}

	s := Compute([]models.Trade{trade, other}, TimeframeAll, testNow)

	patterns := s.TagAnalysis["patterns"]
	if len(patterns) != 2 {
		t.Fatalf("patterns buckets = %d, want 2", len(patterns))
	}
	flag := patterns[0]
	if flag.Name != "Flag" || flag.TradeCount != 2 || !almostEqual(flag.Performance, 25) {
		t.Errorf("Flag bucket = %+v", flag)
	}

	mistakes := s.TagAnalysis["mistakes"]
	if len(mistakes) != 1 || mistakes[0].Name != "FOMO" || mistakes[0].TradeCount != 1 {
		t.Errorf("mistakes = %+v", mistakes)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	trades := []models.Trade{
		tradeWithPnL(1, "AAPL", "Breakout", 50, 1),
		tradeWithPnL(2, "MSFT", "Reversal", -20, 2),
	}
	before := make([]models.Trade, len(trades))
	for i, tr := range trades {
		before[i] = tr.Clone()
	}

	Compute(trades, TimeframeAll, testNow)

	if !reflect.DeepEqual(trades, before) {
		t.Error("Compute mutated its input")
	}
}

func TestProfitFactorJSON(t *testing.T) {
	data, err := json.Marshal(ProfitFactor{Infinite: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"inf"` {
		t.Errorf("infinite marshals to %s, want \"inf\"", data)
	}

	data, err = json.Marshal(ProfitFactor{Ratio: 2.5})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "2.5" {
		t.Errorf("ratio marshals to %s, want 2.5", data)
	}

	var pf ProfitFactor
	if err := json.Unmarshal([]byte(`"inf"`), &pf); err != nil {
		t.Fatal(err)
	}
	if !pf.Infinite {
		t.Error("unmarshal \"inf\" should set Infinite")
	}

	if err := json.Unmarshal([]byte("1.75"), &pf); err != nil {
		t.Fatal(err)
	}
	if pf.Infinite || pf.Ratio != 1.75 {
		t.Errorf("unmarshal 1.75 = %+v", pf)
	}
}

func TestParseTimeframe(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year", "all"} {
		if _, err := ParseTimeframe(valid); err != nil {
			t.Errorf("ParseTimeframe(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseTimeframe("quarter"); err == nil {
		t.Error("ParseTimeframe(\"quarter\") should fail")
	}
}
