// Package generator produces synthetic, internally consistent trade records
// for demos and tests.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// Fixed vocabularies the generator draws from.
var (
	Symbols = []string{
		"AAPL", "MSFT", "GOOG", "AMZN", "TSLA", "NVDA", "META", "NFLX",
		"PYPL", "ADBE", "INTC", "CSCO", "PEP", "AVGO", "TXN", "QCOM",
		"COST", "SBUX", "AMAT", "AMD", "ADI", "GILD", "LRCX", "MU",
		"CSX", "BIIB", "ISRG", "VRTX",
	}
	Strategies = []string{
		"Breakout", "Support Bounce", "Resistance Break", "Gap Fill",
		"Trend Following", "Reversal", "Swing", "Scalp", "Momentum",
		"Pullback", "Fib Retracement", "VWAP Bounce", "Earnings Play",
		"News Event",
	}
	TimesOfDay = []string{"Pre-market", "Morning", "Afternoon", "Power Hour", "Closing"}
	Emotions   = []string{
		"Confident", "Anxious", "Excited", "Fearful", "Neutral",
		"Frustrated", "Impatient", "Greedy", "Calm", "Cautious", "Focused",
	}
	Sectors = []string{
		"Technology", "Healthcare", "Finance", "Consumer Cyclical", "Energy",
		"Utilities", "Real Estate", "Basic Materials", "Communication Services",
		"Industrial", "Consumer Defensive",
	}
	TagTimeframes = []string{"Intraday", "Swing", "Position", "Day Trade", "Scalp"}
	Patterns      = []string{
		"Bullish Flag", "Bearish Flag", "Double Top", "Double Bottom",
		"Head and Shoulders", "Inverse H&S", "Cup and Handle", "Triangle",
		"Wedge", "Pennant", "Channel", "Island Reversal",
	}
	CustomTags = []string{
		"High Conviction", "Low Conviction", "Follow Plan", "Deviated From Plan",
		"Revenge Trade", "FOMO", "Oversize", "Undersize", "Perfect Setup",
		"Questionable Setup", "Gap Strategy", "First Hour", "EOD Play",
	}
	Mistakes = []string{
		"Early Entry", "Late Entry", "Early Exit", "Late Exit",
		"Ignored Stop Loss", "Overtraded", "Emotional Decision", "No Plan",
		"Position Sizing", "Averaging Down", "Chasing", "No Confirmation",
	}
)

// Options configures trade generation.
type Options struct {
	// Count is the number of trades to produce. Zero yields an empty slice.
	Count int
	// DayRange randomizes entry dates over the last N days. Defaults to 90.
	DayRange int
	// WinProbability is the chance a trade closes with a profit. Nil means
	// the 0.6 default; an explicit zero produces only losers.
	WinProbability *float64
	// Rand is the random source. Tests can supply a seeded source to pin
	// the stream; when nil a time-seeded source is used.
	Rand *rand.Rand
	// Now anchors date randomization. Defaults to time.Now().
	Now time.Time
}

// SeededRand returns a deterministic source for reproducible generation.
func SeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func (o Options) withDefaults() Options {
	if o.DayRange <= 0 {
		o.DayRange = 90
	}
	if o.WinProbability == nil {
		p := 0.6
		o.WinProbability = &p
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Generate produces opts.Count trades with sequential ids starting at 1.
func Generate(opts Options) []models.Trade {
	opts = opts.withDefaults()

	trades := make([]models.Trade, 0, opts.Count)
	for i := 1; i <= opts.Count; i++ {
		trades = append(trades, generateTrade(i, opts))
	}
	return trades
}

func generateTrade(id int, opts Options) models.Trade {
	rng := opts.Rand

	isWin := rng.Float64() < *opts.WinProbability
	side := models.SideLong
	if rng.Intn(2) == 1 {
		side = models.SideShort
	}
	symbol := pick(rng, Symbols)

	basePrice := randomDecimal(rng, 10, 1000)

	// Winners move 0.5%-5% in the trade's favor, losers 0.5%-3% against.
	var movePercent float64
	if isWin {
		movePercent = randomDecimal(rng, 0.5, 5)
	} else {
		movePercent = -randomDecimal(rng, 0.5, 3)
	}

	// Move the exit in the favorable direction for the side: longs profit
	// when exit > entry, shorts when exit < entry.
	entry := basePrice
	exit := round2(entry * (1 + side.Multiplier()*movePercent/100))

	quantity := 1 + rng.Intn(100)
	pnl := round2((exit - entry) * float64(quantity) * side.Multiplier())

	stopLoss := round2(entry * (1 - side.Multiplier()*randomDecimal(rng, 0.5, 2)/100))
	target := round2(entry * (1 + side.Multiplier()*randomDecimal(rng, 1, 5)/100))

	entryDate := models.NewDate(opts.Now.AddDate(0, 0, -rng.Intn(opts.DayRange+1)))
	exitDate := models.NewDate(entryDate.AddDate(0, 0, rng.Intn(6)))

	quality := "Poor"
	if isWin {
		quality = "Good"
	}

	return models.Trade{
		ID:                id,
		Symbol:            symbol,
		Entry:             round2(entry),
		Exit:              round2(exit),
		Quantity:          quantity,
		Position:          side,
		Strategy:          pick(rng, Strategies),
		EntryDate:         entryDate,
		ExitDate:          &exitDate,
		TimeOfDay:         pick(rng, TimesOfDay),
		PnL:               pnl,
		StopLoss:          &stopLoss,
		Target:            &target,
		Tags:              generateTags(rng),
		PerformanceRating: 1 + rng.Intn(5),
		Notes:             fmt.Sprintf("%s trade on %s.", quality, symbol),
		Emotion:           pick(rng, Emotions),
		Mistakes:          generateMistakes(rng),
	}
}

// generateTags draws at most one sector, timeframe and pattern tag plus up to
// three custom tags; any category may come up empty.
func generateTags(rng *rand.Rand) models.TagSet {
	tags := models.TagSet{
		"sector":    {},
		"timeframe": {},
		"pattern":   {},
		"custom":    {},
	}
	if rng.Float64() < 0.7 {
		tags.Add("sector", pick(rng, Sectors))
	}
	if rng.Float64() < 0.7 {
		tags.Add("timeframe", pick(rng, TagTimeframes))
	}
	if rng.Float64() < 0.5 {
		tags.Add("pattern", pick(rng, Patterns))
	}
	for i, n := 0, rng.Intn(4); i < n; i++ {
		tags.Add("custom", pick(rng, CustomTags))
	}
	return tags
}

func generateMistakes(rng *rand.Rand) []string {
	if rng.Float64() < 0.6 {
		return nil
	}
	var mistakes []string
	for i, n := 0, 1+rng.Intn(2); i < n; i++ {
		m := pick(rng, Mistakes)
		if !contains(mistakes, m) {
			mistakes = append(mistakes, m)
		}
	}
	return mistakes
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func randomDecimal(rng *rand.Rand, min, max float64) float64 {
	return round2(min + rng.Float64()*(max-min))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
