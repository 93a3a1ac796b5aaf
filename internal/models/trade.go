// Package models defines the core domain types for the trading journal.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Side represents the direction of a position.
type Side string

const (
	SideLong  Side = "Long"
	SideShort Side = "Short"
)

// Multiplier returns the P&L direction multiplier for the side.
func (s Side) Multiplier() float64 {
	if s == SideShort {
		return -1
	}
	return 1
}

// Valid reports whether the side is a known value.
func (s Side) Valid() bool {
	return s == SideLong || s == SideShort
}

// Date is a calendar date serialized as "2006-01-02" on the wire.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to midnight UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalCSV implements the gocsv type marshaller.
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format("2006-01-02"), nil
}

// UnmarshalCSV implements the gocsv type unmarshaller.
func (d *Date) UnmarshalCSV(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Trade represents one completed or open position in the journal.
type Trade struct {
	ID                int      `json:"id" csv:"id"`
	Symbol            string   `json:"symbol" csv:"symbol"`
	Entry             float64  `json:"entry" csv:"entry"`
	Exit              float64  `json:"exit" csv:"exit"`
	Quantity          int      `json:"quantity" csv:"quantity"`
	Position          Side     `json:"position" csv:"position"`
	Strategy          string   `json:"strategy" csv:"strategy"`
	EntryDate         Date     `json:"entryDate" csv:"entry_date"`
	ExitDate          *Date    `json:"exitDate,omitempty" csv:"exit_date"`
	TimeOfDay         string   `json:"timeOfDay" csv:"time_of_day"`
	PnL               float64  `json:"pnl" csv:"pnl"`
	Fees              float64  `json:"fees" csv:"fees"`
	StopLoss          *float64 `json:"stopLoss,omitempty" csv:"-"`
	Target            *float64 `json:"target,omitempty" csv:"-"`
	Tags              TagSet   `json:"tags" csv:"-"`
	PerformanceRating int      `json:"performanceRating" csv:"-"`
	Notes             string   `json:"notes" csv:"notes"`
	Emotion           string   `json:"emotion" csv:"emotion"`
	Mistakes          []string `json:"mistakes" csv:"-"`
}

// GrossPnL computes (exit - entry) * quantity * direction multiplier.
func (t Trade) GrossPnL() float64 {
	return (t.Exit - t.Entry) * float64(t.Quantity) * t.Position.Multiplier()
}

// NetPnL computes the gross result minus fees.
func (t Trade) NetPnL() float64 {
	return t.GrossPnL() - t.Fees
}

// IsWin reports whether the trade closed with a positive P&L.
func (t Trade) IsWin() bool {
	return t.PnL > 0
}

// MatchesSymbol reports whether the trade's symbol contains the given
// substring, case-insensitively.
func (t Trade) MatchesSymbol(substr string) bool {
	return strings.Contains(strings.ToLower(t.Symbol), strings.ToLower(substr))
}

// Clone returns a deep copy of the trade.
func (t Trade) Clone() Trade {
	cp := t
	if t.ExitDate != nil {
		d := *t.ExitDate
		cp.ExitDate = &d
	}
	if t.StopLoss != nil {
		v := *t.StopLoss
		cp.StopLoss = &v
	}
	if t.Target != nil {
		v := *t.Target
		cp.Target = &v
	}
	cp.Tags = t.Tags.Clone()
	if t.Mistakes != nil {
		cp.Mistakes = append([]string(nil), t.Mistakes...)
	}
	return cp
}

// TradePatch carries a partial trade update. Nil fields are left untouched
// when the patch is applied.
type TradePatch struct {
	Symbol            *string  `json:"symbol,omitempty"`
	Entry             *float64 `json:"entry,omitempty"`
	Exit              *float64 `json:"exit,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	Position          *Side    `json:"position,omitempty"`
	Strategy          *string  `json:"strategy,omitempty"`
	EntryDate         *Date    `json:"entryDate,omitempty"`
	ExitDate          *Date    `json:"exitDate,omitempty"`
	TimeOfDay         *string  `json:"timeOfDay,omitempty"`
	PnL               *float64 `json:"pnl,omitempty"`
	Fees              *float64 `json:"fees,omitempty"`
	StopLoss          *float64 `json:"stopLoss,omitempty"`
	Target            *float64 `json:"target,omitempty"`
	Tags              TagSet   `json:"tags,omitempty"`
	PerformanceRating *int     `json:"performanceRating,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	Emotion           *string  `json:"emotion,omitempty"`
	Mistakes          []string `json:"mistakes,omitempty"`
}

// Apply merges the patch into the trade and returns the result. The receiver
// trade is not modified.
func (p TradePatch) Apply(t Trade) Trade {
	out := t.Clone()
	if p.Symbol != nil {
		out.Symbol = *p.Symbol
	}
	if p.Entry != nil {
		out.Entry = *p.Entry
	}
	if p.Exit != nil {
		out.Exit = *p.Exit
	}
	if p.Quantity != nil {
		out.Quantity = *p.Quantity
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	if p.Strategy != nil {
		out.Strategy = *p.Strategy
	}
	if p.EntryDate != nil {
		out.EntryDate = *p.EntryDate
	}
	if p.ExitDate != nil {
		d := *p.ExitDate
		out.ExitDate = &d
	}
	if p.TimeOfDay != nil {
		out.TimeOfDay = *p.TimeOfDay
	}
	if p.PnL != nil {
		out.PnL = *p.PnL
	}
	if p.Fees != nil {
		out.Fees = *p.Fees
	}
	if p.StopLoss != nil {
		v := *p.StopLoss
		out.StopLoss = &v
	}
	if p.Target != nil {
		v := *p.Target
		out.Target = &v
	}
	if p.Tags != nil {
		out.Tags = p.Tags.Clone()
	}
	if p.PerformanceRating != nil {
		out.PerformanceRating = *p.PerformanceRating
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Emotion != nil {
		out.Emotion = *p.Emotion
	}
	if p.Mistakes != nil {
		out.Mistakes = append([]string(nil), p.Mistakes...)
	}
	return out
}
