package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC))

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2025-03-14"` {
		t.Errorf("marshal = %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(NewDate(d.Time).Time) {
		t.Errorf("round trip = %v", back)
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"14/03/2025"`), &d); err == nil {
		t.Error("expected parse error for non-ISO date")
	}
}

func TestSideMultiplier(t *testing.T) {
	if SideLong.Multiplier() != 1 || SideShort.Multiplier() != -1 {
		t.Error("side multipliers wrong")
	}
	if !SideLong.Valid() || !SideShort.Valid() || Side("Sideways").Valid() {
		t.Error("side validity wrong")
	}
}

func TestGrossPnLDirection(t *testing.T) {
	long := Trade{Entry: 100, Exit: 110, Quantity: 5, Position: SideLong}
	if long.GrossPnL() != 50 {
		t.Errorf("long gross = %f, want 50", long.GrossPnL())
	}

	short := Trade{Entry: 100, Exit: 110, Quantity: 5, Position: SideShort}
	if short.GrossPnL() != -50 {
		t.Errorf("short gross = %f, want -50", short.GrossPnL())
	}

	short.Exit = 90
	if short.GrossPnL() != 50 {
		t.Errorf("short winner gross = %f, want 50", short.GrossPnL())
	}
}

func TestCloneIsDeep(t *testing.T) {
	stop := 95.0
	exit := NewDate(time.Now())
	original := Trade{
		ID:       1,
		Symbol:   "AAPL",
		StopLoss: &stop,
		ExitDate: &exit,
		Tags:     TagSet{"pattern": {"Flag"}},
		Mistakes: []string{"FOMO"},
	}

	clone := original.Clone()
	*clone.StopLoss = 80
	clone.Tags.Add("pattern", "Wedge")
	clone.Mistakes[0] = "changed"

	if *original.StopLoss != 95 {
		t.Error("clone shares StopLoss pointer")
	}
	if original.Tags.Has("pattern", "Wedge") {
		t.Error("clone shares tag map")
	}
	if original.Mistakes[0] != "FOMO" {
		t.Error("clone shares mistakes slice")
	}
}

func TestPatchApplyMergesOnlySetFields(t *testing.T) {
	base := Trade{
		ID:       3,
		Symbol:   "AAPL",
		Entry:    100,
		Exit:     105,
		Quantity: 10,
		Position: SideLong,
		Strategy: "Breakout",
		Notes:    "original",
		Tags:     TagSet{},
	}

	newExit := 112.0
	newNotes := "held longer"
	patch := TradePatch{Exit: &newExit, Notes: &newNotes}

	merged := patch.Apply(base)

	if merged.Exit != 112 || merged.Notes != "held longer" {
		t.Errorf("patched fields = %+v", merged)
	}
	if merged.Symbol != "AAPL" || merged.Entry != 100 || merged.Strategy != "Breakout" {
		t.Errorf("unset fields changed: %+v", merged)
	}
	// The input trade is untouched.
	if base.Exit != 105 || base.Notes != "original" {
		t.Errorf("Apply mutated its input: %+v", base)
	}
}

func TestPatchApplyZeroValueOverrides(t *testing.T) {
	base := Trade{PnL: 42, Fees: 5, Tags: TagSet{}}

	zero := 0.0
	merged := TradePatch{PnL: &zero, Fees: &zero}.Apply(base)
	if merged.PnL != 0 || merged.Fees != 0 {
		t.Errorf("explicit zero must override: %+v", merged)
	}

	untouched := TradePatch{}.Apply(base)
	if untouched.PnL != 42 || untouched.Fees != 5 {
		t.Errorf("empty patch must change nothing: %+v", untouched)
	}
}

func TestMatchesSymbolCaseInsensitive(t *testing.T) {
	trade := Trade{Symbol: "RELIANCE"}
	if !trade.MatchesSymbol("rel") || !trade.MatchesSymbol("LIAN") {
		t.Error("substring match failed")
	}
	if trade.MatchesSymbol("INFY") {
		t.Error("non-substring matched")
	}
}

func TestTagSetOperations(t *testing.T) {
	tags := TagSet{}
	tags.AddCategory("pattern")
	tags.Add("pattern", "Flag")
	tags.Add("pattern", "Flag") // duplicate is a no-op
	tags.Add("mistakes", "FOMO")

	if !tags.Has("pattern", "Flag") || !tags.Has("mistakes", "FOMO") {
		t.Errorf("tags = %v", tags)
	}
	if len(tags["pattern"]) != 1 {
		t.Errorf("duplicate add changed the set: %v", tags["pattern"])
	}

	if got := tags.Categories(); !reflect.DeepEqual(got, []string{"mistakes", "pattern"}) {
		t.Errorf("Categories = %v, want sorted", got)
	}

	tags.Remove("pattern", "Flag")
	if tags.Has("pattern", "Flag") {
		t.Error("Remove left the tag")
	}

	tags.RemoveCategory("mistakes")
	if _, ok := tags["mistakes"]; ok {
		t.Error("RemoveCategory left the category")
	}
}

func TestTradeJSONFieldNames(t *testing.T) {
	exit := NewDate(time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC))
	trade := Trade{
		ID:        1,
		Symbol:    "AAPL",
		EntryDate: NewDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
		ExitDate:  &exit,
		TimeOfDay: "Morning",
		Tags:      TagSet{},
	}

	data, err := json.Marshal(trade)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "symbol", "entryDate", "exitDate", "timeOfDay", "pnl"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing json key %q in %s", key, data)
		}
	}
	if string(raw["entryDate"]) != `"2025-02-01"` {
		t.Errorf("entryDate = %s", raw["entryDate"])
	}
}
