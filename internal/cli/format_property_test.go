package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// FormatCurrency must keep a parseable value, a $ prefix, two decimals and
// valid thousands grouping for any reasonable amount.
func TestFormatCurrencyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	groupPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)

	properties.Property("formats any amount consistently", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) || math.Abs(amount) > 1e12 {
				return true
			}

			formatted := FormatCurrency(amount)

			if amount >= 0 {
				if !strings.HasPrefix(formatted, "$") {
					t.Logf("missing $ prefix: %s", formatted)
					return false
				}
			} else if !strings.HasPrefix(formatted, "-$") {
				t.Logf("missing -$ prefix: %s", formatted)
				return false
			}

			parts := strings.Split(formatted, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("bad decimal part: %s", formatted)
				return false
			}

			numPart := strings.TrimPrefix(strings.TrimPrefix(formatted, "-"), "$")
			intPart := strings.Split(numPart, ".")[0]
			if !groupPattern.MatchString(intPart) {
				t.Logf("bad grouping: %s", formatted)
				return false
			}

			parsed, err := strconv.ParseFloat(strings.ReplaceAll(numPart, ",", ""), 64)
			if err != nil {
				t.Logf("unparseable: %s", formatted)
				return false
			}
			if math.Abs(parsed-math.Abs(amount)) > 0.005+math.Abs(amount)*1e-9 {
				t.Logf("value drift: %f -> %s", amount, formatted)
				return false
			}
			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("pnl formatting marks gains with a plus", prop.ForAll(
		func(pnl float64) bool {
			if math.IsNaN(pnl) || math.IsInf(pnl, 0) {
				return true
			}
			formatted := FormatPnL(pnl)
			if pnl > 0 {
				return strings.HasPrefix(formatted, "+$")
			}
			if pnl < 0 {
				return strings.HasPrefix(formatted, "-$")
			}
			return strings.HasPrefix(formatted, "$")
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}
