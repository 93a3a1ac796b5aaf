package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahastranshpratap/trading-helping-tool/internal/analytics"
)

// FormatCurrency formats an amount in USD with thousands separators.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	s = s[:n-3]
	for len(s) > 3 {
		result = s[len(s)-3:] + "," + result
		s = s[:len(s)-3]
	}
	return s + "," + result
}

// FormatPnL formats P&L with an explicit sign for gains.
func FormatPnL(pnl float64) string {
	formatted := FormatCurrency(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatProfitFactor renders the ratio or the infinite sentinel.
func FormatProfitFactor(pf analytics.ProfitFactor) string {
	if pf.Infinite {
		return "inf"
	}
	return fmt.Sprintf("%.2f", pf.Ratio)
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
