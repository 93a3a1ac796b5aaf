package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sahastranshpratap/trading-helping-tool/internal/analytics"
)

// addAnalyticsCommands adds the performance report command.
func addAnalyticsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Performance analytics",
		Long:  "Compute win rate, profit factor and grouped performance breakdowns.",
		Example: `  journal analytics
  journal analytics --timeframe week
  journal analytics --timeframe all --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			timeframe, _ := cmd.Flags().GetString("timeframe")
			tf, err := analytics.ParseTimeframe(timeframe)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			summary, err := app.Client.GetAnalytics(ctx, tf)
			if err != nil {
				output.Error("Failed to compute analytics: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}

			printSummary(output, tf, summary)
			return nil
		},
	}

	cmd.Flags().String("timeframe", "month", "timeframe: day, week, month, year or all")
	rootCmd.AddCommand(cmd)
}

func printSummary(output *Output, tf analytics.Timeframe, s analytics.Summary) {
	output.Bold("Performance Report (%s)", tf)
	output.Println()

	if s.TotalTrades == 0 {
		output.Info("No trades in this timeframe.")
		return
	}

	winRate := fmt.Sprintf("%.1f%%", s.WinRate)
	if s.WinRate >= 50 {
		winRate = output.Green(winRate)
	} else {
		winRate = output.Red(winRate)
	}

	output.Printf("  Total Trades:  %d\n", s.TotalTrades)
	output.Printf("  Win Rate:      %s\n", winRate)
	output.Printf("  Profit Factor: %s\n", FormatProfitFactor(s.ProfitFactor))
	output.Printf("  Total P&L:     %s\n", output.FormatPnL(s.TotalPnL))
	output.Printf("  Average P&L:   %s\n", output.FormatPnL(s.AveragePnL))
	output.Printf("  Gross Profit:  %s\n", FormatCurrency(s.GrossProfit))
	output.Printf("  Gross Loss:    %s\n", FormatCurrency(s.GrossLoss))

	if s.BestTrade != nil {
		output.Printf("  Best Trade:    #%d %s %s on %s\n",
			s.BestTrade.ID, s.BestTrade.Symbol, output.FormatPnL(s.BestTrade.PnL), FormatDate(s.BestTrade.Date.Time))
	}
	if s.WorstTrade != nil {
		output.Printf("  Worst Trade:   #%d %s %s on %s\n",
			s.WorstTrade.ID, s.WorstTrade.Symbol, output.FormatPnL(s.WorstTrade.PnL), FormatDate(s.WorstTrade.Date.Time))
	}

	printBreakdown(output, "By Strategy", s.ByStrategy)
	printBreakdown(output, "By Symbol", s.BySymbol)
	printBreakdown(output, "By Time of Day", s.ByTimeOfDay)

	for _, category := range sortedTagCategories(s.TagAnalysis) {
		printBreakdown(output, "Tags: "+category, s.TagAnalysis[category])
	}
}

func printBreakdown(output *Output, title string, rows []analytics.CategoryPerformance) {
	if len(rows) == 0 {
		return
	}
	output.Println()
	output.Bold(title)
	table := NewTable(output, "Name", "Trades", "Win Rate", "P&L")
	for _, row := range rows {
		table.AddRow(
			TruncateString(row.Name, 24),
			fmt.Sprintf("%d", row.TradeCount),
			fmt.Sprintf("%.1f%%", row.WinRate),
			output.FormatPnL(row.Performance),
		)
	}
	table.Render()
}

func sortedTagCategories(analysis map[string][]analytics.CategoryPerformance) []string {
	categories := make([]string, 0, len(analysis))
	for category := range analysis {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
