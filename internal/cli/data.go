package cli

import (
	"context"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/generator"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// addDataCommands adds CSV export/import and demo-data commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Data import and export",
		Long:  "Export the journal to CSV, import trades from CSV, or seed demo data.",
	}

	cmd.AddCommand(newDataExportCmd(app))
	cmd.AddCommand(newDataImportCmd(app))
	cmd.AddCommand(newDataSeedCmd(app))

	rootCmd.AddCommand(cmd)
}

func newDataExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export trades to a CSV file",
		Example: `  journal data export trades.csv
  journal data export q1.csv --start 2025-01-01 --end 2025-03-31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			filter, err := buildTradeFilter(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			filter.Page = 1
			filter.PageSize = 10000

			page, err := app.Client.ListTrades(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			file, err := os.Create(args[0])
			if err != nil {
				output.Error("Failed to create file: %v", err)
				return errors.Wrap(err, "create export file")
			}
			defer file.Close()

			if err := gocsv.MarshalFile(&page.Trades, file); err != nil {
				output.Error("Failed to write CSV: %v", err)
				return errors.Wrap(err, "write csv")
			}

			if output.IsJSON() {
				return output.JSON(map[string]any{"file": args[0], "trades": len(page.Trades)})
			}
			output.Success("Exported %d trades to %s", len(page.Trades), args[0])
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol (substring match)")
	cmd.Flags().String("strategy", "", "filter by strategy (exact match)")
	cmd.Flags().String("position", "", "filter by position (Long or Short)")
	cmd.Flags().String("start", "", "filter by entry date from (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "filter by entry date to (YYYY-MM-DD)")
	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("page-size", 10000, "trades per page")

	return cmd
}

// bulkTimeout covers per-row create calls, which the mock backend delays
// individually.
const bulkTimeout = 5 * time.Minute

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import trades from a CSV file",
		Long:  "Import trades from a CSV file produced by 'journal data export'. IDs are reassigned.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
			defer cancel()

			file, err := os.Open(args[0])
			if err != nil {
				output.Error("Failed to open file: %v", err)
				return errors.Wrap(err, "open import file")
			}
			defer file.Close()

			var trades []models.Trade
			if err := gocsv.UnmarshalFile(file, &trades); err != nil {
				output.Error("Failed to parse CSV: %v", err)
				return errors.Wrap(err, "parse csv")
			}

			imported := 0
			for _, trade := range trades {
				trade.ID = 0
				if trade.Tags == nil {
					trade.Tags = models.TagSet{}
				}
				if _, err := app.Client.CreateTrade(ctx, trade); err != nil {
					output.Error("Failed to import trade %s: %v", trade.Symbol, err)
					return err
				}
				imported++
			}

			if output.IsJSON() {
				return output.JSON(map[string]any{"file": args[0], "imported": imported})
			}
			output.Success("Imported %d trades from %s", imported, args[0])
			return nil
		},
	}
}

func newDataSeedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo trades",
		Long:  "Generate realistic random trades and add them to the journal.",
		Example: `  journal data seed
  journal data seed --count 50 --days 30 --win-probability 0.55`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
			defer cancel()

			count, _ := cmd.Flags().GetInt("count")
			days, _ := cmd.Flags().GetInt("days")
			winProb, _ := cmd.Flags().GetFloat64("win-probability")
			seed, _ := cmd.Flags().GetInt64("seed")

			opts := generator.Options{
				Count:          count,
				DayRange:       days,
				WinProbability: &winProb,
			}
			if cmd.Flags().Changed("seed") {
				opts.Rand = generator.SeededRand(seed)
			}

			trades := generator.Generate(opts)
			for _, trade := range trades {
				trade.ID = 0
				if _, err := app.Client.CreateTrade(ctx, trade); err != nil {
					output.Error("Failed to add generated trade: %v", err)
					return err
				}
			}

			if output.IsJSON() {
				return output.JSON(map[string]any{"seeded": len(trades)})
			}
			output.Success("Seeded %d demo trades", len(trades))
			return nil
		},
	}

	cmd.Flags().Int("count", 100, "number of trades to generate")
	cmd.Flags().Int("days", 90, "spread entry dates over this many past days")
	cmd.Flags().Float64("win-probability", 0.6, "probability a generated trade is a win")
	cmd.Flags().Int64("seed", 0, "random seed for reproducible output")

	return cmd
}
