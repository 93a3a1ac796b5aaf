package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/logging"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
	"github.com/sahastranshpratap/trading-helping-tool/internal/store"
)

const commandTimeout = 30 * time.Second

// addTradeCommands adds trade CRUD commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade management",
		Long:  "Record, review, update and delete journal trades.",
	}

	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal trades",
		Long:  "List trades with optional filtering and pagination.",
		Example: `  journal trade list
  journal trade list --symbol AAPL --strategy Breakout
  journal trade list --start 2025-01-01 --end 2025-03-31 --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			filter, err := buildTradeFilter(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			page, err := app.Client.ListTrades(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(page)
			}

			if len(page.Trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Symbol", "Side", "Qty", "Entry", "Exit", "P&L", "Strategy")
			for _, t := range page.Trades {
				table.AddRow(
					fmt.Sprintf("%d", t.ID),
					FormatDate(t.EntryDate.Time),
					t.Symbol,
					string(t.Position),
					fmt.Sprintf("%d", t.Quantity),
					FormatCurrency(t.Entry),
					FormatCurrency(t.Exit),
					output.FormatPnL(t.PnL),
					TruncateString(t.Strategy, 18),
				)
			}
			table.Render()

			output.Println()
			output.Dim("Page %d of %d (%d trades total)", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol (substring match)")
	cmd.Flags().String("strategy", "", "filter by strategy (exact match)")
	cmd.Flags().String("position", "", "filter by position (Long or Short)")
	cmd.Flags().String("start", "", "filter by entry date from (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "filter by entry date to (YYYY-MM-DD)")
	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("page-size", 25, "trades per page")

	return cmd
}

func buildTradeFilter(cmd *cobra.Command) (store.TradeFilter, error) {
	var filter store.TradeFilter

	filter.Symbol, _ = cmd.Flags().GetString("symbol")
	filter.Strategy, _ = cmd.Flags().GetString("strategy")
	filter.Page, _ = cmd.Flags().GetInt("page")
	filter.PageSize, _ = cmd.Flags().GetInt("page-size")

	if position, _ := cmd.Flags().GetString("position"); position != "" {
		side := models.Side(position)
		if !side.Valid() {
			return filter, &errors.ValidationError{Field: "position", Value: position, Message: "must be Long or Short"}
		}
		filter.Position = side
	}

	if start, _ := cmd.Flags().GetString("start"); start != "" {
		d, err := models.ParseDate(start)
		if err != nil {
			return filter, &errors.ValidationError{Field: "start", Value: start, Message: "must be YYYY-MM-DD"}
		}
		filter.StartDate = &d
	}

	if end, _ := cmd.Flags().GetString("end"); end != "" {
		d, err := models.ParseDate(end)
		if err != nil {
			return filter, &errors.ValidationError{Field: "end", Value: end, Message: "must be YYYY-MM-DD"}
		}
		filter.EndDate = &d
	}

	return filter, nil
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			id, err := parseTradeID(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trade, err := app.Client.GetTrade(ctx, id)
			if err != nil {
				if errors.Is(err, errors.ErrNotFound) {
					output.Error("Trade %d not found", id)
				} else {
					output.Error("Failed to fetch trade: %v", err)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			printTradeDetail(output, trade)
			return nil
		},
	}
}

func printTradeDetail(output *Output, t models.Trade) {
	output.Bold("Trade #%d - %s", t.ID, t.Symbol)
	output.Println()
	output.Printf("  Position:   %s\n", t.Position)
	output.Printf("  Quantity:   %d\n", t.Quantity)
	output.Printf("  Entry:      %s on %s\n", FormatCurrency(t.Entry), FormatDate(t.EntryDate.Time))
	if t.ExitDate != nil {
		output.Printf("  Exit:       %s on %s\n", FormatCurrency(t.Exit), FormatDate(t.ExitDate.Time))
	} else {
		output.Printf("  Exit:       %s\n", FormatCurrency(t.Exit))
	}
	output.Printf("  P&L:        %s\n", output.FormatPnL(t.PnL))
	output.Printf("  Fees:       %s\n", FormatCurrency(t.Fees))
	if t.StopLoss != nil {
		output.Printf("  Stop Loss:  %s\n", FormatCurrency(*t.StopLoss))
	}
	if t.Target != nil {
		output.Printf("  Target:     %s\n", FormatCurrency(*t.Target))
	}
	output.Printf("  Strategy:   %s\n", t.Strategy)
	if t.TimeOfDay != "" {
		output.Printf("  Time:       %s\n", t.TimeOfDay)
	}
	if t.Emotion != "" {
		output.Printf("  Emotion:    %s\n", t.Emotion)
	}
	if t.PerformanceRating > 0 {
		output.Printf("  Rating:     %d/5\n", t.PerformanceRating)
	}

	if len(t.Tags) > 0 {
		output.Println()
		output.Bold("Tags")
		for _, category := range t.Tags.Categories() {
			output.Printf("  %s: %s\n", category, strings.Join(t.Tags[category], ", "))
		}
	}

	if len(t.Mistakes) > 0 {
		output.Println()
		output.Bold("Mistakes")
		for _, m := range t.Mistakes {
			output.Printf("  - %s\n", m)
		}
	}

	if t.Notes != "" {
		output.Println()
		output.Bold("Notes")
		output.Printf("  %s\n", t.Notes)
	}
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		Long:  "Record a completed trade in the journal.",
		Example: `  journal trade add --symbol AAPL --entry 182.50 --exit 187.20 --quantity 10 --position Long
  journal trade add --symbol TSLA --entry 240 --exit 232 --quantity 5 --position Short --strategy "Gap and Go"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			trade, err := tradeFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			created, err := app.Client.CreateTrade(ctx, trade)
			if err != nil {
				output.Error("Failed to create trade: %v", err)
				return err
			}

			logging.LogTrade(app.Logger, "trade_created", created.ID, created.Symbol, created.PnL)

			if output.IsJSON() {
				return output.JSON(created)
			}
			output.Success("Trade #%d recorded: %s %s x%d, P&L %s",
				created.ID, created.Position, created.Symbol, created.Quantity, output.FormatPnL(created.PnL))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "ticker symbol (required)")
	cmd.Flags().Float64("entry", 0, "entry price (required)")
	cmd.Flags().Float64("exit", 0, "exit price (required)")
	cmd.Flags().Int("quantity", 0, "quantity (required)")
	cmd.Flags().String("position", "Long", "position side (Long or Short)")
	cmd.Flags().String("strategy", "", "strategy name")
	cmd.Flags().String("entry-date", "", "entry date (YYYY-MM-DD, default today)")
	cmd.Flags().String("exit-date", "", "exit date (YYYY-MM-DD)")
	cmd.Flags().Float64("fees", 0, "fees and commissions")
	cmd.Flags().Float64("stop-loss", 0, "stop loss price")
	cmd.Flags().Float64("target", 0, "target price")
	cmd.Flags().String("emotion", "", "emotional state during the trade")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().Int("rating", 0, "performance self-rating (1-5)")

	return cmd
}

func tradeFromFlags(cmd *cobra.Command) (models.Trade, error) {
	var trade models.Trade

	trade.Symbol, _ = cmd.Flags().GetString("symbol")
	if trade.Symbol == "" {
		return trade, &errors.ValidationError{Field: "symbol", Value: "", Message: "is required"}
	}
	trade.Symbol = strings.ToUpper(trade.Symbol)

	trade.Entry, _ = cmd.Flags().GetFloat64("entry")
	if trade.Entry <= 0 {
		return trade, &errors.ValidationError{Field: "entry", Value: trade.Entry, Message: "must be positive"}
	}

	trade.Exit, _ = cmd.Flags().GetFloat64("exit")
	if trade.Exit <= 0 {
		return trade, &errors.ValidationError{Field: "exit", Value: trade.Exit, Message: "must be positive"}
	}

	trade.Quantity, _ = cmd.Flags().GetInt("quantity")
	if trade.Quantity <= 0 {
		return trade, &errors.ValidationError{Field: "quantity", Value: trade.Quantity, Message: "must be positive"}
	}

	position, _ := cmd.Flags().GetString("position")
	trade.Position = models.Side(position)
	if !trade.Position.Valid() {
		return trade, &errors.ValidationError{Field: "position", Value: position, Message: "must be Long or Short"}
	}

	trade.Strategy, _ = cmd.Flags().GetString("strategy")
	trade.Fees, _ = cmd.Flags().GetFloat64("fees")
	trade.Emotion, _ = cmd.Flags().GetString("emotion")
	trade.Notes, _ = cmd.Flags().GetString("notes")

	rating, _ := cmd.Flags().GetInt("rating")
	if rating < 0 || rating > 5 {
		return trade, &errors.ValidationError{Field: "rating", Value: rating, Message: "must be between 1 and 5"}
	}
	trade.PerformanceRating = rating

	if entryDate, _ := cmd.Flags().GetString("entry-date"); entryDate != "" {
		d, err := models.ParseDate(entryDate)
		if err != nil {
			return trade, &errors.ValidationError{Field: "entry-date", Value: entryDate, Message: "must be YYYY-MM-DD"}
		}
		trade.EntryDate = d
	} else {
		trade.EntryDate = models.NewDate(time.Now())
	}

	if exitDate, _ := cmd.Flags().GetString("exit-date"); exitDate != "" {
		d, err := models.ParseDate(exitDate)
		if err != nil {
			return trade, &errors.ValidationError{Field: "exit-date", Value: exitDate, Message: "must be YYYY-MM-DD"}
		}
		if d.Before(trade.EntryDate.Time) {
			return trade, &errors.ValidationError{Field: "exit-date", Value: exitDate, Message: "must not be before entry-date"}
		}
		trade.ExitDate = &d
	}

	if stopLoss, _ := cmd.Flags().GetFloat64("stop-loss"); stopLoss > 0 {
		trade.StopLoss = &stopLoss
	}
	if target, _ := cmd.Flags().GetFloat64("target"); target > 0 {
		trade.Target = &target
	}

	trade.PnL = round2(trade.NetPnL())
	trade.Tags = models.TagSet{}
	return trade, nil
}

func newTradeEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a trade",
		Long:  "Apply a partial update to an existing trade. Only provided flags change.",
		Example: `  journal trade edit 42 --exit 191.30
  journal trade edit 42 --notes "Held through earnings" --rating 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			id, err := parseTradeID(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			patch, err := patchFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			current, err := app.Client.GetTrade(ctx, id)
			if err != nil {
				if errors.Is(err, errors.ErrNotFound) {
					output.Error("Trade %d not found", id)
				} else {
					output.Error("Failed to fetch trade: %v", err)
				}
				return err
			}

			if err := finalizePatch(current, &patch); err != nil {
				output.Error("%v", err)
				return err
			}

			updated, err := app.Client.UpdateTrade(ctx, id, patch)
			if err != nil {
				if errors.Is(err, errors.ErrNotFound) {
					output.Error("Trade %d not found", id)
				} else {
					output.Error("Failed to update trade: %v", err)
				}
				return err
			}

			logging.LogTrade(app.Logger, "trade_updated", updated.ID, updated.Symbol, updated.PnL)

			if output.IsJSON() {
				return output.JSON(updated)
			}
			output.Success("Trade #%d updated", updated.ID)
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "ticker symbol")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Int("quantity", 0, "quantity")
	cmd.Flags().String("position", "", "position side (Long or Short)")
	cmd.Flags().String("strategy", "", "strategy name")
	cmd.Flags().String("exit-date", "", "exit date (YYYY-MM-DD)")
	cmd.Flags().Float64("fees", -1, "fees and commissions")
	cmd.Flags().Float64("pnl", 0, "override the computed P&L")
	cmd.Flags().String("emotion", "", "emotional state during the trade")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().Int("rating", 0, "performance self-rating (1-5)")

	return cmd
}

func patchFromFlags(cmd *cobra.Command) (models.TradePatch, error) {
	var patch models.TradePatch

	if cmd.Flags().Changed("symbol") {
		symbol, _ := cmd.Flags().GetString("symbol")
		symbol = strings.ToUpper(symbol)
		patch.Symbol = &symbol
	}
	if cmd.Flags().Changed("entry") {
		entry, _ := cmd.Flags().GetFloat64("entry")
		if entry <= 0 {
			return patch, &errors.ValidationError{Field: "entry", Value: entry, Message: "must be positive"}
		}
		patch.Entry = &entry
	}
	if cmd.Flags().Changed("exit") {
		exit, _ := cmd.Flags().GetFloat64("exit")
		if exit <= 0 {
			return patch, &errors.ValidationError{Field: "exit", Value: exit, Message: "must be positive"}
		}
		patch.Exit = &exit
	}
	if cmd.Flags().Changed("quantity") {
		quantity, _ := cmd.Flags().GetInt("quantity")
		if quantity <= 0 {
			return patch, &errors.ValidationError{Field: "quantity", Value: quantity, Message: "must be positive"}
		}
		patch.Quantity = &quantity
	}
	if cmd.Flags().Changed("position") {
		position, _ := cmd.Flags().GetString("position")
		side := models.Side(position)
		if !side.Valid() {
			return patch, &errors.ValidationError{Field: "position", Value: position, Message: "must be Long or Short"}
		}
		patch.Position = &side
	}
	if cmd.Flags().Changed("strategy") {
		strategy, _ := cmd.Flags().GetString("strategy")
		patch.Strategy = &strategy
	}
	if cmd.Flags().Changed("exit-date") {
		exitDate, _ := cmd.Flags().GetString("exit-date")
		d, err := models.ParseDate(exitDate)
		if err != nil {
			return patch, &errors.ValidationError{Field: "exit-date", Value: exitDate, Message: "must be YYYY-MM-DD"}
		}
		patch.ExitDate = &d
	}
	if cmd.Flags().Changed("fees") {
		fees, _ := cmd.Flags().GetFloat64("fees")
		if fees < 0 {
			return patch, &errors.ValidationError{Field: "fees", Value: fees, Message: "must not be negative"}
		}
		patch.Fees = &fees
	}
	if cmd.Flags().Changed("pnl") {
		pnl, _ := cmd.Flags().GetFloat64("pnl")
		patch.PnL = &pnl
	}
	if cmd.Flags().Changed("emotion") {
		emotion, _ := cmd.Flags().GetString("emotion")
		patch.Emotion = &emotion
	}
	if cmd.Flags().Changed("notes") {
		notes, _ := cmd.Flags().GetString("notes")
		patch.Notes = &notes
	}
	if cmd.Flags().Changed("rating") {
		rating, _ := cmd.Flags().GetInt("rating")
		if rating < 1 || rating > 5 {
			return patch, &errors.ValidationError{Field: "rating", Value: rating, Message: "must be between 1 and 5"}
		}
		patch.PerformanceRating = &rating
	}

	return patch, nil
}

// finalizePatch checks the patch against the trade it will apply to and keeps
// the stored P&L consistent with the prices: when a field P&L derives from
// changes and no explicit override was given, the net result is recomputed.
func finalizePatch(current models.Trade, patch *models.TradePatch) error {
	if patch.ExitDate != nil && patch.ExitDate.Before(current.EntryDate.Time) {
		return &errors.ValidationError{
			Field:   "exit-date",
			Value:   patch.ExitDate.Format("2006-01-02"),
			Message: "must not be before the trade's entry date",
		}
	}
	if patch.PnL == nil && patchChangesPnLInputs(*patch) {
		pnl := round2(patch.Apply(current).NetPnL())
		patch.PnL = &pnl
	}
	return nil
}

func patchChangesPnLInputs(p models.TradePatch) bool {
	return p.Entry != nil || p.Exit != nil || p.Quantity != nil || p.Position != nil || p.Fees != nil
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			id, err := parseTradeID(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if err := app.Client.DeleteTrade(ctx, id); err != nil {
				if errors.Is(err, errors.ErrNotFound) {
					output.Error("Trade %d not found", id)
				} else {
					output.Error("Failed to delete trade: %v", err)
				}
				return err
			}

			logging.LogTrade(app.Logger, "trade_deleted", id, "", 0)

			if output.IsJSON() {
				return output.JSON(map[string]any{"deleted": id})
			}
			output.Success("Trade #%d deleted", id)
			return nil
		},
	}
}

func parseTradeID(arg string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id <= 0 {
		return 0, &errors.ValidationError{Field: "id", Value: arg, Message: "must be a positive integer"}
	}
	return id, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
