package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
	"github.com/sahastranshpratap/trading-helping-tool/internal/store"
)

// addSuggestCommands adds AI suggestion and chat commands.
func addSuggestCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSuggestCmd(app))
	rootCmd.AddCommand(newChatCmd(app))
}

func newSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "AI improvement suggestions",
		Long: `Analyze recent trades and produce improvement suggestions.

Falls back to built-in general suggestions when no AI provider is reachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			trades, err := recentTrades(ctx, app)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			suggestions, degraded := app.Suggest.Suggestions(ctx, trades)

			if output.IsJSON() {
				return output.JSON(suggestions)
			}

			if degraded {
				output.Warning("AI provider unavailable, showing general suggestions")
			}
			output.Bold("Trading Suggestions")
			output.Println()
			for i, s := range suggestions {
				if s.Category != "" {
					output.Bold("%d. %s  [%s]", i+1, s.Title, s.Category)
				} else {
					output.Bold("%d. %s", i+1, s.Title)
				}
				output.Printf("   %s\n\n", s.Description)
			}
			return nil
		},
	}
}

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <question>",
		Short: "Ask the AI assistant about your trading",
		Example: `  journal chat "What is my weakest strategy?"
  journal chat "How can I reduce my average loss?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			question := strings.Join(args, " ")

			trades, err := recentTrades(ctx, app)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			answer, err := app.Suggest.Chat(ctx, question, nil, trades)
			if err != nil {
				output.Error("Chat request failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"question": question, "answer": answer})
			}
			output.Println(answer)
			return nil
		},
	}
}

// recentTrades fetches the trades used as context for suggestions and chat.
func recentTrades(ctx context.Context, app *App) ([]models.Trade, error) {
	page, err := app.Client.ListTrades(ctx, store.TradeFilter{PageSize: 100})
	if err != nil {
		return nil, err
	}
	return page.Trades, nil
}
