package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// addSettingsCommands adds settings management commands.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "User settings",
		Long:  "View and change journal preferences.",
	}

	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))
	cmd.AddCommand(newSettingsResetCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			settings, err := app.Client.GetSettings(ctx)
			if err != nil {
				output.Error("Failed to load settings: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(settings)
			}

			output.Bold("Appearance")
			output.Printf("  Theme:              %s\n", settings.Appearance.Theme)
			output.Printf("  Data Visualization: %s\n", settings.Appearance.DataVisualization)
			output.Printf("  Compact Mode:       %v\n", settings.Appearance.CompactMode)
			output.Printf("  Font Size:          %s\n", settings.Appearance.FontSize)
			output.Println()

			output.Bold("Trading")
			output.Printf("  Default Position:  %s\n", settings.Trading.DefaultPosition)
			output.Printf("  Default Quantity:  %d\n", settings.Trading.DefaultQuantity)
			output.Printf("  Risk Percentage:   %.1f%%\n", settings.Trading.RiskPercentage)
			output.Printf("  Default Timeframe: %s\n", settings.Trading.DefaultTimeframe)
			output.Printf("  Preferred Markets: %s\n", strings.Join(settings.Trading.PreferredMarkets, ", "))
			output.Println()

			output.Bold("Notifications")
			output.Printf("  Email Alerts:    %v\n", settings.Notifications.EmailAlerts)
			output.Printf("  Trade Reminders: %v\n", settings.Notifications.TradeReminders)
			output.Printf("  Market News:     %v\n", settings.Notifications.MarketNews)
			output.Printf("  Price Alerts:    %v\n", settings.Notifications.PriceAlerts)
			output.Println()

			output.Bold("Privacy")
			output.Printf("  Public Profile: %v\n", settings.Privacy.PublicProfile)
			output.Printf("  Show Real Money: %v\n", settings.Privacy.ShowRealMoney)
			output.Printf("  Anonymize Data:  %v\n", settings.Privacy.AnonymizeData)
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long: `Change one setting by dotted key.

Keys use the form section.field, for example appearance.theme or
trading.default_quantity.`,
		Example: `  journal settings set appearance.theme light
  journal settings set trading.default_quantity 25
  journal settings set notifications.email_alerts false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			settings, err := app.Client.GetSettings(ctx)
			if err != nil {
				output.Error("Failed to load settings: %v", err)
				return err
			}

			key, value := args[0], args[1]
			if err := applySetting(&settings, key, value); err != nil {
				output.Error("%v", err)
				return err
			}

			if err := app.Client.UpdateSettings(ctx, settings); err != nil {
				output.Error("Failed to save settings: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"key": key, "value": value})
			}
			output.Success("%s set to %s", key, value)
			return nil
		},
	}
}

func newSettingsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Client.UpdateSettings(ctx, models.DefaultSettings()); err != nil {
				output.Error("Failed to save settings: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]bool{"reset": true})
			}
			output.Success("Settings restored to defaults")
			return nil
		},
	}
}

func applySetting(settings *models.Settings, key, value string) error {
	invalid := func(message string) error {
		return &errors.ValidationError{Field: key, Value: value, Message: message}
	}

	switch key {
	case "appearance.theme":
		if value != "dark" && value != "light" {
			return invalid("must be dark or light")
		}
		settings.Appearance.Theme = value
	case "appearance.data_visualization":
		settings.Appearance.DataVisualization = value
	case "appearance.compact_mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid("must be true or false")
		}
		settings.Appearance.CompactMode = b
	case "appearance.font_size":
		settings.Appearance.FontSize = value
	case "trading.default_position":
		side := models.Side(value)
		if !side.Valid() {
			return invalid("must be Long or Short")
		}
		settings.Trading.DefaultPosition = side
	case "trading.default_quantity":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return invalid("must be a positive integer")
		}
		settings.Trading.DefaultQuantity = n
	case "trading.risk_percentage":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 100 {
			return invalid("must be a percentage between 0 and 100")
		}
		settings.Trading.RiskPercentage = f
	case "trading.default_timeframe":
		settings.Trading.DefaultTimeframe = value
	case "notifications.email_alerts":
		return setBool(&settings.Notifications.EmailAlerts, value, invalid)
	case "notifications.trade_reminders":
		return setBool(&settings.Notifications.TradeReminders, value, invalid)
	case "notifications.market_news":
		return setBool(&settings.Notifications.MarketNews, value, invalid)
	case "notifications.price_alerts":
		return setBool(&settings.Notifications.PriceAlerts, value, invalid)
	case "privacy.public_profile":
		return setBool(&settings.Privacy.PublicProfile, value, invalid)
	case "privacy.show_real_money":
		return setBool(&settings.Privacy.ShowRealMoney, value, invalid)
	case "privacy.anonymize_data":
		return setBool(&settings.Privacy.AnonymizeData, value, invalid)
	default:
		return invalid("unknown setting")
	}
	return nil
}

func setBool(target *bool, value string, invalid func(string) error) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return invalid("must be true or false")
	}
	*target = b
	return nil
}
