package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stock-researcher/internal/logging"
	"stock-researcher/internal/marketdata"
)

func newWatchlistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage stored watchlists",
	}

	var listName string

	addCmd := &cobra.Command{
		Use:   "add <ticker>...",
		Short: "Add tickers to a watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("watchlist store unavailable")
			}
			output := NewOutput(cmd)
			for _, ticker := range args {
				symbol, err := marketdata.SanitizeSymbol(ticker)
				if err != nil {
					output.Error("Invalid ticker %q: %v", ticker, err)
					return err
				}
				if err := app.Store.AddToWatchlist(cmd.Context(), symbol, listName); err != nil {
					return err
				}
				logger := logging.FromContext(cmd.Context())
				logger.Debug().
					Str("symbol", symbol).
					Str("list", displayName(listName)).
					Msg("Watchlist entry added")
				output.Success("Added %s to %s", symbol, displayName(listName))
			}
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <ticker>...",
		Short: "Remove tickers from a watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("watchlist store unavailable")
			}
			output := NewOutput(cmd)
			for _, ticker := range args {
				symbol, err := marketdata.SanitizeSymbol(ticker)
				if err != nil {
					return err
				}
				if err := app.Store.RemoveFromWatchlist(cmd.Context(), symbol, listName); err != nil {
					return err
				}
				logger := logging.FromContext(cmd.Context())
				logger.Debug().
					Str("symbol", symbol).
					Str("list", displayName(listName)).
					Msg("Watchlist entry removed")
				output.Success("Removed %s from %s", symbol, displayName(listName))
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show watchlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("watchlist store unavailable")
			}
			output := NewOutput(cmd)

			if listName != "" {
				symbols, err := app.Store.GetWatchlist(cmd.Context(), listName)
				if err != nil {
					return err
				}
				if output.IsJSON() {
					return output.JSON(map[string][]string{listName: symbols})
				}
				output.Bold("%s", listName)
				output.Printf("  %s\n", strings.Join(symbols, ", "))
				return nil
			}

			lists, err := app.Store.GetAllWatchlists(cmd.Context())
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(lists)
			}
			if len(lists) == 0 {
				output.Dim("No watchlists yet")
				return nil
			}
			for name, symbols := range lists {
				output.Bold("%s", name)
				output.Printf("  %s\n", strings.Join(symbols, ", "))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&listName, "list", "l", "", "watchlist name (default: default)")
	cmd.AddCommand(addCmd, removeCmd, showCmd)
	return cmd
}

func displayName(listName string) string {
	if listName == "" {
		return "default"
	}
	return listName
}
