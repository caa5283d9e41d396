package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/models"
	"stock-researcher/internal/portfolio"
)

func newPortfolioCmd(app *App) *cobra.Command {
	var watchlistName string

	cmd := &cobra.Command{
		Use:   "portfolio [ticker]...",
		Short: "Analyze a portfolio of tickers",
		Long: `Analyze multiple tickers and rank them by a composite of news
sentiment and technical signals. Tickers come from the arguments or,
with --watchlist, from a stored watchlist. At most 20 tickers are
allowed per run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			tickers := args
			watchlistID := ""
			if watchlistName != "" {
				if app.Store == nil {
					return fmt.Errorf("watchlist store unavailable")
				}
				stored, err := app.Store.GetWatchlist(cmd.Context(), watchlistName)
				if err != nil {
					if apperrors.Is(err, apperrors.ErrWatchlistNotFound) {
						output.Error("Watchlist %q not found", watchlistName)
						return err
					}
					return err
				}
				tickers = stored
				watchlistID = watchlistName
			}
			if len(tickers) == 0 {
				output.Warning("No tickers provided")
				return nil
			}

			report, err := app.Portfolio.Run(cmd.Context(), portfolio.Request{
				Tickers:     tickers,
				WatchlistID: watchlistID,
			})
			if err != nil {
				output.Error("Request rejected: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(report)
			}
			renderPortfolioReport(output, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&watchlistName, "watchlist", "w", "", "analyze a stored watchlist")
	return cmd
}

func renderPortfolioReport(output *Output, report models.PortfolioReport) {
	output.Bold("Portfolio Analysis (%d tickers)", len(report.Tickers))
	output.Dim("Generated: %s", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	output.Println()

	if report.Error != "" {
		output.Warning("Partial results: %s", report.Error)
		output.Println()
	}

	if summary := report.PortfolioSummary; summary != nil {
		output.Printf("Overall Sentiment: %.2f\n", summary.OverallSentiment)
		output.Printf("Bullish %d / Neutral %d / Bearish %d\n",
			summary.BullishCount, summary.NeutralCount, summary.BearishCount)
		if len(summary.TopOpportunities) > 0 {
			output.Success("Top opportunities: %s", strings.Join(summary.TopOpportunities, ", "))
		}
		if len(summary.RiskAlerts) > 0 {
			output.Warning("Risk alerts: %s", strings.Join(summary.RiskAlerts, ", "))
		}
		output.Println()
	}

	if len(report.Recommendations) > 0 {
		table := NewTable(output, "Ticker", "Action", "Score", "Sentiment", "Signal", "Priority")
		for _, rec := range report.Recommendations {
			table.AddRow(
				rec.Ticker,
				string(rec.Action),
				fmt.Sprintf("%.2f", rec.Score),
				fmt.Sprintf("%.2f", rec.Sentiment),
				output.Signal(string(rec.Signal)),
				fmt.Sprintf("%d", rec.Priority),
			)
		}
		table.Render()
		output.Println()
	}

	if risk := report.RiskMetrics; risk != nil {
		output.Bold("Risk: %s", string(risk.RiskLevel))
		output.Printf("  Overall Risk:    %.2f\n", risk.OverallRiskScore)
		output.Printf("  Avg Sentiment:   %.2f\n", risk.AverageSentiment)
		output.Printf("  Volatility:      %.2f\n", risk.SentimentVolatility)
		if len(risk.HighRiskPositions) > 0 {
			output.Printf("  High Risk:       %s\n", strings.Join(risk.HighRiskPositions, ", "))
		}
		if len(risk.BearishSignals) > 0 {
			output.Printf("  Bearish Signals: %s\n", strings.Join(risk.BearishSignals, ", "))
		}
	}
}
