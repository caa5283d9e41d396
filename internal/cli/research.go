package cli

import (
	"github.com/spf13/cobra"

	"stock-researcher/internal/models"
)

func newResearchCmd(app *App) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "research <ticker>",
		Short: "Run full research analysis for a ticker",
		Long: `Run the complete research workflow for a single ticker:
news sentiment, technical indicators, trading signals and a synthesized
summary with recommendations and a risk score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			report := app.Researcher.Run(cmd.Context(), args[0], query)

			if output.IsJSON() {
				return output.JSON(report)
			}
			renderResearchReport(output, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "optional research focus")
	return cmd
}

func renderResearchReport(output *Output, report models.ResearchReport) {
	output.Bold("Research Report: %s", report.Ticker)
	output.Dim("Generated: %s", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	output.Println()

	if report.Error != "" {
		output.Warning("Partial results: %s", report.Error)
		output.Println()
	}

	if report.Summary != "" {
		output.Println(report.Summary)
	}

	if report.Technical != nil && report.Technical.Signals != nil {
		sig := report.Technical.Signals
		table := NewTable(output, "Indicator", "Signal")
		table.AddRow("RSI", string(sig.RSISignal))
		table.AddRow("MACD", string(sig.MACDSignal))
		table.AddRow("Bollinger", string(sig.BollingerSignal))
		table.AddRow("MA Cross", string(sig.MASignal))
		table.Render()
		output.Println()
		output.Printf("Overall: %s (strength %+d)\n", output.Signal(string(sig.Overall)), sig.Strength)
		output.Println()
	}

	if len(report.Recommendations) > 0 {
		output.Bold("Recommendations")
		for _, rec := range report.Recommendations {
			output.Printf("  - %s\n", rec)
		}
		output.Println()
	}

	output.Printf("Risk Score: %.2f\n", report.RiskScore)
}
