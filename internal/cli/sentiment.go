package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newSentimentCmd(app *App) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "sentiment [text]...",
		Short: "Analyze sentiment of one or more texts",
		Long: `Analyze the sentiment of the given texts and aggregate the results.
Each argument is treated as one text. With --stdin, texts are read one
per line instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			texts := args
			if fromStdin {
				texts = nil
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					texts = append(texts, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}
			if len(texts) == 0 {
				output.Warning("No texts provided")
				return nil
			}

			report := app.Sentiment.Run(cmd.Context(), texts, nil)
			if output.IsJSON() {
				return output.JSON(report)
			}

			if report.Error != "" {
				output.Warning("Partial results: %s", report.Error)
			}
			if report.Aggregated == nil {
				output.Warning("No analyzable text after preprocessing")
				return nil
			}

			agg := report.Aggregated
			output.Bold("Sentiment Analysis (%d texts)", report.TextCount)
			output.Printf("  Score:      %.3f (%s)\n", agg.Score, agg.Label)
			output.Printf("  Confidence: %.3f (%s)\n", agg.Confidence, agg.ConfidenceLevel)
			output.Printf("  %s\n", agg.Interpretation)
			output.Printf("  Positive %d / Neutral %d / Negative %d\n",
				agg.PositiveCount, agg.NeutralCount, agg.NegativeCount)
			if len(report.KeyTopics) > 0 {
				output.Printf("  Topics: %s\n", strings.Join(report.KeyTopics, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read texts from stdin, one per line")
	return cmd
}
