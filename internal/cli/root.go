package cli

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stock-researcher/internal/config"
	"stock-researcher/internal/logging"
	"stock-researcher/internal/marketdata"
	"stock-researcher/internal/newsdata"
	"stock-researcher/internal/portfolio"
	"stock-researcher/internal/research"
	"stock-researcher/internal/sentiment"
	"stock-researcher/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Researcher *research.Researcher
	Portfolio  *portfolio.Analyzer
	Sentiment  *sentiment.Flow
	Store      store.WatchlistStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	prices := marketdata.NewYahooClient(cfg.Providers.RequestTimeout)
	news := newsdata.NewNewsAPIClient(cfg.Providers.NewsAPIKey, cfg.Providers.RequestTimeout)

	var scorer sentiment.PolarityScorer = sentiment.NewLexiconScorer()
	if cfg.Providers.OpenAIAPIKey != "" {
		scorer = sentiment.NewOpenAIScorer(cfg.Providers.OpenAIAPIKey, cfg.Providers.OpenAIModel)
		logger.Debug().Str("model", cfg.Providers.OpenAIModel).Msg("OpenAI polarity scorer initialized")
	}
	analyzer := sentiment.NewAnalyzer(scorer)

	app.Researcher = research.NewResearcher(prices, news, analyzer, logger,
		research.WithNewsLimit(cfg.Analysis.NewsLimit),
		research.WithPeriod(cfg.Analysis.ResearchPeriod))
	app.Portfolio = portfolio.NewAnalyzer(prices, news, analyzer, logger,
		portfolio.WithConcurrency(cfg.Analysis.FetchConcurrency),
		portfolio.WithPeriod(cfg.Analysis.PortfolioPeriod))
	app.Sentiment = sentiment.NewFlow(analyzer, logger)

	dbPath := filepath.Join(config.DefaultConfigDir(), "researcher.db")
	watchlists, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, watchlist features unavailable")
	} else {
		app.Store = watchlists
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "researcher",
		Short: "Stock Researcher - sentiment and technical analysis CLI",
		Long: `Stock Researcher combines news sentiment with technical indicators
to produce ranked recommendations for single tickers and portfolios.

Use 'researcher help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), app.Logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/stock-researcher)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newResearchCmd(app))
	rootCmd.AddCommand(newSentimentCmd(app))
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newWatchlistCmd(app))

	return rootCmd
}

// ConfigDirFromArgs extracts the --config flag value ahead of cobra
// parsing, so configuration can be loaded before the command tree is
// built.
func ConfigDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Stock Researcher v%s\n", Version)
			}
		},
	}
}
