package main

import (
	"os"

	"github.com/spf13/cobra"
	"xscraper/pkg/logger"
	"xscraper/pkg/ui"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [user-id]",
	Short: "Fetch a timeline and aggregate it in one shot",
	Long: `Fetch the user's timeline into the record log, then immediately
aggregate the log into the ranked CSV summaries. Equivalent to running
'xscraper fetch' followed by 'xscraper process' with the same settings.

If the fetch stops early the log still holds everything fetched so far,
and the summaries are built from it.`,
	Example: `  # Fetch and summarize in one invocation
  xscraper run 2244994945

  # Cap the run at 500 tweets and show the top 5 rows
  xscraper run 2244994945 --max-results 500 --top 5

  # Watch the fetch in the terminal dashboard
  xscraper run 2244994945 --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runRun(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Local flags for run command
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the record log and summaries (default: current directory)")
	runCmd.Flags().StringVar(&tweetsFile, "tweets-file", "", "record log filename (default: tweets.jsonl)")
	runCmd.Flags().StringVar(&mentionsFile, "mentions-file", "", "mentions summary filename (default: mentions.csv)")
	runCmd.Flags().StringVar(&annotationsFile, "annotations-file", "", "annotations summary filename (default: annotations.csv)")
	runCmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum number of tweets to fetch (default: 2000)")
	runCmd.Flags().StringVarP(&accountLabel, "account", "a", "", "stored account to use for this run")
	runCmd.Flags().BoolVar(&useTUI, "tui", false, "show the fetch in a terminal dashboard")
	runCmd.Flags().IntVar(&topN, "top", 10, "number of top rows to print per summary (0 disables)")
}

func runRun(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()
	userID := resolveUserID(cfg, args)

	if !cfg.Fetch.UseTUI {
		ui.PrintInfo("Target User", userID)
	}

	resolveCredentials(cfg)

	logger.WithFields(map[string]interface{}{
		"user_id":     userID,
		"max_results": cfg.Fetch.MaxResults,
	}).Info("Starting run operation")

	if err := fetchTimeline(cfg, userID); err != nil {
		os.Exit(1)
	}

	if err := processLog(cfg); err != nil {
		os.Exit(1)
	}
}
