package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"xscraper/pkg/aggregate"
	"xscraper/pkg/config"
	"xscraper/pkg/logger"
	"xscraper/pkg/ui"
)

var (
	// Process command flags
	mentionsFile    string
	annotationsFile string
	topN            int
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Aggregate the record log into ranked CSV summaries",
	Long: `Read the JSONL record log and write two ranked summaries:

  mentions.csv     @-mentions grouped by username
  annotations.csv  context annotations grouped by normalized text

Rows are ranked by occurrence count (descending), ties broken
alphabetically. Each row carries the newest tweet the key appeared in and
a permalink to it. The CSVs are replaced atomically on every run, so the
command is safe to re-run after each fetch.`,
	Example: `  # Summarize the default record log
  xscraper process

  # Summarize a specific log and show the top 5 rows
  xscraper process --output ./data --top 5

  # Write summaries without printing them
  xscraper process --top 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runProcess(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Local flags for process command
	processCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory holding the record log and summaries (default: current directory)")
	processCmd.Flags().StringVar(&tweetsFile, "tweets-file", "", "record log filename (default: tweets.jsonl)")
	processCmd.Flags().StringVar(&mentionsFile, "mentions-file", "", "mentions summary filename (default: mentions.csv)")
	processCmd.Flags().StringVar(&annotationsFile, "annotations-file", "", "annotations summary filename (default: annotations.csv)")
	processCmd.Flags().IntVar(&topN, "top", 10, "number of top rows to print per summary (0 disables)")
}

func runProcess(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()

	logger.WithField("log", cfg.TweetsPath()).Info("Starting process operation")

	if err := processLog(cfg); err != nil {
		os.Exit(1)
	}
}

// processLog aggregates the record log into the ranked CSV summaries and
// prints the leading rows of each.
func processLog(cfg *config.Config) error {
	ui.PrintHighlight("[AGGREGATING RECORD LOG]")

	s := aggregate.New(cfg.Twitter.Handle, logger.GetLogger())

	mentions, annotations, err := s.Summarize(cfg.TweetsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ui.PrintError("No record log found at %s", cfg.TweetsPath())
			fmt.Println("\nFetch a timeline first:")
			fmt.Println("  xscraper fetch <user-id>")
			return err
		}
		logger.WithError(err).Error("Aggregation failed")
		ui.PrintError("AGGREGATION FAILED: %v", err)
		return err
	}

	if err := aggregate.WriteSummaries(cfg.MentionsPath(), cfg.AnnotationsPath(), mentions, annotations); err != nil {
		logger.WithError(err).Error("Failed to write summaries")
		ui.PrintError("Failed to write summaries: %v", err)
		return err
	}

	logger.WithFields(map[string]interface{}{
		"mentions":    len(mentions),
		"annotations": len(annotations),
	}).Info("Summaries written")

	ui.PrintSuccess(fmt.Sprintf("Wrote %s (%d rows)", cfg.MentionsPath(), len(mentions)))
	ui.PrintSuccess(fmt.Sprintf("Wrote %s (%d rows)", cfg.AnnotationsPath(), len(annotations)))

	if topN > 0 {
		printTopRows("TOP MENTIONS", mentions, topN)
		printTopRows("TOP ANNOTATIONS", annotations, topN)
	}

	return nil
}

// printTopRows prints the first n ranked rows of a summary table.
func printTopRows(title string, rows []aggregate.SummaryRow, n int) {
	if ui.IsQuietMode() || len(rows) == 0 {
		return
	}
	if n > len(rows) {
		n = len(rows)
	}

	fmt.Println()
	fmt.Println(ui.Magenta(title))
	for i := 0; i < n; i++ {
		row := rows[i]
		fmt.Printf("  %2d. %-30s %6d  last seen %s\n",
			i+1, row.Key, row.Count, row.LastSeenAt.UTC().Format("2006-01-02"))
	}
	if len(rows) > n {
		fmt.Printf("      ... and %d more\n", len(rows)-n)
	}
}
