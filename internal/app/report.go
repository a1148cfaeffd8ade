package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/macjunkins/portfolio/internal/output"
	"github.com/macjunkins/portfolio/internal/report"
)

var (
	reportFlagLookback int
	reportFlagOut      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the markdown portfolio report",
	Long: `Report runs the same aggregation as status and emits the full
markdown document: executive summary, projects grouped by strategic
pillar, milestones, issue breakdowns, and health notes.

The report goes to stdout unless --out names a file.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVarP(&reportFlagLookback, "lookback", "l", -1, "Days of commit history to consider (overrides config)")
	reportCmd.Flags().StringVarP(&reportFlagOut, "out", "o", "", "Write the report to this file instead of stdout")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, projects, warnings, err := gather(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	if projects == nil {
		return nil
	}

	report.WriteWarnings(os.Stderr, warnings)

	md := report.Markdown(projects, cfg.Reports.CommitLookbackDays, cfg.Reports.DateFormat, time.Now())

	if reportFlagOut == "" {
		fmt.Print(md)
		return nil
	}
	if err := os.WriteFile(reportFlagOut, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing markdown report: %w", err)
	}
	fmt.Printf(" %s\n", output.StyleMuted.Render("Markdown report written to "+reportFlagOut))
	return nil
}
