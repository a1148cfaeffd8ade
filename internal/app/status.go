package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/macjunkins/portfolio/internal/config"
	"github.com/macjunkins/portfolio/internal/github"
	"github.com/macjunkins/portfolio/internal/gitlocal"
	"github.com/macjunkins/portfolio/internal/output"
	"github.com/macjunkins/portfolio/internal/report"
)

var (
	statusFlagLookback int
	statusFlagMarkdown string
	statusFlagJSON     bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Render the portfolio health report to the terminal",
	Long: `Status fetches remote data for every configured project in one
batch, inspects each local working copy, scores project health, and
prints a summary panel, a per-project table, and a quick recap.

Pass --markdown to additionally write the full markdown report to a
file.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusFlagLookback, "lookback", "l", -1, "Days of commit history to consider (overrides config)")
	statusCmd.Flags().StringVar(&statusFlagMarkdown, "markdown", "", "Also write the markdown report to this file")
	statusCmd.Flags().BoolVar(&statusFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, projects, warnings, err := gather(ctx, cmd)
	if err != nil {
		return err
	}
	if projects == nil {
		// Nothing configured; gather already said so.
		return nil
	}

	if statusFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	report.WriteWarnings(os.Stdout, warnings)
	report.WriteTerminal(os.Stdout, projects, cfg.Reports.CommitLookbackDays)
	report.WriteQuickSummary(os.Stdout, projects)

	if statusFlagMarkdown != "" {
		md := report.Markdown(projects, cfg.Reports.CommitLookbackDays, cfg.Reports.DateFormat, time.Now())
		if err := os.WriteFile(statusFlagMarkdown, []byte(md), 0o644); err != nil {
			return fmt.Errorf("writing markdown report: %w", err)
		}
		fmt.Printf(" %s\n", output.StyleMuted.Render("Markdown report written to "+statusFlagMarkdown))
	}

	return nil
}

// gather loads configuration, applies the lookback override, and runs
// the full aggregation. A nil project slice with a nil error means the
// configuration holds no projects.
func gather(ctx context.Context, cmd *cobra.Command) (*config.Config, []report.Project, []string, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	// A negative CLI override is clamped to zero rather than rejected.
	if cmd.Flags().Changed("lookback") {
		lookback, _ := cmd.Flags().GetInt("lookback")
		if lookback < 0 {
			lookback = 0
		}
		cfg.Reports.CommitLookbackDays = lookback
	}

	if len(cfg.Projects) == 0 {
		fmt.Println(output.StyleWarning.Render("No projects found in configuration. Nothing to do."))
		return cfg, nil, nil, nil
	}

	client, err := github.NewFromEnv(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("github client: %w", err)
	}

	if flagVerbose {
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Fetching GitHub data for %d project(s)...", len(cfg.Projects))))
	}

	projects, warnings := report.Aggregate(ctx, cfg, client, gitlocal.Inspector{})
	return cfg, projects, warnings, nil
}
