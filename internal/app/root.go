// Package app contains the Cobra command tree for portfolio.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/macjunkins/portfolio/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Status reporting across a portfolio of projects",
	Long: `portfolio aggregates per-project status signals and renders a
health report for every project in your portfolio. It combines local
git state (branch, latest commit, uncommitted changes) with remote
GitHub data (issues, milestones, roadmap presence) and scores each
project from 0 to 100.

Run 'portfolio status' to print the terminal report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Styled output only when writing to a real terminal.
		if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
			output.SetNoColor(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("portfolio", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  status    Render the portfolio health report to the terminal")
		fmt.Println("  report    Generate the markdown portfolio report")
		fmt.Println("  doctor    Check whether the portfolio setup is healthy")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ./portfolio.yaml or ~/.config/portfolio/portfolio.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
