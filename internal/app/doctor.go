package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/macjunkins/portfolio/internal/config"
	"github.com/macjunkins/portfolio/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the portfolio setup is healthy",
	Long: `Run a series of checks against your portfolio configuration and
environment. Prints a pass/fail line for each check and a summary of
how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var checks []doctorCheck

	// 1. Configuration — file loads and parses.
	cfg, err := config.Load(flagConfig)
	if err != nil {
		checks = append(checks, doctorCheck{
			Name:    "configuration",
			Message: err.Error(),
		})
	} else {
		checks = append(checks, doctorCheck{
			Name:    "configuration",
			Passed:  true,
			Message: fmt.Sprintf("%d project(s) configured", len(cfg.Projects)),
		})
	}

	// 2. GitHub token — GITHUB_TOKEN env var is set.
	checks = append(checks, checkToken())

	// 3. Git binary — required for local inspection.
	checks = append(checks, checkGitBinary())

	if cfg != nil {
		// 4. Repository identifiers — every github_repo parses.
		checks = append(checks, checkRepoIdentifiers(cfg)...)

		// 5. Local paths — every configured path exists.
		checks = append(checks, checkProjectPaths(cfg)...)
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doctorOutput{Checks: checks, PassedCount: passed, TotalCount: len(checks)})
	}

	fmt.Println(output.Section("Portfolio Doctor"))
	fmt.Println()
	for _, c := range checks {
		mark := output.StyleError.Render("✗")
		if c.Passed {
			mark = output.StyleSuccess.Render("✓")
		}
		fmt.Printf(" %s %-24s %s\n", mark, c.Name, output.StyleMuted.Render(c.Message))
	}
	fmt.Println()
	fmt.Printf(" %s\n", output.StyleBold.Render(fmt.Sprintf("%d/%d checks passed", passed, len(checks))))

	if passed < len(checks) {
		return fmt.Errorf("%d check(s) failed", len(checks)-passed)
	}
	return nil
}

func checkToken() doctorCheck {
	c := doctorCheck{Name: "github token"}
	if os.Getenv("GITHUB_TOKEN") == "" {
		c.Message = "GITHUB_TOKEN not set; export a personal access token"
		return c
	}
	c.Passed = true
	c.Message = "GITHUB_TOKEN is set"
	return c
}

func checkGitBinary() doctorCheck {
	c := doctorCheck{Name: "git binary"}
	path, err := exec.LookPath("git")
	if err != nil {
		c.Message = "git not found in PATH"
		return c
	}
	c.Passed = true
	c.Message = path
	return c
}

func checkRepoIdentifiers(cfg *config.Config) []doctorCheck {
	var checks []doctorCheck
	for _, p := range cfg.Projects {
		c := doctorCheck{Name: "repo: " + p.Name}
		if _, _, err := config.ParseRepo(p.GitHubRepo); err != nil {
			c.Message = err.Error()
		} else {
			c.Passed = true
			c.Message = p.GitHubRepo
		}
		checks = append(checks, c)
	}
	return checks
}

func checkProjectPaths(cfg *config.Config) []doctorCheck {
	var checks []doctorCheck
	for _, p := range cfg.Projects {
		if p.Path == "" {
			continue
		}
		c := doctorCheck{Name: "path: " + p.Name}
		if fi, err := os.Stat(p.Path); err != nil {
			c.Message = "path does not exist: " + p.Path
		} else if !fi.IsDir() {
			c.Message = "not a directory: " + p.Path
		} else {
			c.Passed = true
			c.Message = p.Path
		}
		checks = append(checks, c)
	}
	return checks
}
