package report

import (
	"fmt"
	"io"

	"github.com/macjunkins/portfolio/internal/output"
)

// WriteTerminal renders the summary panel and per-project table.
func WriteTerminal(w io.Writer, projects []Project, lookbackDays int) {
	fmt.Fprintln(w, output.Section("Portfolio Status"))
	fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render(fmt.Sprintf("Commit lookback: last %d days", lookbackDays)))

	counts := CountStatuses(projects)
	summaryRow(w, "Total projects:", fmt.Sprintf("%d", counts.Total))
	summaryRow(w, "Healthy ✅:", fmt.Sprintf("%d", counts.Healthy))
	summaryRow(w, "Warning ⚠️:", fmt.Sprintf("%d", counts.Warning))
	summaryRow(w, "Critical 🚨:", fmt.Sprintf("%d", counts.Critical))
	fmt.Fprintln(w)

	tbl := output.NewTable("Name", "Priority", "Health", "Latest Commit", "Issues")
	for i := range projects {
		p := &projects[i]
		tbl.AddRow(
			p.Name,
			fmt.Sprintf("%s %s", PriorityGlyph(p.Priority), title(p.Priority)),
			fmt.Sprintf("%s %d/100", StatusGlyph(p.Health.Status), p.Health.Score),
			latestCommitLine(p),
			fmt.Sprintf("%d", p.TotalOpenIssues()),
		)
	}
	fmt.Fprint(w, tbl.Render())

	fmt.Fprintln(w)
	fmt.Fprintln(w, output.StyleMuted.Render(" Roadmap presence, milestones, and issue breakdowns feed the health score; see the markdown report for the full detail."))
}

// WriteQuickSummary renders the trailing one-line-per-project recap.
func WriteQuickSummary(w io.Writer, projects []Project) {
	fmt.Fprintln(w, output.Section("Quick Summary"))
	fmt.Fprintln(w)
	for i := range projects {
		p := &projects[i]
		fmt.Fprintf(w, "  %s %s: %s\n",
			StatusGlyph(p.Health.Status),
			p.Name,
			output.ScoreBar(float64(p.Health.Score), 20))
	}
	fmt.Fprintln(w)
}

// WriteWarnings renders aggregation warnings, if any.
func WriteWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, " %s\n", output.StyleError.Render("warning: "+warning))
	}
	if len(warnings) > 0 {
		fmt.Fprintln(w)
	}
}

func summaryRow(w io.Writer, label, value string) {
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render(label),
		output.StyleValue.Render(value))
}

// latestCommitLine builds the one-line local commit summary for the
// project table.
func latestCommitLine(p *Project) string {
	c := p.Git.LatestCommit
	if c == nil {
		return "No commits found"
	}
	return fmt.Sprintf("%s — %s (by %s, %dd ago)", c.SHA, c.Message, c.Author, c.DaysAgo)
}
