package report

import (
	"fmt"
	"strings"
	"time"
)

// milestoneDisplayCap limits how many milestones a project section
// shows.
const milestoneDisplayCap = 5

// issuePriorityOrder is the display order of issue buckets in the
// markdown report.
var issuePriorityOrder = []string{"critical", "high", "medium", "low"}

// Markdown assembles the full markdown report for a set of merged
// records, grouped by pillar in fixed display order.
func Markdown(projects []Project, lookbackDays int, dateFormat string, now time.Time) string {
	var b strings.Builder

	line(&b, "# Portfolio Status Report")
	line(&b, "**Generated:** "+now.Format(dateFormat))
	line(&b, fmt.Sprintf("**Commit Lookback:** Last %d days", lookbackDays))
	line(&b, "")
	line(&b, "---")
	line(&b, "")

	counts := CountStatuses(projects)
	line(&b, "## Executive Summary")
	line(&b, "")
	line(&b, fmt.Sprintf("- **Total Projects:** %d", counts.Total))
	line(&b, fmt.Sprintf("- **Healthy:** %d ✅", counts.Healthy))
	line(&b, fmt.Sprintf("- **Warning:** %d ⚠️", counts.Warning))
	line(&b, fmt.Sprintf("- **Critical:** %d 🚨", counts.Critical))
	line(&b, "")

	byPillar := make(map[string][]*Project)
	for i := range projects {
		p := &projects[i]
		byPillar[p.Pillar] = append(byPillar[p.Pillar], p)
	}

	for _, pillar := range PillarOrder {
		group := byPillar[pillar]
		if len(group) == 0 {
			continue
		}
		line(&b, fmt.Sprintf("## %s %s Projects", PillarGlyph(pillar), title(pillar)))
		line(&b, "")
		for _, p := range group {
			projectSection(&b, p)
		}
	}

	line(&b, "---")
	line(&b, "")
	line(&b, "**Report generated by:** `portfolio status`")
	line(&b, "**Owner:** John Junkins (@macjunkins)")
	line(&b, "")

	return b.String()
}

// projectSection renders the markdown block for one project.
func projectSection(b *strings.Builder, p *Project) {
	line(b, fmt.Sprintf("### %s %s", PriorityGlyph(p.Priority), p.Name))
	line(b, "")
	line(b, fmt.Sprintf("**Priority:** %s | **Health:** %s %d/100 (%s)",
		title(p.Priority),
		StatusGlyph(p.Health.Status),
		p.Health.Score,
		strings.ToUpper(string(p.Health.Status))))
	line(b, "")

	if p.Description != "" {
		line(b, "**Description:** "+p.Description)
		line(b, "")
	}

	if p.Remote != nil && p.Remote.URL != "" {
		line(b, fmt.Sprintf("**Repository:** [%s](%s)", p.Remote.URL, p.Remote.URL))
		line(b, "")
	}
	if p.GitHubError != "" {
		line(b, "**Repository:** ❌ "+p.GitHubError)
		line(b, "")
	}

	if c := p.Git.LatestCommit; c != nil {
		line(b, fmt.Sprintf("**Latest Commit:** `%s` - %s", c.SHA, c.Message))
		line(b, "  - **Author:** "+c.Author)
		line(b, fmt.Sprintf("  - **Date:** %s (%d days ago)", c.Date.Format("2006-01-02"), c.DaysAgo))
		line(b, "")
	} else {
		line(b, "**Latest Commit:** ❌ No commits found")
		line(b, "")
	}

	if p.HasRoadmap() {
		line(b, "**Roadmap:** ✅ Exists")
	} else {
		line(b, "**Roadmap:** ❌ Missing")
	}
	line(b, "")

	milestoneBlock(b, p)
	issueBlock(b, p)

	if len(p.Health.Reasons) > 0 {
		line(b, "**Health Notes:**")
		for _, reason := range p.Health.Reasons {
			line(b, "  - "+reason)
		}
		line(b, "")
	}

	line(b, "---")
	line(b, "")
}

func milestoneBlock(b *strings.Builder, p *Project) {
	if p.Remote == nil || len(p.Remote.Milestones) == 0 {
		line(b, "**Milestones:** None defined")
		line(b, "")
		return
	}

	line(b, "**Milestones:**")
	milestones := p.Remote.Milestones
	if len(milestones) > milestoneDisplayCap {
		milestones = milestones[:milestoneDisplayCap]
	}
	for _, m := range milestones {
		due := "No due date"
		if m.DueDate != nil {
			due = m.DueDate.Format("2006-01-02")
		}
		total := m.OpenIssues + m.ClosedIssues
		line(b, fmt.Sprintf("  - **%s** (%d%% complete) - %d/%d issues closed - Due: %s",
			m.Title, m.Progress, m.ClosedIssues, total, due))
	}
	line(b, "")
}

func issueBlock(b *strings.Builder, p *Project) {
	total := p.TotalOpenIssues()
	if total == 0 {
		line(b, "**Open Issues:** None")
		line(b, "")
		return
	}

	line(b, fmt.Sprintf("**Open Issues:** %d total", total))
	for _, priority := range issuePriorityOrder {
		count := len(p.Remote.Issues.ByPriority(priority))
		if count > 0 {
			line(b, fmt.Sprintf("  - %s %s: %d", PriorityGlyph(priority), title(priority), count))
		}
	}
	line(b, "")
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteString("\n")
}
