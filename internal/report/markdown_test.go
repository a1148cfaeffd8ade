package report

import (
	"strings"
	"testing"
	"time"

	"github.com/macjunkins/portfolio/internal/github"
	"github.com/macjunkins/portfolio/internal/gitlocal"
	"github.com/macjunkins/portfolio/internal/health"
)

func sampleProjects() []Project {
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return []Project{
		{
			Name:        "console",
			Description: "Customer-facing console",
			Pillar:      "revenue",
			Priority:    "critical",
			Git: gitlocal.Info{
				IsRepo: true,
				Branch: "main",
				LatestCommit: &gitlocal.Commit{
					SHA:     "abc1234",
					Message: "fix login flow",
					Author:  "John",
					Date:    time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
					DaysAgo: 4,
				},
			},
			Remote: &github.RepoInfo{
				Name:            "console",
				URL:             "https://github.com/macjunkins/console",
				HasRoadmap:      true,
				TotalOpenIssues: 12,
				Issues: github.IssueBuckets{
					Critical: []github.Issue{{Number: 1}},
					High:     []github.Issue{{Number: 2}, {Number: 3}},
					None:     make([]github.Issue, 9),
				},
				Milestones: []github.Milestone{
					{Title: "v1.0", Progress: 40, OpenIssues: 6, ClosedIssues: 4, DueDate: &due},
					{Title: "v1.1", Progress: 0, OpenIssues: 0, ClosedIssues: 0},
				},
			},
			Health: health.Score{Score: 95, Status: health.StatusHealthy, Reasons: []string{"✅ All metrics healthy"}},
		},
		{
			Name:        "attic",
			Pillar:      "cleanup",
			Priority:    "low",
			GitHubError: "repository lookup failed: 404",
			Health: health.Score{Score: 50, Status: health.StatusCritical, Reasons: []string{
				"⚠️ No commit history found",
				"⚠️ No ROADMAP.md found",
			}},
		},
	}
}

func TestMarkdown_Layout(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	md := Markdown(sampleProjects(), 90, "2006-01-02", now)

	for _, want := range []string{
		"# Portfolio Status Report",
		"**Generated:** 2026-08-29",
		"**Commit Lookback:** Last 90 days",
		"## Executive Summary",
		"- **Total Projects:** 2",
		"- **Healthy:** 1 ✅",
		"- **Critical:** 1 🚨",
		"Revenue Projects",
		"Cleanup Projects",
		"### 🚨 console",
		"**Priority:** Critical | **Health:** ✅ 95/100 (HEALTHY)",
		"**Repository:** [https://github.com/macjunkins/console](https://github.com/macjunkins/console)",
		"**Latest Commit:** `abc1234` - fix login flow",
		"- **Date:** 2026-08-25 (4 days ago)",
		"**Roadmap:** ✅ Exists",
		"- **v1.0** (40% complete) - 4/10 issues closed - Due: 2026-10-01",
		"- **v1.1** (0% complete) - 0/0 issues closed - Due: No due date",
		"**Open Issues:** 12 total",
		"🚨 Critical: 1",
		"🔴 High: 2",
		"### 🟢 attic",
		"**Repository:** ❌ repository lookup failed: 404",
		"**Latest Commit:** ❌ No commits found",
		"**Roadmap:** ❌ Missing",
		"**Milestones:** None defined",
		"**Open Issues:** None",
		"⚠️ No commit history found",
		"**Report generated by:** `portfolio status`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// Pillar groups follow the fixed display order.
	if strings.Index(md, "Revenue Projects") > strings.Index(md, "Cleanup Projects") {
		t.Error("revenue section should come before cleanup")
	}
}

func TestMarkdown_MilestoneCap(t *testing.T) {
	p := Project{
		Name:     "many",
		Pillar:   "infrastructure",
		Priority: "medium",
		Remote:   &github.RepoInfo{},
		Health:   health.Score{Score: 80, Status: health.StatusHealthy, Reasons: []string{"ok"}},
	}
	for i := 0; i < 8; i++ {
		p.Remote.Milestones = append(p.Remote.Milestones, github.Milestone{
			Title: "m" + string(rune('0'+i)), Progress: 10, OpenIssues: 1,
		})
	}

	md := Markdown([]Project{p}, 90, "2006-01-02", time.Now())
	if strings.Contains(md, "**m5**") {
		t.Error("more than five milestones rendered")
	}
	if !strings.Contains(md, "**m4**") {
		t.Error("fifth milestone missing")
	}
}

func TestGlyphs(t *testing.T) {
	if g := PriorityGlyph("CRITICAL"); g != "🚨" {
		t.Errorf("PriorityGlyph(CRITICAL) = %q", g)
	}
	if g := PriorityGlyph("whatever"); g != "❓" {
		t.Errorf("unknown priority glyph = %q", g)
	}
	if g := PillarGlyph("infrastructure"); g != "🚀" {
		t.Errorf("PillarGlyph(infrastructure) = %q", g)
	}
	if g := PillarGlyph("mystery"); g != "📦" {
		t.Errorf("unknown pillar glyph = %q", g)
	}
	if g := StatusGlyph(health.StatusWarning); g != "⚠️" {
		t.Errorf("StatusGlyph(warning) = %q", g)
	}
	if g := StatusGlyph(health.Status("weird")); g != "❓" {
		t.Errorf("unknown status glyph = %q", g)
	}
}
