// Package health computes the 0-100 project health score. The scorer
// is a pure function over a snapshot of merged project signals: same
// input, same output, no I/O.
package health

import "fmt"

// Status is the tri-state health classification.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Milestone carries the two milestone fields the scorer reads.
type Milestone struct {
	Progress   int
	OpenIssues int
}

// Input is the snapshot of project signals the scorer evaluates.
type Input struct {
	// HasCommit is false when the project has no commit history at
	// all, including when local inspection failed.
	HasCommit       bool
	DaysSinceCommit int

	// Dirty reports uncommitted changes in the local working tree.
	Dirty bool

	// HasRoadmap is satisfied by a roadmap file found either locally
	// or in the remote repository.
	HasRoadmap bool

	OpenIssues int
	Milestones []Milestone
}

// Score is the computed health of one project.
type Score struct {
	Score   int      `json:"score"`
	Status  Status   `json:"status"`
	Reasons []string `json:"reasons"`
}

// Evaluate applies the independent scoring penalties to an input
// snapshot. Penalty thresholds:
//
//   - no commit history:        -30, critical
//   - last commit >90 days:     -30, critical
//   - last commit 31-90 days:   -15, at least warning
//   - last commit 8-30 days:    -5
//   - roadmap missing:          -20, at least warning
//   - >50 open issues:          -20, at least warning
//   - 21-50 open issues:        -10
//   - stalled milestones:       -15, at least warning
//   - uncommitted changes:      -15
//
// Statuses set while applying penalties are provisional. The final
// status is recomputed from the clamped score (>=80 healthy, >=60
// warning, else critical), so a favorable arithmetic total overrides
// any floor set above.
func Evaluate(in Input) Score {
	score := 100
	status := StatusHealthy
	var reasons []string

	// Factor 1: commit recency.
	if in.HasCommit {
		days := in.DaysSinceCommit
		switch {
		case days > 90:
			score -= 30
			reasons = append(reasons, fmt.Sprintf("⚠️ No commits in %d days", days))
			status = StatusCritical
		case days > 30:
			score -= 15
			reasons = append(reasons, fmt.Sprintf("⚠️ Last commit %d days ago", days))
			if status == StatusHealthy {
				status = StatusWarning
			}
		case days > 7:
			score -= 5
			reasons = append(reasons, fmt.Sprintf("Last commit %d days ago", days))
		}
	} else {
		score -= 30
		reasons = append(reasons, "⚠️ No commit history found")
		status = StatusCritical
	}

	// Factor 2: roadmap presence.
	if !in.HasRoadmap {
		score -= 20
		reasons = append(reasons, "⚠️ No ROADMAP.md found")
		if status == StatusHealthy {
			status = StatusWarning
		}
	}

	// Factor 3: issue backlog.
	switch {
	case in.OpenIssues > 50:
		score -= 20
		reasons = append(reasons, fmt.Sprintf("⚠️ %d open issues (backlog growing)", in.OpenIssues))
		if status == StatusHealthy {
			status = StatusWarning
		}
	case in.OpenIssues > 20:
		score -= 10
		reasons = append(reasons, fmt.Sprintf("%d open issues", in.OpenIssues))
	}

	// Factor 4: stalled milestones (zero progress with open issues).
	stalled := 0
	for _, m := range in.Milestones {
		if m.Progress == 0 && m.OpenIssues > 0 {
			stalled++
		}
	}
	if stalled > 0 {
		score -= 15
		reasons = append(reasons, fmt.Sprintf("⚠️ %d stalled milestone(s)", stalled))
		if status == StatusHealthy {
			status = StatusWarning
		}
	}

	// Factor 5: working tree cleanliness.
	if in.Dirty {
		score -= 15
		reasons = append(reasons, "⚠️ Uncommitted changes detected")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	// Final status comes from the clamped score alone.
	switch {
	case score >= 80:
		status = StatusHealthy
	case score >= 60:
		status = StatusWarning
	default:
		status = StatusCritical
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "✅ All metrics healthy")
	}

	return Score{Score: score, Status: status, Reasons: reasons}
}
