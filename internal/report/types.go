// Package report merges configuration, local git state, and remote
// repository data into one record per project and renders the terminal
// and markdown reports.
package report

import (
	"github.com/macjunkins/portfolio/internal/github"
	"github.com/macjunkins/portfolio/internal/gitlocal"
	"github.com/macjunkins/portfolio/internal/health"
)

// Project is the fully merged record for one configured project, in
// the order it appears in the configuration. Remote is nil when the
// remote lookup was skipped or failed; GitHubError carries the failure
// message in the latter case.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Pillar      string `json:"pillar"`
	Priority    string `json:"priority"`
	Path        string `json:"path"`

	Git          gitlocal.Info    `json:"git"`
	LocalRoadmap gitlocal.Roadmap `json:"local_roadmap"`

	Remote      *github.RepoInfo `json:"github,omitempty"`
	GitHubError string           `json:"github_error,omitempty"`

	Health health.Score `json:"health"`
}

// HasRoadmap reports whether a roadmap file exists either in the local
// working copy or in the remote repository.
func (p *Project) HasRoadmap() bool {
	if p.Remote != nil && p.Remote.HasRoadmap {
		return true
	}
	return p.LocalRoadmap.Exists
}

// TotalOpenIssues is the remote open issue count, or zero without
// remote data.
func (p *Project) TotalOpenIssues() int {
	if p.Remote == nil {
		return 0
	}
	return p.Remote.TotalOpenIssues
}

// StatusCounts tallies projects by health status.
type StatusCounts struct {
	Total    int
	Healthy  int
	Warning  int
	Critical int
}

// CountStatuses computes summary counts over a set of merged records.
func CountStatuses(projects []Project) StatusCounts {
	counts := StatusCounts{Total: len(projects)}
	for i := range projects {
		switch projects[i].Health.Status {
		case health.StatusHealthy:
			counts.Healthy++
		case health.StatusWarning:
			counts.Warning++
		case health.StatusCritical:
			counts.Critical++
		}
	}
	return counts
}
