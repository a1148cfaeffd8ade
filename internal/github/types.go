// Package github is the remote data source for portfolio reports. It
// wraps the GitHub REST API and returns one self-contained result per
// requested repository; lookup failures are carried inside the result,
// never returned as errors.
package github

import "time"

// RepoRequest identifies one repository to fetch in a batch.
type RepoRequest struct {
	Owner string
	Name  string
}

// Commit is one recent commit on the default branch.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// Issue is one open issue.
type Issue struct {
	Number  int       `json:"number"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// IssueBuckets partitions open issues by the priority derived from
// their labels.
type IssueBuckets struct {
	Critical []Issue `json:"critical"`
	High     []Issue `json:"high"`
	Medium   []Issue `json:"medium"`
	Low      []Issue `json:"low"`
	None     []Issue `json:"none"`
}

// ByPriority returns the bucket for a priority name, or nil for an
// unknown priority.
func (b *IssueBuckets) ByPriority(priority string) []Issue {
	switch priority {
	case "critical":
		return b.Critical
	case "high":
		return b.High
	case "medium":
		return b.Medium
	case "low":
		return b.Low
	case "none":
		return b.None
	}
	return nil
}

// Milestone is one open milestone with derived progress.
type Milestone struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	State        string     `json:"state"`
	Progress     int        `json:"progress"`
	OpenIssues   int        `json:"open_issues"`
	ClosedIssues int        `json:"closed_issues"`
}

// RepoInfo is everything the report needs from one remote repository.
type RepoInfo struct {
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	URL              string       `json:"url"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	PushedAt         time.Time    `json:"pushed_at"`
	Stars            int          `json:"stars"`
	Forks            int          `json:"forks"`
	DefaultBranch    string       `json:"default_branch"`
	HasRoadmap       bool         `json:"has_roadmap"`
	Commits          []Commit     `json:"commits"`
	Issues           IssueBuckets `json:"issues"`
	TotalOpenIssues  int          `json:"total_open_issues"`
	Milestones       []Milestone  `json:"milestones"`
	OpenPullRequests int          `json:"open_pull_requests"`
}

// Result is the outcome of one repository lookup within a batch. Index
// is the position of the originating request in the batch; consumers
// re-associate results through it rather than through slice order.
type Result struct {
	Index int       `json:"-"`
	Owner string    `json:"owner"`
	Name  string    `json:"name"`
	Info  *RepoInfo `json:"info,omitempty"`
	Err   string    `json:"error,omitempty"`
}
