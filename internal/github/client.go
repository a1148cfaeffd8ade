package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gh "github.com/google/go-github/v53/github"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the number of repository lookups in
// flight during a batch. The batch contract is index-based, so
// completion order does not matter.
const maxConcurrentFetches = 4

// commitCap limits how many recent commits are kept per repository.
const commitCap = 10

// Client queries the GitHub REST API with a personal access token.
type Client struct {
	gh *gh.Client
}

// NewClient builds a token-authenticated client. The token needs repo
// read scope for private repositories.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, errors.New("github token is empty")
	}
	return &Client{gh: gh.NewTokenClient(ctx, token)}, nil
}

// NewFromEnv builds a client from the GITHUB_TOKEN environment variable.
func NewFromEnv(ctx context.Context) (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, errors.New("GITHUB_TOKEN not set; create a personal access token and export it")
	}
	return NewClient(ctx, token)
}

// FetchBatch fetches every requested repository and returns one Result
// per request. The returned slice always has len(repos) entries and
// Result.Index identifies the originating request, so callers can
// re-associate data no matter how the fetches complete. A negative
// lookback is clamped to zero.
func (c *Client) FetchBatch(ctx context.Context, repos []RepoRequest, lookbackDays int) []Result {
	if lookbackDays < 0 {
		lookbackDays = 0
	}

	results := make([]Result, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			results[i] = c.fetchRepo(ctx, i, repo, lookbackDays)
			return nil
		})
	}
	// Fetch errors live inside each Result, never here.
	_ = g.Wait()

	return results
}

// fetchRepo gathers the full RepoInfo for one repository. Any API
// failure makes the whole result an error entry, matching the
// all-or-nothing shape of a single overview query.
func (c *Client) fetchRepo(ctx context.Context, index int, repo RepoRequest, lookbackDays int) Result {
	res := Result{Index: index, Owner: repo.Owner, Name: repo.Name}

	r, _, err := c.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		res.Err = fmt.Sprintf("repository lookup failed: %v", err)
		return res
	}

	info := &RepoInfo{
		Name:          r.GetName(),
		Description:   r.GetDescription(),
		URL:           r.GetHTMLURL(),
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		DefaultBranch: r.GetDefaultBranch(),
	}

	hasRoadmap, err := c.hasRoadmap(ctx, repo)
	if err != nil {
		res.Err = fmt.Sprintf("roadmap check failed: %v", err)
		return res
	}
	info.HasRoadmap = hasRoadmap

	commits, err := c.recentCommits(ctx, repo, lookbackDays)
	if err != nil {
		res.Err = fmt.Sprintf("listing commits failed: %v", err)
		return res
	}
	info.Commits = commits

	buckets, total, err := c.openIssues(ctx, repo)
	if err != nil {
		res.Err = fmt.Sprintf("listing issues failed: %v", err)
		return res
	}
	info.Issues = buckets
	info.TotalOpenIssues = total

	milestones, err := c.openMilestones(ctx, repo)
	if err != nil {
		res.Err = fmt.Sprintf("listing milestones failed: %v", err)
		return res
	}
	info.Milestones = milestones

	prCount, err := c.openPullRequestCount(ctx, repo)
	if err != nil {
		res.Err = fmt.Sprintf("listing pull requests failed: %v", err)
		return res
	}
	info.OpenPullRequests = prCount

	res.Info = info
	return res
}

// hasRoadmap checks for a ROADMAP.md at the repository root. GitHub
// paths are case-sensitive; the canonical uppercase name is the one
// the portfolio convention requires remotely.
func (c *Client) hasRoadmap(ctx context.Context, repo RepoRequest) (bool, error) {
	_, _, _, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, "ROADMAP.md", nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// recentCommits returns up to commitCap commits on the default branch
// within the lookback window.
func (c *Client) recentCommits(ctx context.Context, repo RepoRequest, lookbackDays int) ([]Commit, error) {
	opts := &gh.CommitsListOptions{
		Since:       time.Now().AddDate(0, 0, -lookbackDays),
		ListOptions: gh.ListOptions{PerPage: commitCap},
	}

	list, _, err := c.gh.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		// An empty repository answers 409; that is "no commits", not
		// a failure.
		if isStatus(err, http.StatusConflict) {
			return nil, nil
		}
		return nil, err
	}

	commits := make([]Commit, 0, len(list))
	for _, rc := range list {
		if len(commits) == commitCap {
			break
		}
		commits = append(commits, Commit{
			SHA:     shortSHA(rc.GetSHA()),
			Message: firstLine(rc.GetCommit().GetMessage()),
			Author:  rc.GetCommit().GetAuthor().GetName(),
			Date:    rc.GetCommit().GetAuthor().GetDate().Time,
		})
	}
	return commits, nil
}

// openIssues lists every open issue (pull requests excluded) and
// partitions them into priority buckets by label.
func (c *Client) openIssues(ctx context.Context, repo RepoRequest) (IssueBuckets, int, error) {
	var buckets IssueBuckets
	total := 0

	opts := &gh.IssueListByRepoOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		list, resp, err := c.gh.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return IssueBuckets{}, 0, err
		}

		for _, issue := range list {
			// The issues endpoint also returns pull requests.
			if issue.IsPullRequest() {
				continue
			}
			labels := make([]string, 0, len(issue.Labels))
			for _, l := range issue.Labels {
				labels = append(labels, l.GetName())
			}
			buckets.add(classifyPriority(labels), Issue{
				Number:  issue.GetNumber(),
				Title:   issue.GetTitle(),
				Created: issue.GetCreatedAt().Time,
				Updated: issue.GetUpdatedAt().Time,
			})
			total++
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return buckets, total, nil
}

// openMilestones lists open milestones and derives a completion
// percentage from their issue counts.
func (c *Client) openMilestones(ctx context.Context, repo RepoRequest) ([]Milestone, error) {
	opts := &gh.MilestoneListOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 20},
	}

	list, _, err := c.gh.Issues.ListMilestones(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, err
	}

	milestones := make([]Milestone, 0, len(list))
	for _, m := range list {
		ms := Milestone{
			Title:        m.GetTitle(),
			Description:  m.GetDescription(),
			State:        m.GetState(),
			OpenIssues:   m.GetOpenIssues(),
			ClosedIssues: m.GetClosedIssues(),
		}
		ms.Progress = milestoneProgress(ms.OpenIssues, ms.ClosedIssues)
		if m.DueOn != nil {
			due := m.DueOn.Time
			ms.DueDate = &due
		}
		milestones = append(milestones, ms)
	}
	return milestones, nil
}

// openPullRequestCount counts open pull requests.
func (c *Client) openPullRequestCount(ctx context.Context, repo RepoRequest) (int, error) {
	count := 0
	opts := &gh.PullRequestListOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		list, resp, err := c.gh.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return 0, err
		}
		count += len(list)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return count, nil
}

// milestoneProgress is the percentage of a milestone's issues that are
// closed; a milestone with no issues counts as 0%.
func milestoneProgress(open, closed int) int {
	total := open + closed
	if total == 0 {
		return 0
	}
	return closed * 100 / total
}

// isStatus reports whether err is a GitHub API error with the given
// HTTP status.
func isStatus(err error, status int) bool {
	var gherr *gh.ErrorResponse
	return errors.As(err, &gherr) && gherr.Response != nil && gherr.Response.StatusCode == status
}

// shortSHA abbreviates a commit hash to seven characters.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// firstLine returns the subject line of a commit message.
func firstLine(message string) string {
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			return message[:i]
		}
	}
	return message
}
