package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macjunkins/portfolio/internal/config"
	"github.com/macjunkins/portfolio/internal/github"
	"github.com/macjunkins/portfolio/internal/gitlocal"
	"github.com/macjunkins/portfolio/internal/health"
)

type fakeRemote struct {
	gotRepos    []github.RepoRequest
	gotLookback int
	results     []github.Result
}

func (f *fakeRemote) FetchBatch(_ context.Context, repos []github.RepoRequest, lookbackDays int) []github.Result {
	f.gotRepos = repos
	f.gotLookback = lookbackDays
	return f.results
}

type fakeLocal struct {
	infos     map[string]gitlocal.Info
	roadmaps  map[string]gitlocal.Roadmap
	inspected []string
}

func (f *fakeLocal) Inspect(path string) gitlocal.Info {
	f.inspected = append(f.inspected, path)
	return f.infos[path]
}

func (f *fakeLocal) CheckRoadmap(path string) gitlocal.Roadmap {
	return f.roadmaps[path]
}

func testConfig(projects ...config.Project) *config.Config {
	return &config.Config{
		Projects: projects,
		Reports:  config.Reports{CommitLookbackDays: 90, DateFormat: "2006-01-02"},
	}
}

func TestAggregate_OrderPreservedWithReversedBatch(t *testing.T) {
	cfg := testConfig(
		config.Project{Name: "alpha", GitHubRepo: "org/alpha", Pillar: "revenue", Priority: "high"},
		config.Project{Name: "broken", GitHubRepo: "not-a-repo", Pillar: "cleanup", Priority: "low"},
		config.Project{Name: "gamma", GitHubRepo: "org/gamma", Pillar: "innovation", Priority: "medium"},
	)

	// Results arrive in reverse order; Index still names the request
	// slot each belongs to.
	remote := &fakeRemote{results: []github.Result{
		{Index: 1, Owner: "org", Name: "gamma", Info: &github.RepoInfo{Name: "gamma", TotalOpenIssues: 7}},
		{Index: 0, Owner: "org", Name: "alpha", Info: &github.RepoInfo{Name: "alpha", TotalOpenIssues: 3}},
	}}

	projects, warnings := Aggregate(context.Background(), cfg, remote, &fakeLocal{})

	require.Len(t, projects, 3)
	assert.Equal(t, []string{"alpha", "broken", "gamma"}, []string{projects[0].Name, projects[1].Name, projects[2].Name})

	// The malformed identifier never reached the batch request.
	require.Len(t, remote.gotRepos, 2)
	assert.Equal(t, "alpha", remote.gotRepos[0].Name)
	assert.Equal(t, "gamma", remote.gotRepos[1].Name)

	// Each project got its own remote data despite the reversed batch.
	require.NotNil(t, projects[0].Remote)
	assert.Equal(t, 3, projects[0].Remote.TotalOpenIssues)
	require.NotNil(t, projects[2].Remote)
	assert.Equal(t, 7, projects[2].Remote.TotalOpenIssues)

	assert.Nil(t, projects[1].Remote)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "broken")
}

func TestAggregate_OmittedBatchEntry(t *testing.T) {
	cfg := testConfig(
		config.Project{Name: "one", GitHubRepo: "org/one"},
		config.Project{Name: "two", GitHubRepo: "org/two"},
	)

	remote := &fakeRemote{results: []github.Result{
		{Index: 0, Owner: "org", Name: "one", Info: &github.RepoInfo{Name: "one", TotalOpenIssues: 42}},
	}}

	projects, _ := Aggregate(context.Background(), cfg, remote, &fakeLocal{})

	require.Len(t, projects, 2)
	require.NotNil(t, projects[0].Remote)
	assert.Equal(t, 42, projects[0].Remote.TotalOpenIssues)
	// The omitted project must get no remote data, not someone else's.
	assert.Nil(t, projects[1].Remote)
	assert.Empty(t, projects[1].GitHubError)
}

func TestAggregate_OutOfRangeIndexDiscarded(t *testing.T) {
	cfg := testConfig(config.Project{Name: "solo", GitHubRepo: "org/solo"})

	remote := &fakeRemote{results: []github.Result{
		{Index: 5, Owner: "org", Name: "mystery", Info: &github.RepoInfo{Name: "mystery"}},
	}}

	projects, warnings := Aggregate(context.Background(), cfg, remote, &fakeLocal{})

	require.Len(t, projects, 1)
	assert.Nil(t, projects[0].Remote)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unknown request index")
}

func TestAggregate_RemoteErrorIsPerProject(t *testing.T) {
	cfg := testConfig(
		config.Project{Name: "good", GitHubRepo: "org/good"},
		config.Project{Name: "gone", GitHubRepo: "org/gone"},
	)

	remote := &fakeRemote{results: []github.Result{
		{Index: 0, Owner: "org", Name: "good", Info: &github.RepoInfo{Name: "good"}},
		{Index: 1, Owner: "org", Name: "gone", Err: "repository lookup failed: 404"},
	}}

	projects, warnings := Aggregate(context.Background(), cfg, remote, &fakeLocal{})

	require.Len(t, projects, 2)
	assert.Empty(t, warnings)
	assert.NotNil(t, projects[0].Remote)
	assert.Nil(t, projects[1].Remote)
	assert.Contains(t, projects[1].GitHubError, "404")
	// The failed project is still scored.
	assert.NotEmpty(t, projects[1].Health.Reasons)
}

func TestAggregate_LookbackClampedToZero(t *testing.T) {
	cfg := testConfig(config.Project{Name: "p", GitHubRepo: "org/p"})
	cfg.Reports.CommitLookbackDays = -30

	remote := &fakeRemote{}
	Aggregate(context.Background(), cfg, remote, &fakeLocal{})

	assert.Equal(t, 0, remote.gotLookback)
}

func TestAggregate_NoPathSkipsLocalInspection(t *testing.T) {
	cfg := testConfig(config.Project{Name: "remote-only", GitHubRepo: "org/remote-only"})

	local := &fakeLocal{}
	Aggregate(context.Background(), cfg, &fakeRemote{}, local)

	assert.Empty(t, local.inspected)
}

// A project with a malformed identifier, no local path, and therefore
// no commits and no roadmap scores 50 and lands critical.
func TestAggregate_EndToEndDegradedProject(t *testing.T) {
	cfg := testConfig(config.Project{Name: "derelict", GitHubRepo: "malformed"})

	projects, warnings := Aggregate(context.Background(), cfg, &fakeRemote{}, &fakeLocal{})

	require.Len(t, projects, 1)
	require.Len(t, warnings, 1)

	h := projects[0].Health
	assert.Equal(t, 50, h.Score)
	assert.Equal(t, health.StatusCritical, h.Status)
	assert.True(t, containsSubstring(h.Reasons, "No commit history found"))
	assert.True(t, containsSubstring(h.Reasons, "No ROADMAP.md found"))
}

// A project with a fresh commit, a roadmap, a small backlog, and a
// clean tree scores a perfect 100.
func TestAggregate_EndToEndHealthyProject(t *testing.T) {
	cfg := testConfig(config.Project{
		Name:       "flagship",
		Path:       "/repos/flagship",
		GitHubRepo: "org/flagship",
	})

	local := &fakeLocal{
		infos: map[string]gitlocal.Info{
			"/repos/flagship": {
				IsRepo: true,
				Branch: "main",
				LatestCommit: &gitlocal.Commit{
					SHA:     "abc1234",
					Message: "ship it",
					Author:  "John",
					DaysAgo: 5,
				},
			},
		},
		roadmaps: map[string]gitlocal.Roadmap{
			"/repos/flagship": {Exists: true, Path: "/repos/flagship/ROADMAP.md"},
		},
	}
	remote := &fakeRemote{results: []github.Result{
		{Index: 0, Owner: "org", Name: "flagship", Info: &github.RepoInfo{
			Name:            "flagship",
			TotalOpenIssues: 10,
		}},
	}}

	projects, warnings := Aggregate(context.Background(), cfg, remote, local)

	require.Len(t, projects, 1)
	assert.Empty(t, warnings)

	h := projects[0].Health
	assert.Equal(t, 100, h.Score)
	assert.Equal(t, health.StatusHealthy, h.Status)
	require.Len(t, h.Reasons, 1)
	assert.Contains(t, h.Reasons[0], "All metrics healthy")
}

func containsSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
