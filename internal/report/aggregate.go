package report

import (
	"context"
	"fmt"

	"github.com/macjunkins/portfolio/internal/config"
	"github.com/macjunkins/portfolio/internal/github"
	"github.com/macjunkins/portfolio/internal/gitlocal"
	"github.com/macjunkins/portfolio/internal/health"
)

// RemoteSource supplies batched remote repository data. Result.Index
// must identify the position of the originating request in repos.
type RemoteSource interface {
	FetchBatch(ctx context.Context, repos []github.RepoRequest, lookbackDays int) []github.Result
}

// LocalSource supplies per-path local repository facts.
type LocalSource interface {
	Inspect(path string) gitlocal.Info
	CheckRoadmap(path string) gitlocal.Roadmap
}

// Aggregate builds one merged, scored record per configured project.
//
// The output always has exactly one entry per configured project, in
// configuration order, regardless of remote batch ordering, omissions,
// or per-repository failures. Malformed repository identifiers are
// reported as warnings and the affected project proceeds with local
// data only.
func Aggregate(ctx context.Context, cfg *config.Config, remote RemoteSource, local LocalSource) ([]Project, []string) {
	var warnings []string

	// Build the batch request, recording each request's originating
	// configuration index. That index is the only join key used when
	// results come back.
	var reqs []github.RepoRequest
	var reqIndex []int
	for i, pc := range cfg.Projects {
		owner, name, err := config.ParseRepo(pc.GitHubRepo)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", pc.Name, err))
			continue
		}
		reqs = append(reqs, github.RepoRequest{Owner: owner, Name: name})
		reqIndex = append(reqIndex, i)
	}

	lookback := cfg.Reports.CommitLookbackDays
	if lookback < 0 {
		lookback = 0
	}

	// One batched remote call for all parseable projects.
	var results []github.Result
	if len(reqs) > 0 && remote != nil {
		results = remote.FetchBatch(ctx, reqs, lookback)
	}

	// Re-associate by the recorded request index, never by response
	// position, so reordered or missing batch entries cannot attach
	// one project's data to another.
	remoteByProject := make(map[int]github.Result, len(results))
	for _, res := range results {
		if res.Index < 0 || res.Index >= len(reqIndex) {
			warnings = append(warnings, fmt.Sprintf("discarding remote result with unknown request index %d", res.Index))
			continue
		}
		remoteByProject[reqIndex[res.Index]] = res
	}

	projects := make([]Project, 0, len(cfg.Projects))
	for i, pc := range cfg.Projects {
		p := Project{
			Name:        pc.Name,
			Description: pc.Description,
			Pillar:      pc.Pillar,
			Priority:    pc.Priority,
			Path:        pc.Path,
		}

		if pc.Path != "" && local != nil {
			p.Git = local.Inspect(pc.Path)
			p.LocalRoadmap = local.CheckRoadmap(pc.Path)
		}

		if res, ok := remoteByProject[i]; ok {
			if res.Err != "" {
				p.GitHubError = res.Err
			} else {
				p.Remote = res.Info
			}
		}

		p.Health = health.Evaluate(healthInput(&p))
		projects = append(projects, p)
	}

	return projects, warnings
}

// healthInput projects a merged record onto the snapshot the scorer
// consumes.
func healthInput(p *Project) health.Input {
	in := health.Input{
		Dirty:      p.Git.Dirty,
		HasRoadmap: p.HasRoadmap(),
		OpenIssues: p.TotalOpenIssues(),
	}
	if c := p.Git.LatestCommit; c != nil {
		in.HasCommit = true
		in.DaysSinceCommit = c.DaysAgo
	}
	if p.Remote != nil {
		for _, m := range p.Remote.Milestones {
			in.Milestones = append(in.Milestones, health.Milestone{
				Progress:   m.Progress,
				OpenIssues: m.OpenIssues,
			})
		}
	}
	return in
}
