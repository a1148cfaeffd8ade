// Package gitlocal inspects local working copies with the git CLI.
//
// Local git is used instead of the GitHub API for branch, latest commit,
// and dirty state: it has no rate limits, it is faster, and it is the
// only way to see uncommitted changes.
package gitlocal

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Commit is the most recent commit of a local repository.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	DaysAgo int       `json:"days_ago"`
}

// Info describes the state of one local working copy. Problems are
// reported through the Err field; Inspect never fails outright.
type Info struct {
	IsRepo       bool    `json:"is_git_repo"`
	Branch       string  `json:"current_branch,omitempty"`
	LatestCommit *Commit `json:"latest_commit,omitempty"`
	Dirty        bool    `json:"is_dirty"`
	Err          string  `json:"error,omitempty"`
}

// Roadmap is the result of looking for a roadmap file in a local
// working copy.
type Roadmap struct {
	Exists       bool      `json:"exists"`
	Path         string    `json:"path,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
}

// roadmapVariants are the accepted spellings of the roadmap filename.
var roadmapVariants = []string{"ROADMAP.md", "roadmap.md", "Roadmap.md"}

// Inspector reads repository state from the local filesystem.
type Inspector struct{}

// Inspect gathers git facts for the repository at path. A missing path
// or a directory that is not a repository yields an Info with Err set,
// never an error.
func (Inspector) Inspect(path string) Info {
	var info Info

	if _, err := os.Stat(path); err != nil {
		info.Err = "path does not exist: " + path
		return info
	}

	if _, err := git(path, "rev-parse", "--git-dir"); err != nil {
		info.Err = "not a git repository"
		return info
	}
	info.IsRepo = true

	if out, err := git(path, "status", "--porcelain"); err == nil {
		info.Dirty = strings.TrimSpace(out) != ""
	}

	if branch, err := git(path, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		branch = strings.TrimSpace(branch)
		if branch == "HEAD" {
			branch = "DETACHED"
		}
		info.Branch = branch
	}

	info.LatestCommit = latestCommit(path)

	return info
}

// CheckRoadmap reports whether any roadmap filename variant exists at
// the top level of path.
func (Inspector) CheckRoadmap(path string) Roadmap {
	for _, variant := range roadmapVariants {
		full := filepath.Join(path, variant)
		if fi, err := os.Stat(full); err == nil {
			return Roadmap{
				Exists:       true,
				Path:         full,
				LastModified: fi.ModTime(),
			}
		}
	}
	return Roadmap{}
}

// latestCommit reads the HEAD commit. A repository with no commits yet
// returns nil.
func latestCommit(path string) *Commit {
	// %x1f is the ASCII unit separator, safe against subjects that
	// contain common punctuation.
	out, err := git(path, "log", "-1", "--format=%h%x1f%s%x1f%an%x1f%cI")
	if err != nil {
		return nil
	}

	fields := strings.Split(strings.TrimSpace(out), "\x1f")
	if len(fields) != 4 {
		return nil
	}

	c := &Commit{
		SHA:     fields[0],
		Message: fields[1],
		Author:  fields[2],
	}
	if t, err := time.Parse(time.RFC3339, fields[3]); err == nil {
		c.Date = t
		c.DaysAgo = int(time.Since(t).Hours() / 24)
	}
	return c
}

// git runs a git subcommand inside dir and returns its stdout.
func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
