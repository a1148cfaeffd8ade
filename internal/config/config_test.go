package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
projects:
  - name: console
    description: Main revenue product
    path: /tmp/console
    github_repo: macjunkins/console
    pillar: Revenue
    priority: Critical
  - name: scratch
reports:
  commit_lookback_days: 30
  date_format: "2006-01-02"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(cfg.Projects))
	}
	if cfg.Projects[0].Pillar != "revenue" {
		t.Errorf("pillar not normalized: %q", cfg.Projects[0].Pillar)
	}
	if cfg.Projects[0].Priority != "critical" {
		t.Errorf("priority not normalized: %q", cfg.Projects[0].Priority)
	}
	if cfg.Projects[1].Pillar != "unknown" || cfg.Projects[1].Priority != "unknown" {
		t.Errorf("missing pillar/priority should default to unknown, got %q/%q",
			cfg.Projects[1].Pillar, cfg.Projects[1].Priority)
	}
	if cfg.Reports.CommitLookbackDays != 30 {
		t.Errorf("lookback = %d, want 30", cfg.Reports.CommitLookbackDays)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
projects:
  - name: solo
    github_repo: macjunkins/solo
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reports.CommitLookbackDays != DefaultLookbackDays {
		t.Errorf("lookback = %d, want default %d", cfg.Reports.CommitLookbackDays, DefaultLookbackDays)
	}
	if cfg.Reports.DateFormat != DefaultDateFormat {
		t.Errorf("date format = %q, want default %q", cfg.Reports.DateFormat, DefaultDateFormat)
	}
}

func TestLoad_MissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestParseRepo(t *testing.T) {
	tests := []struct {
		input   string
		owner   string
		name    string
		wantErr bool
	}{
		{"macjunkins/console", "macjunkins", "console", false},
		{"owner/name", "owner", "name", false},
		{"no-slash", "", "", true},
		{"too/many/parts", "", "", true},
		{"/name", "", "", true},
		{"owner/", "", "", true},
		{"", "", "", true},
	}

	for _, tc := range tests {
		owner, name, err := ParseRepo(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRepo(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRepo(%q): %v", tc.input, err)
			continue
		}
		if owner != tc.owner || name != tc.name {
			t.Errorf("ParseRepo(%q) = %q, %q; want %q, %q", tc.input, owner, name, tc.owner, tc.name)
		}
	}
}
