package gitctx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestRepo builds main: A -> C and feature: A -> B, changes into the
// repo, and returns the three commit SHAs.
func setupTestRepo(t *testing.T) (a, b, c string) {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
		return strings.TrimSpace(string(out))
	}
	commit := func(name, content string) string {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		run("git", "add", "-A")
		run("git", "commit", "-m", name)
		return run("git", "rev-parse", "HEAD")
	}

	run("git", "init")
	run("git", "checkout", "-b", "main")
	a = commit("openapi.yaml", "openapi: 3.0.3\n")
	run("git", "checkout", "-b", "feature")
	b = commit("openapi.yaml", "openapi: 3.1.0\n")
	run("git", "checkout", "main")
	c = commit("README.md", "docs\n")
	run("git", "remote", "add", "origin", "https://github.com/acme/petstore.git")

	t.Chdir(dir)
	return a, b, c
}

func TestMergeBase(t *testing.T) {
	a, b, c := setupTestRepo(t)

	got, err := MergeBase(context.Background(), c, b)
	if err != nil {
		t.Fatalf("MergeBase error: %v", err)
	}
	if got != a {
		t.Errorf("MergeBase = %q, want %q", got, a)
	}
}

func TestMergeBase_Errors(t *testing.T) {
	_, b, _ := setupTestRepo(t)

	if _, err := MergeBase(context.Background(), "", b); err == nil {
		t.Error("expected error for missing commit")
	}
	if _, err := MergeBase(context.Background(), strings.Repeat("f", 40), b); err == nil {
		t.Error("expected error for unknown commit")
	}
}

func TestReportCommit_PullRequest(t *testing.T) {
	a, b, c := setupTestRepo(t)
	ctx := context.Background()

	if got := ReportCommit(ctx, c, b); got != a {
		t.Errorf("ReportCommit = %q, want merge base %q", got, a)
	}

	unknown := strings.Repeat("e", 40)
	if got := ReportCommit(ctx, unknown, b); got != unknown {
		t.Errorf("ReportCommit = %q, want base fallback %q", got, unknown)
	}
	if got := ReportCommit(ctx, c, ""); got != c {
		t.Errorf("ReportCommit without head = %q, want base %q", got, c)
	}
}

func TestReportCommit_NoPullRequest(t *testing.T) {
	_, _, c := setupTestRepo(t)
	ctx := context.Background()

	t.Setenv("GITHUB_SHA", "0123abcd")
	if got := ReportCommit(ctx, "", ""); got != "0123abcd" {
		t.Errorf("ReportCommit = %q, want GITHUB_SHA", got)
	}

	t.Setenv("GITHUB_SHA", "")
	if got := ReportCommit(ctx, "", ""); got != c {
		t.Errorf("ReportCommit = %q, want HEAD %q", got, c)
	}
}

func TestReportCommit_NotARepo(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GITHUB_SHA", "")
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(t.TempDir()))

	if got := ReportCommit(context.Background(), "", ""); got != "" {
		t.Errorf("ReportCommit = %q, want empty", got)
	}
}

func TestGetRepoMeta(t *testing.T) {
	_, _, c := setupTestRepo(t)

	meta, err := GetRepoMeta(context.Background())
	if err != nil {
		t.Fatalf("GetRepoMeta error: %v", err)
	}
	if meta.Head != c {
		t.Errorf("Head = %q, want %q", meta.Head, c)
	}
	if meta.Branch != "main" {
		t.Errorf("Branch = %q, want main", meta.Branch)
	}
	if meta.Remote != "https://github.com/acme/petstore.git" {
		t.Errorf("Remote = %q", meta.Remote)
	}
}
