package gitctx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
	// Remote is the URL of the origin remote, empty when there is none.
	Remote string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta(ctx context.Context) (RepoMeta, error) {
	root, err := gitOutput(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput(ctx, "rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	remote, err := gitOutput(ctx, "remote", "get-url", "origin")
	if err != nil {
		remote = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
		Remote: strings.TrimSpace(remote),
	}, nil
}

// MergeBase returns the best common ancestor of commits a and b.
func MergeBase(ctx context.Context, a, b string) (string, error) {
	if a == "" || b == "" {
		return "", errors.New("merge-base needs two commits")
	}
	out, err := gitOutput(ctx, "merge-base", a, b)
	if err != nil {
		return "", fmt.Errorf("git merge-base %s %s: %w", a, b, err)
	}
	sha := strings.TrimSpace(out)
	if sha == "" {
		return "", fmt.Errorf("git merge-base %s %s: no common ancestor", a, b)
	}
	return sha, nil
}

// ReportCommit returns the commit a report is for. With a pull request base
// it is the merge base of base and head, falling back to base itself. Without
// one it is GITHUB_SHA, then HEAD, then empty.
func ReportCommit(ctx context.Context, baseSHA, headSHA string) string {
	if baseSHA != "" {
		if sha, err := MergeBase(ctx, baseSHA, headSHA); err == nil {
			return sha
		}
		return baseSHA
	}
	if sha := os.Getenv("GITHUB_SHA"); sha != "" {
		return sha
	}
	if head, err := gitOutput(ctx, "rev-parse", "HEAD"); err == nil {
		return strings.TrimSpace(head)
	}
	return ""
}

func gitOutput(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
