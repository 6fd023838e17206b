package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dshills/apidelta/internal/gitctx"
)

// Event is the part of a GitHub Actions event payload the reporter reads.
type Event struct {
	PullRequest *PullRequest `json:"pull_request,omitempty"`
	Repository  struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// PullRequest holds the pull request fields of an event payload.
type PullRequest struct {
	Number int    `json:"number"`
	Base   GitRef `json:"base"`
	Head   GitRef `json:"head"`
}

// GitRef is one side of a pull request.
type GitRef struct {
	SHA string `json:"sha"`
	Ref string `json:"ref"`
}

// LoadEvent reads an event payload. An empty path yields an empty Event, as
// for runs outside GitHub Actions.
func LoadEvent(path string) (*Event, error) {
	if path == "" {
		return &Event{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parsing event payload: %w", err)
	}
	return &ev, nil
}

// EventFromEnv loads the payload named by GITHUB_EVENT_PATH.
func EventFromEnv() (*Event, error) {
	return LoadEvent(os.Getenv("GITHUB_EVENT_PATH"))
}

// IsPullRequest reports whether the event carries a pull request.
func (e *Event) IsPullRequest() bool {
	return e != nil && e.PullRequest != nil && e.PullRequest.Number > 0
}

// BaseSHA returns the pull request base commit, or empty.
func (e *Event) BaseSHA() string {
	if !e.IsPullRequest() {
		return ""
	}
	return e.PullRequest.Base.SHA
}

// HeadSHA returns the pull request head commit, or empty.
func (e *Event) HeadSHA() string {
	if !e.IsPullRequest() {
		return ""
	}
	return e.PullRequest.Head.SHA
}

// Target resolves the pull request to comment on. The repository comes from
// GITHUB_REPOSITORY, then the event payload, then the git origin remote.
func (e *Event) Target(ctx context.Context) (Target, error) {
	if !e.IsPullRequest() {
		return Target{}, fmt.Errorf("event is not a pull request")
	}
	owner, repo, err := resolveRepo(ctx, e.Repository.FullName)
	if err != nil {
		return Target{}, err
	}
	return Target{Owner: owner, Repo: repo, Number: e.PullRequest.Number}, nil
}

func resolveRepo(ctx context.Context, fullName string) (owner, repo string, err error) {
	for _, name := range []string{os.Getenv("GITHUB_REPOSITORY"), fullName} {
		if o, r, ok := strings.Cut(name, "/"); ok && o != "" && r != "" {
			return o, r, nil
		}
	}
	return DetectRepo(ctx)
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo(ctx context.Context) (owner, repo string, err error) {
	meta, err := gitctx.GetRepoMeta(ctx)
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: %w", err)
	}
	if meta.Remote == "" {
		return "", "", fmt.Errorf("cannot detect repo: no origin remote")
	}
	return ParseRemoteURL(meta.Remote)
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
