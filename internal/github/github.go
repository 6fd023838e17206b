package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/dshills/apidelta/internal/report"
)

const (
	defaultAPIURL  = "https://api.github.com"
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
	perPage        = 100
)

// ErrNoToken is returned when no API token is configured.
var ErrNoToken = errors.New("GITHUB_TOKEN environment variable is not set")

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (%s %s, status %d): %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unauthorized reports whether the token was rejected.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Options configures a Client.
type Options struct {
	// Token defaults to GITHUB_TOKEN.
	Token string
	// APIURL defaults to GITHUB_API_URL, then https://api.github.com.
	APIURL  string
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
	log     logrus.FieldLogger
	retries uint64
	backoff func() backoff.BackOff
}

// NewClient creates a new GitHub client.
func NewClient(opts Options) (*Client, error) {
	token := opts.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, ErrNoToken
	}

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = os.Getenv("GITHUB_API_URL")
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Client{
		token:   token,
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: &http.Client{Timeout: timeout},
		log:     log.WithField("component", "github"),
		retries: defaultRetries,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxElapsedTime = timeout
			return b
		},
	}, nil
}

// Target identifies a pull request (an issue, to the comments API).
type Target struct {
	Owner  string
	Repo   string
	Number int
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s#%d", t.Owner, t.Repo, t.Number)
}

// Comment is an issue comment.
type Comment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url,omitempty"`
}

// ListComments returns every comment on the pull request, following
// pagination.
func (c *Client) ListComments(ctx context.Context, t Target) ([]Comment, error) {
	var all []Comment
	for page := 1; ; page++ {
		var batch []Comment
		path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", t.Owner, t.Repo, t.Number, perPage, page)
		header, err := c.do(ctx, http.MethodGet, path, nil, &batch)
		if err != nil {
			return nil, fmt.Errorf("listing comments on %s: %w", t, err)
		}
		all = append(all, batch...)
		if !hasNextPage(header.Get("Link")) || len(batch) == 0 {
			return all, nil
		}
	}
}

// CreateComment posts a new comment on the pull request.
func (c *Client) CreateComment(ctx context.Context, t Target, body string) (Comment, error) {
	var out Comment
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", t.Owner, t.Repo, t.Number)
	if _, err := c.do(ctx, http.MethodPost, path, map[string]string{"body": body}, &out); err != nil {
		return Comment{}, fmt.Errorf("creating comment on %s: %w", t, err)
	}
	return out, nil
}

// UpdateComment replaces the body of an existing comment.
func (c *Client) UpdateComment(ctx context.Context, t Target, id int64, body string) (Comment, error) {
	var out Comment
	path := fmt.Sprintf("/repos/%s/%s/issues/comments/%d", t.Owner, t.Repo, id)
	if _, err := c.do(ctx, http.MethodPatch, path, map[string]string{"body": body}, &out); err != nil {
		return Comment{}, fmt.Errorf("updating comment %d on %s: %w", id, t, err)
	}
	return out, nil
}

// FindReportComment returns the first comment carrying a report marker, or
// nil when there is none.
func (c *Client) FindReportComment(ctx context.Context, t Target) (*Comment, error) {
	comments, err := c.ListComments(ctx, t)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if report.IsReport(comments[i].Body) {
			return &comments[i], nil
		}
	}
	return nil, nil
}

// UpsertComment updates the pull request's report comment, or creates one
// when none exists. If the existing comments cannot be listed a new comment
// is created. created reports which of the two happened.
func (c *Client) UpsertComment(ctx context.Context, t Target, body string) (comment Comment, created bool, err error) {
	existing, err := c.FindReportComment(ctx, t)
	if err != nil {
		c.log.WithError(err).WithField("pr", t.String()).Warn("Could not look up existing report comment")
	}

	if existing != nil {
		c.log.WithFields(logrus.Fields{"pr": t.String(), "comment_id": existing.ID}).Debug("Updating report comment")
		comment, err = c.UpdateComment(ctx, t, existing.ID, body)
		return comment, false, err
	}

	c.log.WithField("pr", t.String()).Debug("Creating report comment")
	comment, err = c.CreateComment(ctx, t, body)
	return comment, true, err
}

// do sends one API request, retrying rate-limited and server-side failures.
// in is encoded as the JSON body when non-nil; out receives the decoded
// response when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
	}

	var header http.Header
	op := func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpCli.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(data)),
			}
			if retryable(resp.StatusCode) {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}

		header = resp.Header
		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return backoff.Permanent(fmt.Errorf("parsing response: %w", err))
			}
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), c.retries), ctx)
	err := backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"wait":   wait,
		}).WithError(err).Warn("GitHub request failed, retrying")
	})
	if err != nil {
		return nil, err
	}
	return header, nil
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// hasNextPage reports whether a Link header advertises a next page.
func hasNextPage(link string) bool {
	for _, part := range strings.Split(link, ",") {
		if strings.Contains(part, `rel="next"`) {
			return true
		}
	}
	return false
}
