package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var target = Target{Owner: "acme", Repo: "petstore", Number: 7}

func testClient(t *testing.T, h http.HandlerFunc) (*Client, *test.Hook) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return &Client{
		token:   "test-token",
		apiURL:  server.URL,
		httpCli: server.Client(),
		log:     logger.WithField("component", "github"),
		retries: 2,
		backoff: func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}, hook
}

func TestNewClient(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	_, err := NewClient(Options{})
	assert.ErrorIs(t, err, ErrNoToken)

	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3/")
	c, err := NewClient(Options{})
	require.NoError(t, err)
	assert.Equal(t, "env-token", c.token)
	assert.Equal(t, "https://ghe.example.com/api/v3", c.apiURL)
	assert.Equal(t, defaultTimeout, c.httpCli.Timeout)

	c, err = NewClient(Options{Token: "flag-token", APIURL: "http://localhost:9999"})
	require.NoError(t, err)
	assert.Equal(t, "flag-token", c.token)
	assert.Equal(t, "http://localhost:9999", c.apiURL)
}

func TestListComments_Paginates(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/repos/acme/petstore/issues/7/comments", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("Link", `<http://x/?page=2>; rel="next", <http://x/?page=2>; rel="last"`)
			fmt.Fprint(w, `[{"id":1,"body":"first"}]`)
		case "2":
			fmt.Fprint(w, `[{"id":2,"body":"second"}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	comments, err := c.ListComments(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, []Comment{{ID: 1, Body: "first"}, {ID: 2, Body: "second"}}, comments)
}

func TestCreateComment(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/acme/petstore/issues/7/comments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hello", payload["body"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":42,"body":"hello","html_url":"https://github.com/acme/petstore/pull/7#issuecomment-42"}`)
	})

	got, err := c.CreateComment(context.Background(), target, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Contains(t, got.HTMLURL, "issuecomment-42")
}

func TestUpdateComment(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/acme/petstore/issues/comments/42", r.URL.Path)
		fmt.Fprint(w, `{"id":42,"body":"updated"}`)
	})

	got, err := c.UpdateComment(context.Background(), target, 42, "updated")
	require.NoError(t, err)
	assert.Equal(t, Comment{ID: 42, Body: "updated"}, got)
}

func TestUpsertComment_UpdatesMarkedComment(t *testing.T) {
	var patched, posted atomic.Int32
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `[{"id":1,"body":"LGTM"},{"id":2,"body":"<!-- marker: old -->\n### API Changes"}]`)
		case http.MethodPatch:
			patched.Add(1)
			assert.Equal(t, "/repos/acme/petstore/issues/comments/2", r.URL.Path)
			fmt.Fprint(w, `{"id":2,"body":"new"}`)
		case http.MethodPost:
			posted.Add(1)
		}
	})

	got, created, err := c.UpsertComment(context.Background(), target, "<!-- marker: new -->")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, int32(1), patched.Load())
	assert.Equal(t, int32(0), posted.Load())
}

func TestUpsertComment_CreatesWhenMissing(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `[{"id":1,"body":"LGTM"}]`)
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":3,"body":"report"}`)
		default:
			t.Errorf("unexpected %s", r.Method)
		}
	})

	got, created, err := c.UpsertComment(context.Background(), target, "report")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(3), got.ID)
}

func TestUpsertComment_CreatesWhenListFails(t *testing.T) {
	c, hook := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":5}`)
		}
	})

	_, created, err := c.UpsertComment(context.Background(), target, "report")
	require.NoError(t, err)
	assert.True(t, created)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "Could not look up existing report comment" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c, hook := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `[]`)
	})

	comments, err := c.ListComments(context.Background(), target)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.Equal(t, int32(3), calls.Load())

	retries := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "GitHub request failed, retrying" {
			retries++
			assert.Equal(t, "github", e.Data["component"])
		}
	}
	assert.Equal(t, 2, retries)
}

func TestDo_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.CreateComment(context.Background(), target, "x")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	})

	_, err := c.UpdateComment(context.Background(), target, 1, "x")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.Unauthorized())
	assert.Contains(t, err.Error(), "Bad credentials")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHasNextPage(t *testing.T) {
	assert.False(t, hasNextPage(""))
	assert.False(t, hasNextPage(`<https://api.github.com/x?page=1>; rel="prev"`))
	assert.True(t, hasNextPage(`<https://api.github.com/x?page=1>; rel="prev", <https://api.github.com/x?page=3>; rel="next"`))
}
