// Package github provides a minimal GitHub REST API client for publishing the
// change report as a pull-request comment.
//
// The report comment is found by the hidden marker every rendered report
// starts with, so repeated runs update one comment instead of adding new
// ones. Requests that fail with rate limiting or server errors are retried
// with exponential backoff.
//
// The pull request and repository come from the GitHub Actions event payload
// (GITHUB_EVENT_PATH), GITHUB_REPOSITORY, or the local git remote.
package github
