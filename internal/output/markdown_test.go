package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/apidelta/internal/report"
)

func TestComment(t *testing.T) {
	out := Comment(sampleSummary(), true)

	assert.True(t, strings.HasPrefix(out, "<!-- marker: abc123 -->\n\n### API Changes\n\n<table>\n<thead>\n"))
	assert.Contains(t, out, "<th>Warnings</th>")
	assert.Contains(t, out, "<td>\n\npetstore\n\n</td>")
	assert.Contains(t, out, "<td>\n\n1 operation added,<br/>1 removed\n\n`GET /pets` (added)<br/>`DELETE /pets` (removed)\n\n</td>")
	assert.Contains(t, out, "<td>\n\n⚠️ **1**/**2** failed\n\n</td>")
	assert.Contains(t, out, "ℹ️ No automated checks have run")
	assert.Contains(t, out, "unresolved &lt;ref&gt;")
	assert.Contains(t, out, "### Errors running comparison")
	assert.Contains(t, out, "<td>\n\n```\nopen spec.yaml: no such file\n```\n\n</td>")
	assert.Contains(t, out, "### Summary of API changes for commit (abc123)\n\n")
	assert.True(t, strings.HasSuffix(out, "#### 2 APIs had no changes\n\n"))
	assert.NotContains(t, out, "rowspan")
}

func TestComment_NotVerbose(t *testing.T) {
	out := Comment(sampleSummary(), false)
	assert.Contains(t, out, "<td>\n\n1 operation added,<br/>1 removed\n\n</td>")
	assert.NotContains(t, out, "`GET /pets`")
}

func TestComment_MarkerRoundTrip(t *testing.T) {
	s := sampleSummary()
	s.Commit = "9f8e7d6c5b4a3928171605f4e3d2c1b0a9f8e7d6"

	got, ok := report.ParseMarker(Comment(s, false))
	require.True(t, ok)
	assert.Equal(t, s.Commit, got)
}

func TestComment_SectionsOmitted(t *testing.T) {
	out := Comment(&report.Summary{Commit: "sha"}, true)
	assert.Equal(t, "<!-- marker: sha -->\n\n### Summary of API changes for commit (sha)\n\n", out)

	s := sampleSummary()
	s.Failures = nil
	s.ShowWarnings = false
	s.NoChange = 1
	out = Comment(s, false)
	assert.NotContains(t, out, "Errors running comparison")
	assert.NotContains(t, out, "Warnings")
	assert.Contains(t, out, "#### 1 API had no changes")

	s = sampleSummary()
	s.Changed = nil
	out = Comment(s, false)
	assert.NotContains(t, out, "API Changes")
	assert.Contains(t, out, "Errors running comparison")
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{Verbose: true}).Write(&buf, sampleSummary()))
	assert.Equal(t, Comment(sampleSummary(), true), buf.String())
}

func TestCodeBlock(t *testing.T) {
	assert.Equal(t, "```\nboom\n```", codeBlock("boom\n"))
	assert.Equal(t, "````\nsee ```yaml\n````", codeBlock("see ```yaml"))
}
