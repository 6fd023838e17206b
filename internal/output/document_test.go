package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/apidelta/internal/checks"
	"github.com/dshills/apidelta/internal/report"
)

func TestJobSummary(t *testing.T) {
	doc := JobSummary(sampleSummary())

	require.Len(t, doc.Blocks, 6)
	assert.Equal(t, Heading{Text: "API Changes", Level: 1}, doc.Blocks[0])

	changes, ok := doc.Blocks[1].(Table)
	require.True(t, ok)
	assert.Equal(t, [][]Cell{
		{
			{Data: "API", Header: true},
			{Data: "Changes", Header: true},
			{Data: "Rules", Header: true},
			{Data: "Warnings", Header: true},
		},
		{
			{Data: "petstore", RowSpan: 2},
			{Data: "1 operation added,\n1 removed\n\n- GET /pets (added)"},
			{Data: "⚠️ 1/2 failed", RowSpan: 2, Status: checks.StatusWarning},
			{Data: "", RowSpan: 2},
		},
		{
			{Data: "- DELETE /pets (removed)"},
		},
		{
			{Data: "orders", RowSpan: 1},
			{Data: "1 operation changed\n\n- GET /orders (changed)"},
			{Data: "ℹ️ No automated checks have run", RowSpan: 1, Status: checks.StatusInfo},
			{Data: "unresolved <ref>", RowSpan: 1},
		},
	}, changes.Rows)

	assert.Equal(t, Heading{Text: "Errors running comparison", Level: 1}, doc.Blocks[2])
	assert.Equal(t, Table{Rows: [][]Cell{
		{{Data: "API", Header: true}, {Data: "Error", Header: true}},
		{{Data: "billing"}, {Data: "open spec.yaml: no such file"}},
	}}, doc.Blocks[3])
	assert.Equal(t, Heading{Text: "Summary of API changes for commit (abc123)", Level: 3}, doc.Blocks[4])
	assert.Equal(t, Heading{Text: "2 APIs had no changes", Level: 1}, doc.Blocks[5])
}

func TestJobSummary_NoWarningsColumn(t *testing.T) {
	s := sampleSummary()
	s.ShowWarnings = false

	table := JobSummary(s).Blocks[1].(Table)
	assert.Len(t, table.Rows[0], 3)
	assert.Len(t, table.Rows[1], 3)
}

func TestJobSummary_SectionsOmittedIndependently(t *testing.T) {
	t.Run("nothing", func(t *testing.T) {
		doc := JobSummary(&report.Summary{Commit: "sha"})
		assert.Equal(t, []Block{
			Heading{Text: "Summary of API changes for commit (sha)", Level: 3},
		}, doc.Blocks)
	})

	t.Run("failures only", func(t *testing.T) {
		s := sampleSummary()
		s.Changed = nil
		doc := JobSummary(s)
		assert.Equal(t, Heading{Text: "Errors running comparison", Level: 1}, doc.Blocks[0])
	})

	t.Run("changes only", func(t *testing.T) {
		s := sampleSummary()
		s.Failures = nil
		s.NoChange = 1
		doc := JobSummary(s)
		require.Len(t, doc.Blocks, 4)
		assert.Equal(t, Heading{Text: "API Changes", Level: 1}, doc.Blocks[0])
		assert.Equal(t, Heading{Text: "1 API had no changes", Level: 1}, doc.Blocks[3])
	})
}
