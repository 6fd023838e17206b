package output

import (
	"github.com/dshills/apidelta/internal/checks"
	"github.com/dshills/apidelta/internal/diff"
	"github.com/dshills/apidelta/internal/report"
)

func sampleSummary() *report.Summary {
	return &report.Summary{
		Commit: "abc123",
		Changed: []report.APIChange{
			{
				APIName: "petstore",
				Changes: diff.Changes{
					Added:   []string{"GET /pets"},
					Removed: []string{"DELETE /pets"},
				},
				Checks: checks.Label{Status: checks.StatusWarning, Failing: 1, Total: 2},
			},
			{
				APIName:  "orders",
				Changes:  diff.Changes{Changed: []string{"GET /orders"}},
				Checks:   checks.Label{Status: checks.StatusInfo},
				Warnings: []string{"unresolved <ref>"},
			},
		},
		ShowWarnings: true,
		Failures:     []report.Failure{{APIName: "billing", Error: "open spec.yaml: no such file"}},
		NoChange:     2,
	}
}
