package report

import (
	"fmt"

	"github.com/dshills/apidelta/internal/checks"
	"github.com/dshills/apidelta/internal/diff"
)

// Comparison is one API definition that completed comparison.
type Comparison struct {
	APIName string `json:"apiName"`
	// GroupedDiffs maps an endpoint key to its diff tree.
	GroupedDiffs map[string]diff.Endpoint `json:"groupedDiffs"`
	CheckResults []checks.Result          `json:"checkResults"`
	Warnings     []string                 `json:"warnings"`
}

// Failure is an API definition whose comparison could not run.
type Failure struct {
	APIName string `json:"apiName"`
	Error   string `json:"error"`
}

// Results is the full engine output for one CI run.
type Results struct {
	Completed []Comparison `json:"completed"`
	Failed    []Failure    `json:"failed"`
	// Noop lists comparisons that produced no diffs at all.
	Noop []Comparison `json:"noop"`
	// Severity is the minimum check severity that counts toward totals.
	Severity checks.Severity `json:"severity"`
}

// Validate rejects malformed diff trees.
func (r Results) Validate() error {
	for _, group := range [][]Comparison{r.Completed, r.Noop} {
		for _, c := range group {
			for _, key := range sortedKeys(c.GroupedDiffs) {
				if err := c.GroupedDiffs[key].Validate(); err != nil {
					return fmt.Errorf("api %q: %w", c.APIName, err)
				}
			}
		}
	}
	return nil
}

// HasWarnings reports whether any completed comparison carries warnings.
func (r Results) HasWarnings() bool {
	for _, c := range r.Completed {
		if len(c.Warnings) > 0 {
			return true
		}
	}
	return false
}

// Unsuccessful reports whether the run should be treated as failed: some
// completed comparison has warnings or some comparison could not run.
func (r Results) Unsuccessful() bool {
	return r.HasWarnings() || len(r.Failed) > 0
}
