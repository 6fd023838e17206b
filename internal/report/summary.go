package report

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/apidelta/internal/checks"
	"github.com/dshills/apidelta/internal/diff"
)

// APIChange is one API with at least one net-changed operation.
type APIChange struct {
	APIName  string       `json:"apiName"`
	Changes  diff.Changes `json:"changes"`
	Checks   checks.Label `json:"checks"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Summary is the surface-independent content of a report.
type Summary struct {
	Commit  string      `json:"commit"`
	Changed []APIChange `json:"changed"`
	// ShowWarnings is set when any completed comparison has warnings; every
	// row then gets a warnings cell, empty or not.
	ShowWarnings bool      `json:"showWarnings"`
	Failures     []Failure `json:"failures"`
	// NoChange counts APIs without any net-changed operation.
	NoChange int `json:"noChange"`
}

// Build validates results and computes the summary for commit.
func Build(results Results, commit string) (*Summary, error) {
	if err := results.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comparison results: %w", err)
	}

	s := &Summary{
		Commit:       commit,
		ShowWarnings: results.HasWarnings(),
		Failures:     results.Failed,
		NoChange:     len(results.Noop),
	}
	for _, c := range results.Completed {
		changes := diff.Aggregate(c.GroupedDiffs)
		if changes.Len() == 0 {
			s.NoChange++
			continue
		}
		s.Changed = append(s.Changed, APIChange{
			APIName:  c.APIName,
			Changes:  changes,
			Checks:   checks.Summarize(c.CheckResults, results.Severity),
			Warnings: c.Warnings,
		})
	}
	return s, nil
}

// Marker returns the hidden identity comment of this report.
func (s *Summary) Marker() string {
	return Marker(s.Commit)
}

// Heading is the trailing summary line naming the commit.
func (s *Summary) Heading() string {
	return fmt.Sprintf("Summary of API changes for commit (%s)", s.Commit)
}

// NoChangeText is the no-op notice, empty when every API changed.
func (s *Summary) NoChangeText() string {
	switch s.NoChange {
	case 0:
		return ""
	case 1:
		return "1 API had no changes"
	default:
		return fmt.Sprintf("%d APIs had no changes", s.NoChange)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
