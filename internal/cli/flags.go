package cli

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/apidelta/internal/config"
	"github.com/dshills/apidelta/internal/github"
	"github.com/dshills/apidelta/internal/gitctx"
	"github.com/dshills/apidelta/internal/input"
	"github.com/dshills/apidelta/internal/report"
)

// Shared flags
var (
	flagSeverity    string
	flagFormat      string
	flagSummaryFile string
	flagInputFormat string
	flagCommit      string
	flagEvent       string
	flagOut         string
	flagAppend      bool
	flagVerbose     bool
	flagNoComment   bool
	flagNoRedact    bool
	flagPost        bool
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSeverity, "severity", "", "Minimum check severity to count (info, warn, error or a number)")
	cmd.Flags().StringVar(&flagInputFormat, "input-format", "", "Results format (json, yaml); inferred from the file name by default")
	cmd.Flags().StringVar(&flagCommit, "commit", "", "Commit the report is for (default: resolved from the pull request or HEAD)")
	cmd.Flags().StringVar(&flagEvent, "event", "", "GitHub event payload (default: $GITHUB_EVENT_PATH)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "List every changed operation in the pull-request comment")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagSeverity != "" {
		m["severity"] = flagSeverity
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagSummaryFile != "" {
		m["summaryFile"] = flagSummaryFile
	}
	if flagVerbose {
		m["verbose"] = "true"
	}
	if flagNoComment {
		m["postComment"] = "false"
	}
	if flagNoRedact {
		m["redactSecrets"] = "false"
	}
	return m
}

// session is everything a command needs after loading its inputs.
type session struct {
	cfg     config.Config
	results *report.Results
	event   *github.Event
	summary *report.Summary
}

// loadSession merges configuration, loads the results document and builds
// the report summary. On failure it logs, sets exitCode and returns false.
func loadSession(ctx context.Context, path string) (*session, bool) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		exitCode = ExitUsageError
		return nil, false
	}
	if !cfg.RedactSecrets {
		logger.Warn("Secret redaction is disabled")
	}

	results, err := input.Load(path, input.Options{
		Format:        flagInputFormat,
		RedactSecrets: cfg.RedactSecrets,
	})
	if err != nil {
		logger.WithError(err).WithField("path", path).Error("Could not load comparison results")
		exitCode = ExitRuntimeError
		return nil, false
	}
	if sev, ok, _ := cfg.MinSeverity(); ok {
		results.Severity = sev
	}

	event, err := github.LoadEvent(eventPath())
	if err != nil {
		logger.WithError(err).Warn("Could not read event payload, continuing without pull request context")
		event = &github.Event{}
	}

	commit := flagCommit
	if commit == "" {
		commit = gitctx.ReportCommit(ctx, event.BaseSHA(), event.HeadSHA())
	}

	summary, err := report.Build(*results, commit)
	if err != nil {
		logger.WithError(err).Error("Could not build report")
		exitCode = ExitRuntimeError
		return nil, false
	}

	logger.WithFields(logrus.Fields{
		"commit":    commit,
		"changed":   len(summary.Changed),
		"failed":    len(summary.Failures),
		"unchanged": summary.NoChange,
	}).Debug("Built report")

	return &session{cfg: cfg, results: results, event: event, summary: summary}, true
}

func eventPath() string {
	if flagEvent != "" {
		return flagEvent
	}
	return os.Getenv("GITHUB_EVENT_PATH")
}
