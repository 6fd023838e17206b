package cli

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/apidelta/internal/output"
)

var reportCmd = &cobra.Command{
	Use:   "report <results>",
	Short: "Report comparison results in a CI run",
	Long: "Write the job-log report to stdout, append the HTML job summary to the step-summary " +
		"file, and create or update the pull-request comment. Exits 1 when any comparison " +
		"has warnings or could not run.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, ok := loadSession(ctx, args[0])
		if !ok {
			return nil
		}
		opts := output.Options{Verbose: sess.cfg.Verbose}

		if err := output.WriteReport(cmd.OutOrStdout(), sess.summary, sess.cfg.Format, opts, "", false); err != nil {
			logger.WithError(err).Error("Could not write report")
			exitCode = ExitRuntimeError
			return nil
		}

		if sess.cfg.SummaryFile != "" {
			if err := output.WriteReport(nil, sess.summary, "html", opts, sess.cfg.SummaryFile, true); err != nil {
				logger.WithError(err).Error("Could not write job summary")
				exitCode = ExitRuntimeError
				return nil
			}
			logger.WithField("file", sess.cfg.SummaryFile).Debug("Wrote job summary")
		}

		if sess.cfg.PostComment {
			if _, _, err := publishComment(ctx, sess); err != nil {
				entry := logger.WithError(err)
				if errors.Is(err, errNotPullRequest) {
					entry.Debug("Skipping pull request comment")
				} else {
					entry.Warn("Could not publish pull request comment")
				}
			}
		}

		if sess.results.Unsuccessful() {
			logger.WithFields(logrus.Fields{
				"failed":   len(sess.results.Failed),
				"warnings": sess.results.HasWarnings(),
			}).Error("Comparison reported warnings or failures")
			exitCode = ExitFailed
		}
		return nil
	},
}

func init() {
	addInputFlags(reportCmd)
	reportCmd.Flags().StringVar(&flagFormat, "format", "", "Job-log format (text, html, markdown, json)")
	reportCmd.Flags().StringVar(&flagSummaryFile, "summary-file", "", "Append the HTML job summary here (default: $GITHUB_STEP_SUMMARY)")
	reportCmd.Flags().BoolVar(&flagNoComment, "no-comment", false, "Do not create or update the pull-request comment")
}
