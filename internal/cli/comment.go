package cli

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/apidelta/internal/github"
	"github.com/dshills/apidelta/internal/output"
)

var errNotPullRequest = errors.New("not running for a pull request")

var commentCmd = &cobra.Command{
	Use:   "comment <results>",
	Short: "Render the pull-request comment",
	Long:  "Print the markdown pull-request comment, or write it to --out. With --post it is also published.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, ok := loadSession(ctx, args[0])
		if !ok {
			return nil
		}

		opts := output.Options{Verbose: sess.cfg.Verbose}
		if err := output.WriteReport(cmd.OutOrStdout(), sess.summary, "markdown", opts, flagOut, false); err != nil {
			logger.WithError(err).Error("Could not write comment")
			exitCode = ExitRuntimeError
			return nil
		}

		if flagPost {
			if _, _, err := publishComment(ctx, sess); err != nil {
				logger.WithError(err).Error("Could not publish pull request comment")
				exitCode = publishExitCode(err)
			}
		}
		return nil
	},
}

// publishComment creates or updates the report comment on the event's pull
// request.
func publishComment(ctx context.Context, sess *session) (github.Comment, bool, error) {
	if !sess.event.IsPullRequest() {
		return github.Comment{}, false, errNotPullRequest
	}
	target, err := sess.event.Target(ctx)
	if err != nil {
		return github.Comment{}, false, err
	}

	client, err := github.NewClient(github.Options{
		APIURL:  sess.cfg.GitHub.APIURL,
		Timeout: sess.cfg.Timeout(),
		Log:     logger,
	})
	if err != nil {
		return github.Comment{}, false, err
	}

	body := output.Comment(sess.summary, sess.cfg.Verbose)
	comment, created, err := client.UpsertComment(ctx, target, body)
	if err != nil {
		return github.Comment{}, false, err
	}

	logger.WithFields(logrus.Fields{
		"pr":         target.String(),
		"comment_id": comment.ID,
		"created":    created,
	}).Info("Published report comment")
	return comment, created, nil
}

func publishExitCode(err error) int {
	var apiErr *github.APIError
	switch {
	case errors.Is(err, github.ErrNoToken):
		return ExitAuthError
	case errors.As(err, &apiErr) && apiErr.Unauthorized():
		return ExitAuthError
	case errors.Is(err, errNotPullRequest):
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

func init() {
	addInputFlags(commentCmd)
	commentCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	commentCmd.Flags().BoolVar(&flagPost, "post", false, "Also create or update the comment on the pull request")
}
