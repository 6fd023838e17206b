package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/apidelta/internal/output"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <results>",
	Short: "Render one report surface",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, ok := loadSession(cmd.Context(), args[0])
		if !ok {
			return nil
		}

		opts := output.Options{Verbose: sess.cfg.Verbose}
		if err := output.WriteReport(cmd.OutOrStdout(), sess.summary, sess.cfg.Format, opts, flagOut, flagAppend); err != nil {
			logger.WithError(err).Error("Could not write summary")
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func init() {
	addInputFlags(summaryCmd)
	summaryCmd.Flags().StringVar(&flagFormat, "format", "",
		fmt.Sprintf("Output format (%s)", strings.Join(output.Formats, ", ")))
	summaryCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	summaryCmd.Flags().BoolVar(&flagAppend, "append", false, "Append to --out instead of replacing it")
}
