package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess = 0
	// ExitFailed means some comparison had warnings or could not run.
	ExitFailed       = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// logger is created before any command runs.
var logger *logrus.Logger

var rootCmd = &cobra.Command{
	Use:   "apidelta",
	Short: "Render API change reports for CI",
	Long: "apidelta turns the results of an API specification comparison into a " +
		"job-log report, a CI step summary and a pull-request comment.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr())
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print apidelta version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "apidelta version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
