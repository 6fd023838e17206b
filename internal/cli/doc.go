// Package cli wires together the Cobra command tree for the apidelta binary.
//
// It defines the root command and its subcommands (report, comment, summary,
// config, version), binds flags, reads configuration, loads the comparison
// results, renders the report surfaces, publishes the pull-request comment,
// and returns deterministic exit codes for CI gating.
package cli
