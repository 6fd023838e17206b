// Apidelta renders the results of an API specification comparison for CI.
//
// It reads the comparison results document, writes a report to the job log,
// appends an HTML summary to the CI step-summary file and keeps a single
// report comment up to date on the pull request. The exit code is non-zero
// when any comparison reported warnings or could not run.
//
// Usage:
//
//	apidelta report results.json            # job log, step summary and PR comment
//	apidelta comment results.json --verbose # print the PR comment
//	apidelta summary results.yaml --format json
//	apidelta config set severity warn
package main
