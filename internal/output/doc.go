// Package output renders a [report.Summary] for display or machine consumption.
//
// Two report surfaces share one document model ([Document]):
//   - the plain job summary ([JobSummary]), written as HTML for a CI step
//     summary (format "html") or as tables for a CI job log (format "text");
//   - the rich pull-request comment ([Comment], format "markdown"), an
//     HTML-in-markdown table led by the report's hidden marker.
//
// Format "json" emits the summary itself. Use [GetWriter] to obtain a
// [Writer] for a format string and [WriteReport] to pick the destination.
package output
