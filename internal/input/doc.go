// Package input loads the comparison engine's results document.
//
// Documents may be JSON or YAML. Two layouts are accepted: the flat one,
// where each comparison carries groupedDiffs (endpoint key to diff tree) and
// checkResults directly, and the engine's native one, where both live under
// a comparison object and the endpoints are nested under
// groupedDiffs.endpoints. Native documents are rewritten to the flat layout,
// checked against an embedded JSON Schema, decoded into report.Results and
// validated before anything is rendered.
package input
