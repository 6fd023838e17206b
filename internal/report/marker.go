package report

import (
	"regexp"
	"strings"
)

// MarkerPrefix starts every report marker. Bodies containing it are reports
// produced by this tool, whatever commit they were rendered for.
const MarkerPrefix = "<!-- marker: "

const markerSuffix = " -->"

var markerRe = regexp.MustCompile(`<!-- marker: (.*?) -->`)

// Marker returns the hidden comment identifying a report for commit.
func Marker(commit string) string {
	return MarkerPrefix + commit + markerSuffix
}

// ParseMarker extracts the commit from the first marker in body.
func ParseMarker(body string) (string, bool) {
	m := markerRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsReport reports whether body contains a report marker.
func IsReport(body string) bool {
	return strings.Contains(body, MarkerPrefix)
}
