package redact

import (
	"regexp"

	"github.com/dshills/apidelta/internal/report"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys after common key names
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// AWS secret access keys
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer and basic auth headers
	regexp.MustCompile(`(?i)(Bearer|Basic)\s+[A-Za-z0-9._~+/=-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+([A-Z]+\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`github_pat_[A-Za-z0-9_]{22,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// sk- prefixed provider keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Long hex strings assigned to key-like names
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// userinfo matches credentials embedded in a URL, such as the ones a spec
// fetched from a private registry carries in its error messages.
var userinfo = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://)[^/\s:@]+:[^/\s@]+@`)

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := userinfo.ReplaceAllString(text, "${1}"+placeholder+"@")
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllLiteralString(result, placeholder)
	}
	return result
}

// Lines applies Secrets to each line in place and returns the slice.
func Lines(lines []string) []string {
	for i, l := range lines {
		lines[i] = Secrets(l)
	}
	return lines
}

// Results scrubs every free-text field of r: failure errors and the warnings
// of completed and no-op comparisons. It returns the number of fields that
// changed.
func Results(r *report.Results) int {
	n := 0
	scrub := func(s *string) {
		if clean := Secrets(*s); clean != *s {
			*s = clean
			n++
		}
	}
	for i := range r.Failed {
		scrub(&r.Failed[i].Error)
	}
	for _, list := range [][]report.Comparison{r.Completed, r.Noop} {
		for i := range list {
			for j := range list[i].Warnings {
				scrub(&list[i].Warnings[j])
			}
		}
	}
	return n
}
