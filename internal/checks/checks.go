package checks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Severity ranks a rule-check result. Higher is more severe.
type Severity int

const (
	SeverityInfo  Severity = 0
	SeverityWarn  Severity = 1
	SeverityError Severity = 2
)

// String returns the severity name, or its number when it has none.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return strconv.Itoa(int(s))
	}
}

// ParseSeverity accepts "info", "warn" ("warning"), "error" or a decimal rank.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid severity %q: want info, warn, error or a number", s)
	}
	return Severity(n), nil
}

// UnmarshalJSON accepts a numeric rank or a severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseSeverity(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid severity %s", data)
	}
	*s = Severity(n)
	return nil
}

// Result is the outcome of one rule check.
type Result struct {
	Passed   bool     `json:"passed"`
	Severity Severity `json:"severity"`
	Exempted bool     `json:"exempted"`
}

// Status is the overall state of a set of checks.
type Status string

const (
	StatusWarning Status = "warning"
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
)

// Label is the summarized outcome of the checks of one API comparison.
type Label struct {
	Status   Status `json:"status"`
	Failing  int    `json:"failing"`
	Exempted int    `json:"exempted"`
	Total    int    `json:"total"`
}

// Summarize counts the results at or above min.
func Summarize(results []Result, min Severity) Label {
	var l Label
	for _, r := range results {
		if r.Severity < min {
			continue
		}
		l.Total++
		switch {
		case r.Passed:
		case r.Exempted:
			l.Exempted++
		default:
			l.Failing++
		}
	}

	switch {
	case l.Failing > 0:
		l.Status = StatusWarning
	case l.Total > 0:
		l.Status = StatusSuccess
	default:
		l.Status = StatusInfo
	}
	return l
}

// NoChecksText is the label text when no check was considered.
const NoChecksText = "No automated checks have run"

// String renders the label without decoration, e.g. "1/2 failed, 1 exempted".
func (l Label) String() string {
	return l.Format(strconv.Itoa)
}

// Format renders the label, passing every count through num so surfaces can
// emphasize the numbers.
func (l Label) Format(num func(int) string) string {
	exempted := ""
	if l.Exempted > 0 {
		exempted = fmt.Sprintf(", %d exempted", l.Exempted)
	}
	switch l.Status {
	case StatusWarning:
		return fmt.Sprintf("%s/%s failed%s", num(l.Failing), num(l.Total), exempted)
	case StatusSuccess:
		return fmt.Sprintf("%s passed%s", num(l.Total), exempted)
	default:
		return NoChecksText
	}
}
