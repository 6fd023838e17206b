package diff

import (
	"fmt"
	"strings"
)

// DefaultJoiner separates count label fragments when no joiner is given.
const DefaultJoiner = ", "

// LabelOrder is the bucket order used by CountLabel.
var LabelOrder = []Change{ChangeAdded, ChangeChanged, ChangeRemoved}

// Counts holds the number of operations per change kind.
type Counts struct {
	Added   int `json:"added"`
	Changed int `json:"changed"`
	Removed int `json:"removed"`
}

// Get returns the count for a change kind.
func (c Counts) Get(ch Change) int {
	switch ch {
	case ChangeAdded:
		return c.Added
	case ChangeChanged:
		return c.Changed
	case ChangeRemoved:
		return c.Removed
	default:
		return 0
	}
}

// CountLabel formats counts in LabelOrder, e.g. "2 operations added, 1 removed".
func CountLabel(c Counts, joiner string) string {
	return CountLabelOrder(c, LabelOrder, joiner)
}

// CountLabelOrder formats one fragment per non-zero bucket in the given order.
// Only the first fragment carries the "operation"/"operations" unit word;
// existing report consumers match on that wording.
func CountLabelOrder(c Counts, order []Change, joiner string) string {
	if joiner == "" {
		joiner = DefaultJoiner
	}
	var parts []string
	for _, ch := range order {
		n := c.Get(ch)
		if n == 0 {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, ch))
			continue
		}
		unit := "operations"
		if n == 1 {
			unit = "operation"
		}
		parts = append(parts, fmt.Sprintf("%d %s %s", n, unit, ch))
	}
	return strings.Join(parts, joiner)
}

// LineOptions controls OperationLines.
type LineOptions struct {
	// Verbose includes one line per operation after the count label.
	Verbose bool
	// Joiner is passed to CountLabel.
	Joiner string
	// Gap separates the label from the list. Defaults to a blank line.
	Gap string
	// Sep separates operation lines. Defaults to a newline.
	Sep string
	// Item formats one operation. Defaults to "- <id> (<change>)".
	Item func(Operation) string
}

// OperationLines renders the count label of c, followed by the operation
// list when opts.Verbose is set.
func OperationLines(c Changes, opts LineOptions) string {
	label := CountLabel(c.Counts(), opts.Joiner)
	ops := c.Operations()
	if !opts.Verbose || len(ops) == 0 {
		return label
	}

	gap, sep, item := opts.Gap, opts.Sep, opts.Item
	if gap == "" {
		gap = "\n\n"
	}
	if sep == "" {
		sep = "\n"
	}
	if item == nil {
		item = BulletItem
	}

	lines := make([]string, len(ops))
	for i, op := range ops {
		lines[i] = item(op)
	}
	return label + gap + strings.Join(lines, sep)
}

// BulletItem formats an operation as "- <id> (<change>)".
func BulletItem(op Operation) string {
	return fmt.Sprintf("- %s (%s)", op.ID, op.Change)
}
