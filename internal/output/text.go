package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/dshills/apidelta/internal/checks"
	"github.com/dshills/apidelta/internal/report"
)

// TextWriter writes the plain job summary as terminal tables for a CI job log.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, s *report.Summary) error {
	return writeText(w, JobSummary(s))
}

func writeText(w io.Writer, doc Document) error {
	ew := &errWriter{w: w}
	bold := color.New(color.Bold).SprintFunc()

	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case Heading:
			ew.printf("\n%s\n", bold(b.Text))
			if b.Level <= 1 {
				ew.println(strings.Repeat("─", 60))
			}
		case Table:
			headers, rows := textGrid(b)
			var buf bytes.Buffer
			renderTable(&buf, headers, rows)
			ew.printf("%s", buf.String())
		}
	}
	return ew.err
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetRowLine(true)
	table.SetBorder(true)
	table.AppendBulk(rows)
	table.Render()
}

// textGrid lays a table out on a full grid. A spanned cell is printed on its
// first row and left blank on the rows it covers.
func textGrid(t Table) ([]string, [][]string) {
	var headers []string
	body := t.Rows
	if len(body) > 0 && isHeaderRow(body[0]) {
		for _, c := range body[0] {
			headers = append(headers, c.Data)
		}
		body = body[1:]
	}

	width := len(headers)
	for _, row := range body {
		width = max(width, len(row))
	}

	covered := make([]int, width)
	var rows [][]string
	for _, row := range body {
		line := make([]string, width)
		next := 0
		for col := 0; col < width; col++ {
			if covered[col] > 0 {
				covered[col]--
				continue
			}
			if next >= len(row) {
				continue
			}
			c := row[next]
			next++
			line[col] = colorize(c.Data, c.Status)
			if c.RowSpan > 1 {
				covered[col] = c.RowSpan - 1
			}
		}
		rows = append(rows, line)
	}
	return headers, rows
}

func colorize(s string, status checks.Status) string {
	switch status {
	case checks.StatusWarning:
		return color.New(color.FgYellow).Sprint(s)
	case checks.StatusSuccess:
		return color.New(color.FgGreen).Sprint(s)
	case checks.StatusInfo:
		return color.New(color.FgCyan).Sprint(s)
	default:
		return s
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
