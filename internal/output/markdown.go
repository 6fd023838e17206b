package output

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/dshills/apidelta/internal/diff"
	"github.com/dshills/apidelta/internal/report"
)

// MarkdownWriter outputs the rich pull-request comment.
type MarkdownWriter struct {
	Verbose bool
}

func (m *MarkdownWriter) Write(w io.Writer, s *report.Summary) error {
	return writeHTML(w, commentDocument(s, m.Verbose), true)
}

// Comment renders the rich report surface: an HTML-in-markdown table led by
// the report marker. With verbose set every changed operation is listed
// under its API's count label.
func Comment(s *report.Summary, verbose bool) string {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail.
	_ = writeHTML(&buf, commentDocument(s, verbose), true)
	return buf.String()
}

func commentDocument(s *report.Summary, verbose bool) Document {
	var doc Document
	doc.add(Raw{Text: s.Marker()})

	if len(s.Changed) > 0 {
		doc.add(Heading{Text: changesHeading, Level: 3})
		rows := [][]Cell{changesHeader(s.ShowWarnings)}
		for _, api := range s.Changed {
			row := []Cell{
				{Data: html.EscapeString(api.APIName)},
				{Data: diff.OperationLines(api.Changes, diff.LineOptions{
					Verbose: verbose,
					Joiner:  ",<br/>",
					Sep:     "<br/>",
					Item:    codeItem,
				})},
				{Data: statusIcon(api.Checks.Status) + " " + api.Checks.Format(boldNum), Status: api.Checks.Status},
			}
			if s.ShowWarnings {
				row = append(row, Cell{Data: escapeLines(api.Warnings)})
			}
			rows = append(rows, row)
		}
		doc.add(Table{Rows: rows})
	}

	if len(s.Failures) > 0 {
		doc.add(Heading{Text: failuresHeading, Level: 3})
		rows := [][]Cell{{{Data: "API", Header: true}, {Data: "Error", Header: true}}}
		for _, f := range s.Failures {
			rows = append(rows, []Cell{
				{Data: html.EscapeString(f.APIName)},
				{Data: codeBlock(f.Error)},
			})
		}
		doc.add(Table{Rows: rows})
	}

	doc.add(Heading{Text: s.Heading(), Level: 3})

	if text := s.NoChangeText(); text != "" {
		doc.add(Heading{Text: text, Level: 4})
	}
	return doc
}

func codeItem(op diff.Operation) string {
	return fmt.Sprintf("`%s` (%s)", op.ID, op.Change)
}

func boldNum(n int) string {
	return fmt.Sprintf("**%d**", n)
}

func escapeLines(lines []string) string {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = html.EscapeString(l)
	}
	return strings.Join(escaped, "<br/>")
}

// codeBlock frames text in a fenced code block whose fence is longer than any
// backtick run inside the text.
func codeBlock(text string) string {
	fence := "```"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	return fence + "\n" + strings.TrimRight(text, "\n") + "\n" + fence
}
