package output

import (
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/apidelta/internal/report"
)

// HTMLWriter writes the plain job summary as HTML, the markup CI step
// summaries accept.
type HTMLWriter struct{}

func (h *HTMLWriter) Write(w io.Writer, s *report.Summary) error {
	return writeHTML(w, JobSummary(s), false)
}

// writeHTML renders doc as HTML tables. In markdown mode headings become
// markdown headings and cell data is written unescaped between blank lines
// so a markdown renderer formats it; otherwise data is escaped and newlines
// become line breaks.
func writeHTML(w io.Writer, doc Document, markdown bool) error {
	ew := &errWriter{w: w}
	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case Raw:
			if markdown {
				ew.printf("%s\n\n", b.Text)
			}
		case Heading:
			if markdown {
				ew.printf("%s %s\n\n", strings.Repeat("#", headingLevel(b.Level)), b.Text)
			} else {
				lvl := headingLevel(b.Level)
				ew.printf("<h%d>%s</h%d>\n", lvl, html.EscapeString(b.Text), lvl)
			}
		case Table:
			writeHTMLTable(ew, b, markdown)
		}
	}
	return ew.err
}

func writeHTMLTable(ew *errWriter, t Table, markdown bool) {
	nl := ""
	if markdown {
		nl = "\n"
	}

	header := 0
	for header < len(t.Rows) && isHeaderRow(t.Rows[header]) {
		header++
	}

	ew.printf("<table>%s", nl)
	if markdown && header > 0 {
		ew.printf("<thead>\n")
	}
	for i, row := range t.Rows {
		if markdown && i == header && header > 0 {
			ew.printf("</thead>\n")
		}
		if markdown && i == header {
			ew.printf("<tbody>\n")
		}
		ew.printf("<tr>%s", nl)
		for _, c := range row {
			tag := "td"
			if c.Header {
				tag = "th"
			}
			ew.printf("<%s%s>", tag, rowSpanAttr(c.RowSpan))
			switch {
			case !markdown:
				ew.printf("%s", strings.ReplaceAll(html.EscapeString(c.Data), "\n", "<br/>"))
			case c.Header:
				ew.printf("%s", c.Data)
			default:
				ew.printf("\n\n%s\n\n", c.Data)
			}
			ew.printf("</%s>%s", tag, nl)
		}
		ew.printf("</tr>%s", nl)
	}
	if markdown {
		switch {
		case header < len(t.Rows):
			ew.printf("</tbody>\n")
		case header > 0:
			ew.printf("</thead>\n")
		}
	}
	ew.printf("</table>\n")
	if markdown {
		ew.printf("\n")
	}
}

func isHeaderRow(row []Cell) bool {
	if len(row) == 0 {
		return false
	}
	for _, c := range row {
		if !c.Header {
			return false
		}
	}
	return true
}

func rowSpanAttr(n int) string {
	if n <= 1 {
		return ""
	}
	return ` rowspan="` + strconv.Itoa(n) + `"`
}

func headingLevel(l int) int {
	switch {
	case l < 1:
		return 1
	case l > 6:
		return 6
	default:
		return l
	}
}
