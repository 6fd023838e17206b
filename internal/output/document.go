package output

import (
	"strings"

	"github.com/dshills/apidelta/internal/checks"
	"github.com/dshills/apidelta/internal/diff"
	"github.com/dshills/apidelta/internal/report"
)

const (
	changesHeading  = "API Changes"
	failuresHeading = "Errors running comparison"
)

// Block is one element of a Document.
type Block interface {
	block()
}

// Heading is a section title. Level 1 is the largest.
type Heading struct {
	Text  string
	Level int
}

// Table is a list of rows; header cells have Header set.
type Table struct {
	Rows [][]Cell
}

// Raw is emitted verbatim by sinks that understand it and skipped by others.
type Raw struct {
	Text string
}

func (Heading) block() {}
func (Table) block()   {}
func (Raw) block()     {}

// Cell is one table cell. A RowSpan above one makes the cell cover that many
// rows; the covered rows omit the cell.
type Cell struct {
	Data    string
	Header  bool
	RowSpan int
	// Status marks check-status cells so sinks may colour them.
	Status checks.Status
}

// Document is an ordered list of headings and tables.
type Document struct {
	Blocks []Block
}

func (d *Document) add(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// JobSummary builds the plain report surface. Each changed API gets one row
// per changed operation; its name, rules and warnings cells span those rows
// and its first changes cell opens with the count label.
func JobSummary(s *report.Summary) Document {
	var doc Document

	if len(s.Changed) > 0 {
		doc.add(Heading{Text: changesHeading, Level: 1})
		rows := [][]Cell{changesHeader(s.ShowWarnings)}
		for _, api := range s.Changed {
			ops := api.Changes.Operations()
			span := len(ops)
			label := diff.CountLabel(api.Changes.Counts(), ",\n")
			for i, op := range ops {
				line := diff.BulletItem(op)
				if i > 0 {
					rows = append(rows, []Cell{{Data: line}})
					continue
				}
				row := []Cell{
					{Data: api.APIName, RowSpan: span},
					{Data: label + "\n\n" + line},
					{Data: statusIcon(api.Checks.Status) + " " + api.Checks.String(), RowSpan: span, Status: api.Checks.Status},
				}
				if s.ShowWarnings {
					row = append(row, Cell{Data: strings.Join(api.Warnings, "\n"), RowSpan: span})
				}
				rows = append(rows, row)
			}
		}
		doc.add(Table{Rows: rows})
	}

	if len(s.Failures) > 0 {
		doc.add(Heading{Text: failuresHeading, Level: 1})
		rows := [][]Cell{{{Data: "API", Header: true}, {Data: "Error", Header: true}}}
		for _, f := range s.Failures {
			rows = append(rows, []Cell{{Data: f.APIName}, {Data: f.Error}})
		}
		doc.add(Table{Rows: rows})
	}

	doc.add(Heading{Text: s.Heading(), Level: 3})

	if text := s.NoChangeText(); text != "" {
		doc.add(Heading{Text: text, Level: 1})
	}
	return doc
}

func changesHeader(warnings bool) []Cell {
	header := []Cell{
		{Data: "API", Header: true},
		{Data: "Changes", Header: true},
		{Data: "Rules", Header: true},
	}
	if warnings {
		header = append(header, Cell{Data: "Warnings", Header: true})
	}
	return header
}

func statusIcon(s checks.Status) string {
	switch s {
	case checks.StatusWarning:
		return "⚠️"
	case checks.StatusSuccess:
		return "✅"
	default:
		return "ℹ️"
	}
}
