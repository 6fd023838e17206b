package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/apidelta/internal/report"
)

// Writer writes a report summary in a specific format.
type Writer interface {
	Write(w io.Writer, s *report.Summary) error
}

// Options tunes writers that support it.
type Options struct {
	// Verbose lists every changed operation in the PR comment.
	Verbose bool
}

// Formats lists the supported format names.
var Formats = []string{"text", "html", "markdown", "json"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string, opts Options) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	case "markdown":
		return &MarkdownWriter{Verbose: opts.Verbose}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the summary to outPath, or to stdout when outPath is
// empty. With appendOut the file is appended to instead of truncated, which
// is how CI step-summary files are meant to be written.
func WriteReport(stdout io.Writer, s *report.Summary, format string, opts Options, outPath string, appendOut bool) error {
	writer, err := GetWriter(format, opts)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if appendOut {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(outPath, flags, 0o644)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = stdout
	}

	return writer.Write(w, s)
}
