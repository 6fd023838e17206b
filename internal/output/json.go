package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/apidelta/internal/report"
)

// JSONWriter outputs the report summary as JSON, including its marker.
type JSONWriter struct{}

type jsonReport struct {
	*report.Summary
	Marker string `json:"marker"`
}

func (j *JSONWriter) Write(w io.Writer, s *report.Summary) error {
	data, err := json.MarshalIndent(jsonReport{Summary: s, Marker: s.Marker()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
