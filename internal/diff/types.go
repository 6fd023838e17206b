package diff

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEntry is returned for a diff entry that has neither a before nor
// an after value.
var ErrInvalidEntry = errors.New("diff entry has neither before nor after value")

// Change is the classification of a diff entry or an endpoint.
type Change string

const (
	ChangeNone    Change = ""
	ChangeAdded   Change = "added"
	ChangeChanged Change = "changed"
	ChangeRemoved Change = "removed"
)

// Entry is a single difference located by its trail within a specification
// field. An empty trail addresses the operation itself.
//
// Before and After keep the raw engine values; a nil slice means the side is
// absent, while a JSON null is a present value.
type Entry struct {
	Trail  string          `json:"trail"`
	Before json.RawMessage `json:"before,omitempty"`
	After  json.RawMessage `json:"after,omitempty"`
}

// Kind classifies the entry: both sides present is a change, only the after
// side is an addition, anything else is a removal.
func (e Entry) Kind() Change {
	switch {
	case e.Before != nil && e.After != nil:
		return ChangeChanged
	case e.After != nil:
		return ChangeAdded
	default:
		return ChangeRemoved
	}
}

// Validate rejects entries with neither side present.
func (e Entry) Validate() error {
	if e.Before == nil && e.After == nil {
		return fmt.Errorf("trail %q: %w", e.Trail, ErrInvalidEntry)
	}
	return nil
}

// Node is any tree record that holds its own diff list (a parameter, a header,
// a body field, an examples block).
type Node struct {
	Diffs []Entry `json:"diffs"`
}

// Content holds the diffs of one media type of a request or response body.
type Content struct {
	Examples Node            `json:"examples"`
	Fields   map[string]Node `json:"fields"`
}

// Request holds the request-level diffs of an endpoint.
type Request struct {
	Diffs    []Entry            `json:"diffs"`
	Contents map[string]Content `json:"contents"`
}

// Response holds the diffs of one response status.
type Response struct {
	Diffs    []Entry            `json:"diffs"`
	Headers  map[string]Node    `json:"headers"`
	Contents map[string]Content `json:"contents"`
}

// Endpoint is the diff tree of one HTTP operation. The union of every list
// in the tree is the complete diff surface of the operation.
type Endpoint struct {
	Method           string              `json:"method"`
	Path             string              `json:"path"`
	Diffs            []Entry             `json:"diffs"`
	Request          Request             `json:"request"`
	QueryParameters  map[string]Node     `json:"queryParameters"`
	CookieParameters map[string]Node     `json:"cookieParameters"`
	PathParameters   map[string]Node     `json:"pathParameters"`
	HeaderParameters map[string]Node     `json:"headerParameters"`
	Responses        map[string]Response `json:"responses"`
}

// ID returns the operation identifier, "<METHOD> <path>".
func (ep Endpoint) ID() string {
	return strings.ToUpper(ep.Method) + " " + ep.Path
}

// Validate checks every entry of the tree.
func (ep Endpoint) Validate() error {
	for _, e := range AllDiffs(ep) {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%s: %w", ep.ID(), err)
		}
	}
	return nil
}
