package input

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/dshills/apidelta/internal/redact"
	"github.com/dshills/apidelta/internal/report"
)

//go:embed schema.json
var schemaJSON []byte

// Supported document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options controls how a results document is read.
type Options struct {
	// Format is FormatJSON or FormatYAML. Empty infers it from the file
	// extension, defaulting to JSON.
	Format string
	// RedactSecrets scrubs failure errors and warnings after decoding.
	RedactSecrets bool
}

// Load reads the results document at path. A path of "-" reads stdin.
func Load(path string, opts Options) (*report.Results, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}

	if opts.Format == "" {
		opts.Format = FormatFor(path)
	}
	return Parse(data, opts)
}

// FormatFor infers the document format from a file name.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes, validates and normalizes a results document.
func Parse(data []byte, opts Options) (*report.Results, error) {
	doc, err := decode(data, opts.Format)
	if err != nil {
		return nil, err
	}

	flatten(doc)

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating results: %w", err)
	}

	flat, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding results: %w", err)
	}
	var results report.Results
	if err := json.Unmarshal(flat, &results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	if err := results.Validate(); err != nil {
		return nil, fmt.Errorf("validating results: %w", err)
	}

	if opts.RedactSecrets {
		redact.Results(&results)
	}
	return &results, nil
}

// decode parses data into the generic value tree the schema validator
// expects. YAML is re-encoded as JSON first so both formats produce the same
// value types.
func decode(data []byte, format string) (any, error) {
	switch format {
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing YAML results: %w", err)
		}
		converted, err := jsonValue(v)
		if err != nil {
			return nil, fmt.Errorf("parsing YAML results: %w", err)
		}
		if data, err = json.Marshal(converted); err != nil {
			return nil, fmt.Errorf("parsing YAML results: %w", err)
		}
	case FormatJSON, "":
	default:
		return nil, fmt.Errorf("unsupported results format: %s", format)
	}

	var doc any
	if err := json.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON results: %w", err)
	}
	return doc, nil
}

// jsonValue converts YAML mappings with non-string keys into string-keyed
// maps, which encoding/json requires.
func jsonValue(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			converted, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			v[k] = converted
		}
		return v, nil
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			converted, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			m[fmt.Sprint(k)] = converted
		}
		return m, nil
	case []any:
		for i, item := range v {
			converted, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			v[i] = converted
		}
		return v, nil
	default:
		return v, nil
	}
}

// flatten rewrites native comparison entries in place: comparison.groupedDiffs
// (or its endpoints member) becomes groupedDiffs and comparison.results
// becomes checkResults. Fields already in the flat layout win.
func flatten(doc any) {
	root, ok := doc.(map[string]any)
	if !ok {
		return
	}
	for _, key := range []string{"completed", "noop"} {
		list, ok := root[key].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			comparison, ok := entry["comparison"].(map[string]any)
			if !ok {
				continue
			}
			if _, set := entry["groupedDiffs"]; !set {
				if grouped, ok := comparison["groupedDiffs"].(map[string]any); ok {
					if endpoints, ok := grouped["endpoints"].(map[string]any); ok {
						entry["groupedDiffs"] = endpoints
					} else {
						entry["groupedDiffs"] = grouped
					}
				}
			}
			if _, set := entry["checkResults"]; !set {
				if results, ok := comparison["results"]; ok {
					entry["checkResults"] = results
				}
			}
			delete(entry, "comparison")
		}
	}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parsing results schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("adding results schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("schema.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compiling results schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}
