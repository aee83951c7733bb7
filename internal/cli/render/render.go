// Package render writes container values in the fluent command's output
// formats.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/collections"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	JSON  Format = "json"
	YAML  Format = "yaml"
	Table Format = "table"
	Dot   Format = "dot"
)

// Render writes v to w in format. Paths in the dot format are joined with
// r's separator.
func Render(w io.Writer, format Format, v any, r arr.Resolver) error {
	switch format {
	case JSON, "":
		return renderJSON(w, v)
	case YAML:
		return renderYAML(w, v)
	case Table:
		return renderTable(w, v)
	case Dot:
		return renderDot(w, v, r)
	}
	return fmt.Errorf("render: unknown format %q", format)
}

func renderJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(collections.Portable(v), "", "  ")
	if err != nil {
		return fmt.Errorf("render: encoding json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(collections.Portable(v)); err != nil {
		return fmt.Errorf("render: encoding yaml: %w", err)
	}
	return enc.Close()
}

// renderDot prints one "path = value" line per leaf, values encoded as JSON.
func renderDot(w io.Writer, v any, r arr.Resolver) error {
	flat := r.Dot(v)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b, err := json.Marshal(collections.Portable(flat[k]))
		if err != nil {
			return fmt.Errorf("render: encoding %s: %w", k, err)
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", k, b); err != nil {
			return err
		}
	}
	return nil
}

// renderTable prints a Sequence of Mappings as one row per element with a
// column per key, and anything else as key/value rows.
func renderTable(w io.Writer, v any) error {
	entries := arr.Entries(v)
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	if cols, ok := recordColumns(v, entries); ok {
		header := table.Row{"#"}
		for _, col := range cols {
			header = append(header, col)
		}
		t.AppendHeader(header)
		for _, e := range entries {
			row := table.Row{e.Key}
			for _, col := range cols {
				cell, found := lookup(e.Value, col)
				if !found {
					row = append(row, "")
					continue
				}
				row = append(row, formatValue(cell))
			}
			t.AppendRow(row)
		}
	} else {
		t.AppendHeader(table.Row{"key", "value"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Key, formatValue(e.Value)})
		}
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(entries))
	return nil
}

// recordColumns returns the sorted union of element keys when v is a
// Sequence whose elements are all Mappings.
func recordColumns(v any, entries []arr.Entry) ([]string, bool) {
	if shape, err := collections.Classify(v); err != nil || shape != collections.Sequence {
		return nil, false
	}
	seen := map[string]bool{}
	var cols []string
	for _, e := range entries {
		shape, err := collections.Classify(e.Value)
		if err != nil || shape != collections.Mapping {
			return nil, false
		}
		for _, inner := range arr.Entries(e.Value) {
			col := fmt.Sprint(inner.Key)
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	sort.Strings(cols)
	return cols, true
}

func lookup(record any, col string) (any, bool) {
	for _, e := range arr.Entries(record) {
		if fmt.Sprint(e.Key) == col {
			return e.Value, true
		}
	}
	return nil, false
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if arr.IsContainer(v) {
		b, err := json.Marshal(collections.Portable(v))
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}
