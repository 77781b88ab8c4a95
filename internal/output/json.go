// Package output writes resolved values, validation reports and schema
// listings for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteJSON writes v as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteValue writes a single resolved value to the writer.
func WriteValue(w io.Writer, values map[string]any, key string) error {
	val, ok := values[key]
	if !ok {
		return fmt.Errorf("no value for option %q", key)
	}
	_, err := fmt.Fprintln(w, FormatValue(val))
	return err
}

// WriteValues writes all values as key=value pairs to the writer, sorted by key.
func WriteValues(w io.Writer, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, FormatValue(values[k])); err != nil {
			return err
		}
	}
	return nil
}

// FormatValue renders a value on one line. Lists are comma separated.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprint(val)
	}
}
