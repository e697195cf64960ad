package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// Recognized metadata keys.
const (
	KeyLayout = "layout"
	KeyTitle  = "title"
)

var recognized = []string{KeyLayout, KeyTitle}

// Matter holds the recognized metadata keys that decoded as strings. Keys
// that were absent or not strings are not present.
type Matter map[string]string

// Title returns the title key.
func (m Matter) Title() (string, bool) {
	v, ok := m[KeyTitle]
	return v, ok
}

// Layout returns the layout key.
func (m Matter) Layout() (string, bool) {
	v, ok := m[KeyLayout]
	return v, ok
}

// DecodeWarning reports a metadata block that could not be decoded. It is not
// fatal: the block is treated as empty.
type DecodeWarning struct {
	Err error
}

func (w *DecodeWarning) Error() string {
	return fmt.Sprintf("front matter ignored: %v", w.Err)
}

func (w *DecodeWarning) Unwrap() error { return w.Err }

// Decode parses a metadata block as YAML. The returned Matter and fields are
// never nil. A non-nil error is always a *DecodeWarning.
func Decode(block string) (Matter, map[string]any, error) {
	block = strings.TrimSpace(block)
	if block == "" {
		return Matter{}, map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return Matter{}, map[string]any{}, &DecodeWarning{Err: err}
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return extract(fields), fields, nil
}

func extract(fields map[string]any) Matter {
	m := Matter{}
	for _, key := range recognized {
		if s, ok := fields[key].(string); ok {
			m[key] = s
		}
	}
	return m
}
