package hint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mudmap/internal/scripting"
)

// ErrNoEvaluator is returned when a Lua hint file is loaded without a script evaluator.
var ErrNoEvaluator = errors.New("hint: lua hint file requires a script evaluator")

// Parse decodes a YAML hint table keyed by area file.
//
// Postcondition: Returns a non-nil Table, or a non-nil error.
func Parse(data []byte) (Table, error) {
	t := Table{}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("hint: parsing yaml: %w", err)
	}
	return t, nil
}

// LoadFile reads a hint table from path. ".yaml" and ".yml" files are decoded
// directly; ".lua" files are evaluated with ev and must return the table.
// An empty path yields an empty table.
//
// Precondition: ev must be non-nil when path names a Lua file.
// Postcondition: Returns a non-nil Table, or a non-nil error.
func LoadFile(path string, ev *scripting.Evaluator) (Table, error) {
	if path == "" {
		return Table{}, nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("hint: reading %q: %w", path, err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	case ".lua":
		return LoadLua(path, ev)
	default:
		return nil, fmt.Errorf("hint: unsupported hint file extension %q", ext)
	}
}

// LoadLua evaluates a Lua hint script and decodes the table it returns. The
// script's table has the same shape as the YAML form; section-keyed entries
// use explicit integer keys such as [0] = { ... }.
//
// Precondition: ev must be non-nil.
// Postcondition: Returns a non-nil Table, or a non-nil error.
func LoadLua(path string, ev *scripting.Evaluator) (Table, error) {
	if ev == nil {
		return nil, ErrNoEvaluator
	}
	v, err := ev.EvalFile(path)
	if err != nil {
		return nil, fmt.Errorf("hint: %w", err)
	}
	t, err := FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// FromValue decodes a hint table from plain Go data as produced by
// scripting.ToGo. The value is re-encoded as YAML so both file forms share
// one decoder.
//
// Postcondition: Returns a non-nil Table, or a non-nil error.
func FromValue(v any) (Table, error) {
	if v == nil {
		return Table{}, nil
	}
	files, ok := v.(map[any]any)
	if !ok {
		if list, isList := v.([]any); !isList || len(list) != 0 {
			return nil, fmt.Errorf("hint: expected a table keyed by area file, got %T", v)
		}
		return Table{}, nil
	}
	for _, h := range files {
		if fields, ok := h.(map[any]any); ok {
			normalizeSectionKeys(fields)
		}
	}
	data, err := yaml.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("hint: encoding script result: %w", err)
	}
	return Parse(data)
}

var sectionKeyed = []string{
	"move_section_rooms",
	"move_section_rooms_after_placement",
	"move_placed_section_rooms",
	"place_section_at",
}

// normalizeSectionKeys turns section tables that Lua stored as arrays
// ({[1] = ...}) back into maps keyed by section number.
func normalizeSectionKeys(fields map[any]any) {
	for _, key := range sectionKeyed {
		list, ok := fields[key].([]any)
		if !ok {
			continue
		}
		m := make(map[any]any, len(list))
		for i, item := range list {
			m[i+1] = item
		}
		fields[key] = m
	}
}

// Encode writes t as YAML.
func Encode(t Table) ([]byte, error) {
	return yaml.Marshal(t)
}
