package apispec

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocYAML is returned when the YAML block of a docstring does not parse.
var ErrInvalidDocYAML = errors.New("invalid docstring yaml")

// pathKeys are the verbs kept by LoadOperationsFromDocstring.
var pathKeys = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// TrimDocstring removes the common indentation of every line after the
// first, trailing whitespace, and leading and trailing blank lines.
func TrimDocstring(doc string) string {
	if strings.TrimSpace(doc) == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(doc, "\t", "        "), "\n")
	indent := -1
	for _, line := range lines[1:] {
		stripped := strings.TrimLeft(line, " ")
		if strings.TrimSpace(stripped) == "" {
			continue
		}
		if n := len(line) - len(stripped); indent < 0 || n < indent {
			indent = n
		}
	}

	trimmed := make([]string, 0, len(lines))
	trimmed = append(trimmed, strings.TrimSpace(lines[0]))
	for _, line := range lines[1:] {
		if indent > 0 {
			line = line[min(indent, len(line)):]
		}
		trimmed = append(trimmed, strings.TrimRight(line, " \r"))
	}

	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == "" {
		trimmed = trimmed[:len(trimmed)-1]
	}
	for len(trimmed) > 0 && trimmed[0] == "" {
		trimmed = trimmed[1:]
	}
	return strings.Join(trimmed, "\n")
}

// ParseYAMLFromDocstring parses the YAML block of a docstring: everything
// from the first line starting with "---". A docstring without such a line,
// or whose block is empty or not a mapping, yields an empty Operation.
func ParseYAMLFromDocstring(doc string) (Operation, error) {
	lines := strings.Split(TrimDocstring(doc), "\n")

	cut := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "---") {
			cut = i
			break
		}
	}
	if cut < 0 {
		return Operation{}, nil
	}

	var data any
	if err := yaml.Unmarshal([]byte(dedent(lines[cut:])), &data); err != nil {
		return Operation{}, fmt.Errorf("%w: %w", ErrInvalidDocYAML, err)
	}

	m, ok := normalize(data).(map[string]any)
	if !ok {
		return Operation{}, nil
	}
	return Operation(m), nil
}

// LoadYAMLFromDocstring is ParseYAMLFromDocstring with parse errors treated
// as an empty Operation.
func LoadYAMLFromDocstring(doc string) Operation {
	op, err := ParseYAMLFromDocstring(doc)
	if err != nil {
		return Operation{}
	}
	return op
}

// ParseOperationsFromDocstring parses the YAML block of a docstring as an
// operations mapping. Only verb keys and "x-" keys whose value is a mapping
// are kept.
func ParseOperationsFromDocstring(doc string) (Operations, error) {
	data, err := ParseYAMLFromDocstring(doc)
	if err != nil {
		return Operations{}, err
	}

	ops := make(Operations)
	for key, val := range data {
		if !pathKeys[key] && !strings.HasPrefix(key, "x-") {
			continue
		}
		if m, ok := val.(map[string]any); ok {
			ops[key] = Operation(m)
		}
	}
	return ops, nil
}

// LoadOperationsFromDocstring is ParseOperationsFromDocstring with parse
// errors treated as no operations.
func LoadOperationsFromDocstring(doc string) Operations {
	ops, err := ParseOperationsFromDocstring(doc)
	if err != nil {
		return Operations{}
	}
	return ops
}

// dedent joins lines after removing their common leading whitespace.
func dedent(lines []string) string {
	indent := -1
	for _, line := range lines {
		stripped := strings.TrimLeft(line, " ")
		if stripped == "" {
			continue
		}
		if n := len(line) - len(stripped); indent < 0 || n < indent {
			indent = n
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if indent > 0 {
			line = line[min(indent, len(line)):]
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}
