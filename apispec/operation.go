package apispec

import (
	"fmt"
	"reflect"
)

// Operation is the documentation of one HTTP operation. Its shape is free:
// whatever keys the OpenAPI operation object allows.
type Operation map[string]any

// Operations maps a lowercase HTTP verb (or an "x-" extension) to its
// operation.
type Operations map[string]Operation

// PathItem is a stored path: verbs mapped to operations plus the optional
// summary, description and parameters keys.
type PathItem map[string]any

// OperationFrom returns a deep copy of m as an Operation. Nested mappings
// become map[string]any with string keys.
func OperationFrom(m map[string]any) Operation {
	if m == nil {
		return nil
	}
	return Operation(normalize(m).(map[string]any))
}

// Clone returns a deep copy of o.
func (o Operation) Clone() Operation {
	if o == nil {
		return nil
	}
	return normalize(o).(Operation)
}

// Clone returns a deep copy of ops.
func (ops Operations) Clone() Operations {
	if ops == nil {
		return nil
	}
	out := make(Operations, len(ops))
	for verb, op := range ops {
		out[verb] = op.Clone()
	}
	return out
}

// normalize returns a deep copy of v in which every mapping is a
// map[string]any and every sequence is a []any. Non-string keys are
// formatted with fmt.Sprint, so a YAML status code 200 becomes "200".
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string, []byte:
		return v
	case Operation:
		return Operation(normalize(map[string]any(t)).(map[string]any))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}
