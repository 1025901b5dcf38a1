// Package validate checks invocation parameters against the static method
// descriptors. Validation is deliberately lenient: methods without a
// descriptor pass through untouched, and unknown extra fields are preserved
// so that newer upstream parameters keep working without a gateway release.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nulpointcorp/bot-gateway/internal/schema"
)

// Error collects every problem found in one parameter object. Paths are
// dotted JSON pointers.
type Error struct {
	Method   string
	Problems []string
}

func (e *Error) Error() string {
	return "Validation failed: " + strings.Join(e.Problems, "; ")
}

// Method validates params for the named upstream method. On success the
// returned map is the normalised parameter object (currently the input,
// unmodified; normalisation hooks live here so callers never touch the raw
// map after this point).
func Method(method string, params map[string]any) (map[string]any, error) {
	d, ok := schema.Get(method)
	if !ok {
		// Forward compatibility: unknown methods pass through.
		return params, nil
	}

	v := &checker{}

	for _, name := range d.Required {
		if _, present := params[name]; !present {
			v.addf(name, "required parameter missing")
		}
	}

	if len(d.OneOf) > 0 {
		v.checkOneOf(d, params)
	}

	for name, field := range d.Fields {
		val, present := params[name]
		if !present || val == nil {
			continue
		}
		v.checkField(name, field, val)
	}

	if len(v.problems) > 0 {
		return nil, &Error{Method: method, Problems: v.problems}
	}
	return params, nil
}

type checker struct {
	problems []string
}

func (v *checker) addf(path, format string, args ...any) {
	v.problems = append(v.problems, path+": "+fmt.Sprintf(format, args...))
}

func (v *checker) checkOneOf(d *schema.Descriptor, params map[string]any) {
	for _, group := range d.OneOf {
		all := true
		for _, name := range group {
			if _, present := params[name]; !present {
				all = false
				break
			}
		}
		if all {
			return
		}
	}
	var groups []string
	for _, g := range d.OneOf {
		groups = append(groups, strings.Join(g, "+"))
	}
	v.problems = append(v.problems,
		fmt.Sprintf("one of (%s) must be fully provided", strings.Join(groups, ") or (")))
}

func (v *checker) checkField(path string, f schema.Field, val any) {
	switch f.Type {
	case "":
		// No constraint registered for this parameter.

	case "string":
		s, ok := val.(string)
		if !ok {
			v.addf(path, "expected string, got %s", typeName(val))
			return
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			v.addf(path, "value %q not in allowed set [%s]", s, strings.Join(f.Enum, ", "))
		}

	case "integer":
		n, ok := asNumber(val)
		if !ok {
			v.addf(path, "expected integer, got %s", typeName(val))
			return
		}
		if n != float64(int64(n)) {
			v.addf(path, "expected integer, got fractional number %v", n)
			return
		}
		v.checkRange(path, f, n)

	case "number":
		n, ok := asNumber(val)
		if !ok {
			v.addf(path, "expected number, got %s", typeName(val))
			return
		}
		v.checkRange(path, f, n)

	case "boolean":
		if _, ok := val.(bool); !ok {
			v.addf(path, "expected boolean, got %s", typeName(val))
		}

	case "array":
		arr, ok := val.([]any)
		if !ok {
			v.addf(path, "expected array, got %s", typeName(val))
			return
		}
		if f.Items != nil {
			for i, item := range arr {
				v.checkField(fmt.Sprintf("%s.%d", path, i), *f.Items, item)
			}
		}

	case "object":
		if _, ok := val.(map[string]any); !ok {
			v.addf(path, "expected object, got %s", typeName(val))
		}
	}
}

func (v *checker) checkRange(path string, f schema.Field, n float64) {
	if f.Min != nil && n < *f.Min {
		v.addf(path, "value %v below minimum %v", n, *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		v.addf(path, "value %v above maximum %v", n, *f.Max)
	}
}

// asNumber accepts the numeric shapes a decoded JSON value can take.
func asNumber(val any) (float64, bool) {
	switch t := val.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func typeName(val any) string {
	switch val.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", val)
	}
}

func contains(set []string, s string) bool {
	for _, e := range set {
		if e == s {
			return true
		}
	}
	return false
}
