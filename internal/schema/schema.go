// Package schema holds the static descriptor table for the upstream bot
// platform's method surface. Descriptors are immutable data loaded once at
// init; the pipeline consults them for validation, cacheability, destination
// scoping and upload slots, and the tool servers render them as tool schemas.
package schema

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// SlotKind describes how an uploadable parameter is shaped.
type SlotKind int

const (
	// SlotFile is a plain file-or-reference value (path, URL, file id).
	SlotFile SlotKind = iota
	// SlotMediaArray is an array of descriptor objects; file references live
	// one level down under the keys listed in NestedKeys.
	SlotMediaArray
	// SlotObject is a single descriptor object with file references under
	// NestedKeys.
	SlotObject
)

// UploadSlot names a parameter that may carry a local file.
type UploadSlot struct {
	Name       string
	Kind       SlotKind
	NestedKeys []string
}

// Field is a schema fragment for one parameter.
type Field struct {
	Type        string // string, integer, number, boolean, array, object
	Description string
	Enum        []string
	Min         *float64
	Max         *float64
	Items       *Field
}

// Descriptor is the static definition of one upstream method.
type Descriptor struct {
	Name        string
	Description string
	Category    string
	Required    []string
	Optional    []string

	// Fields carries type constraints for a subset of parameters. A nil map
	// means presence of Required fields is the only check.
	Fields map[string]Field

	// OneOf lists alternative required-field groups. When set, at least one
	// group must be fully present (in addition to Required).
	OneOf [][]string

	// DestScoped marks methods addressed to a chat identifier, subject to
	// per-destination pacing.
	DestScoped bool

	// CacheTTL > 0 marks the method cacheable.
	CacheTTL time.Duration

	Uploads []UploadSlot
}

// Cacheable reports whether responses of this method may be cached.
func (d *Descriptor) Cacheable() bool { return d.CacheTTL > 0 }

// ToolName returns the snake_case tool name exposed to clients.
func (d *Descriptor) ToolName() string { return ToolName(d.Name) }

// InputSchema renders a JSON-Schema object for the method's parameters,
// suitable for a tool listing.
func (d *Descriptor) InputSchema() map[string]any {
	props := make(map[string]any)
	for _, name := range append(append([]string{}, d.Required...), d.Optional...) {
		props[name] = fieldSchema(d.Fields[name])
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(d.Required) > 0 {
		req := make([]any, len(d.Required))
		for i, r := range d.Required {
			req[i] = r
		}
		out["required"] = req
	}
	return out
}

func fieldSchema(f Field) map[string]any {
	s := make(map[string]any)
	if f.Type == "" {
		// Parameters without a registered fragment accept anything.
		s["description"] = f.Description
		return s
	}
	s["type"] = f.Type
	if f.Description != "" {
		s["description"] = f.Description
	}
	if len(f.Enum) > 0 {
		enum := make([]any, len(f.Enum))
		for i, e := range f.Enum {
			enum[i] = e
		}
		s["enum"] = enum
	}
	if f.Min != nil {
		s["minimum"] = *f.Min
	}
	if f.Max != nil {
		s["maximum"] = *f.Max
	}
	if f.Items != nil {
		s["items"] = fieldSchema(*f.Items)
	}
	return s
}

var (
	byName map[string]*Descriptor
	byTool map[string]*Descriptor
	names  []string
)

func init() {
	byName = make(map[string]*Descriptor, len(methods))
	byTool = make(map[string]*Descriptor, len(methods))
	names = make([]string, 0, len(methods))
	for i := range methods {
		d := &methods[i]
		byName[d.Name] = d
		byTool[d.ToolName()] = d
		names = append(names, d.Name)
	}
	sort.Strings(names)
}

// Get returns the descriptor for an upstream method name.
func Get(method string) (*Descriptor, bool) {
	d, ok := byName[method]
	return d, ok
}

// GetByTool resolves a snake_case tool name back to its descriptor.
func GetByTool(tool string) (*Descriptor, bool) {
	d, ok := byTool[tool]
	return d, ok
}

// Names returns every method name in sorted order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Count returns the number of registered methods.
func Count() int { return len(methods) }

// All iterates descriptors in sorted-name order.
func All() []*Descriptor {
	out := make([]*Descriptor, 0, len(names))
	for _, n := range names {
		out = append(out, byName[n])
	}
	return out
}

// Categories returns the distinct category labels in sorted order.
func Categories() []string {
	set := make(map[string]struct{})
	for i := range methods {
		set[methods[i].Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ToolName converts an upstream camelCase method name to snake_case.
func ToolName(method string) string {
	var b strings.Builder
	b.Grow(len(method) + 4)
	for i, r := range method {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fmin(v float64) *float64 { return &v }
func fmax(v float64) *float64 { return &v }
