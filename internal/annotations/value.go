package annotations

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value tagged union
type ValueKind int

const (
	StringValue ValueKind = iota
	BoolValue
	IntValue
	FloatValue
	ListValue
)

// String returns the kind name used in diagnostics
func (k ValueKind) String() string {
	switch k {
	case StringValue:
		return "string"
	case BoolValue:
		return "boolean"
	case IntValue:
		return "integer"
	case FloatValue:
		return "float"
	case ListValue:
		return "list"
	default:
		return "unknown"
	}
}

// Value is one evaluated parameter value: a string, boolean, number, or a
// one-level list of scalar values.
type Value struct {
	Kind  ValueKind
	Str   string
	Bool  bool
	Int   int64
	Float float64
	List  []Value
}

// NewString returns a string value
func NewString(s string) Value { return Value{Kind: StringValue, Str: s} }

// NewBool returns a boolean value
func NewBool(b bool) Value { return Value{Kind: BoolValue, Bool: b} }

// NewInt returns an integer value
func NewInt(i int64) Value { return Value{Kind: IntValue, Int: i} }

// NewFloat returns a float value
func NewFloat(f float64) Value { return Value{Kind: FloatValue, Float: f} }

// NewList returns a list value
func NewList(items ...Value) Value { return Value{Kind: ListValue, List: items} }

// Text returns the scalar content as a string: the literal content for
// strings, the canonical rendering for everything else.
func (v Value) Text() string {
	switch v.Kind {
	case StringValue:
		return v.Str
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	case IntValue:
		return strconv.FormatInt(v.Int, 10)
	case FloatValue:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ListValue:
		items := make([]string, len(v.List))
		for i, item := range v.List {
			items[i] = item.Text()
		}
		return "(" + strings.Join(items, ", ") + ")"
	default:
		return ""
	}
}

// String renders the value the way it would appear in a directive, quoting
// string content
func (v Value) String() string {
	if v.Kind == StringValue {
		return "'" + v.Str + "'"
	}
	if v.Kind == ListValue {
		items := make([]string, len(v.List))
		for i, item := range v.List {
			items[i] = item.String()
		}
		return "(" + strings.Join(items, ", ") + ")"
	}
	return v.Text()
}

// Strings flattens the value into a string slice: list elements for lists,
// a single element otherwise.
func (v Value) Strings() []string {
	if v.Kind == ListValue {
		out := make([]string, len(v.List))
		for i, item := range v.List {
			out[i] = item.Text()
		}
		return out
	}
	return []string{v.Text()}
}

// Truthy reports whether the value reads as boolean true
func (v Value) Truthy() bool {
	switch v.Kind {
	case BoolValue:
		return v.Bool
	case IntValue:
		return v.Int != 0
	case StringValue:
		b, err := strconv.ParseBool(v.Str)
		return err == nil && b
	default:
		return false
	}
}

// Equal reports structural equality of two values
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case StringValue:
		return v.Str == o.Str
	case BoolValue:
		return v.Bool == o.Bool
	case IntValue:
		return v.Int == o.Int
	case FloatValue:
		return v.Float == o.Float
	case ListValue:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ParameterList is the evaluated argument list of one directive: unkeyed
// values in source order plus a lower-cased key → value map. It is owned by
// the pending annotation instance and released once binding completes.
type ParameterList struct {
	Positional []Value
	Keyed      map[string]Value
}

// NewParameterList returns an empty parameter list
func NewParameterList() *ParameterList {
	return &ParameterList{Keyed: make(map[string]Value)}
}

// Count returns the combined number of positional and keyed parameters
func (p *ParameterList) Count() int {
	return len(p.Positional) + len(p.Keyed)
}

// Key looks up a keyed parameter by its lower-cased name
func (p *ParameterList) Key(name string) (Value, bool) {
	v, ok := p.Keyed[strings.ToLower(name)]
	return v, ok
}

// Keys returns the present key names, sorted for deterministic diagnostics
func (p *ParameterList) Keys() []string {
	keys := make([]string, 0, len(p.Keyed))
	for k := range p.Keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports structural equality of two parameter lists
func (p *ParameterList) Equal(o *ParameterList) bool {
	if len(p.Positional) != len(o.Positional) || len(p.Keyed) != len(o.Keyed) {
		return false
	}
	for i := range p.Positional {
		if !p.Positional[i].Equal(o.Positional[i]) {
			return false
		}
	}
	for k, v := range p.Keyed {
		ov, ok := o.Keyed[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String renders the list in canonical directive form, keyed parameters
// after positional ones
func (p *ParameterList) String() string {
	parts := make([]string, 0, p.Count())
	for _, v := range p.Positional {
		parts = append(parts, v.String())
	}
	for _, k := range p.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, p.Keyed[k].String()))
	}
	return strings.Join(parts, ", ")
}
