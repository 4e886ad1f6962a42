package annotations

import (
	"fmt"
	"strings"
)

// CaseFold selects the normalization applied to a keyed value before it is
// compared against an accepted set
type CaseFold int

const (
	FoldNone CaseFold = iota
	FoldUpper
	FoldLower
)

func (f CaseFold) apply(s string) string {
	switch f {
	case FoldUpper:
		return strings.ToUpper(s)
	case FoldLower:
		return strings.ToLower(s)
	default:
		return s
	}
}

// Validator accumulates rule violations for one pending annotation
// instance. Every primitive appends a message and returns; nothing fails
// fast, so one report carries every violation found in a single pass. The
// primitives read the parameter list and never mutate it.
type Validator struct {
	target Target
	params *ParameterList
	errors []string
}

func newValidator(target Target, params *ParameterList) *Validator {
	return &Validator{target: target, params: params}
}

// Target returns the annotated element, for kind-specific rules
func (v *Validator) Target() Target { return v.target }

// Params returns the pending parameter list, for kind-specific rules
func (v *Validator) Params() *ParameterList { return v.params }

// Errorf appends one formatted violation
func (v *Validator) Errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

// RequireKeys appends one violation per listed key missing from the keyed
// parameters
func (v *Validator) RequireKeys(keys ...string) {
	for _, key := range keys {
		if _, ok := v.params.Key(key); !ok {
			v.Errorf("missing required parameter '%s'", key)
		}
	}
}

// AcceptKeys appends one violation per present key that is not in the
// allowed set
func (v *Validator) AcceptKeys(keys ...string) {
	for _, present := range v.params.Keys() {
		if !contains(keys, present) {
			v.Errorf("unexpected parameter '%s'", present)
		}
	}
}

// AcceptKeylessValues appends one violation per positional value outside
// the allowed set
func (v *Validator) AcceptKeylessValues(allowed ...string) {
	for _, val := range v.params.Positional {
		if !contains(allowed, val.Text()) {
			v.Errorf("unexpected value '%s' (accepted: %s)", val.Text(), strings.Join(allowed, ", "))
		}
	}
}

// AcceptIndexedValue requires the positional value at index to be in the
// allowed set. A missing position is not a violation; cardinality rules
// cover that.
func (v *Validator) AcceptIndexedValue(index int, allowed ...string) {
	if index >= len(v.params.Positional) {
		return
	}
	if val := v.params.Positional[index]; !contains(allowed, val.Text()) {
		v.Errorf("value '%s' at position %d must be one of: %s",
			val.Text(), index, strings.Join(allowed, ", "))
	}
}

// AcceptValuesForKey requires the value of key, if present, to be in the
// allowed set after case normalization
func (v *Validator) AcceptValuesForKey(key string, fold CaseFold, allowed ...string) {
	val, ok := v.params.Key(key)
	if !ok {
		return
	}
	if !contains(allowed, fold.apply(val.Text())) {
		v.Errorf("parameter '%s' must be one of: %s; got '%s'",
			key, strings.Join(allowed, ", "), val.Text())
	}
}

// ValidOnSubclassesOf requires the annotated class to descend from base
func (v *Validator) ValidOnSubclassesOf(base string) {
	if !v.target.SubclassOf(base) {
		v.Errorf("only valid on subclasses of %s; %s is not one", base, v.target.ClassName)
	}
}

// MinParams requires at least n combined parameters
func (v *Validator) MinParams(n int) {
	if got := v.params.Count(); got < n {
		v.Errorf("expects at least %d parameter(s); got %d", n, got)
	}
}

// MaxParams requires at most n combined parameters
func (v *Validator) MaxParams(n int) {
	if got := v.params.Count(); got > n {
		v.Errorf("expects at most %d parameter(s); got %d", n, got)
	}
}

// ExactParams requires exactly n combined parameters
func (v *Validator) ExactParams(n int) {
	if got := v.params.Count(); got != n {
		v.Errorf("expects exactly %d parameter(s); got %d", n, got)
	}
}

// Errors returns the accumulated violation messages
func (v *Validator) Errors() []string { return v.errors }

func contains(set []string, s string) bool {
	for _, item := range set {
		if item == s {
			return true
		}
	}
	return false
}
