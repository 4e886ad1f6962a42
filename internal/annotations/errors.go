package annotations

import (
	"fmt"
	"strings"
)

// ParseError reports argument text that does not reduce to a valid literal
// list. It is fatal for its directive only; sibling directives in the same
// comment block still run.
type ParseError struct {
	Directive string // annotation identifier, filled by the engine
	ArgText   string
	Msg       string
	File      string
	Line      int
}

func (e *ParseError) Error() string {
	if e.Directive == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s:%d: cannot parse arguments of !%s: %s", e.File, e.Line, e.Directive, e.Msg)
}

// Location returns the source position of the failing directive
func (e *ParseError) Location() (string, int) { return e.File, e.Line }

// UnknownAnnotationError reports a directive whose identifier has no
// registered annotation kind.
type UnknownAnnotationError struct {
	Name string
	File string
	Line int
}

func (e *UnknownAnnotationError) Error() string {
	msg := fmt.Sprintf("unknown annotation '%s': the annotation must be registered before use", e.Name)
	if e.File == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
}

// Location returns the source position of the failing directive
func (e *UnknownAnnotationError) Location() (string, int) { return e.File, e.Line }

// ExpansionError is the single composed diagnostic for an annotation
// instance that accumulated one or more violations. Every violation found in
// one pass is included; nothing is reported one at a time.
type ExpansionError struct {
	Kind     string
	Target   Target
	Usage    string // empty when the instance failed the applicability check
	Messages []string
}

func (e *ExpansionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d: invalid !%s annotation on %s %s",
		e.Target.File, e.Target.Line, e.Kind, e.Target.Kind, e.Target.Describe())
	if e.Usage != "" {
		fmt.Fprintf(&b, "\n  usage: %s", e.Usage)
	}
	for _, msg := range e.Messages {
		fmt.Fprintf(&b, "\n  - %s", msg)
	}
	return b.String()
}

// Location returns the source position of the annotated element
func (e *ExpansionError) Location() (string, int) { return e.Target.File, e.Target.Line }

// MultiError aggregates the per-directive failures of one comment block
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var msgs []string
	for i, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}
	return fmt.Sprintf("%d annotation errors:\n%s", len(e.Errors), strings.Join(msgs, "\n"))
}

// Unwrap exposes the aggregated errors to errors.Is and errors.As
func (e *MultiError) Unwrap() []error { return e.Errors }
