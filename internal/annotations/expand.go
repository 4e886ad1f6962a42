package annotations

import (
	"fmt"

	"github.com/annexlang/annex/pkg/descriptor"
)

// Engine drives the full pipeline for one program element: scan the comment
// block, evaluate each directive, look its kind up, validate, bind, and
// expand against the caller's class descriptor. The engine holds no state
// beyond the registry, so one engine serves any number of elements.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine reading from the given registry
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Process applies every directive in the comment block to class, in source
// order, and returns class for chaining. A failing directive never aborts
// its siblings; their errors are aggregated. The descriptor is only borrowed
// for the duration of the call.
func (e *Engine) Process(comment string, target Target, class *descriptor.Class) (*descriptor.Class, error) {
	var errs []error
	for _, raw := range ScanComment(comment) {
		if err := e.apply(raw, target, class); err != nil {
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return class, nil
	case 1:
		return class, errs[0]
	default:
		return class, &MultiError{Errors: errs}
	}
}

// apply runs one directive through the Parsed → TypeChecked → Validated →
// Bound → Expanded states, stopping at the first checkpoint whose error
// list is non-empty.
func (e *Engine) apply(raw RawInvocation, target Target, class *descriptor.Class) error {
	ctor, err := e.registry.Lookup(raw.Name)
	if err != nil {
		if unknown, ok := err.(*UnknownAnnotationError); ok {
			unknown.File = target.File
			unknown.Line = target.Line
		}
		return err
	}

	params, err := EvalParams(raw.ArgText)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Directive = raw.Name
			perr.ArgText = raw.ArgText
			perr.File = target.File
			perr.Line = target.Line
		}
		return err
	}

	ann := ctor()

	// TypeChecked: a kind mismatch is recorded like any other violation so
	// it batches with the kind's own rules, but it marks the instance as a
	// type error, which drops the usage hint from the final report. Usage
	// text describes parameter syntax, not applicability.
	typeError := !ann.Targets().Has(target.Kind)
	var messages []string
	if typeError {
		messages = append(messages, fmt.Sprintf("not applicable to a %s (allowed on: %s)",
			target.Kind, ann.Targets()))
	}

	// Validated: kind rules run regardless of the type-check outcome; both
	// kinds of violation may coexist in one report.
	v := newValidator(target, params)
	ann.Validate(v)
	messages = append(messages, v.Errors()...)

	if len(messages) > 0 {
		expErr := &ExpansionError{
			Kind:     ann.Name(),
			Target:   target,
			Messages: messages,
		}
		if !typeError {
			expErr.Usage = ann.Usage()
		}
		return expErr
	}

	// Bound: keyed parameters land on the kind's named fields through its
	// explicit setters; positional values survive as the ordered values
	// list. The parameter list itself is released here.
	for key, val := range params.Keyed {
		ann.Assign(key, val)
	}
	values := params.Positional
	params = nil

	// Expanded: the kind mutates the shared descriptor.
	if err := ann.Expand(target, class, values); err != nil {
		return &ExpansionError{
			Kind:     ann.Name(),
			Target:   target,
			Usage:    ann.Usage(),
			Messages: []string{err.Error()},
		}
	}
	return nil
}
