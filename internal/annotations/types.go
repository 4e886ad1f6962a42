package annotations

import (
	"fmt"
	"strings"

	"github.com/annexlang/annex/pkg/descriptor"
)

// TargetKind identifies the kind of program element an annotation decorates.
// It is always supplied by the caller's reflection layer; the core never
// derives it by inspecting the element itself.
type TargetKind int

const (
	ClassTarget TargetKind = iota
	MethodTarget
	PropertyTarget
)

// String returns the human-readable name of the target kind
func (k TargetKind) String() string {
	switch k {
	case ClassTarget:
		return "class"
	case MethodTarget:
		return "method"
	case PropertyTarget:
		return "property"
	default:
		return "unknown"
	}
}

// Mask returns the single-kind bitmask for this target kind
func (k TargetKind) Mask() TargetMask {
	return 1 << uint(k)
}

// TargetMask is a bitset over TargetKind declaring which element kinds an
// annotation may legally decorate. A registered kind's mask is never zero.
type TargetMask uint8

const (
	Classes    TargetMask = 1 << ClassTarget
	Methods    TargetMask = 1 << MethodTarget
	Properties TargetMask = 1 << PropertyTarget

	AllTargets = Classes | Methods | Properties
)

// Has reports whether the mask includes the given kind
func (m TargetMask) Has(k TargetKind) bool {
	return m&k.Mask() != 0
}

// Names returns the included kind names in declaration order, pluralized for
// diagnostics ("classes, methods")
func (m TargetMask) Names() []string {
	var names []string
	for _, k := range []TargetKind{ClassTarget, MethodTarget, PropertyTarget} {
		if m.Has(k) {
			names = append(names, k.String()+"s")
		}
	}
	return names
}

// String returns the mask's kind names joined for display
func (m TargetMask) String() string {
	return strings.Join(m.Names(), ", ")
}

// Target describes the concrete program element an annotation is attached
// to. Every field is supplied by the external reflection collaborator.
type Target struct {
	Kind      TargetKind
	ClassName string   // declaring class (or the class itself for ClassTarget)
	Element   string   // method or property name; empty for class targets
	File      string   // source file, for diagnostics
	Line      int      // 1-based line number, for diagnostics
	Ancestors []string // superclass chain, nearest first
}

// Describe renders the target for diagnostics: "Users#show" for methods,
// "Users.email" for properties, the bare class name otherwise.
func (t Target) Describe() string {
	switch t.Kind {
	case MethodTarget:
		return fmt.Sprintf("%s#%s", t.ClassName, t.Element)
	case PropertyTarget:
		return fmt.Sprintf("%s.%s", t.ClassName, t.Element)
	default:
		return t.ClassName
	}
}

// SubclassOf reports whether the target's class descends from base, walking
// the ancestor list the reflection layer supplied. A class is not considered
// a subclass of itself.
func (t Target) SubclassOf(base string) bool {
	for _, a := range t.Ancestors {
		if a == base {
			return true
		}
	}
	return false
}

// Annotation is implemented by every registered annotation kind. One fresh
// value is constructed per directive occurrence; keyed parameters are bound
// onto it through Assign before Expand runs.
type Annotation interface {
	// Name returns the directive identifier, e.g. "Route" for !Route.
	// By convention the implementing Go type carries the fixed
	// "Annotation" suffix (RouteAnnotation and so on).
	Name() string

	// Targets returns the element kinds this annotation may decorate.
	// Must be non-zero.
	Targets() TargetMask

	// Usage returns a one-line parameter synopsis included in failure
	// reports. It describes parameter syntax only, not applicability.
	Usage() string

	// Assign stores one keyed parameter onto the field named after the
	// key. Keys arrive lower-cased. Unknown keys are reported by the
	// kind's validation rules (AcceptKeys), so Assign ignores them.
	Assign(key string, value Value)

	// Validate appends rule violations for the pending parameter list.
	// It must not mutate the parameters.
	Validate(v *Validator)

	// Expand mutates the shared class descriptor for a validated,
	// bound instance. values holds the positional parameters in source
	// order.
	Expand(target Target, class *descriptor.Class, values []Value) error
}
