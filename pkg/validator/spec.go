package validator

import (
	"fmt"
	"reflect"
)

// Control keys. They steer value resolution and are never dispatched as constraints.
const (
	RuleRequired = "required"
	RuleDefault  = "default"
	RuleBuilder  = "builder"
)

// Built-in constraint names.
const (
	RuleIs         = "is"
	RuleRegex      = "regex"
	RuleInstanceOf = "instanceof"
	RuleOneOf      = "oneof"
	RuleMin        = "min"
	RuleMax        = "max"
	RuleMinLen     = "minlen"
	RuleMaxLen     = "maxlen"
	RuleUUID       = "uuid"
)

func isControlKey(name string) bool {
	switch name {
	case RuleRequired, RuleDefault, RuleBuilder:
		return true
	}
	return false
}

// Rule is one entry of a ParamSpec: a control key or a constraint name with its argument.
type Rule struct {
	Name string
	Arg  any
}

// ParamSpec is the ordered set of rules for one parameter. Constraints run in
// declaration order. When a control key appears more than once the last one wins.
//
// Used directly as a SpecSet, a ParamSpec is the sole spec of a single
// positional parameter at index 0.
type ParamSpec []Rule

func (s ParamSpec) lookup(name string) (any, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Name == name {
			return s[i].Arg, true
		}
	}
	return nil, false
}

func (s ParamSpec) required() (bool, error) {
	arg, ok := s.lookup(RuleRequired)
	if !ok {
		return true, nil
	}
	b, ok := arg.(bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", arg)
	}
	return b, nil
}

func (s ParamSpec) specEntries() ([]keyedSpec, bool, error) {
	return []keyedSpec{{key: Index(0), spec: s}}, true, nil
}

// NamedSpec binds a ParamSpec to a parameter name.
type NamedSpec struct {
	Name string
	Spec ParamSpec
}

// Param is shorthand for a NamedSpec literal.
func Param(name string, rules ...Rule) NamedSpec {
	return NamedSpec{Name: name, Spec: rules}
}

// Named is a spec set for named parameters, checked in slice order.
type Named []NamedSpec

func (n Named) specEntries() ([]keyedSpec, bool, error) {
	out := make([]keyedSpec, 0, len(n))
	seen := make(map[string]struct{}, len(n))
	for _, ns := range n {
		if _, dup := seen[ns.Name]; dup {
			return nil, false, fmt.Errorf("%w: parameter %q declared twice", ErrInvalidSpec, ns.Name)
		}
		seen[ns.Name] = struct{}{}
		out = append(out, keyedSpec{key: Name(ns.Name), spec: ns.Spec})
	}
	return out, false, nil
}

// Positional is a spec set for positional parameters; the slice index is the parameter key.
type Positional []ParamSpec

func (p Positional) specEntries() ([]keyedSpec, bool, error) {
	out := make([]keyedSpec, len(p))
	for i, spec := range p {
		out[i] = keyedSpec{key: Index(i), spec: spec}
	}
	return out, true, nil
}

// SpecSet is implemented by ParamSpec, Named and Positional.
type SpecSet interface {
	specEntries() ([]keyedSpec, bool, error)
}

type keyedSpec struct {
	key  Key
	spec ParamSpec
}

// Required sets whether a missing value is an error. Parameters are required by default.
func Required(required bool) Rule {
	return Rule{Name: RuleRequired, Arg: required}
}

// Optional is Required(false): an absent value stays absent and is not checked.
func Optional() Rule {
	return Required(false)
}

// Default supplies a literal value for an absent parameter.
func Default(value any) Rule {
	return Rule{Name: RuleDefault, Arg: value}
}

// Build supplies a builder descriptor for an absent parameter. See DecodeBuilder
// for the accepted shapes.
func Build(desc any) Rule {
	return Rule{Name: RuleBuilder, Arg: desc}
}

// Is requires the value's runtime category to equal typeName ("int", "string", "array", "object", ...).
func Is(typeName string) Rule {
	return Rule{Name: RuleIs, Arg: typeName}
}

// Regex requires the value's text form to match pattern.
func Regex(pattern string) Rule {
	return Rule{Name: RuleRegex, Arg: pattern}
}

// InstanceOf requires the value to be a T, a *T, or to implement T when T is an interface.
func InstanceOf[T any]() Rule {
	return InstanceOfType(reflect.TypeFor[T]())
}

func InstanceOfType(t reflect.Type) Rule {
	return Rule{Name: RuleInstanceOf, Arg: t}
}

// InstanceOfName refers to a type registered with WithType.
func InstanceOfName(name string) Rule {
	return Rule{Name: RuleInstanceOf, Arg: name}
}

// OneOf requires the value to equal one of allowed.
func OneOf(allowed ...any) Rule {
	return Rule{Name: RuleOneOf, Arg: allowed}
}

func Min(n float64) Rule {
	return Rule{Name: RuleMin, Arg: n}
}

func Max(n float64) Rule {
	return Rule{Name: RuleMax, Arg: n}
}

// MinLen bounds the rune count of strings and the element count of collections.
func MinLen(n int) Rule {
	return Rule{Name: RuleMinLen, Arg: n}
}

func MaxLen(n int) Rule {
	return Rule{Name: RuleMaxLen, Arg: n}
}

func UUID() Rule {
	return Rule{Name: RuleUUID, Arg: true}
}
