package validator

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Checker validates value against a constraint argument. It returns nil when
// the value passes. Errors that are not *ValidationError are wrapped by the
// Validator with the parameter, value and constraint.
type Checker func(param Key, value any, arg any) error

// Registry maps constraint names to checkers and type names to types for
// the "instanceof" constraint. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	types    map[string]reflect.Type

	// builtin is set when "regex" and "instanceof" are bound to this registry.
	builtin  bool
	patterns sync.Map
}

// NewRegistry returns a registry with no constraints.
func NewRegistry() *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		types:    make(map[string]reflect.Type),
	}
}

// DefaultRegistry returns a new registry holding the built-in constraints.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.checkers[RuleIs] = checkIs
	r.bindBuiltins()
	r.checkers[RuleOneOf] = checkOneOf
	r.checkers[RuleMin] = checkMin
	r.checkers[RuleMax] = checkMax
	r.checkers[RuleMinLen] = checkMinLen
	r.checkers[RuleMaxLen] = checkMaxLen
	r.checkers[RuleUUID] = checkUUID
	return r
}

// bindBuiltins installs the checkers that depend on registry state.
func (r *Registry) bindBuiltins() {
	r.checkers[RuleRegex] = r.checkRegex
	r.checkers[RuleInstanceOf] = r.checkInstanceOf
	r.builtin = true
}

// Clone returns an independent copy of r. Registering into the copy leaves r
// unchanged. The compiled pattern cache is not copied.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := NewRegistry()
	for name, c := range r.checkers {
		out.checkers[name] = c
	}
	for name, t := range r.types {
		out.types[name] = t
	}
	if r.builtin {
		out.bindBuiltins()
	}
	return out
}

// Register adds a checker under name. Control keys cannot be registered and
// an existing name is never replaced.
func (r *Registry) Register(name string, checker Checker) error {
	if name == "" || isControlKey(name) {
		return fmt.Errorf("%w: %q cannot name a constraint", ErrInvalidConstraintArg, name)
	}
	if checker == nil {
		return fmt.Errorf("%w: nil checker for %q", ErrInvalidConstraintArg, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.checkers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateConstraint, name)
	}
	r.checkers[name] = checker
	return nil
}

func (r *Registry) Lookup(name string) (Checker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checkers[name]
	return c, ok
}

// Names returns the registered constraint names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisterType makes t available to "instanceof" under name.
func (r *Registry) RegisterType(name string, t reflect.Type) error {
	if name == "" || t == nil {
		return fmt.Errorf("%w: type name and type are required", ErrInvalidConstraintArg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return fmt.Errorf("%w: type %q", ErrDuplicateConstraint, name)
	}
	r.types[name] = t
	return nil
}

func (r *Registry) lookupType(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}
