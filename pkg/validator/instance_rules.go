package validator

import (
	"fmt"
	"reflect"
)

func (r *Registry) checkInstanceOf(param Key, value any, arg any) error {
	var t reflect.Type
	switch a := arg.(type) {
	case reflect.Type:
		t = a
	case string:
		rt, ok := r.lookupType(a)
		if !ok {
			return invalidArgError(param, RuleInstanceOf, arg, "type is not registered")
		}
		t = rt
	}
	if t == nil {
		return invalidArgError(param, RuleInstanceOf, arg, "expected a reflect.Type or a registered type name")
	}

	if instanceOf(value, t) {
		return nil
	}
	return constraintError(param, value, RuleInstanceOf, arg, ErrInstanceofMismatch,
		fmt.Sprintf("is not an instance of %q", t.String()),
		"validation.instanceof",
		map[string]any{"type": t.String()},
	)
}

// instanceOf reports whether value implements interface t, or is a t or a *t.
func instanceOf(value any, t reflect.Type) bool {
	if value == nil {
		return false
	}
	vt := reflect.TypeOf(value)
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	if vt == t {
		return true
	}
	return vt.Kind() == reflect.Pointer && vt.Elem() == t
}
