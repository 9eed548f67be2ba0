package validator

import (
	"fmt"
	"reflect"
)

func checkOneOf(param Key, value any, arg any) error {
	rv := reflect.ValueOf(arg)
	if arg == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return invalidArgError(param, RuleOneOf, arg, "allowed values must be a list")
	}

	for i := range rv.Len() {
		if sameValue(value, rv.Index(i).Interface()) {
			return nil
		}
	}
	return constraintError(param, value, RuleOneOf, arg, ErrInvalidValue,
		fmt.Sprintf("must be one of: %v", arg),
		"validation.in_list",
		map[string]any{"allowed_values": arg},
	)
}

// sameValue compares numbers by value regardless of their Go kind, so that
// a YAML int matches an int64 value.
func sameValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}
