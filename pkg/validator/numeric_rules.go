package validator

import (
	"fmt"
	"reflect"
)

func checkMin(param Key, value any, arg any) error {
	return checkBound(param, value, arg, RuleMin)
}

func checkMax(param Key, value any, arg any) error {
	return checkBound(param, value, arg, RuleMax)
}

func checkBound(param Key, value any, arg any, rule string) error {
	bound, ok := toFloat(arg)
	if !ok {
		return invalidArgError(param, rule, arg, "bound must be numeric")
	}
	n, ok := toFloat(value)
	if !ok {
		return constraintError(param, value, rule, arg, ErrTypeMismatch,
			"is not numeric",
			"validation.numeric",
			nil,
		)
	}

	if rule == RuleMin && n < bound {
		return constraintError(param, value, rule, arg, ErrOutOfRange,
			fmt.Sprintf("must be at least %v", arg),
			"validation.min",
			map[string]any{"min": arg},
		)
	}
	if rule == RuleMax && n > bound {
		return constraintError(param, value, rule, arg, ErrOutOfRange,
			fmt.Sprintf("must be at most %v", arg),
			"validation.max",
			map[string]any{"max": arg},
		)
	}
	return nil
}

// toFloat converts any integer or float kind to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch {
	case isSignedKind(rv.Kind()):
		return float64(rv.Int()), true
	case isUnsignedKind(rv.Kind()):
		return float64(rv.Uint()), true
	case rv.Kind() == reflect.Float32, rv.Kind() == reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toInt accepts integer kinds and floats without a fractional part.
func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumberKind(k reflect.Kind) bool {
	return isSignedKind(k) || isUnsignedKind(k) || k == reflect.Float32 || k == reflect.Float64
}
