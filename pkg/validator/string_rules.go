package validator

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

func checkMinLen(param Key, value any, arg any) error {
	return checkLength(param, value, arg, RuleMinLen)
}

func checkMaxLen(param Key, value any, arg any) error {
	return checkLength(param, value, arg, RuleMaxLen)
}

func checkLength(param Key, value any, arg any, rule string) error {
	limit, ok := toInt(arg)
	if !ok || limit < 0 {
		return invalidArgError(param, rule, arg, "length must be a non-negative integer")
	}
	n, ok := lengthOf(value)
	if !ok {
		return constraintError(param, value, rule, arg, ErrTypeMismatch,
			"has no length",
			"validation.length",
			nil,
		)
	}

	if rule == RuleMinLen && n < limit {
		return constraintError(param, value, rule, arg, ErrInvalidLength,
			fmt.Sprintf("must be at least %d long", limit),
			"validation.min_length",
			map[string]any{"min": limit},
		)
	}
	if rule == RuleMaxLen && n > limit {
		return constraintError(param, value, rule, arg, ErrInvalidLength,
			fmt.Sprintf("must be at most %d long", limit),
			"validation.max_length",
			map[string]any{"max": limit},
		)
	}
	return nil
}

// lengthOf counts runes for strings and elements for collections.
func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}
