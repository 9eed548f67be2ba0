package validator

import (
	"fmt"
	"reflect"
	"strconv"

	"golang.org/x/text/cases"
)

type typePredicate func(v reflect.Value) bool

// typeCategories lists the names accepted by the "is" constraint. Lookup is
// case-insensitive. v is the zero Value for nil.
var typeCategories = map[string]typePredicate{
	"int":      isInteger,
	"integer":  isInteger,
	"long":     isInteger,
	"float":    isFloat,
	"double":   isFloat,
	"numeric":  isNumeric,
	"string":   kindIs(reflect.String),
	"bool":     kindIs(reflect.Bool),
	"boolean":  kindIs(reflect.Bool),
	"array":    kindIs(reflect.Slice, reflect.Array, reflect.Map),
	"slice":    kindIs(reflect.Slice),
	"map":      kindIs(reflect.Map),
	"object":   isObject,
	"scalar":   isScalar,
	"null":     isNull,
	"nil":      isNull,
	"callable": kindIs(reflect.Func),
	"func":     kindIs(reflect.Func),
	"iterable": kindIs(reflect.Slice, reflect.Array, reflect.Map, reflect.Chan),
}

func checkIs(param Key, value any, arg any) error {
	name, ok := arg.(string)
	if !ok {
		return invalidArgError(param, RuleIs, arg, "type name must be a string")
	}
	pred, ok := typeCategories[cases.Fold().String(name)]
	if !ok {
		return invalidArgError(param, RuleIs, arg, "unknown type category")
	}
	if pred(reflect.ValueOf(value)) {
		return nil
	}
	return constraintError(param, value, RuleIs, arg, ErrTypeMismatch,
		fmt.Sprintf("is not of type %q", name),
		"validation.type",
		map[string]any{"type": name},
	)
}

func kindIs(kinds ...reflect.Kind) typePredicate {
	return func(v reflect.Value) bool {
		if !v.IsValid() {
			return false
		}
		for _, k := range kinds {
			if v.Kind() == k {
				return true
			}
		}
		return false
	}
}

func isInteger(v reflect.Value) bool {
	return v.IsValid() && (isSignedKind(v.Kind()) || isUnsignedKind(v.Kind()))
}

func isFloat(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64)
}

func isNumeric(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	if isNumberKind(v.Kind()) {
		return true
	}
	if v.Kind() == reflect.String {
		_, err := strconv.ParseFloat(v.String(), 64)
		return err == nil
	}
	return false
}

func isObject(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	if v.Kind() == reflect.Struct {
		return true
	}
	return v.Kind() == reflect.Pointer && v.Type().Elem().Kind() == reflect.Struct
}

func isScalar(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	return isNumberKind(v.Kind()) || v.Kind() == reflect.String || v.Kind() == reflect.Bool
}

func isNull(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
