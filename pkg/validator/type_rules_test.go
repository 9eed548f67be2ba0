package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/argvalidator/pkg/validator"
)

type point struct{ X, Y int }

type label string

func TestIs(t *testing.T) {
	var nilPtr *point
	var nilSlice []int

	tests := []struct {
		name     string
		typeName string
		value    any
		valid    bool
	}{
		{"int", "int", 1, true},
		{"int64 is int", "int", int64(1), true},
		{"uint8 is int", "integer", uint8(1), true},
		{"string is not int", "int", "1", false},
		{"float is not int", "int", 1.0, false},
		{"case-insensitive name", "INT", 5, true},
		{"long alias", "long", 5, true},
		{"float", "float", 1.5, true},
		{"float32", "double", float32(1.5), true},
		{"int is not float", "float", 1, false},
		{"numeric int", "numeric", 3, true},
		{"numeric string", "numeric", "3.14", true},
		{"non-numeric string", "numeric", "pi", false},
		{"string", "string", "baz", true},
		{"named string type", "string", label("x"), true},
		{"bytes are not string", "string", []byte("x"), false},
		{"bool", "bool", true, true},
		{"boolean alias", "Boolean", false, true},
		{"slice is array", "array", []string{"a"}, true},
		{"map is array", "array", map[string]int{}, true},
		{"fixed array", "array", [2]int{1, 2}, true},
		{"string is not array", "array", "abc", false},
		{"slice", "slice", []int{}, true},
		{"map", "map", map[string]any{}, true},
		{"slice is not map", "map", []int{}, false},
		{"struct is object", "object", point{}, true},
		{"struct pointer is object", "object", &point{}, true},
		{"map is not object", "object", map[string]any{}, false},
		{"int pointer is not object", "object", new(int), false},
		{"scalar int", "scalar", 1, true},
		{"scalar string", "scalar", "s", true},
		{"slice is not scalar", "scalar", []int{}, false},
		{"nil is null", "null", nil, true},
		{"nil pointer is null", "nil", nilPtr, true},
		{"nil slice is null", "null", nilSlice, true},
		{"zero int is not null", "null", 0, false},
		{"func is callable", "callable", func() {}, true},
		{"string is not callable", "callable", "strings.ToUpper", false},
		{"chan is iterable", "iterable", make(chan int), true},
		{"struct is not iterable", "iterable", point{}, false},
		{"nil is not string", "string", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOne(nil, validator.Is(tt.typeName), tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, validator.ErrTypeMismatch)
			}
		})
	}
}

func TestIs_InvalidArgument(t *testing.T) {
	err := checkOne(nil, validator.Is("widget"), 1)
	assert.ErrorIs(t, err, validator.ErrInvalidConstraintArg)

	err = checkOne(nil, validator.Rule{Name: validator.RuleIs, Arg: 42}, 1)
	assert.ErrorIs(t, err, validator.ErrInvalidConstraintArg)
}
