package validator_test

import (
	"reflect"

	"github.com/dmitrymomot/argvalidator/pkg/validator"
)

// checkOne validates a single positional value against one rule.
func checkOne(v *validator.Validator, rule validator.Rule, value any) error {
	if v == nil {
		_, err := validator.Validate([]any{value}, validator.Positional{{rule}})
		return err
	}
	_, err := v.Validate([]any{value}, validator.Positional{{rule}})
	return err
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
