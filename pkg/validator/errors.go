package validator

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/argvalidator/pkg/logger"
)

// Failure classes. Every *ValidationError wraps exactly one of these.
var (
	// ErrMissingRequired is returned when a required parameter has no value,
	// default or builder.
	ErrMissingRequired = errors.New("missing required parameter")

	// ErrInvalidBuilder is returned when a builder descriptor does not yield
	// an invocable reference.
	ErrInvalidBuilder = errors.New("invalid builder")

	// ErrTypeMismatch is returned by the "is" constraint.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrPatternMismatch is returned by the "regex" constraint.
	ErrPatternMismatch = errors.New("pattern mismatch")

	// ErrInstanceofMismatch is returned by the "instanceof" constraint.
	ErrInstanceofMismatch = errors.New("instanceof mismatch")

	// ErrUnknownConstraint is returned when a spec key has no registered checker.
	ErrUnknownConstraint = errors.New("unknown constraint")

	// ErrInvalidConstraintArg is returned when a constraint or control key
	// carries an argument it cannot interpret.
	ErrInvalidConstraintArg = errors.New("invalid constraint argument")

	// ErrDuplicateConstraint is returned when a constraint name is registered twice.
	ErrDuplicateConstraint = errors.New("constraint already registered")

	// ErrUnexpectedParameter is returned in strict mode for values without a spec.
	ErrUnexpectedParameter = errors.New("unexpected parameter")

	// ErrKeyDomainMismatch is returned when named values meet positional specs
	// or the other way around.
	ErrKeyDomainMismatch = errors.New("key domain mismatch")

	// ErrInvalidSpec is returned when a spec set is malformed.
	ErrInvalidSpec = errors.New("invalid spec")

	// ErrOutOfRange is returned when a numeric value is out of the allowed range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidLength is returned when a value has an invalid length.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidValue is returned when a value is not among the allowed ones.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidFormat is returned when a value has an invalid format.
	ErrInvalidFormat = errors.New("invalid format")
)

const defaultMaxValueLen = logger.DefaultValueLen

// ValidationError describes the first failure of a Validate call: the
// parameter, the offending value and the constraint that rejected it.
// TranslationKey and TranslationValues allow the message to be localized.
type ValidationError struct {
	Param             Key
	Value             any
	Constraint        string
	Arg               any
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
	Err               error

	noValue     bool
	maxValueLen int
}

func (e *ValidationError) Error() string {
	if e.noValue {
		return fmt.Sprintf("parameter %q: %s", e.Param.String(), e.Message)
	}
	return fmt.Sprintf("parameter %q: value %s %s", e.Param.String(), FormatValue(e.Value, e.maxValueLen), e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ExtractValidationError returns the *ValidationError in err's chain, or nil.
func ExtractValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationError(err) != nil
}

// FormatValue renders v for error messages, truncated to maxLen runes.
// A maxLen of zero or less uses the default of 64.
func FormatValue(v any, maxLen int) string {
	return logger.FormatValue(v, maxLen)
}

func missingRequiredError(param Key) *ValidationError {
	return &ValidationError{
		Param:          param,
		Constraint:     RuleRequired,
		Arg:            true,
		Message:        "is required but has no value, default or builder",
		TranslationKey: "validation.required",
		TranslationValues: map[string]any{
			"field": param.String(),
		},
		Err:     ErrMissingRequired,
		noValue: true,
	}
}

func invalidBuilderError(param Key, desc any, reason error) *ValidationError {
	return &ValidationError{
		Param:          param,
		Constraint:     RuleBuilder,
		Arg:            desc,
		Message:        fmt.Sprintf("has no callable in its builder: %v", reason),
		TranslationKey: "validation.builder",
		TranslationValues: map[string]any{
			"field": param.String(),
		},
		Err:     ErrInvalidBuilder,
		noValue: true,
	}
}

func unknownConstraintError(param Key, name string) *ValidationError {
	return &ValidationError{
		Param:          param,
		Constraint:     name,
		Message:        fmt.Sprintf("uses unknown constraint %q", name),
		TranslationKey: "validation.unknown_constraint",
		TranslationValues: map[string]any{
			"field":      param.String(),
			"constraint": name,
		},
		Err:     ErrUnknownConstraint,
		noValue: true,
	}
}

func invalidArgError(param Key, constraint string, arg any, reason string) *ValidationError {
	return &ValidationError{
		Param:          param,
		Constraint:     constraint,
		Arg:            arg,
		Message:        fmt.Sprintf("has an invalid %q argument %v: %s", constraint, arg, reason),
		TranslationKey: "validation.invalid_argument",
		TranslationValues: map[string]any{
			"field":      param.String(),
			"constraint": constraint,
		},
		Err:     ErrInvalidConstraintArg,
		noValue: true,
	}
}

func unexpectedParameterError(param Key, value any) *ValidationError {
	return &ValidationError{
		Param:          param,
		Value:          value,
		Message:        "is not declared by any spec",
		TranslationKey: "validation.unexpected",
		TranslationValues: map[string]any{
			"field": param.String(),
		},
		Err: ErrUnexpectedParameter,
	}
}

func keyDomainError(param Key, positionalSpecs bool) *ValidationError {
	want := "named"
	if positionalSpecs {
		want = "positional"
	}
	return &ValidationError{
		Param:          param,
		Message:        fmt.Sprintf("does not fit %s specs", want),
		TranslationKey: "validation.key_domain",
		TranslationValues: map[string]any{
			"field": param.String(),
		},
		Err:     ErrKeyDomainMismatch,
		noValue: true,
	}
}

// constraintError builds the failure returned by a checker.
func constraintError(param Key, value any, constraint string, arg any, sentinel error, message, translationKey string, extra map[string]any) *ValidationError {
	values := map[string]any{
		"field": param.String(),
	}
	for k, v := range extra {
		values[k] = v
	}
	return &ValidationError{
		Param:             param,
		Value:             value,
		Constraint:        constraint,
		Arg:               arg,
		Message:           message,
		TranslationKey:    translationKey,
		TranslationValues: values,
		Err:               sentinel,
	}
}
