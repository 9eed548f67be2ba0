// Package validator checks declarative argument specs against named or
// positional values, filling in defaults and building missing values on demand.
//
// A spec set describes each parameter with an ordered list of Rules. Three
// rule names are control keys that decide how a missing value is resolved:
//
//   - required – defaults to true; Optional() lets a value be absent
//   - default  – a literal used when the value is absent
//   - builder  – a deferred value producer used when there is no default
//
// Every other rule is a constraint dispatched through a Registry:
//
//   - is         – runtime category ("int", "string", "array", "object", ...)
//   - regex      – the value's text form matches a pattern
//   - instanceof – the value is, points to, or implements a type
//   - oneof, min, max, minlen, maxlen, uuid
//
// # Usage
//
//	specs := validator.Named{
//	    validator.Param("foo", validator.Is("int")),
//	    validator.Param("bar", validator.Is("string"), validator.Regex("^(fee|fye|foe|fum)$"), validator.Default("fee")),
//	    validator.Param("at", validator.Is("object"), validator.Build(validator.Call(time.Now))),
//	}
//	values, err := validator.Validate(map[string]any{"foo": 1}, specs)
//	if err != nil {
//	    if verr := validator.ExtractValidationError(err); verr != nil {
//	        // verr.Param, verr.Value, verr.Constraint, verr.Arg
//	    }
//	}
//
// Positional specs use Positional and produce index keys. A bare ParamSpec
// validates a single value, so Validate("x", validator.ParamSpec{validator.Is("string")})
// returns Values{validator.Index(0): "x"}.
//
// # Resolution Order
//
// For each parameter, in spec order: a supplied value wins; an absent
// optional parameter stays absent and is not checked; otherwise the default
// applies; otherwise the builder runs; otherwise validation fails with
// ErrMissingRequired. Builders therefore never run for parameters that have a
// value or a default.
//
// # Builders
//
// DecodeBuilder accepts a Builder, a function, Call(fn, args...),
// Method(receiver, "Name", args...), a MethodRef, sequences such as
// []any{fn, args...} or []any{receiver, "Name"}, and names of functions
// registered with WithFunc. Shapes that yield nothing callable fail with
// ErrInvalidBuilder. Errors returned by a builder are passed through as is.
//
// # Error Handling
//
// Validation stops at the first failure and returns a *ValidationError
// wrapping one of the sentinel errors (ErrMissingRequired, ErrTypeMismatch,
// ErrPatternMismatch, ErrInstanceofMismatch, ErrUnknownConstraint, ...), so
// errors.Is works against them. Constraint names without a registered checker
// are always an error.
//
// # Extending
//
// Custom constraints are plain Checker functions registered with
// WithConstraint or Registry.Register:
//
//	v := validator.New(validator.WithConstraint("even", func(p validator.Key, value, _ any) error {
//	    if n, ok := value.(int); ok && n%2 == 0 {
//	        return nil
//	    }
//	    return errors.New("must be even")
//	}))
//
// # Concurrency
//
// A Validator holds no per-call state and may be shared between goroutines,
// as long as the builders it invokes are themselves safe for concurrent use.
package validator
