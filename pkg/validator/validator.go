package validator

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/argvalidator/pkg/logger"
)

// Validator resolves and checks value sets against spec sets. A Validator is
// immutable after New and safe for concurrent use, provided the builders it
// invokes are.
type Validator struct {
	registry    *Registry
	funcs       map[string]any
	log         *slog.Logger
	strict      bool
	maxValueLen int
}

// Option configures a Validator.
type Option func(*options)

type options struct {
	registry    *Registry
	constraints []namedChecker
	types       map[string]reflect.Type
	funcs       map[string]any
	log         *slog.Logger
	strict      bool
	maxValueLen int
}

type namedChecker struct {
	name    string
	checker Checker
}

// WithLogger enables debug tracing. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRegistry replaces the built-in registry. New works on a clone of r, so
// constraints and types added with WithConstraint and WithType never leak
// into r and later changes to r are not seen by the Validator.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithConstraint registers an additional constraint. New panics if the name is
// taken or reserved, so misconfiguration surfaces at startup.
func WithConstraint(name string, checker Checker) Option {
	return func(o *options) {
		o.constraints = append(o.constraints, namedChecker{name: name, checker: checker})
	}
}

// WithType makes t available to "instanceof" under name.
func WithType(name string, t reflect.Type) Option {
	return func(o *options) {
		o.types[name] = t
	}
}

// WithFunc registers fn so that builder descriptors can refer to it by name.
func WithFunc(name string, fn any) Option {
	return func(o *options) {
		if name != "" && fn != nil {
			o.funcs[name] = fn
		}
	}
}

// WithStrict rejects values whose key has no spec.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithMaxValueLen bounds how much of a value error messages show.
func WithMaxValueLen(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxValueLen = n
		}
	}
}

// New creates a Validator with the built-in constraints.
func New(opts ...Option) *Validator {
	o := &options{
		types:       make(map[string]reflect.Type),
		funcs:       make(map[string]any),
		maxValueLen: defaultMaxValueLen,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.registry == nil {
		o.registry = DefaultRegistry()
	} else {
		o.registry = o.registry.Clone()
	}
	for _, c := range o.constraints {
		if err := o.registry.Register(c.name, c.checker); err != nil {
			panic(fmt.Errorf("validator: %w", err))
		}
	}
	for name, t := range o.types {
		if err := o.registry.RegisterType(name, t); err != nil {
			panic(fmt.Errorf("validator: %w", err))
		}
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}

	return &Validator{
		registry:    o.registry,
		funcs:       o.funcs,
		log:         o.log.With(logger.Component("validator")),
		strict:      o.strict,
		maxValueLen: o.maxValueLen,
	}
}

var defaultValidator = New()

// Validate checks values against specs with the built-in constraints.
func Validate(values any, specs SpecSet) (Values, error) {
	return defaultValidator.Validate(values, specs)
}

// Validate resolves every parameter declared by specs and checks its
// constraints. Parameters are processed in spec order:
//
//  1. a supplied value is kept;
//  2. an optional parameter without a value stays absent and is not checked;
//  3. otherwise a default is applied;
//  4. otherwise the builder is invoked;
//  5. otherwise Validate fails with ErrMissingRequired.
//
// The first failure aborts the call; no partial result is returned. Errors
// returned by builders are passed through unwrapped. values is never
// modified; undeclared values pass through unless the Validator is strict.
func (v *Validator) Validate(values any, specs SpecSet) (Values, error) {
	if specs == nil {
		specs = Named(nil)
	}
	entries, positional, err := specs.specEntries()
	if err != nil {
		return nil, err
	}

	resolved := toValues(values)
	if ve := checkKeys(resolved, entries, positional, v.strict); ve != nil {
		return nil, v.fail(ve)
	}

	for _, e := range entries {
		if err := v.resolve(resolved, e); err != nil {
			return nil, err
		}
		value, ok := resolved[e.key]
		if !ok {
			continue
		}
		if err := v.check(e, value); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

// checkKeys runs before any resolution so that a rejected value set never
// triggers builders.
func checkKeys(values Values, entries []keyedSpec, positional, strict bool) *ValidationError {
	declared := make(map[Key]struct{}, len(entries))
	for _, e := range entries {
		declared[e.key] = struct{}{}
	}
	for _, k := range values.Keys() {
		if len(entries) > 0 && k.positional != positional {
			return keyDomainError(k, positional)
		}
		if _, ok := declared[k]; !ok && strict {
			return unexpectedParameterError(k, values[k])
		}
	}
	return nil
}

func (v *Validator) resolve(values Values, e keyedSpec) error {
	if _, ok := values[e.key]; ok {
		return nil
	}

	required, err := e.spec.required()
	if err != nil {
		arg, _ := e.spec.lookup(RuleRequired)
		return v.fail(invalidArgError(e.key, RuleRequired, arg, err.Error()))
	}
	if !required {
		v.log.Debug("optional parameter absent", logger.Param(e.key.String()))
		return nil
	}

	if def, ok := e.spec.lookup(RuleDefault); ok {
		values[e.key] = def
		v.log.Debug("default applied",
			logger.Param(e.key.String()),
			logger.ValueN(def, v.maxValueLen),
		)
		return nil
	}

	if desc, ok := e.spec.lookup(RuleBuilder); ok {
		b, err := DecodeBuilder(desc, v.funcs)
		if err != nil {
			return v.fail(invalidBuilderError(e.key, desc, err))
		}
		v.log.Debug("invoking builder", logger.Param(e.key.String()))
		value, err := b.Build()
		if err != nil {
			return err
		}
		values[e.key] = value
		v.log.Debug("builder produced value",
			logger.Param(e.key.String()),
			logger.ValueN(value, v.maxValueLen),
		)
		return nil
	}

	return v.fail(missingRequiredError(e.key))
}

func (v *Validator) check(e keyedSpec, value any) error {
	for _, rule := range e.spec {
		if isControlKey(rule.Name) {
			continue
		}
		checker, ok := v.registry.Lookup(rule.Name)
		if !ok {
			return v.fail(unknownConstraintError(e.key, rule.Name))
		}
		if err := checker(e.key, value, rule.Arg); err != nil {
			return v.fail(annotate(err, e.key, value, rule))
		}
	}
	return nil
}

// annotate makes sure a checker failure names the parameter, value and
// constraint. The error a checker returns is never modified: it may be shared
// between calls.
func annotate(err error, param Key, value any, rule Rule) *ValidationError {
	if ve, ok := err.(*ValidationError); ok && ve.Param == param &&
		(ve.Constraint == "" || ve.Constraint == rule.Name) {
		out := *ve
		if out.Constraint == "" {
			out.Constraint = rule.Name
			out.Arg = rule.Arg
		}
		return &out
	}
	return &ValidationError{
		Param:          param,
		Value:          value,
		Constraint:     rule.Name,
		Arg:            rule.Arg,
		Message:        fmt.Sprintf("fails constraint %q: %v", rule.Name, err),
		TranslationKey: "validation." + rule.Name,
		TranslationValues: map[string]any{
			"field": param.String(),
		},
		Err: err,
	}
}

func (v *Validator) fail(ve *ValidationError) error {
	ve.maxValueLen = v.maxValueLen
	attrs := []any{
		logger.Param(ve.Param.String()),
		logger.Constraint(ve.Constraint),
	}
	if !ve.noValue {
		attrs = append(attrs, logger.ValueN(ve.Value, v.maxValueLen))
	}
	v.log.Debug("validation failed", append(attrs, logger.Error(ve))...)
	return ve
}
