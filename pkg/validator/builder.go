package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Builder produces a value for a parameter that has none. It is invoked at
// most once per Validate call and only when the value is actually missing.
type Builder interface {
	Build() (any, error)
}

// Producer is a zero-argument Builder.
type Producer func() (any, error)

func (p Producer) Build() (any, error) {
	return p()
}

// CallSpec describes a function invoked with bound positional arguments.
type CallSpec struct {
	Fn   any
	Args []any
}

// Call binds args to fn. fn must return one value, optionally followed by an error.
func Call(fn any, args ...any) CallSpec {
	return CallSpec{Fn: fn, Args: args}
}

// MethodRef names a method on a receiver.
type MethodRef struct {
	Receiver any
	Name     string
}

// MethodSpec describes a method reference invoked with bound positional arguments.
type MethodSpec struct {
	Ref  MethodRef
	Args []any
}

// Method binds args to the method called name on receiver.
func Method(receiver any, name string, args ...any) MethodSpec {
	return MethodSpec{Ref: MethodRef{Receiver: receiver, Name: name}, Args: args}
}

var errorType = reflect.TypeFor[error]()

// DecodeBuilder turns a builder descriptor into a Builder. Accepted shapes:
//
//   - a Builder (including Producer)
//   - func() any, func() (any, error), or any func with one result and an optional error
//   - CallSpec or MethodSpec
//   - MethodRef
//   - []any{fn, args...}
//   - []any{MethodRef, args...}
//   - []any{[]any{receiver, "Method"}, args...}
//   - []any{receiver, "Method"} when receiver has that method
//   - "name" or []any{"name", args...}, looked up in funcs
//
// funcs may be nil.
func DecodeBuilder(desc any, funcs map[string]any) (Builder, error) {
	switch d := desc.(type) {
	case nil:
		return nil, errors.New("builder is nil")
	case Builder:
		if isNilBuilder(d) {
			return nil, fmt.Errorf("builder %T is nil", d)
		}
		return d, nil
	case func() (any, error):
		if d == nil {
			return nil, errors.New("builder function is nil")
		}
		return Producer(d), nil
	case func() any:
		if d == nil {
			return nil, errors.New("builder function is nil")
		}
		return Producer(func() (any, error) { return d(), nil }), nil
	case CallSpec:
		return bindCall(d.Fn, d.Args)
	case MethodSpec:
		return bindMethod(d.Ref, d.Args)
	case MethodRef:
		return bindMethod(d, nil)
	case string:
		return bindNamed(d, nil, funcs)
	case []any:
		return decodeSequence(d, funcs)
	}

	if reflect.TypeOf(desc).Kind() == reflect.Func {
		return bindCall(desc, nil)
	}
	return nil, fmt.Errorf("unsupported builder descriptor %T", desc)
}

// isNilBuilder reports whether b holds a typed nil that would panic on Build.
func isNilBuilder(b Builder) bool {
	rv := reflect.ValueOf(b)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func decodeSequence(seq []any, funcs map[string]any) (Builder, error) {
	if len(seq) == 0 {
		return nil, errors.New("builder sequence is empty")
	}
	head, rest := seq[0], seq[1:]

	switch h := head.(type) {
	case nil:
		return nil, errors.New("builder sequence starts with nil")
	case MethodRef:
		return bindMethod(h, rest)
	case string:
		return bindNamed(h, rest, funcs)
	case []any:
		if ref, ok := methodPair(h); ok {
			return bindMethod(ref, rest)
		}
		return nil, errors.New("nested builder sequence is not a [receiver, method] pair")
	}

	if reflect.TypeOf(head).Kind() == reflect.Func {
		return bindCall(head, rest)
	}
	if ref, ok := methodPair(seq); ok && len(seq) == 2 {
		return bindMethod(ref, nil)
	}
	return nil, fmt.Errorf("builder sequence starts with non-callable %T", head)
}

func methodPair(pair []any) (MethodRef, bool) {
	if len(pair) != 2 || pair[0] == nil {
		return MethodRef{}, false
	}
	name, ok := pair[1].(string)
	if !ok {
		return MethodRef{}, false
	}
	if _, isString := pair[0].(string); isString {
		return MethodRef{}, false
	}
	return MethodRef{Receiver: pair[0], Name: name}, true
}

func bindNamed(name string, args []any, funcs map[string]any) (Builder, error) {
	fn, ok := funcs[name]
	if !ok {
		return nil, fmt.Errorf("no function registered as %q", name)
	}
	return bindCall(fn, args)
}

func bindMethod(ref MethodRef, args []any) (Builder, error) {
	if ref.Receiver == nil {
		return nil, errors.New("method receiver is nil")
	}
	recv := reflect.ValueOf(ref.Receiver)
	m := recv.MethodByName(ref.Name)
	if !m.IsValid() && recv.Kind() != reflect.Pointer {
		// Pointer-receiver methods on a value receiver.
		ptr := reflect.New(recv.Type())
		ptr.Elem().Set(recv)
		m = ptr.MethodByName(ref.Name)
	}
	if !m.IsValid() {
		return nil, fmt.Errorf("%T has no method %q", ref.Receiver, ref.Name)
	}
	return bind(m, args)
}

func bindCall(fn any, args []any) (Builder, error) {
	if fn == nil {
		return nil, errors.New("builder function is nil")
	}
	if b, ok := fn.(Builder); ok && len(args) == 0 {
		if isNilBuilder(b) {
			return nil, fmt.Errorf("builder %T is nil", b)
		}
		return b, nil
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%T is not callable", fn)
	}
	if v.IsNil() {
		return nil, errors.New("builder function is nil")
	}
	return bind(v, args)
}

// bind checks fn's signature against args so that invocation cannot panic on
// arity or argument types.
func bind(fn reflect.Value, args []any) (Builder, error) {
	t := fn.Type()

	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("second result of %s must be error", t)
		}
	default:
		return nil, fmt.Errorf("%s must return one value and an optional error", t)
	}

	numIn := t.NumIn()
	if t.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("%s needs at least %d arguments, got %d", t, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("%s needs %d arguments, got %d", t, numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= numIn-1 {
			pt = t.In(numIn - 1).Elem()
		} else {
			pt = t.In(i)
		}
		av, err := argValue(arg, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = av
	}

	return &invocation{fn: fn, in: in}, nil
}

func argValue(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", pt)
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(pt) {
		return av, nil
	}
	if isNumberKind(av.Kind()) && isNumberKind(pt.Kind()) {
		if cv, ok := convertNumber(av, pt); ok {
			return cv, nil
		}
		return reflect.Value{}, fmt.Errorf("%v does not fit %s without loss", arg, pt)
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", av.Type(), pt)
}

// maxExactFloat is the largest magnitude up to which every integer has an
// exact float64 representation.
const maxExactFloat = 1 << 53

// convertNumber converts av to pt only when the value survives unchanged:
// no truncated fraction, no wrap-around and no overflow.
func convertNumber(av reflect.Value, pt reflect.Type) (reflect.Value, bool) {
	out := reflect.New(pt).Elem()
	k := av.Kind()

	switch {
	case isSignedKind(pt.Kind()):
		var n int64
		switch {
		case isSignedKind(k):
			n = av.Int()
		case isUnsignedKind(k):
			u := av.Uint()
			if u > math.MaxInt64 {
				return reflect.Value{}, false
			}
			n = int64(u)
		default:
			f := av.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return reflect.Value{}, false
			}
			n = int64(f)
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, false
		}
		out.SetInt(n)

	case isUnsignedKind(pt.Kind()):
		var u uint64
		switch {
		case isSignedKind(k):
			n := av.Int()
			if n < 0 {
				return reflect.Value{}, false
			}
			u = uint64(n)
		case isUnsignedKind(k):
			u = av.Uint()
		default:
			f := av.Float()
			if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
				return reflect.Value{}, false
			}
			u = uint64(f)
		}
		if out.OverflowUint(u) {
			return reflect.Value{}, false
		}
		out.SetUint(u)

	default:
		var f float64
		switch {
		case isSignedKind(k):
			n := av.Int()
			if n > maxExactFloat || n < -maxExactFloat {
				return reflect.Value{}, false
			}
			f = float64(n)
		case isUnsignedKind(k):
			u := av.Uint()
			if u > maxExactFloat {
				return reflect.Value{}, false
			}
			f = float64(u)
		default:
			f = av.Float()
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, false
		}
		out.SetFloat(f)
	}

	return out, true
}

type invocation struct {
	fn reflect.Value
	in []reflect.Value
}

// Build calls the bound function. Errors it returns are passed through as is.
func (c *invocation) Build() (any, error) {
	out := c.fn.Call(c.in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
