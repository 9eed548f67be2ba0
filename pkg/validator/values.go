package validator

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"
)

// Key identifies a parameter either by name or by 0-based position.
type Key struct {
	name       string
	index      int
	positional bool
}

// Name returns the key of a named parameter.
func Name(name string) Key {
	return Key{name: name}
}

// Index returns the key of a positional parameter.
func Index(i int) Key {
	return Key{index: i, positional: true}
}

func (k Key) Name() string       { return k.name }
func (k Key) Index() int         { return k.index }
func (k Key) IsPositional() bool { return k.positional }

func (k Key) String() string {
	if k.positional {
		return strconv.Itoa(k.index)
	}
	return k.name
}

func compareKeys(a, b Key) int {
	if a.positional != b.positional {
		if a.positional {
			return 1
		}
		return -1
	}
	if a.positional {
		return cmp.Compare(a.index, b.index)
	}
	return cmp.Compare(a.name, b.name)
}

// Values is a resolved value set keyed by parameter.
type Values map[Key]any

// Get returns the value of a named parameter.
func (v Values) Get(name string) (any, bool) {
	val, ok := v[Name(name)]
	return val, ok
}

// At returns the value of a positional parameter.
func (v Values) At(i int) (any, bool) {
	val, ok := v[Index(i)]
	return val, ok
}

// Keys returns all keys, named keys first, each group in sorted order.
func (v Values) Keys() []Key {
	keys := make([]Key, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Args returns the named entries as a plain map.
func (v Values) Args() map[string]any {
	out := make(map[string]any, len(v))
	for k, val := range v {
		if !k.positional {
			out[k.name] = val
		}
	}
	return out
}

// Slice returns the positional entries ordered by index. Gaps left by
// absent optional parameters are skipped.
func (v Values) Slice() []any {
	out := make([]any, 0, len(v))
	for _, k := range v.Keys() {
		if k.positional {
			out = append(out, v[k])
		}
	}
	return out
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// toValues normalizes a caller-supplied value set. Maps with string keys are
// named, slices and arrays (except []byte) are positional, nil is empty and
// anything else is the singleton shorthand keyed to index 0.
func toValues(values any) Values {
	switch t := values.(type) {
	case nil:
		return Values{}
	case Values:
		return t.clone()
	case map[string]any:
		out := make(Values, len(t))
		for name, val := range t {
			out[Name(name)] = val
		}
		return out
	case []any:
		out := make(Values, len(t))
		for i, val := range t {
			out[Index(i)] = val
		}
		return out
	case []byte:
		return Values{Index(0): t}
	}

	rv := reflect.ValueOf(values)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(Values, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[Name(iter.Key().String())] = iter.Value().Interface()
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make(Values, rv.Len())
		for i := range rv.Len() {
			out[Index(i)] = rv.Index(i).Interface()
		}
		return out
	}

	return Values{Index(0): values}
}
