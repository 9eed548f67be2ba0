package validator_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/argvalidator/pkg/validator"
)

func noop(validator.Key, any, any) error { return nil }

func TestDefaultRegistry(t *testing.T) {
	r := validator.DefaultRegistry()
	assert.Equal(t, []string{"instanceof", "is", "max", "maxlen", "min", "minlen", "oneof", "regex", "uuid"}, r.Names())

	for _, name := range r.Names() {
		c, ok := r.Lookup(name)
		assert.True(t, ok, name)
		assert.NotNil(t, c, name)
	}

	_, ok := r.Lookup("required")
	assert.False(t, ok)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("adds a new constraint", func(t *testing.T) {
		r := validator.NewRegistry()
		require.NoError(t, r.Register("even", noop))
		_, ok := r.Lookup("even")
		assert.True(t, ok)
		assert.Equal(t, []string{"even"}, r.Names())
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		r := validator.DefaultRegistry()
		err := r.Register(validator.RuleRegex, noop)
		assert.ErrorIs(t, err, validator.ErrDuplicateConstraint)
	})

	t.Run("rejects control keys and empty names", func(t *testing.T) {
		r := validator.NewRegistry()
		for _, name := range []string{"", validator.RuleRequired, validator.RuleDefault, validator.RuleBuilder} {
			assert.ErrorIs(t, r.Register(name, noop), validator.ErrInvalidConstraintArg, name)
		}
	})

	t.Run("rejects nil checker", func(t *testing.T) {
		r := validator.NewRegistry()
		assert.ErrorIs(t, r.Register("x", nil), validator.ErrInvalidConstraintArg)
	})
}

func TestRegistry_RegisterType(t *testing.T) {
	r := validator.NewRegistry()
	require.NoError(t, r.RegisterType("Point", reflect.TypeFor[point]()))
	assert.ErrorIs(t, r.RegisterType("Point", reflect.TypeFor[clock]()), validator.ErrDuplicateConstraint)
	assert.ErrorIs(t, r.RegisterType("", reflect.TypeFor[clock]()), validator.ErrInvalidConstraintArg)
	assert.ErrorIs(t, r.RegisterType("Nil", nil), validator.ErrInvalidConstraintArg)
}

func TestWithRegistry(t *testing.T) {
	r := validator.NewRegistry()
	require.NoError(t, r.Register("positive", func(_ validator.Key, value, _ any) error {
		if n, ok := value.(int); ok && n > 0 {
			return nil
		}
		return errors.New("must be positive")
	}))

	v := validator.New(
		validator.WithConstraint("small", func(_ validator.Key, value, _ any) error {
			if n, ok := value.(int); ok && n < 10 {
				return nil
			}
			return errors.New("must be small")
		}),
		validator.WithRegistry(r),
	)

	require.NoError(t, checkOne(v, validator.Rule{Name: "positive"}, 3))
	require.NoError(t, checkOne(v, validator.Rule{Name: "small"}, 3))
	assert.Error(t, checkOne(v, validator.Rule{Name: "positive"}, -3))

	err := checkOne(v, validator.Is("int"), 3)
	assert.ErrorIs(t, err, validator.ErrUnknownConstraint, "custom registry has no built-ins")

	_, ok := r.Lookup("small")
	assert.False(t, ok, "options must not leak into the supplied registry")
	assert.Equal(t, []string{"positive"}, r.Names())
}

func TestWithRegistry_Reuse(t *testing.T) {
	r := validator.DefaultRegistry()
	even := func(_ validator.Key, value, _ any) error {
		if n, ok := value.(int); ok && n%2 == 0 {
			return nil
		}
		return errors.New("must be even")
	}

	var first, second *validator.Validator
	require.NotPanics(t, func() {
		first = validator.New(validator.WithRegistry(r), validator.WithConstraint("even", even))
		second = validator.New(validator.WithRegistry(r), validator.WithConstraint("even", even))
	})

	for _, v := range []*validator.Validator{first, second} {
		assert.NoError(t, checkOne(v, validator.Rule{Name: "even"}, 4))
		assert.Error(t, checkOne(v, validator.Rule{Name: "even"}, 5))
	}
	assert.Equal(t, validator.DefaultRegistry().Names(), r.Names())
}

func TestRegistry_Clone(t *testing.T) {
	r := validator.DefaultRegistry()
	require.NoError(t, r.RegisterType("Point", reflect.TypeFor[point]()))

	c := r.Clone()
	require.NoError(t, c.Register("even", noop))
	require.NoError(t, c.RegisterType("Clock", reflect.TypeFor[clock]()))

	_, ok := r.Lookup("even")
	assert.False(t, ok)
	assert.Contains(t, c.Names(), "even")
	assert.NotContains(t, r.Names(), "even")

	v := validator.New(validator.WithRegistry(c))
	assert.NoError(t, checkOne(v, validator.InstanceOfName("Point"), point{}), "types are copied")
	assert.NoError(t, checkOne(v, validator.InstanceOfName("Clock"), clock{}), "instanceof sees types added to the clone")
	assert.NoError(t, checkOne(v, validator.Regex("^a"), "abc"))

	orig := validator.New(validator.WithRegistry(r))
	assert.ErrorIs(t, checkOne(orig, validator.InstanceOfName("Clock"), clock{}), validator.ErrInvalidConstraintArg)
}
