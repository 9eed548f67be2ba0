package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/argvalidator/pkg/validator"
)

func TestKey(t *testing.T) {
	named := validator.Name("foo")
	assert.Equal(t, "foo", named.String())
	assert.Equal(t, "foo", named.Name())
	assert.False(t, named.IsPositional())

	pos := validator.Index(3)
	assert.Equal(t, "3", pos.String())
	assert.Equal(t, 3, pos.Index())
	assert.True(t, pos.IsPositional())

	assert.NotEqual(t, validator.Name("0"), validator.Index(0))
}

func TestValues(t *testing.T) {
	v := validator.Values{
		validator.Name("b"):  2,
		validator.Name("a"):  1,
		validator.Index(1):  "y",
		validator.Index(0):  "x",
		validator.Index(10): "z",
	}

	got, ok := v.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = v.Get("missing")
	assert.False(t, ok)

	got, ok = v.At(1)
	assert.True(t, ok)
	assert.Equal(t, "y", got)

	assert.Equal(t, []validator.Key{
		validator.Name("a"),
		validator.Name("b"),
		validator.Index(0),
		validator.Index(1),
		validator.Index(10),
	}, v.Keys())
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, v.Args())
	assert.Equal(t, []any{"x", "y", "z"}, v.Slice())
}

func TestValidate_ValueShapes(t *testing.T) {
	spec := validator.ParamSpec{validator.Optional()}

	tests := []struct {
		name   string
		values any
		want   validator.Values
	}{
		{"nil", nil, validator.Values{}},
		{"int slice", []int{4, 5}, validator.Values{validator.Index(0): 4, validator.Index(1): 5}},
		{"array", [2]string{"p", "q"}, validator.Values{validator.Index(0): "p", validator.Index(1): "q"}},
		{"bytes are a scalar", []byte("raw"), validator.Values{validator.Index(0): []byte("raw")}},
		{"struct is a scalar", point{X: 1}, validator.Values{validator.Index(0): point{X: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.Validate(tt.values, spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("typed string map is named", func(t *testing.T) {
		_, err := validator.Validate(map[string]string{"a": "x"}, spec)
		assert.ErrorIs(t, err, validator.ErrKeyDomainMismatch)

		got, err := validator.Validate(map[string]string{"a": "x"}, validator.Named{validator.Param("a", validator.Is("string"))})
		require.NoError(t, err)
		assert.Equal(t, validator.Values{validator.Name("a"): "x"}, got)
	})
}
