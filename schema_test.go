package strand

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("nil schema always validates", func(t *testing.T) {
		var s *Schema
		ok, err := s.validate(ctx, &Request{})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("all scopes are checked", func(t *testing.T) {
		req := &Request{
			Query:   map[string]string{"q": "x"},
			Body:    map[string]any{"user": "ann"},
			Cookies: map[string]string{"session": "s"},
			Params:  map[string]string{"id": "7"},
			Headers: map[string]string{"Accept": "text/html"},
		}
		s := &Schema{
			Query:   []Predicate{MustExist("q")},
			Body:    []Predicate{MustExist("user")},
			Cookies: []Predicate{MustExist("session")},
			Params:  []Predicate{MustExist("id")},
			Headers: []Predicate{MustExist("Accept")},
		}

		ok, err := s.validate(ctx, req)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("short-circuits on first failure", func(t *testing.T) {
		var calls int
		counting := func(result bool) Predicate {
			return func(_ context.Context, _ Fields) (bool, error) {
				calls++
				return result, nil
			}
		}
		s := &Schema{Query: []Predicate{counting(true), counting(false), counting(true)}}

		ok, err := s.validate(ctx, &Request{})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 2, calls)
	})

	t.Run("predicate error propagates", func(t *testing.T) {
		s := &Schema{Body: []Predicate{func(_ context.Context, _ Fields) (bool, error) {
			return false, errors.New("lookup failed")
		}}}

		_, err := s.validate(ctx, &Request{})
		assert.Error(t, err)
	})

	t.Run("blocking predicates are awaited in order", func(t *testing.T) {
		var order []string
		slow := func(name string) Predicate {
			return func(_ context.Context, _ Fields) (bool, error) {
				time.Sleep(time.Millisecond)
				order = append(order, name)
				return true, nil
			}
		}
		s := &Schema{Query: []Predicate{slow("first"), slow("second")}}

		ok, err := s.validate(ctx, &Request{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"first", "second"}, order)
	})
}

func TestStandardPredicates(t *testing.T) {
	ctx := context.Background()

	t.Run("MustExist", func(t *testing.T) {
		fields := Fields{"a": "1"}

		ok, _ := MustExist("a")(ctx, fields)
		assert.True(t, ok)

		ok, _ = MustExist("b")(ctx, fields)
		assert.False(t, ok)
	})

	t.Run("ValueMustBeOfType", func(t *testing.T) {
		fields := Fields{
			"s":   "text",
			"n":   float64(3),
			"b":   true,
			"o":   map[string]any{},
			"arr": []any{},
			"nil": nil,
		}

		cases := map[string]string{
			"s": "string", "n": "number", "b": "boolean",
			"o": "object", "arr": "array", "nil": "null",
		}
		for key, typ := range cases {
			ok, _ := ValueMustBeOfType(key, typ)(ctx, fields)
			assert.True(t, ok, "%s should be %s", key, typ)
		}

		ok, _ := ValueMustBeOfType("s", "number")(ctx, fields)
		assert.False(t, ok)

		ok, _ = ValueMustBeOfType("missing", "string")(ctx, fields)
		assert.False(t, ok)
	})

	t.Run("MustContainValue", func(t *testing.T) {
		fields := Fields{"role": "admin"}

		ok, _ := MustContainValue("role", "user", "admin")(ctx, fields)
		assert.True(t, ok)

		ok, _ = MustContainValue("role", "user", "guest")(ctx, fields)
		assert.False(t, ok)

		ok, _ = MustContainValue("missing", "x")(ctx, fields)
		assert.False(t, ok)
	})
}
