package strand

import (
	"context"
	"encoding/json"
)

// Fields is the request sub-map a predicate inspects. Scopes backed by
// string maps (query, cookies, params, headers) are presented with
// string values; the body scope carries JSON-like values.
type Fields map[string]any

// Predicate asserts one property of a request scope. Predicates may
// block (for example awaiting a downstream lookup); the pipeline
// evaluates every predicate uniformly with the request context.
type Predicate func(ctx context.Context, fields Fields) (bool, error)

// Schema declares validation predicates per request scope. All
// predicates of all scopes must pass (AND semantics); evaluation
// short-circuits on the first failure. A nil *Schema always validates.
type Schema struct {
	Query   []Predicate
	Body    []Predicate
	Cookies []Predicate
	Params  []Predicate
	Headers []Predicate
}

// validate runs the schema against a bound request. A predicate error
// is distinct from a plain failure: it aborts the pipeline as a handler
// error rather than routing to the not-found fallback.
func (s *Schema) validate(ctx context.Context, req *Request) (bool, error) {
	if s == nil {
		return true, nil
	}

	scopes := []struct {
		fields     Fields
		predicates []Predicate
	}{
		{stringFields(req.Query), s.Query},
		{Fields(req.Body), s.Body},
		{stringFields(req.Cookies), s.Cookies},
		{stringFields(req.Params), s.Params},
		{stringFields(req.Headers), s.Headers},
	}

	for _, scope := range scopes {
		for _, predicate := range scope.predicates {
			ok, err := predicate(ctx, scope.fields)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

func stringFields(m map[string]string) Fields {
	fields := make(Fields, len(m))
	for key, value := range m {
		fields[key] = value
	}
	return fields
}

// MustExist returns a predicate asserting that key is present in the
// scope.
func MustExist(key string) Predicate {
	return func(_ context.Context, fields Fields) (bool, error) {
		_, ok := fields[key]
		return ok, nil
	}
}

// ValueMustBeOfType returns a predicate asserting that the value under
// key has the given JSON type name: "string", "number", "boolean",
// "object", "array", or "null". A missing key fails the predicate.
func ValueMustBeOfType(key, typ string) Predicate {
	return func(_ context.Context, fields Fields) (bool, error) {
		value, ok := fields[key]
		if !ok {
			return false, nil
		}
		return jsonTypeOf(value) == typ, nil
	}
}

// MustContainValue returns a predicate asserting that the value under
// key equals one of the allowed values.
func MustContainValue(key string, allowed ...any) Predicate {
	return func(_ context.Context, fields Fields) (bool, error) {
		value, ok := fields[key]
		if !ok {
			return false, nil
		}
		for _, candidate := range allowed {
			if value == candidate {
				return true, nil
			}
		}
		return false, nil
	}
}

// jsonTypeOf maps a decoded body value onto its JSON type name.
func jsonTypeOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return ""
	}
}
