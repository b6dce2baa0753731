// Package validate provides the built-in validating children. Every
// handler is validation-only: failures surface as validation errors
// and the value flows on unchanged.
package validate

import (
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/internal/humanize"
)

// IsPositive requires numeric values to be strictly greater than zero.
// Tuples are checked element by element, nested tuples one level
// deeper.
func IsPositive() clix.Child {
	checkElem := func(value any) error {
		switch v := value.(type) {
		case int:
			if v <= 0 {
				return clix.Validationf("expected a positive number, got %d", v)
			}
		case float64:
			if v <= 0 {
				return clix.Validationf("expected a positive number, got %g", v)
			}
		case decimal.Decimal:
			if !v.IsPositive() {
				return clix.Validationf("expected a positive number, got %s", v)
			}
		}
		return nil
	}
	checkFlat := func(value clix.Tuple) error {
		for _, elem := range value {
			if err := checkElem(elem); err != nil {
				return err
			}
		}
		return nil
	}
	return clix.NewChild("is_positive", clix.Handlers{
		Int: func(value int, _ *clix.Context) (any, error) {
			return nil, checkElem(value)
		},
		Float: func(value float64, _ *clix.Context) (any, error) {
			return nil, checkElem(value)
		},
		Decimal: func(value decimal.Decimal, _ *clix.Context) (any, error) {
			return nil, checkElem(value)
		},
		FlatTuple: func(value clix.Tuple, _ *clix.Context) (any, error) {
			return nil, checkFlat(value)
		},
		NestedTuple: func(value clix.Tuple, _ *clix.Context) (any, error) {
			for _, inner := range value {
				if tuple, ok := inner.(clix.Tuple); ok {
					if err := checkFlat(tuple); err != nil {
						return nil, err
					}
				}
			}
			return nil, nil
		},
		FlatTupleElem: []clix.Kind{clix.KindInt, clix.KindFloat, clix.KindDecimal},
	})
}

// Length bounds the length of strings, lists and tuples to [min, max].
// A max of 0 means unbounded.
func Length(min, max int) clix.Child {
	check := func(n int) error {
		if n < min {
			return clix.Validationf("expected at least %d elements, got %d", min, n)
		}
		if max > 0 && n > max {
			return clix.Validationf("expected at most %d elements, got %d", max, n)
		}
		return nil
	}
	return clix.NewChild("length", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			return nil, check(len(value))
		},
		List: func(value []any, _ *clix.Context) (any, error) {
			return nil, check(len(value))
		},
		Tuple: func(value clix.Tuple, _ *clix.Context) (any, error) {
			return nil, check(len(value))
		},
	})
}

// LessThan requires numeric values to be strictly below the limit.
func LessThan(limit float64) clix.Child {
	return clix.NewChild("less_than", clix.Handlers{
		Int: func(value int, _ *clix.Context) (any, error) {
			if float64(value) >= limit {
				return nil, clix.Validationf("expected a value below %g, got %d", limit, value)
			}
			return nil, nil
		},
		Float: func(value float64, _ *clix.Context) (any, error) {
			if value >= limit {
				return nil, clix.Validationf("expected a value below %g, got %g", limit, value)
			}
			return nil, nil
		},
	})
}

// Matches requires string values to match the given regular
// expression.
func Matches(pattern string) (clix.Child, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return clix.NewChild("matches", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			if !re.MatchString(value) {
				return nil, clix.Validationf("%q does not match %q", value, pattern)
			}
			return nil, nil
		},
	}), nil
}

// MustMatch is Matches panicking on an invalid pattern, for static
// command definitions.
func MustMatch(pattern string) clix.Child {
	child, err := Matches(pattern)
	if err != nil {
		panic(err)
	}
	return child
}

// NonEmpty rejects empty strings and collections, and absent values.
func NonEmpty() clix.Child {
	return clix.NewChild("non_empty", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			if value == "" {
				return nil, clix.Validationf("expected a non-empty value")
			}
			return nil, nil
		},
		List: func(value []any, _ *clix.Context) (any, error) {
			if len(value) == 0 {
				return nil, clix.Validationf("expected a non-empty list")
			}
			return nil, nil
		},
		Tuple: func(value clix.Tuple, _ *clix.Context) (any, error) {
			if len(value) == 0 {
				return nil, clix.Validationf("expected a non-empty tuple")
			}
			return nil, nil
		},
		Dict: func(value map[string]any, _ *clix.Context) (any, error) {
			if len(value) == 0 {
				return nil, clix.Validationf("expected a non-empty mapping")
			}
			return nil, nil
		},
		None: func(_ *clix.Context) (any, error) {
			return nil, clix.Validationf("expected a value, got nothing")
		},
	})
}

// RequireOne requires exactly one of the aggregated parents to carry a
// value. With explicit names it only considers those parents.
func RequireOne(names ...string) clix.Child {
	return clix.NewChild("require_one", clix.Handlers{
		Tag: func(values map[string]any, _ *clix.Context) (any, error) {
			considered := names
			if len(considered) == 0 {
				considered = make([]string, 0, len(values))
				for name := range values {
					considered = append(considered, name)
				}
				sort.Strings(considered)
			}
			var set []string
			for _, name := range considered {
				if value, ok := values[name]; ok && value != nil {
					set = append(set, name)
				}
			}
			switch len(set) {
			case 1:
				return nil, nil
			case 0:
				return nil, clix.Validationf("exactly one of %s must be set, got none",
					humanize.Or(considered))
			default:
				return nil, clix.Validationf("exactly one of %s must be set, got %s",
					humanize.Or(considered), humanize.List(set))
			}
		},
	})
}
