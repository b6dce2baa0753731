// Package transform provides the built-in value-transforming children.
package transform

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/internal/casing"
	"github.com/marcusfrdk/clix/internal/humanize"
)

// AddPrefix prepends a fixed prefix to string and path values.
func AddPrefix(prefix string) clix.Child {
	return clix.NewChild("add_prefix", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			return prefix + value, nil
		},
		Path: func(value clix.Path, _ *clix.Context) (any, error) {
			return clix.Path(prefix + string(value)), nil
		},
	})
}

// AddSuffix appends a fixed suffix to string and path values.
func AddSuffix(suffix string) clix.Child {
	return clix.NewChild("add_suffix", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			return value + suffix, nil
		},
		Path: func(value clix.Path, _ *clix.Context) (any, error) {
			return clix.Path(string(value) + suffix), nil
		},
	})
}

// ToUpper upper-cases string values.
func ToUpper() clix.Child {
	return clix.NewChild("to_upper", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			return strings.ToUpper(value), nil
		},
	})
}

// ToLower lower-cases string values.
func ToLower() clix.Child {
	return clix.NewChild("to_lower", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			return strings.ToLower(value), nil
		},
	})
}

// Trim removes the cutset from both ends of a string; with an empty
// cutset it trims whitespace.
func Trim(cutset string) clix.Child {
	return clix.NewChild("trim", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			if cutset == "" {
				return strings.TrimSpace(value), nil
			}
			return strings.Trim(value, cutset), nil
		},
	})
}

// Multiply scales numeric values by a fixed factor. Integers stay
// integers. Flat tuples of numbers are scaled element-wise.
func Multiply(factor float64) clix.Child {
	scale := func(value any) any {
		switch v := value.(type) {
		case int:
			return int(float64(v) * factor)
		case float64:
			return v * factor
		default:
			return v
		}
	}
	return clix.NewChild("multiply", clix.Handlers{
		Int: func(value int, _ *clix.Context) (any, error) {
			return scale(value), nil
		},
		Float: func(value float64, _ *clix.Context) (any, error) {
			return scale(value), nil
		},
		FlatTuple: func(value clix.Tuple, _ *clix.Context) (any, error) {
			out := make(clix.Tuple, len(value))
			for i, elem := range value {
				out[i] = scale(elem)
			}
			return out, nil
		},
		FlatTupleElem: []clix.Kind{clix.KindInt, clix.KindFloat},
	})
}

// caseStyles maps the style names ToCase accepts to their converters.
var caseStyles = map[string]func(string) string{
	"snake":           casing.Snake,
	"screaming_snake": casing.ScreamingSnake,
	"kebab":           casing.Kebab,
	"pascal":          casing.Pascal,
	"camel":           casing.Camel,
	"train":           casing.Train,
	"flat":            casing.Flat,
	"dot":             casing.Dot,
	"title":           casing.Title,
}

// ToCase converts string values to the named casing style.
func ToCase(style string) (clix.Child, error) {
	convert, ok := caseStyles[style]
	if !ok {
		known := make([]string, 0, len(caseStyles))
		for name := range caseStyles {
			known = append(known, name)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown case style %q (known: %s)", style, humanize.List(known))
	}
	return clix.NewChild("to_case", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			return convert(value), nil
		},
	}), nil
}

// MustToCase is ToCase panicking on an unknown style, for static
// command definitions.
func MustToCase(style string) clix.Child {
	child, err := ToCase(style)
	if err != nil {
		panic(err)
	}
	return child
}

// AsPath converts a string into a cleaned path value, so later
// children dispatch on the path slot.
func AsPath() clix.Child {
	return clix.NewChild("as_path", clix.Handlers{
		Str: func(value string, _ *clix.Context) (any, error) {
			return clix.Path(filepath.Clean(value)), nil
		},
		Path: func(value clix.Path, _ *clix.Context) (any, error) {
			return clix.Path(filepath.Clean(string(value))), nil
		},
	})
}
