package manifest

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ctyToGo converts a decoded cty value to the plain Go representation
// the dispatch engine works with. HCL numbers become int when integral
// and float64 otherwise.
func ctyToGo(value cty.Value) (any, error) {
	if value.IsNull() {
		return nil, nil
	}
	t := value.Type()
	switch {
	case t == cty.String:
		return value.AsString(), nil
	case t == cty.Number:
		f := value.AsBigFloat()
		if f.IsInt() {
			n, _ := f.Int64()
			return int(n), nil
		}
		out, _ := f.Float64()
		return out, nil
	case t == cty.Bool:
		return value.True(), nil
	case t.IsTupleType(), t.IsListType(), t.IsSetType():
		var out []any
		for it := value.ElementIterator(); it.Next(); {
			_, element := it.Element()
			converted, err := ctyToGo(element)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	case t.IsObjectType(), t.IsMapType():
		out := make(map[string]any)
		for it := value.ElementIterator(); it.Next(); {
			key, element := it.Element()
			converted, err := ctyToGo(element)
			if err != nil {
				return nil, err
			}
			out[key.AsString()] = converted
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported manifest value type %s", t.FriendlyName())
	}
}
