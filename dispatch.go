package clix

import (
	"fmt"
	"reflect"
)

// Dispatch routes one value through one child: it selects the single
// most specific implemented handler slot for the value's kind,
// validates the value against the slot's declared constraints, invokes
// it, and normalizes the result. A handler that returns nil passes the
// value through unchanged.
func Dispatch(child Child, value any, ctx *Context) (any, error) {
	h := child.Handlers()

	// Tag-aggregate mode takes priority over everything else.
	if ctx.IsTagMode() && h.Tag != nil {
		return invokeTag(child, h, value, ctx)
	}

	if value == nil {
		return dispatchNone(child, h, ctx)
	}

	slot, invoke := selectHandler(h, value, ctx)
	if invoke != nil {
		if err := validateForSlot(slot, value, h); err != nil {
			return nil, err
		}
		ctx.Logger().Debug("dispatching value to child handler",
			"child", child.Name(), "handler", slot, "kind", KindOf(value).String())
		result, err := invoke()
		if err != nil {
			return nil, err
		}
		if result == nil {
			return value, nil
		}
		return result, nil
	}

	if h.All != nil {
		result, err := h.All(value, ctx)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return value, nil
		}
		return result, nil
	}

	return nil, &UnhandledTypeError{
		Child:       child.Name(),
		ValueKind:   KindOf(value),
		Implemented: h.Implemented(),
	}
}

// selectHandler picks the most specific implemented slot for a non-nil
// value. It returns the slot name and a closure that invokes it, or a
// nil closure when no type-specific slot applies.
func selectHandler(h Handlers, value any, ctx *Context) (string, func() (any, error)) {
	switch KindOf(value) {
	case KindBytes:
		if h.Bytes != nil {
			return "Bytes", func() (any, error) { return h.Bytes(asBytes(value), ctx) }
		}
	case KindDecimal:
		if h.Decimal != nil {
			return "Decimal", func() (any, error) { return h.Decimal(asDecimal(value), ctx) }
		}
	case KindDatetime:
		if h.Datetime != nil {
			return "Datetime", func() (any, error) { return h.Datetime(asDatetime(value), ctx) }
		}
	case KindDate:
		if h.Date != nil {
			return "Date", func() (any, error) { return h.Date(value.(Date), ctx) }
		}
	case KindClock:
		if h.Clock != nil {
			return "Clock", func() (any, error) { return h.Clock(value.(Clock), ctx) }
		}
	case KindUUID:
		if h.UUID != nil {
			return "UUID", func() (any, error) { return h.UUID(asUUID(value), ctx) }
		}
	case KindPath:
		if h.Path != nil {
			return "Path", func() (any, error) { return h.Path(value.(Path), ctx) }
		}
	case KindDict:
		if h.Dict != nil {
			return "Dict", func() (any, error) { return h.Dict(normalizeDict(value), ctx) }
		}
	case KindString:
		if h.Str != nil {
			return "Str", func() (any, error) { return h.Str(value.(string), ctx) }
		}
	case KindBool:
		// Checked before int on purpose: a bool never reaches the
		// Int or Numeric slots.
		if h.Bool != nil {
			return "Bool", func() (any, error) { return h.Bool(value.(bool), ctx) }
		}
	case KindInt:
		if h.Int != nil {
			return "Int", func() (any, error) { return h.Int(asInt(value), ctx) }
		}
		if h.Numeric != nil {
			return "Numeric", func() (any, error) { return h.Numeric(value, ctx) }
		}
	case KindFloat:
		if h.Float != nil {
			return "Float", func() (any, error) { return h.Float(asFloat(value), ctx) }
		}
		if h.Numeric != nil {
			return "Numeric", func() (any, error) { return h.Numeric(value, ctx) }
		}
	case KindList:
		if h.List != nil {
			return "List", func() (any, error) { return h.List(normalizeList(value), ctx) }
		}
	case KindTuple:
		tuple := value.(Tuple)
		switch classifyTuple(tuple) {
		case ShapeFlat:
			if h.FlatTuple != nil {
				return "FlatTuple", func() (any, error) { return h.FlatTuple(tuple, ctx) }
			}
		case ShapeNested:
			if h.NestedTuple != nil {
				return "NestedTuple", func() (any, error) { return h.NestedTuple(tuple, ctx) }
			}
		}
		// Mixed tuples, and tuples whose shape-specific slot is
		// missing, fall back to the generic Tuple slot.
		if h.Tuple != nil {
			return "Tuple", func() (any, error) { return h.Tuple(tuple, ctx) }
		}
	}
	return "", nil
}

// dispatchNone runs the nil chain: the None slot first, then the
// type-specific slots declared Nullable, then All, else nil passes
// through unchanged rather than erroring.
func dispatchNone(child Child, h Handlers, ctx *Context) (any, error) {
	if h.None != nil {
		return h.None(ctx)
	}

	for _, slot := range typeSpecificSlots {
		if !h.implemented(slot) || !h.nullable(slot) {
			continue
		}
		if invoke := nilInvoker(h, slot, ctx); invoke != nil {
			ctx.Logger().Debug("dispatching nil to nullable handler",
				"child", child.Name(), "handler", slot)
			return invoke()
		}
	}

	if h.All != nil {
		return h.All(nil, ctx)
	}
	return nil, nil
}

// nilInvoker returns a closure invoking the slot with a nil value.
// Slots whose parameters are value types cannot represent nil and are
// skipped.
func nilInvoker(h Handlers, slot string, ctx *Context) func() (any, error) {
	switch slot {
	case "Numeric":
		return func() (any, error) { return h.Numeric(nil, ctx) }
	case "Bytes":
		return func() (any, error) { return h.Bytes(nil, ctx) }
	case "Dict":
		return func() (any, error) { return h.Dict(nil, ctx) }
	case "List":
		return func() (any, error) { return h.List(nil, ctx) }
	case "Tuple":
		return func() (any, error) { return h.Tuple(nil, ctx) }
	case "FlatTuple":
		return func() (any, error) { return h.FlatTuple(nil, ctx) }
	case "NestedTuple":
		return func() (any, error) { return h.NestedTuple(nil, ctx) }
	default:
		return nil
	}
}

// invokeTag runs a Tag handler and enforces its validation-only
// contract.
func invokeTag(child Child, h Handlers, value any, ctx *Context) (any, error) {
	aggregate := normalizeDict(value)
	result, err := h.Tag(aggregate, ctx)
	if err != nil {
		return nil, err
	}
	if result != nil {
		return nil, &InvalidHandlerError{
			Message: fmt.Sprintf("the Tag handler of child %q is validation-only and must not return a value", child.Name()),
			Tip:     "return nil to keep the handler validation-only, or move the transformation to the member parents",
		}
	}
	return value, nil
}

// normalizeList converts any slice value to []any so the List slot has
// a single parameter shape.
func normalizeList(value any) []any {
	if l, ok := value.([]any); ok {
		return l
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// normalizeDict converts any string-keyed map to map[string]any.
func normalizeDict(value any) map[string]any {
	if d, ok := value.(map[string]any); ok {
		return d
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil
	}
	out := make(map[string]any, rv.Len())
	for _, key := range rv.MapKeys() {
		out[fmt.Sprint(key.Interface())] = rv.MapIndex(key).Interface()
	}
	return out
}
