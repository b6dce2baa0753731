package clix

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcusfrdk/clix/internal/casing"
)

// Child is a validator or transformer attached to a parent node. A
// child declares which value shapes it can process by filling in slots
// of the Handlers table; the dispatch engine selects the single most
// specific implemented slot for each value.
type Child interface {
	// Name identifies the child in error messages and the context's
	// children map.
	Name() string
	// Handlers returns the child's capability table. A nil slot means
	// the child does not handle that value shape.
	Handlers() Handlers
}

// BeforeHook is optionally implemented by children that need a
// side-effect pass before the value is dispatched, for example to stash
// shared state in Context.Data for a sibling. In tag-aggregate mode the
// value is the aggregate map[string]any.
type BeforeHook interface {
	Before(value any, ctx *Context) error
}

// AfterHook is the counterpart of BeforeHook, invoked after dispatch
// with the child's output value (the aggregate map in tag mode).
type AfterHook interface {
	After(value any, ctx *Context) error
}

// Handlers is a child's explicit capability table. Each slot handles
// one value shape; element-kind constraints and nil acceptance are
// declared as data rather than inferred from signatures.
//
// A handler returning (nil, nil) passes the value through unchanged and
// makes that slot validation-only.
type Handlers struct {
	Str      func(value string, ctx *Context) (any, error)
	Int      func(value int, ctx *Context) (any, error)
	Float    func(value float64, ctx *Context) (any, error)
	Bool     func(value bool, ctx *Context) (any, error)
	Bytes    func(value []byte, ctx *Context) (any, error)
	Decimal  func(value decimal.Decimal, ctx *Context) (any, error)
	Datetime func(value time.Time, ctx *Context) (any, error)
	Date     func(value Date, ctx *Context) (any, error)
	Clock    func(value Clock, ctx *Context) (any, error)
	UUID     func(value uuid.UUID, ctx *Context) (any, error)
	Path     func(value Path, ctx *Context) (any, error)
	Dict     func(value map[string]any, ctx *Context) (any, error)
	List     func(value []any, ctx *Context) (any, error)

	// Numeric is the fallback for int and float values when the
	// specific slot is not implemented.
	Numeric func(value any, ctx *Context) (any, error)

	// Tuple is the fallback for tuples whose shape-specific slot is
	// missing, and the only slot that accepts mixed tuples.
	Tuple func(value Tuple, ctx *Context) (any, error)
	// FlatTuple handles tuples whose elements are all simple values.
	FlatTuple func(value Tuple, ctx *Context) (any, error)
	// NestedTuple handles tuples whose elements are all collections.
	NestedTuple func(value Tuple, ctx *Context) (any, error)

	// Tag handles the aggregate mapping of parent name to value in
	// tag-aggregate mode. Tag handlers are validation-only: returning a
	// non-nil value is an InvalidHandlerError.
	Tag func(values map[string]any, ctx *Context) (any, error)

	// None handles nil values explicitly. Without it, nil values try
	// the slots listed in Nullable, then All, then pass through.
	None func(ctx *Context) (any, error)

	// All is the catch-all for any value no specific slot matched.
	All func(value any, ctx *Context) (any, error)

	// FlatTupleElem restricts the element kinds a FlatTuple value may
	// contain. Empty means any simple element.
	FlatTupleElem []Kind
	// NestedTupleElem restricts the element kinds of the inner
	// collections of a NestedTuple value.
	NestedTupleElem []Kind
	// ListElem restricts the element kinds of a List value.
	ListElem []Kind

	// Nullable lists the kinds whose slots also participate in the nil
	// chain. Only slots with reference-typed parameters (Bytes, Dict,
	// List, Tuple, FlatTuple, NestedTuple, Numeric) can accept nil.
	Nullable []Kind
}

// handlerSlot names, in the priority order the nil chain probes
// type-specific slots.
var typeSpecificSlots = []string{
	"Str", "Int", "Float", "Bool", "Numeric",
	"List", "Dict", "Tuple", "FlatTuple", "NestedTuple",
	"Path", "UUID", "Datetime", "Date", "Clock", "Bytes", "Decimal",
}

// implemented reports whether the named slot is filled in.
func (h Handlers) implemented(slot string) bool {
	switch slot {
	case "Str":
		return h.Str != nil
	case "Int":
		return h.Int != nil
	case "Float":
		return h.Float != nil
	case "Bool":
		return h.Bool != nil
	case "Numeric":
		return h.Numeric != nil
	case "Bytes":
		return h.Bytes != nil
	case "Decimal":
		return h.Decimal != nil
	case "Datetime":
		return h.Datetime != nil
	case "Date":
		return h.Date != nil
	case "Clock":
		return h.Clock != nil
	case "UUID":
		return h.UUID != nil
	case "Path":
		return h.Path != nil
	case "Dict":
		return h.Dict != nil
	case "List":
		return h.List != nil
	case "Tuple":
		return h.Tuple != nil
	case "FlatTuple":
		return h.FlatTuple != nil
	case "NestedTuple":
		return h.NestedTuple != nil
	case "Tag":
		return h.Tag != nil
	case "None":
		return h.None != nil
	case "All":
		return h.All != nil
	default:
		return false
	}
}

// Implemented lists the filled-in slots, in a stable order, for
// UnhandledTypeError reporting.
func (h Handlers) Implemented() []string {
	all := append([]string{"All", "None"}, typeSpecificSlots...)
	all = append(all, "Tag")
	var out []string
	for _, slot := range all {
		if h.implemented(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// slotKind maps a slot name to the nullable-declaration kind used by
// the nil chain.
var slotKinds = map[string]Kind{
	"Str":         KindString,
	"Int":         KindInt,
	"Float":       KindFloat,
	"Bool":        KindBool,
	"Numeric":     KindFloat,
	"Bytes":       KindBytes,
	"Decimal":     KindDecimal,
	"Datetime":    KindDatetime,
	"Date":        KindDate,
	"Clock":       KindClock,
	"UUID":        KindUUID,
	"Path":        KindPath,
	"Dict":        KindDict,
	"List":        KindList,
	"Tuple":       KindTuple,
	"FlatTuple":   KindTuple,
	"NestedTuple": KindTuple,
}

// nullable reports whether the named slot was declared to accept nil.
func (h Handlers) nullable(slot string) bool {
	kind, ok := slotKinds[slot]
	if !ok {
		return false
	}
	return kindIn(kind, h.Nullable)
}

// childNode is the plain Child implementation used by built-in
// children and the manifest loader.
type childNode struct {
	name     string
	handlers Handlers
}

func (c *childNode) Name() string       { return c.name }
func (c *childNode) Handlers() Handlers { return c.handlers }

// NewChild builds a child from a name and its handler table, for
// one-off validators and transformers that do not warrant a dedicated
// type.
func NewChild(name string, handlers Handlers) Child {
	return &childNode{name: casing.Snake(name), handlers: handlers}
}
