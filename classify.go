package clix

// Shape classifies tuple contents for handler selection.
type Shape int

const (
	// ShapeFlat means every element is a simple (non-collection) value.
	ShapeFlat Shape = iota
	// ShapeNested means every element is itself a collection.
	ShapeNested
	// ShapeMixed means simple and collection elements are mixed, which
	// only the generic Tuple handler accepts.
	ShapeMixed
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNested:
		return "nested"
	case ShapeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// simpleKind reports whether a kind counts as a simple element during
// tuple classification. Unrecognized values default to simple.
func simpleKind(k Kind) bool {
	switch k {
	case KindString, KindInt, KindFloat, KindBool, KindPath, KindUUID,
		KindDatetime, KindDate, KindClock, KindDecimal, KindBytes, KindOther:
		return true
	default:
		return false
	}
}

// iterableKind reports whether a kind counts as a collection element
// during tuple classification.
func iterableKind(k Kind) bool {
	switch k {
	case KindTuple, KindList, KindDict:
		return true
	default:
		return false
	}
}

// classifyTuple decides whether a tuple is flat, nested or mixed. The
// empty tuple is flat.
func classifyTuple(value Tuple) Shape {
	if len(value) == 0 {
		return ShapeFlat
	}

	hasSimple := false
	hasIterable := false
	for _, elem := range value {
		if iterableKind(KindOf(elem)) {
			hasIterable = true
		} else {
			hasSimple = true
		}
	}

	switch {
	case hasSimple && hasIterable:
		return ShapeMixed
	case hasIterable:
		return ShapeNested
	default:
		return ShapeFlat
	}
}
