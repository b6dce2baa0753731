package clix

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marcusfrdk/clix/internal/humanize"
)

// maxMismatchExamples caps how many offending elements an element-kind
// error spells out.
const maxMismatchExamples = 3

// validateForSlot checks a value against the declared constraints of
// the slot dispatch selected: tuple shapes are re-derived and rejected
// with a pointer to the correct handler, and element-kind constraints
// are enforced with concrete examples of the offenders.
func validateForSlot(slot string, value any, h Handlers) error {
	switch slot {
	case "FlatTuple":
		tuple, ok := value.(Tuple)
		if !ok {
			return &ProcessError{Message: fmt.Sprintf("FlatTuple handler: expected tuple, got %s", KindOf(value))}
		}
		switch classifyTuple(tuple) {
		case ShapeNested:
			return &ProcessError{
				Message: "FlatTuple handler: expected a flat tuple (simple elements only), got a nested tuple",
				Tip:     "use the NestedTuple handler slot instead",
			}
		case ShapeMixed:
			return &ProcessError{
				Message: "FlatTuple handler: expected a flat tuple (simple elements only), got a mixed tuple",
				Tip:     "use the generic Tuple handler slot instead",
			}
		}
		return checkElems("FlatTuple", tuple, h.FlatTupleElem)

	case "NestedTuple":
		tuple, ok := value.(Tuple)
		if !ok {
			return &ProcessError{Message: fmt.Sprintf("NestedTuple handler: expected tuple, got %s", KindOf(value))}
		}
		switch classifyTuple(tuple) {
		case ShapeFlat:
			return &ProcessError{
				Message: "NestedTuple handler: expected a nested tuple (collection elements only), got a flat tuple",
				Tip:     "use the FlatTuple handler slot instead",
			}
		case ShapeMixed:
			return &ProcessError{
				Message: "NestedTuple handler: expected a nested tuple (collection elements only), got a mixed tuple",
				Tip:     "use the generic Tuple handler slot instead",
			}
		}
		if len(h.NestedTupleElem) == 0 {
			return nil
		}
		// Validate one level deeper: every element of every inner
		// collection must match a declared kind.
		var inner []any
		for _, elem := range tuple {
			switch e := elem.(type) {
			case Tuple:
				inner = append(inner, e...)
			case []any:
				inner = append(inner, e...)
			default:
				inner = append(inner, normalizeList(elem)...)
			}
		}
		return checkElems("NestedTuple", inner, h.NestedTupleElem)

	case "List":
		return checkElems("List", normalizeList(value), h.ListElem)

	case "Dict":
		if normalizeDict(value) == nil {
			return &ProcessError{Message: fmt.Sprintf("Dict handler: expected dict, got %s", KindOf(value))}
		}
	}
	return nil
}

// checkElems verifies every element's kind is in the declared set,
// reporting up to three offenders with remediation tips for the common
// string-vs-numeric confusion.
func checkElems(slot string, elems []any, declared []Kind) error {
	if len(declared) == 0 || len(elems) == 0 {
		return nil
	}

	type mismatch struct {
		kind  Kind
		value any
	}
	var mismatches []mismatch
	for _, elem := range elems {
		kind := KindOf(elem)
		if !kindIn(kind, declared) {
			mismatches = append(mismatches, mismatch{kind: kind, value: elem})
		}
	}
	if len(mismatches) == 0 {
		return nil
	}

	var examples []string
	for i, m := range mismatches {
		if i == maxMismatchExamples {
			break
		}
		examples = append(examples, fmt.Sprintf("%#v (%s)", m.value, m.kind))
	}

	msg := fmt.Sprintf("%s handler: expected elements of kind %s, but %d element(s) have the wrong kind.\nExamples: %s",
		slot, kindSetNames(declared), len(mismatches), humanize.List(examples))

	tip := ""
	if mismatches[0].kind == KindString &&
		(kindIn(KindInt, declared) || kindIn(KindFloat, declared)) {
		tip = "set Type(clix.Int) (or clix.Float) on the option/argument so raw strings are converted to numbers"
	}

	return &ProcessError{Message: msg, Tip: tip}
}

// kindSetNames renders a declared kind set as "int | float".
func kindSetNames(kinds []Kind) string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return strings.Join(names, " | ")
}
