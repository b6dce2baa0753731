package clix

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies the shape of a runtime value for handler dispatch.
// Dispatch is driven entirely by these kinds; children never inspect Go
// types themselves.
type Kind int

const (
	// KindNone is the kind of a nil value.
	KindNone Kind = iota
	// KindString is a plain string value.
	KindString
	// KindInt covers all Go integer widths.
	KindInt
	// KindFloat covers float32 and float64.
	KindFloat
	// KindBool is a boolean value.
	KindBool
	// KindBytes is a []byte value.
	KindBytes
	// KindDecimal is a decimal.Decimal value.
	KindDecimal
	// KindDatetime is a time.Time value (full timestamp).
	KindDatetime
	// KindDate is a calendar date without a time component.
	KindDate
	// KindClock is a time of day without a date component.
	KindClock
	// KindUUID is a uuid.UUID value.
	KindUUID
	// KindPath is a filesystem path.
	KindPath
	// KindDict is a string-keyed map.
	KindDict
	// KindList is any slice other than Tuple and []byte.
	KindList
	// KindTuple is the fixed-shape tuple carrier used for multi-value
	// inputs (nargs > 1).
	KindTuple
	// KindOther is any value the pipeline has no specific handler slot
	// for. It is treated as a simple element during tuple
	// classification.
	KindOther
)

var kindNames = map[Kind]string{
	KindNone:     "none",
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindBytes:    "bytes",
	KindDecimal:  "decimal",
	KindDatetime: "datetime",
	KindDate:     "date",
	KindClock:    "clock",
	KindUUID:     "uuid",
	KindPath:     "path",
	KindDict:     "dict",
	KindList:     "list",
	KindTuple:    "tuple",
	KindOther:    "other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf classifies a runtime value. Named carrier types are checked
// before their underlying Go types, so a Path is never mistaken for a
// string.
func KindOf(value any) Kind {
	switch value.(type) {
	case nil:
		return KindNone
	case Path:
		return KindPath
	case Tuple:
		return KindTuple
	case Date:
		return KindDate
	case Clock:
		return KindClock
	case time.Time:
		return KindDatetime
	case decimal.Decimal:
		return KindDecimal
	case uuid.UUID:
		return KindUUID
	case []byte:
		return KindBytes
	case bool:
		return KindBool
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case map[string]any:
		return KindDict
	case []any:
		return KindList
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		return KindDict
	default:
		return KindOther
	}
}

// kindIn reports whether k is present in kinds.
func kindIn(k Kind, kinds []Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// kindAliases maps accepted spellings to kinds for declarative
// surfaces such as manifests.
var kindAliases = map[string]Kind{
	"str":      KindString,
	"time":     KindClock,
	"datetime": KindDatetime,
	"map":      KindDict,
}

// ParseKind resolves a kind by name. It accepts the canonical names
// plus a few common aliases ("str", "time", "map").
func ParseKind(name string) (Kind, error) {
	for kind, canonical := range kindNames {
		if name == canonical {
			return kind, nil
		}
	}
	if kind, ok := kindAliases[name]; ok {
		return kind, nil
	}
	return KindNone, fmt.Errorf("unknown kind %q", name)
}
