package clix

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// asInt widens any Go integer to int for the Int handler slot.
func asInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	default:
		return 0
	}
}

// asFloat widens float32 to float64 for the Float handler slot.
func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	default:
		return 0
	}
}

func asBytes(value any) []byte {
	b, _ := value.([]byte)
	return b
}

func asDecimal(value any) decimal.Decimal {
	d, _ := value.(decimal.Decimal)
	return d
}

func asDatetime(value any) time.Time {
	t, _ := value.(time.Time)
	return t
}

func asUUID(value any) uuid.UUID {
	u, _ := value.(uuid.UUID)
	return u
}
