package clix

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// datetimeLayouts are tried in order when parsing a datetime input.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// clockLayouts are tried in order when parsing a time-of-day input.
var clockLayouts = []string{"15:04:05", "15:04"}

// convertRaw converts one raw string input to the declared kind. The
// returned errors are usage-class: they surface with exit code 2.
func convertRaw(kind Kind, raw string) (any, error) {
	switch kind {
	case KindString, KindOther:
		return raw, nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ProcessError{Message: fmt.Sprintf("%q is not a valid integer", raw)}
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &ProcessError{Message: fmt.Sprintf("%q is not a valid number", raw)}
		}
		return f, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &ProcessError{Message: fmt.Sprintf("%q is not a valid boolean", raw)}
		}
		return b, nil
	case KindBytes:
		return []byte(raw), nil
	case KindDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, &ProcessError{Message: fmt.Sprintf("%q is not a valid decimal", raw)}
		}
		return d, nil
	case KindDatetime:
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, &ProcessError{
			Message: fmt.Sprintf("%q is not a valid datetime", raw),
			Tip:     "use RFC 3339 (2006-01-02T15:04:05Z) or 2006-01-02 [15:04:05]",
		}
	case KindDate:
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, &ProcessError{
				Message: fmt.Sprintf("%q is not a valid date", raw),
				Tip:     "use the 2006-01-02 format",
			}
		}
		return DateOf(t), nil
	case KindClock:
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return ClockOf(t), nil
			}
		}
		return nil, &ProcessError{
			Message: fmt.Sprintf("%q is not a valid time of day", raw),
			Tip:     "use the 15:04:05 or 15:04 format",
		}
	case KindUUID:
		u, err := uuid.Parse(raw)
		if err != nil {
			return nil, &ProcessError{Message: fmt.Sprintf("%q is not a valid UUID", raw)}
		}
		return u, nil
	case KindPath:
		return Path(raw), nil
	default:
		return nil, fmt.Errorf("cannot convert raw input to kind %s", kind)
	}
}

// convertElems converts a slice of raw strings to a Tuple of the given
// element kind.
func convertElems(elem Kind, raws []string) (Tuple, error) {
	tuple := make(Tuple, 0, len(raws))
	for _, raw := range raws {
		value, err := convertRaw(elem, raw)
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, value)
	}
	return tuple, nil
}
