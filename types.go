package clix

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Path is a filesystem path. It is a distinct type so path values
// dispatch to the Path handler instead of the String handler.
type Path string

func (p Path) String() string { return string(p) }

// Tuple is the fixed-shape carrier for multi-value inputs. An option
// declared with NArgs(2) delivers its two values as a Tuple.
type Tuple []any

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time converts the date back to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Clock is a time of day without a date component.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ClockOf truncates a time.Time to its time of day.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Values holds the processed parameter values injected into a command's
// run function, keyed by the snake_case parameter name.
type Values map[string]any

// Get returns the raw processed value and whether the parameter exists.
func (v Values) Get(name string) (any, bool) {
	value, ok := v[name]
	return value, ok
}

// String returns the named value as a string, or "" when absent or of a
// different type.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the named value as an int, or 0 when absent or of a
// different type.
func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

// Float returns the named value as a float64.
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Bool returns the named value as a bool.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Bytes returns the named value as a []byte.
func (v Values) Bytes(name string) []byte {
	b, _ := v[name].([]byte)
	return b
}

// Tuple returns the named value as a Tuple.
func (v Values) Tuple(name string) Tuple {
	t, _ := v[name].(Tuple)
	return t
}

// List returns the named value as a []any.
func (v Values) List(name string) []any {
	l, _ := v[name].([]any)
	return l
}

// Dict returns the named value as a map[string]any.
func (v Values) Dict(name string) map[string]any {
	d, _ := v[name].(map[string]any)
	return d
}

// Path returns the named value as a Path.
func (v Values) Path(name string) Path {
	p, _ := v[name].(Path)
	return p
}

// UUID returns the named value as a uuid.UUID.
func (v Values) UUID(name string) uuid.UUID {
	u, _ := v[name].(uuid.UUID)
	return u
}

// Decimal returns the named value as a decimal.Decimal.
func (v Values) Decimal(name string) decimal.Decimal {
	d, _ := v[name].(decimal.Decimal)
	return d
}

// Datetime returns the named value as a time.Time.
func (v Values) Datetime(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

// Date returns the named value as a Date.
func (v Values) Date(name string) Date {
	d, _ := v[name].(Date)
	return d
}

// Clock returns the named value as a Clock.
func (v Values) Clock(name string) Clock {
	c, _ := v[name].(Clock)
	return c
}
