// Package datefmt renders points in time for display.
//
// Timestamps arrive from templates, JSON payloads and query strings, so the
// formatter accepts time values, strings and Unix milliseconds alike and
// rejects anything that does not name a real calendar instant.
package datefmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jinzhu/now"
)

// DisplayLayout is the fixed display convention, e.g. "March 5, 2024".
const DisplayLayout = "January 2, 2006"

// MaxMillis bounds Unix millisecond inputs to the range a JavaScript Date
// can represent: 100,000,000 days either side of the epoch.
const MaxMillis int64 = 8_640_000_000_000_000

// ErrInvalidDate is matched by every InvalidDateError via errors.Is.
var ErrInvalidDate = errors.New("invalid date")

// InvalidDateError reports a value that could not be read as a date.
type InvalidDateError struct {
	Value any
	Err   error
}

func (e *InvalidDateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid date %v: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid date %v", e.Value)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }

// Formatter formats dates with a layout in a location. The zero value uses
// DisplayLayout in UTC.
type Formatter struct {
	Layout   string
	Location *time.Location
}

// Default is the formatter behind the package-level helpers.
var Default = Formatter{Layout: DisplayLayout, Location: time.UTC}

// Format renders value with the default formatter.
func Format(value any) (string, error) {
	return Default.Format(value)
}

// Relative renders value relative to ref, e.g. "3 days ago".
func Relative(value any, ref time.Time) (string, error) {
	return Default.Relative(value, ref)
}

// Format renders value using the formatter's layout.
func (f Formatter) Format(value any) (string, error) {
	t, err := f.Parse(value)
	if err != nil {
		return "", err
	}
	layout := f.Layout
	if layout == "" {
		layout = DisplayLayout
	}
	return t.Format(layout), nil
}

// Relative renders value as a humanized offset from ref.
func (f Formatter) Relative(value any, ref time.Time) (string, error) {
	t, err := f.Parse(value)
	if err != nil {
		return "", err
	}
	return humanize.RelTime(t, ref, "ago", "from now"), nil
}

// Parse converts value into a time in the formatter's location.
func (f Formatter) Parse(value any) (time.Time, error) {
	t, err := f.toTime(value)
	if err != nil {
		return time.Time{}, err
	}
	if t.IsZero() {
		return time.Time{}, &InvalidDateError{Value: value, Err: errors.New("zero time")}
	}
	return t.In(f.location()), nil
}

func (f Formatter) location() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

func (f Formatter) toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, &InvalidDateError{Value: value, Err: errors.New("nil time")}
		}
		return *v, nil
	case string:
		return f.parseString(v)
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, &InvalidDateError{Value: value, Err: err}
		}
		return fromMillis(ms, value)
	case int64:
		return fromMillis(v, value)
	case int:
		return fromMillis(int64(v), value)
	default:
		return time.Time{}, &InvalidDateError{Value: value, Err: fmt.Errorf("unsupported type %T", value)}
	}
}

func fromMillis(ms int64, value any) (time.Time, error) {
	if ms > MaxMillis || ms < -MaxMillis {
		return time.Time{}, &InvalidDateError{Value: value, Err: errors.New("milliseconds out of range")}
	}
	return time.UnixMilli(ms), nil
}

// dateLayouts keeps the jinzhu/now layouts that name a full calendar date.
// Time-only and partial layouts would silently fill in today or this year.
var dateLayouts = func() []string {
	var layouts []string
	for _, layout := range now.TimeFormats {
		if hasCalendarDate(layout) {
			layouts = append(layouts, layout)
		}
	}
	return layouts
}()

func hasCalendarDate(layout string) bool {
	if !strings.Contains(layout, "2006") {
		return false
	}
	rest := strings.Replace(layout, "2006", "", 1)
	hasMonth := strings.Contains(rest, "1") || strings.Contains(rest, "Jan")
	return hasMonth && strings.Contains(rest, "2")
}

func isDigits(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (f Formatter) parseString(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, &InvalidDateError{Value: raw, Err: errors.New("empty string")}
	}
	if isDigits(trimmed) {
		ms, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return time.Time{}, &InvalidDateError{Value: raw, Err: err}
		}
		return fromMillis(ms, raw)
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	parser := &now.Config{TimeLocation: f.location(), TimeFormats: dateLayouts}
	t, err := parser.Parse(trimmed)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: raw, Err: err}
	}
	return t, nil
}
