// Package numfmt renders spreadsheet cell values to their display string
// using a number format pattern.  It is the rendering engine behind
// [cellfmt.Format] and the excelcell adapter.
//
// The central type is [Formatter]: it splits a pattern into its
// positive/negative/zero/text sections, classifies each section (General,
// number, fraction, date/time), translates it into a render template once,
// caches the result, and renders values through it.  [FormatValue] is a
// convenience wrapper over two process-wide formatters (1900 and 1904 date
// systems).
//
// Malformed patterns never cause a panic or an error at render time: they
// degrade to the default numeric templates.
package numfmt

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors returned (wrapped) by the translators and renderers.
var (
	// ErrUnrecognizedFormat is returned by [Classify] when a pattern is
	// neither General, a date/time, a fraction, nor a number.
	ErrUnrecognizedFormat = errors.New("numfmt: unrecognized format")
	// ErrMalformedTemplate is returned when a pattern cannot be translated
	// into a render template.
	ErrMalformedTemplate = errors.New("numfmt: malformed template")
	// ErrFractionOverflow is returned when a continued-fraction
	// approximation exceeds the 32-bit integer range or fails to converge.
	ErrFractionOverflow = errors.New("numfmt: fraction overflow")
	// ErrInvalidSerial is returned for values that are not valid date
	// serials (NaN, ±Inf, negative, or beyond 9999-12-31).
	ErrInvalidSerial = errors.New("numfmt: invalid date serial")
)

// Category is the kind of render template a format section compiles to.
type Category int

// Format categories.
const (
	CategoryGeneralNumber Category = iota
	CategoryGeneralText
	CategoryNumber
	CategoryDate
	CategoryFraction
)

func (c Category) String() string {
	switch c {
	case CategoryGeneralNumber:
		return "GeneralNumber"
	case CategoryGeneralText:
		return "GeneralText"
	case CategoryNumber:
		return "Number"
	case CategoryDate:
		return "Date"
	case CategoryFraction:
		return "Fraction"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

var (
	defaultFormatter     = sync.OnceValue(func() *Formatter { return New() })
	defaultFormatter1904 = sync.OnceValue(func() *Formatter { return New(WithDate1904(true)) })
)

// FormatValue renders a raw cell value v using the given number format.
//
//   - numFmtID is the numFmtId from the cell style (0 = General).
//   - fmtStr is the custom format string; pass "" for built-in IDs that
//     have no custom override.
//   - date1904 selects the 1904 date system.
//
// The dynamic type of v must be one of: nil, string, bool, float64 or
// [ErrorCode].  Any other type falls back to [fmt.Sprint].
func FormatValue(v any, numFmtID int, fmtStr string, date1904 bool) string {
	f := defaultFormatter()
	if date1904 {
		f = defaultFormatter1904()
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return f.FormatText(val, numFmtID, fmtStr)
	case bool:
		return boolString(val)
	case float64:
		return f.Format(val, numFmtID, fmtStr)
	case ErrorCode:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

func boolString(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
