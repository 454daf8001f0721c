// Package cellfmt renders spreadsheet cell values the way a spreadsheet
// application displays them, driven by the cell's number format.
//
// # Quick start
//
//	s := cellfmt.Format(45285, 164, "dddd, mmmm d, yyyy") // "Monday, December 25, 2023"
//	s = cellfmt.Format(-1234.5, 0x08, "") // "($1,234.50)"
//
// Format uses a process-wide [numfmt.Formatter] for the 1900 date system.
// Callers that need the 1904 date system, overrides, a logger or a private
// cache construct their own with [numfmt.New].
//
// # Cells
//
// [numfmt.Formatter.FormatCell] renders any value implementing [numfmt.Cell].
// The excelcell package adapts excelize workbooks:
//
//	c, err := excelcell.Load(f, "Sheet1", "B2")
//	if err != nil { ... }
//	s := numfmt.New().FormatCell(c, excelcell.Resolver{File: f})
//
// # Dates
//
// Spreadsheets store dates as floating-point serial numbers.  Format handles
// date rendering automatically when the format is a date or time format.
// For direct access to the underlying [time.Time] use [ConvertDateEx]:
//
//	t, err := cellfmt.ConvertDateEx(serial, date1904)
//
// [ConvertDate] is a convenience wrapper for the 1900 date system.
//
// # Format detection
//
// [IsDateFormat] reports whether a number-format ID and optional custom
// pattern describe a date or datetime format.
package cellfmt

import (
	"fmt"
	"time"

	"github.com/TsubasaBE/go-cellfmt/numfmt"
	"github.com/TsubasaBE/go-cellfmt/styles"
)

// Version is the current version of the go-cellfmt library.
const Version = "1.0.0"

// Format renders value with the number format given by formatIndex and
// formatString.  An empty formatString selects the built-in format for
// formatIndex.  Format never fails: unusable formats fall back to a plain
// numeric rendering.
func Format(value float64, formatIndex int, formatString string) string {
	return numfmt.FormatValue(value, formatIndex, formatString, false)
}

// ConvertDate converts a spreadsheet date serial number in the 1900 date
// system to a [time.Time] value.
//
// Lotus 1-2-3 treated 1900 as a leap year and spreadsheets perpetuate the
// bug: serial 60 is the phantom 1900-02-29.  The three resulting branches
// are:
//
//   - serial == 0  → midnight on 1900-01-01
//   - serial >= 61 → subtract one day to compensate for the phantom leap day
//   - 1 ≤ serial ≤ 60 → no compensation (serial 60 yields 1900-03-01)
//
// The time of day is rounded to whole seconds.
func ConvertDate(date float64) (time.Time, error) {
	t, err := numfmt.SerialToTime(date, false, 0)
	if err != nil {
		return time.Time{}, fmt.Errorf("cellfmt: ConvertDate: %w", err)
	}
	return t, nil
}

// ConvertDateEx converts a spreadsheet date serial number to a [time.Time]
// value, respecting the workbook's date system.
//
// When date1904 is false the function is identical to [ConvertDate].  When
// date1904 is true serial 0 is 1904-01-01 and serials increase by one day
// per unit with no phantom leap-day correction.
func ConvertDateEx(date float64, date1904 bool) (time.Time, error) {
	if !date1904 {
		return ConvertDate(date)
	}
	t, err := numfmt.SerialToTime(date, true, 0)
	if err != nil {
		return time.Time{}, fmt.Errorf("cellfmt: ConvertDateEx: %w", err)
	}
	return t, nil
}

// IsDateFormat reports whether a number-format ID (and optional custom format
// string) represents a date or datetime format.
//
// For built-in formats (id < 164) formatStr is ignored.  The following
// built-in IDs are date or datetime formats:
//
//	14–17, 22, 27–36, 45–47, 50–58
//
// Built-in time-only IDs 18–21 (h:mm AM/PM, h:mm:ss AM/PM, h:mm, h:mm:ss)
// are excluded; they carry no calendar date.  IDs 27–36 and 50–58 are the
// locale-dependent East Asian date formats.
//
// For custom formats the first section of formatStr is classified the same
// way [Format] classifies it.
func IsDateFormat(id int, formatStr string) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	case id >= 45 && id <= 47:
		return true
	}
	if id < styles.FirstCustomIndex {
		return false
	}
	return numfmt.IsDateFormat(id, formatStr)
}
