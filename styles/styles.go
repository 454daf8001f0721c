// Package styles holds the built-in number-format table and the
// [FormatSpec] value that pairs a format index with its pattern.  It is a
// deliberately small, import-cycle-free package so that numfmt, excelcell
// and the root package can all depend on it.
package styles

import (
	"errors"
	"fmt"
	"strings"
)

// FirstCustomIndex is the first numFmtId available to user-defined formats.
// Indices below it belong to the built-in table.
const FirstCustomIndex = 164

// Sentinel errors returned (wrapped) by [Lookup].
var (
	// ErrReservedFormat is returned for built-in indices 0x17–0x24, which
	// are reserved placeholders and not valid formats.
	ErrReservedFormat = errors.New("styles: reserved format index")
	// ErrUnknownFormat is returned for indices that have no built-in pattern.
	ErrUnknownFormat = errors.New("styles: unknown format index")
)

// FormatSpec pairs a numFmtId with its raw pattern string.
type FormatSpec struct {
	// Index is the numFmtId.  Values 0–163 are built-in Excel formats;
	// values ≥ 164 are custom formats.
	Index int
	// Pattern is the raw format string.  It is empty for built-in IDs that
	// have no custom override.
	Pattern string
}

// Resolve returns the effective pattern: the custom pattern when non-empty,
// the built-in string for Index when known, or "General".
func (fs FormatSpec) Resolve() string {
	if fs.Pattern != "" {
		return fs.Pattern
	}
	if s, err := Lookup(fs.Index); err == nil {
		return s
	}
	return "General"
}

// IsGeneral reports whether the spec always renders through the built-in
// General / text passthrough logic, i.e. index 0 or 0x31 regardless of the
// pattern, or a "General" / "@" pattern.
func (fs FormatSpec) IsGeneral() bool {
	if fs.Index == 0 || fs.Index == 0x31 {
		return true
	}
	p := fs.Resolve()
	return p == "@" || strings.EqualFold(p, "General")
}

// BuiltInNumFmt maps built-in numFmtId values to their canonical format
// strings.  Indices 0x17–0x24 are reserved and deliberately absent.
var BuiltInNumFmt = map[int]string{
	0x00: "General",
	0x01: "0",
	0x02: "0.00",
	0x03: "#,##0",
	0x04: "#,##0.00",
	0x05: `"$"#,##0_);("$"#,##0)`,
	0x06: `"$"#,##0_);[Red]("$"#,##0)`,
	0x07: `"$"#,##0.00_);("$"#,##0.00)`,
	0x08: `"$"#,##0.00_);[Red]("$"#,##0.00)`,
	0x09: "0%",
	0x0a: "0.00%",
	0x0b: "0.00E+00",
	0x0c: "# ?/?",
	0x0d: "# ??/??",
	0x0e: "m/d/yy",
	0x0f: "d-mmm-yy",
	0x10: "d-mmm",
	0x11: "mmm-yy",
	0x12: "h:mm AM/PM",
	0x13: "h:mm:ss AM/PM",
	0x14: "h:mm",
	0x15: "h:mm:ss",
	0x16: "m/d/yy h:mm",
	0x25: "#,##0_);(#,##0)",
	0x26: "#,##0_);[Red](#,##0)",
	0x27: "#,##0.00_);(#,##0.00)",
	0x28: "#,##0.00_);[Red](#,##0.00)",
	0x29: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	0x2a: `_("$"* #,##0_);_("$"* (#,##0);_("$"* "-"_);_(@_)`,
	0x2b: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	0x2c: `_("$"* #,##0.00_);_("$"* (#,##0.00);_("$"* "-"??_);_(@_)`,
	0x2d: "mm:ss",
	0x2e: "[h]:mm:ss",
	0x2f: "mm:ss.0",
	0x30: "##0.0E+0",
	0x31: "@",
}

// builtinIndex is the reverse of BuiltInNumFmt, keyed by the exact pattern.
var builtinIndex = func() map[string]int {
	m := make(map[string]int, len(BuiltInNumFmt))
	for id, s := range BuiltInNumFmt {
		m[s] = id
	}
	return m
}()

// IsReserved reports whether id falls in the reserved 0x17–0x24 range.
func IsReserved(id int) bool { return id >= 0x17 && id <= 0x24 }

// Lookup returns the built-in pattern for id.  Reserved indices fail with
// ErrReservedFormat; custom and unknown indices fail with ErrUnknownFormat.
func Lookup(id int) (string, error) {
	if IsReserved(id) {
		return "", fmt.Errorf("%w 0x%02x", ErrReservedFormat, id)
	}
	if s, ok := BuiltInNumFmt[id]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w %d", ErrUnknownFormat, id)
}

// BuiltinIndex returns the built-in index whose pattern equals pattern
// exactly, or -1 when the pattern is not a built-in one.  "general" matches
// index 0 case-insensitively.
func BuiltinIndex(pattern string) int {
	if id, ok := builtinIndex[pattern]; ok {
		return id
	}
	if strings.EqualFold(pattern, "General") {
		return 0
	}
	return -1
}

// Spec returns the canonical FormatSpec for a pattern: built-in patterns map
// back to their index, anything else gets FirstCustomIndex.
func Spec(pattern string) FormatSpec {
	if id := BuiltinIndex(pattern); id >= 0 {
		return FormatSpec{Index: id, Pattern: pattern}
	}
	return FormatSpec{Index: FirstCustomIndex, Pattern: pattern}
}
