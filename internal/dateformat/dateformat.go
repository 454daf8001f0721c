// Package dateformat provides the date-format detection helpers shared by
// the numfmt classifier and the root package.
//
// It has no public-API contract of its own.  All callers are within the
// same module.
package dateformat

import (
	"strings"
	"unicode/utf8"
)

// IsBuiltInDateID reports whether id is a built-in numFmtId that always
// renders as a date or time, whatever pattern string accompanies it:
//
//	14–22   date and time formats (m/d/yy … m/d/yy h:mm)
//	45–47   mm:ss, [h]:mm:ss, mm:ss.0
func IsBuiltInDateID(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 0x2d && id <= 0x2f)
}

// IsElapsedToken reports whether the bracket content (without brackets) is
// an elapsed-time token: h, hh, m, mm, s or ss in any case.
func IsElapsedToken(content string) bool {
	if content == "" || len(content) > 2 {
		return false
	}
	c := content[0] | 0x20
	if c != 'h' && c != 'm' && c != 's' {
		return false
	}
	return len(content) == 1 || content[1]|0x20 == c
}

// IsDatePattern scans a normalized format section and reports whether it
// consists solely of date/time material:
//
//   - the letters y, m, d, h, s in either case
//   - the separators - / , . : and space
//   - double-quoted literals and backslash escapes
//   - elapsed brackets [h], [mm], [ss], …
//   - AM/PM and A/P markers in any case
//   - 0 digits directly after "s." (fractional seconds)
//
// At least one date letter must be present.  Colour and locale tags must
// have been removed beforehand; any other bracket rejects the pattern.
func IsDatePattern(p string) bool {
	seenLetter := false
	prevSecond := false // previous item was s/S or an [s]/[ss] bracket
	fraction := false   // inside the ".000" of fractional seconds
	for i := 0; i < len(p); {
		c := p[i]
		switch {
		case c == '"':
			end := strings.IndexByte(p[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 2
			prevSecond, fraction = false, false
			continue
		case c == '\\':
			_, size := utf8.DecodeRuneInString(p[i+1:])
			i += 1 + size
			prevSecond, fraction = false, false
			continue
		case c == '[':
			end := strings.IndexByte(p[i:], ']')
			if end < 0 || !IsElapsedToken(p[i+1:i+end]) {
				return false
			}
			seenLetter = true
			prevSecond = p[i+1]|0x20 == 's'
			fraction = false
			i += end + 1
			continue
		case hasPrefixFold(p[i:], "AM/PM"):
			i += len("AM/PM")
			prevSecond, fraction = false, false
			continue
		case hasPrefixFold(p[i:], "A/P"):
			i += len("A/P")
			prevSecond, fraction = false, false
			continue
		case strings.IndexByte("yYmMdDhHsS", c) >= 0:
			seenLetter = true
			prevSecond = c|0x20 == 's'
			fraction = false
		case c == '.':
			fraction = prevSecond
			prevSecond = false
		case c == '0':
			if !fraction {
				return false
			}
		case strings.IndexByte("-/,: ", c) >= 0:
			prevSecond, fraction = false, false
		default:
			return false
		}
		i++
	}
	return seenLetter
}

// hasPrefixFold is strings.HasPrefix with ASCII case folding.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
