package numfmt

import (
	"math"
	"strings"

	"github.com/TsubasaBE/go-cellfmt/condition"
)

// maxSections is the number of sections a pattern may carry: positive,
// negative, zero and text.  Extra sections are ignored.
const maxSections = 4

// Sentinel section indices returned by pickSection.
const (
	sectionGeneral  = -1 // render with the General renderer
	sectionOverflow = -2 // no section accepts the value
)

// overflowMarker is rendered when a conditional pattern has no section for
// the value.
const overflowMarker = "####"

// section is one ';'-separated part of a pattern with its condition
// extracted.
type section struct {
	text string
	cond *condition.Rule
}

// splitSections splits pattern on ';' outside quotes and escapes.
func splitSections(pattern string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '"':
			end := strings.IndexByte(pattern[i+1:], '"')
			if end < 0 {
				i = len(pattern)
				continue
			}
			i += end + 1
		case '\\':
			i++
		case ';':
			parts = append(parts, pattern[start:i])
			start = i + 1
		}
	}
	return append(parts, pattern[start:])
}

// parseSections splits pattern into at most maxSections sections and
// extracts each section's condition.
func parseSections(pattern string) []section {
	parts := splitSections(pattern)
	if len(parts) > maxSections {
		parts = parts[:maxSections]
	}
	secs := make([]section, len(parts))
	for i, p := range parts {
		secs[i].text, secs[i].cond = extractCondition(p)
	}
	return secs
}

// extractCondition removes the first top-level "[op number]" tag from s
// and returns the remaining text with the parsed rule.
func extractCondition(s string) (string, *condition.Rule) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return s, nil
			}
			i += end + 1
		case '\\':
			i++
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return s, nil
			}
			content := s[i+1 : i+end]
			if content != "" && strings.IndexByte("<>=!", content[0]) >= 0 {
				if r, err := condition.ParseRule(content); err == nil {
					return s[:i] + s[i+end+1:], &r
				}
			}
			i += end
		}
	}
	return s, nil
}

// pickSection returns the index of the section that renders v, together
// with the value that section receives.
//
//   - one section: used unless its condition fails, then General;
//   - two sections: section 0 for v ≥ 0 or a passing condition, else
//     section 1 unless its own condition fails, else the overflow marker;
//   - three or four: section 0 for v > 0, section 1 for v < 0 (or their
//     passing conditions), otherwise section 2.
//
// A negative value rendered through an unconditioned negative section is
// passed as its absolute value; the section supplies its own sign.
func pickSection(secs []section, v float64) (int, float64) {
	n := len(secs)
	if n == maxSections {
		n-- // the text section takes no part in numeric selection
	}
	if n == 0 || math.IsNaN(v) {
		return sectionGeneral, v
	}

	switch n {
	case 1:
		if c := secs[0].cond; c != nil && !c.Pass(v) {
			return sectionGeneral, v
		}
		return 0, v
	case 2:
		if selects(secs[0], v >= 0, v) {
			return 0, v
		}
		if c := secs[1].cond; c != nil {
			if c.Pass(v) {
				return 1, v
			}
			return sectionOverflow, v
		}
		return 1, math.Abs(v)
	}

	switch {
	case selects(secs[0], v > 0, v):
		return 0, v
	case selects(secs[1], v < 0, v):
		if secs[1].cond == nil {
			return 1, math.Abs(v)
		}
		return 1, v
	}
	return 2, v
}

// selects reports whether sec takes v: its condition passes, or it has no
// condition and the default sign test holds.
func selects(sec section, byDefault bool, v float64) bool {
	if sec.cond == nil {
		return byDefault
	}
	return sec.cond.Pass(v)
}

// textSectionIndex returns the index of the section that renders text, or
// -1 when the pattern has none.
func textSectionIndex(secs []section) int {
	switch {
	case len(secs) == maxSections:
		return maxSections - 1
	case len(secs) == 1 && hasTextPlaceholder(secs[0].text):
		return 0
	}
	return -1
}

// hasTextPlaceholder reports whether s contains '@' outside quotes and
// escapes.
func hasTextPlaceholder(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '\\':
			i++
		case '@':
			return true
		}
	}
	return false
}
