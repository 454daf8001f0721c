package numfmt

import (
	"strings"
	"unicode/utf8"
)

// colorNames are the eight named colours a format section may carry.
var colorNames = []string{"black", "blue", "cyan", "green", "magenta", "red", "white", "yellow"}

// collapsedEscapes are the characters whose backslash escape is reduced to
// the bare character.
const collapsedEscapes = "-,. /"

// Normalize rewrites a raw pattern into the form the classifier and
// translators expect:
//
//   - colour tags ([Red], [Color12], …) are removed,
//   - locale tags [$sym-XXXX] are replaced by their currency symbol,
//   - the escapes \- \, \. \space and \/ collapse to the bare character,
//   - trailing ";@" text sections are removed.
//
// Quoted text is copied through untouched.  Normalize is idempotent.
func Normalize(pattern string) string {
	var sb strings.Builder
	sb.Grow(len(pattern))

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch c {
		case '"':
			end := strings.IndexByte(pattern[i+1:], '"')
			if end < 0 {
				sb.WriteString(pattern[i:])
				i = len(pattern)
				continue
			}
			sb.WriteString(pattern[i : i+end+2])
			i += end + 2
		case '\\':
			if i+1 >= len(pattern) {
				sb.WriteByte(c)
				i++
				continue
			}
			_, size := utf8.DecodeRuneInString(pattern[i+1:])
			next := pattern[i+1 : i+1+size]
			if size == 1 && strings.IndexByte(collapsedEscapes, next[0]) >= 0 {
				sb.WriteString(next)
			} else {
				sb.WriteByte('\\')
				sb.WriteString(next)
			}
			i += 1 + size
		case '[':
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				sb.WriteString(pattern[i:])
				i = len(pattern)
				continue
			}
			content := pattern[i+1 : i+end]
			switch {
			case isColorTag(content):
			case strings.HasPrefix(content, "$"):
				if sym, ok := localeSymbol(content); ok {
					sb.WriteString(sym)
				} else {
					sb.WriteString(pattern[i : i+end+1])
				}
			default:
				sb.WriteString(pattern[i : i+end+1])
			}
			i += end + 1
		default:
			sb.WriteByte(c)
			i++
		}
	}

	out := sb.String()
	for {
		pos := lastTopLevelSemicolon(out)
		if pos < 0 || out[pos:] != ";@" {
			return out
		}
		out = out[:pos]
	}
}

// isColorTag reports whether bracket content names a colour: one of the
// eight colour names or ColorN with N in 1..56.
func isColorTag(content string) bool {
	for _, name := range colorNames {
		if strings.EqualFold(content, name) {
			return true
		}
	}
	if len(content) < 6 || len(content) > 7 || !strings.EqualFold(content[:5], "color") {
		return false
	}
	n := 0
	for _, d := range content[5:] {
		if d < '0' || d > '9' {
			return false
		}
		n = n*10 + int(d-'0')
	}
	return n >= 1 && n <= 56
}

// localeSymbol extracts the currency symbol from a locale tag's content
// ("$€-407", "$-409", "$USD").  The symbol is returned in pattern form:
// dollar signs become \$, and symbols containing other ASCII characters
// are quoted.  Symbols containing '"' or '[' are rejected.
func localeSymbol(content string) (string, bool) {
	sym := content[1:]
	if dash := strings.IndexByte(sym, '-'); dash >= 0 {
		sym = sym[:dash]
	}
	if strings.ContainsAny(sym, `"[\`) {
		return "", false
	}
	plain := true
	for i := 0; i < len(sym); i++ {
		if sym[i] < utf8.RuneSelf && sym[i] != '$' {
			plain = false
			break
		}
	}
	if !plain {
		return `"` + sym + `"`, true
	}
	return strings.ReplaceAll(sym, "$", `\$`), true
}

// lastTopLevelSemicolon returns the byte offset of the last ';' that is not
// inside quotes or escaped, or -1.
func lastTopLevelSemicolon(s string) int {
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return last
			}
			i += end + 1
		case '\\':
			i++
		case ';':
			last = i
		}
	}
	return last
}
