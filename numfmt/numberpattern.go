package numfmt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// templateSpecials are the characters that carry meaning in a decimal
// template and must be quoted when they appear as literal text.
const templateSpecials = "0#?,.%Ee'"

// TranslateNumber converts a normalized number-format section into a
// decimal template: digit placeholders 0 # ?, the grouping/scaling comma,
// the decimal point, %, an exponent marker (E for E+, e for E-) and
// '…'-quoted literals.  Padding (_x), fill (*x) and stray bracket tags are
// dropped.
//
// Sections without a digit placeholder, with a text placeholder, or with
// a fraction construct fail with ErrMalformedTemplate.
func TranslateNumber(p string) (string, error) {
	var sb, lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			sb.WriteString(quoteLiteral(lit.String()))
			lit.Reset()
		}
	}

	digits := false
	for i := 0; i < len(p); {
		c := p[i]
		switch {
		case c == '"':
			end := strings.IndexByte(p[i+1:], '"')
			if end < 0 {
				lit.WriteString(p[i+1:])
				i = len(p)
				continue
			}
			lit.WriteString(p[i+1 : i+1+end])
			i += end + 2
			continue
		case c == '\\' || c == '_' || c == '*':
			_, size := utf8.DecodeRuneInString(p[i+1:])
			if c == '\\' {
				lit.WriteString(p[i+1 : i+1+size])
			}
			i += 1 + size
			continue
		case c == '[':
			end := strings.IndexByte(p[i:], ']')
			if end < 0 {
				lit.WriteByte(c)
				i++
				continue
			}
			i += end + 1
			continue
		case c == '@':
			return "", fmt.Errorf("%w: text placeholder in %q", ErrMalformedTemplate, p)
		case (c == 'E' || c == 'e') && i+1 < len(p) && (p[i+1] == '+' || p[i+1] == '-'):
			flush()
			if p[i+1] == '+' {
				sb.WriteByte('E')
			} else {
				sb.WriteByte('e')
			}
			i += 2
			continue
		case isPlaceholder(c):
			flush()
			sb.WriteByte(c)
			digits = true
		case c == ',' || c == '.' || c == '%':
			flush()
			sb.WriteByte(c)
		case c == '/' && hasFraction(p):
			return "", fmt.Errorf("%w: fraction in %q", ErrMalformedTemplate, p)
		default:
			_, size := utf8.DecodeRuneInString(p[i:])
			lit.WriteString(p[i : i+size])
			i += size
			continue
		}
		i++
	}
	flush()

	if !digits {
		return "", fmt.Errorf("%w: no digit placeholder in %q", ErrMalformedTemplate, p)
	}
	return sb.String(), nil
}

// quoteLiteral returns s as template literal text, quoting it when it
// contains template characters or letters.
func quoteLiteral(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(templateSpecials, c) >= 0 || (c|0x20 >= 'a' && c|0x20 <= 'z') {
			return "'" + strings.ReplaceAll(s, "'", "''") + "'"
		}
	}
	return s
}
