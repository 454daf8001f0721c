package numfmt

import (
	"strings"
	"unicode/utf8"

	"github.com/xuri/nfp"
)

// renderText renders text through a text section: literal tokens are
// copied, '@' is replaced by the text, and padding and fill markers are
// dropped.  Tokens the section should not contain (digit placeholders,
// date codes) are copied as written.  An empty section hides the text.
func renderText(section, text string) (out string) {
	if strings.TrimSpace(section) == "" {
		return ""
	}
	defer func() {
		if recover() != nil {
			out = text
		}
	}()

	ps := nfp.NumberFormatParser()
	tokens := ps.Parse(section)
	if len(tokens) == 0 {
		return text
	}
	var b []byte
	for _, tok := range tokens[0].Items {
		switch tok.TType {
		case nfp.TokenTypeTextPlaceHolder:
			b = append(b, text...)
		case nfp.TokenTypeAlignment, nfp.TokenTypeRepeatsChar,
			nfp.TokenTypeColor, nfp.TokenTypeCondition, nfp.TokenTypeCurrencyLanguage:
		default:
			b = append(b, tok.TValue...)
		}
	}
	return string(b)
}

// literalText returns the text a placeholder-free section shows: quoted
// and escaped text unquoted, padding, fill and bracket tags dropped, and
// everything else as written.
func literalText(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				sb.WriteString(s[i+1:])
				return sb.String()
			}
			sb.WriteString(s[i+1 : i+1+end])
			i += end + 2
		case '\\', '_', '*':
			_, size := utf8.DecodeRuneInString(s[i+1:])
			if c == '\\' {
				sb.WriteString(s[i+1 : i+1+size])
			}
			i += 1 + size
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				sb.WriteString(s[i:])
				return sb.String()
			}
			i += end + 1
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// indexGeneral returns the offset of "General" (any case) outside quotes
// and escapes, or -1.
func indexGeneral(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return -1
			}
			i += end + 1
		case '\\':
			i++
		case 'G', 'g':
			if hasPrefixFold(s[i:], "General") {
				return i
			}
		}
	}
	return -1
}

// generalSection returns a renderer for a section that embeds General
// among literal text, such as "(General)".
func generalSection(section string) func(float64) string {
	i := indexGeneral(section)
	if i < 0 {
		return renderGeneral
	}
	prefix := literalText(section[:i])
	suffix := literalText(section[i+len("General"):])
	return func(v float64) string {
		return prefix + renderGeneral(v) + suffix
	}
}
