package numfmt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/TsubasaBE/go-cellfmt/internal/dateformat"
)

// maxFracDigits caps fractional-second precision at milliseconds.
const maxFracDigits = 3

type dateKind uint8

const (
	dateLiteral dateKind = iota
	dateYear
	dateMonth
	dateDay
	dateWeekday
	dateHour
	dateMinute
	dateSecond
	dateFraction
	dateAMPM
	dateElapsed
)

// dateToken is one item of a compiled date template.  width is the run
// length of the pattern letters (year: 2 or 4; month: 1–5; fraction:
// digit count).  For dateAMPM, lit and alt hold the AM and PM markers.
type dateToken struct {
	kind      dateKind
	width     int
	lit       string
	alt       string
	ambiguous bool // an m/mm run that could still be a minute
}

// DateTemplate is a date/time render template produced by TranslateDate.
type DateTemplate struct {
	tokens     []dateToken
	hour12     bool
	fracDigits int

	// Elapsed is the set of [h]/[m]/[s] tokens the template renders as
	// placeholders for PostProcessElapsed.
	Elapsed ElapsedSet
}

// String returns the template in the date template alphabet: yy/yyyy,
// M…MMMMM, d/dd, EEE/EEEE, H/HH (24-hour) or h/hh (12-hour), m/mm, s/ss,
// S… (fractional seconds), a (AM/PM), A (A/P), '…' literals, and the
// private-use elapsed placeholders.
func (t DateTemplate) String() string {
	var sb strings.Builder
	for _, tok := range t.tokens {
		switch tok.kind {
		case dateLiteral:
			sb.WriteString(quoteDateLiteral(tok.lit))
		case dateYear:
			sb.WriteString(strings.Repeat("y", tok.width))
		case dateMonth:
			sb.WriteString(strings.Repeat("M", tok.width))
		case dateDay:
			sb.WriteString(strings.Repeat("d", tok.width))
		case dateWeekday:
			sb.WriteString(strings.Repeat("E", tok.width))
		case dateHour:
			if t.hour12 {
				sb.WriteString(strings.Repeat("h", tok.width))
			} else {
				sb.WriteString(strings.Repeat("H", tok.width))
			}
		case dateMinute:
			sb.WriteString(strings.Repeat("m", tok.width))
		case dateSecond:
			sb.WriteString(strings.Repeat("s", tok.width))
		case dateFraction:
			sb.WriteString(strings.Repeat("S", tok.width))
		case dateAMPM:
			if len(tok.lit) == 1 {
				sb.WriteByte('A')
			} else {
				sb.WriteByte('a')
			}
		case dateElapsed:
			sb.WriteString(tok.lit)
		}
	}
	return sb.String()
}

// quoteDateLiteral quotes literal text that contains letters or quotes.
func quoteDateLiteral(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\'' || (c|0x20 >= 'a' && c|0x20 <= 'z') {
			return "'" + strings.ReplaceAll(s, "'", "''") + "'"
		}
	}
	return s
}

// TranslateDate compiles a normalized date/time pattern into a
// DateTemplate.  Elapsed brackets become placeholders, AM/PM and A/P
// switch hours to the 12-hour clock, and each m/mm run is a month unless
// it directly follows an hour or directly precedes a second.  A pattern
// without any date or time token fails with ErrMalformedTemplate.
func TranslateDate(p string) (DateTemplate, error) {
	var t DateTemplate
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.tokens = append(t.tokens, dateToken{kind: dateLiteral, lit: lit.String()})
			lit.Reset()
		}
	}
	emit := func(tok dateToken) {
		flush()
		t.tokens = append(t.tokens, tok)
	}

	i := 0
	// secondsFraction consumes a ".0…" run following a seconds token.
	secondsFraction := func() {
		if i+1 >= len(p) || p[i] != '.' || p[i+1] != '0' {
			return
		}
		z := 0
		for i+1+z < len(p) && p[i+1+z] == '0' {
			z++
		}
		width := min(z, maxFracDigits)
		lit.WriteByte('.')
		emit(dateToken{kind: dateFraction, width: width})
		t.fracDigits = max(t.fracDigits, width)
		i += 1 + z
	}

	for i < len(p) {
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
		case c == '\\' || c == '_' || c == '*':
			_, size := utf8.DecodeRuneInString(p[i+1:])
			if c == '\\' {
				lit.WriteString(p[i+1 : i+1+size])
			}
			i += 1 + size
		case c == '[':
			end := strings.IndexByte(p[i:], ']')
			if end < 0 {
				lit.WriteString(p[i:])
				i = len(p)
				continue
			}
			if content := p[i+1 : i+end]; dateformat.IsElapsedToken(content) {
				et := elapsedTokenFor(content)
				t.Elapsed.add(et)
				emit(dateToken{kind: dateElapsed, width: len(content), lit: string(et.Placeholder())})
				i += end + 1
				if et >= ElapsedS {
					secondsFraction()
				}
				continue
			}
			i += end + 1
		case hasPrefixFold(p[i:], "AM/PM"):
			am, pm := "AM", "PM"
			if p[i] == 'a' {
				am, pm = "am", "pm"
			}
			emit(dateToken{kind: dateAMPM, lit: am, alt: pm})
			t.hour12 = true
			i += len("AM/PM")
		case hasPrefixFold(p[i:], "A/P"):
			am, pm := "A", "P"
			if p[i] == 'a' {
				am, pm = "a", "p"
			}
			emit(dateToken{kind: dateAMPM, lit: am, alt: pm})
			t.hour12 = true
			i += len("A/P")
		case strings.IndexByte("yYmMdDhHsS", c) >= 0:
			n := 1
			for i+n < len(p) && p[i+n]|0x20 == c|0x20 {
				n++
			}
			emit(dateLetterToken(c|0x20, n))
			i += n
			if c|0x20 == 's' {
				secondsFraction()
			}
		default:
			_, size := utf8.DecodeRuneInString(p[i:])
			lit.WriteString(p[i : i+size])
			i += size
		}
	}
	flush()

	resolveMinutes(t.tokens)
	for _, tok := range t.tokens {
		if tok.kind != dateLiteral {
			return t, nil
		}
	}
	return t, fmt.Errorf("%w: no date or time token in %q", ErrMalformedTemplate, p)
}

// dateLetterToken maps a run of n copies of the lower-case letter c.
func dateLetterToken(c byte, n int) dateToken {
	switch c {
	case 'y':
		if n <= 2 {
			return dateToken{kind: dateYear, width: 2}
		}
		return dateToken{kind: dateYear, width: 4}
	case 'd':
		switch {
		case n <= 2:
			return dateToken{kind: dateDay, width: n}
		case n == 3:
			return dateToken{kind: dateWeekday, width: 3}
		}
		return dateToken{kind: dateWeekday, width: 4}
	case 'h':
		return dateToken{kind: dateHour, width: min(n, 2)}
	case 's':
		return dateToken{kind: dateSecond, width: min(n, 2)}
	}
	if n >= 3 {
		return dateToken{kind: dateMonth, width: min(n, 5)}
	}
	return dateToken{kind: dateMonth, width: n, ambiguous: true}
}

// resolveMinutes turns ambiguous m/mm runs into minutes when the previous
// date token is an hour, or when the next date token is a second.
func resolveMinutes(toks []dateToken) {
	prev := -1
	for i := range toks {
		tok := &toks[i]
		if tok.kind == dateLiteral || tok.kind == dateAMPM || tok.kind == dateFraction {
			continue
		}
		if prev >= 0 {
			p := &toks[prev]
			if tok.ambiguous && isHourToken(*p) {
				tok.kind = dateMinute
			}
			if p.ambiguous && p.kind == dateMonth && isSecondToken(*tok) {
				p.kind = dateMinute
			}
		}
		prev = i
	}
}

func isHourToken(tok dateToken) bool {
	return tok.kind == dateHour || (tok.kind == dateElapsed && elapsedOf(tok) <= ElapsedHH)
}

func isSecondToken(tok dateToken) bool {
	return tok.kind == dateSecond || (tok.kind == dateElapsed && elapsedOf(tok) >= ElapsedS)
}

func elapsedOf(tok dateToken) ElapsedToken {
	r, _ := utf8.DecodeRuneInString(tok.lit)
	return ElapsedToken(r - elapsedBase)
}

// hasPrefixFold is strings.HasPrefix with ASCII case folding.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
