package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

type numKind uint8

const (
	numLiteral numKind = iota
	numDigit
	numPoint
	numComma
	numPercent
	numExponent
)

type numToken struct {
	kind numKind
	ch   byte   // placeholder character or exponent marker
	lit  string // literal text
	frac bool   // digit placeholder right of the decimal point
}

// decimalFormat is a compiled decimal template.
type decimalFormat struct {
	template string
	mantissa []numToken
	exponent []numToken
	expSign  byte // 'E' always signs the exponent, 'e' only when negative; 0 = none

	intPH    []byte // integer placeholders, left to right
	fracPH   []byte // fraction placeholders, left to right
	fracMin  int    // fraction digits always shown
	expMin   int    // minimum exponent digits
	grouping bool
	scale    int // trailing commas, each divides by 1000
	percents int

	// dropEmptyPoint omits the decimal point when no fraction digit is
	// shown.  Only the built-in General and fallback templates set it.
	dropEmptyPoint bool
}

// compileDecimal parses a template produced by TranslateNumber.
func compileDecimal(tmpl string) (*decimalFormat, error) {
	toks, err := lexTemplate(tmpl)
	if err != nil {
		return nil, err
	}
	d := &decimalFormat{template: tmpl}

	d.mantissa = toks
	for i, t := range toks {
		if t.kind == numExponent {
			d.mantissa, d.exponent, d.expSign = toks[:i], toks[i+1:], t.ch
			break
		}
	}
	for _, t := range d.exponent {
		switch t.kind {
		case numExponent:
			return nil, fmt.Errorf("%w: repeated exponent in %q", ErrMalformedTemplate, tmpl)
		case numDigit:
			if t.ch == '0' {
				d.expMin++
			}
		}
	}
	if d.expSign != 0 {
		if !containsDigit(d.exponent) {
			return nil, fmt.Errorf("%w: exponent without digits in %q", ErrMalformedTemplate, tmpl)
		}
		d.expMin = max(d.expMin, 1)
	}

	first, last, point := -1, -1, -1
	for i, t := range d.mantissa {
		switch t.kind {
		case numDigit:
			if first < 0 {
				first = i
			}
			last = i
		case numPoint:
			if point < 0 {
				point = i
			}
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("%w: no digit placeholder in %q", ErrMalformedTemplate, tmpl)
	}

	mant := d.mantissa[:0:0]
	for i, t := range d.mantissa {
		switch t.kind {
		case numComma:
			switch {
			case i < first:
				mant = append(mant, numToken{kind: numLiteral, lit: ","})
			case i > last:
				d.scale++
			case point < 0 || i < point:
				d.grouping = true
			}
			continue
		case numPoint:
			if i != point {
				t = numToken{kind: numLiteral, lit: "."}
			}
		case numPercent:
			d.percents++
		case numDigit:
			if point >= 0 && i > point {
				t.frac = true
				d.fracPH = append(d.fracPH, t.ch)
				if t.ch == '0' {
					d.fracMin = len(d.fracPH)
				}
			} else {
				d.intPH = append(d.intPH, t.ch)
			}
		}
		mant = append(mant, t)
	}
	d.mantissa = mant
	return d, nil
}

// mustCompileDecimal compiles a template known to be valid.
func mustCompileDecimal(tmpl string) *decimalFormat {
	d, err := compileDecimal(tmpl)
	if err != nil {
		panic(err)
	}
	return d
}

// lexTemplate splits a decimal template into tokens.  '…' quotes literal
// text; a doubled quote is a literal quote.
func lexTemplate(tmpl string) ([]numToken, error) {
	var toks []numToken
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch c {
		case '\'':
			var sb strings.Builder
			j := i + 1
			for ; j < len(tmpl); j++ {
				if tmpl[j] != '\'' {
					sb.WriteByte(tmpl[j])
					continue
				}
				if j+1 < len(tmpl) && tmpl[j+1] == '\'' {
					sb.WriteByte('\'')
					j++
					continue
				}
				break
			}
			if j >= len(tmpl) {
				return nil, fmt.Errorf("%w: unterminated quote in %q", ErrMalformedTemplate, tmpl)
			}
			if sb.Len() == 0 {
				sb.WriteByte('\'')
			}
			toks = append(toks, numToken{kind: numLiteral, lit: sb.String()})
			i = j + 1
			continue
		case '0', '#', '?':
			toks = append(toks, numToken{kind: numDigit, ch: c})
		case '.':
			toks = append(toks, numToken{kind: numPoint})
		case ',':
			toks = append(toks, numToken{kind: numComma})
		case '%':
			toks = append(toks, numToken{kind: numPercent})
		case 'E', 'e':
			toks = append(toks, numToken{kind: numExponent, ch: c})
		default:
			_, size := utf8.DecodeRuneInString(tmpl[i:])
			toks = append(toks, numToken{kind: numLiteral, lit: tmpl[i : i+size]})
			i += size
			continue
		}
		i++
	}
	return toks, nil
}

func containsDigit(toks []numToken) bool {
	for _, t := range toks {
		if t.kind == numDigit {
			return true
		}
	}
	return false
}

// format renders v through the template.
func (d *decimalFormat) format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	x := math.Abs(v)
	for range d.percents {
		x *= 100
	}
	for range d.scale {
		x /= 1000
	}

	var intStr, fracStr string
	exp := 0
	if d.expSign != 0 {
		intStr, fracStr, exp = d.scientific(x)
	} else {
		digits, point := decimalExpansion(x)
		intStr, fracStr = roundExpansion(digits, point, len(d.fracPH))
	}
	fracStr = trimFraction(fracStr, d.fracMin)
	zero := intStr == "" && strings.Trim(fracStr, "0") == ""

	intOut := d.fillInteger(intStr)
	var block string
	if d.grouping {
		block = groupThousands(strings.Join(intOut, ""))
	}

	var sb strings.Builder
	if v < 0 && !zero {
		sb.WriteByte('-')
	}
	ii, fi := 0, 0
	for _, t := range d.mantissa {
		switch t.kind {
		case numLiteral:
			sb.WriteString(t.lit)
		case numPercent:
			sb.WriteByte('%')
		case numPoint:
			if len(d.intPH) == 0 {
				sb.WriteString(intStr)
			}
			if !d.dropEmptyPoint || fracStr != "" {
				sb.WriteByte('.')
			}
		case numDigit:
			if t.frac {
				sb.WriteString(fracDigit(fracStr, fi, d.fracPH[fi]))
				fi++
				continue
			}
			if !d.grouping {
				sb.WriteString(intOut[ii])
			} else if ii == 0 {
				sb.WriteString(block)
			}
			ii++
		}
	}

	if d.expSign != 0 {
		sb.WriteByte('E')
		switch {
		case exp < 0:
			sb.WriteByte('-')
		case d.expSign == 'E':
			sb.WriteByte('+')
		}
		digits := strconv.Itoa(abs(exp))
		if pad := d.expMin - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		written := false
		for _, t := range d.exponent {
			switch t.kind {
			case numDigit:
				if !written {
					sb.WriteString(digits)
					written = true
				}
			case numLiteral:
				sb.WriteString(t.lit)
			case numPercent:
				sb.WriteByte('%')
			case numPoint:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// scientific splits x into a rounded mantissa and a power-of-ten exponent.
// With several integer placeholders including '#' the exponent is a
// multiple of the integer placeholder count (engineering notation).
func (d *decimalFormat) scientific(x float64) (intStr, fracStr string, exp int) {
	nInt := len(d.intPH)
	digits, point := decimalExpansion(x)
	if x == 0 {
		intStr, fracStr = roundExpansion(digits, point, len(d.fracPH))
		return intStr, fracStr, 0
	}

	e := point - 1
	step := 1
	if nInt > 1 && strings.IndexByte(string(d.intPH), '#') >= 0 {
		step = nInt
		exp = floorDiv(e, nInt) * nInt
	} else {
		exp = e - nInt + 1
	}
	for {
		intStr, fracStr = roundExpansion(digits, point-exp, len(d.fracPH))
		if len(intStr) <= nInt {
			return intStr, fracStr, exp
		}
		exp += step
	}
}

// fillInteger returns the rendered text of each integer placeholder.
// Digits beyond the placeholder count are prepended to the first one.
func (d *decimalFormat) fillInteger(intStr string) []string {
	out := make([]string, len(d.intPH))
	j := len(intStr) - 1
	for k := len(d.intPH) - 1; k >= 0; k-- {
		if j >= 0 {
			out[k] = intStr[j : j+1]
			j--
			continue
		}
		switch d.intPH[k] {
		case '0':
			out[k] = "0"
		case '?':
			out[k] = " "
		}
	}
	if j >= 0 && len(out) > 0 {
		out[0] = intStr[:j+1] + out[0]
	}
	return out
}

// fracDigit renders fraction placeholder k.
func fracDigit(fracStr string, k int, ph byte) string {
	if k < len(fracStr) {
		return fracStr[k : k+1]
	}
	if ph == '?' {
		return " "
	}
	return ""
}

// trimFraction removes trailing zeros beyond the first keep digits.
func trimFraction(frac string, keep int) string {
	n := len(frac)
	for n > keep && frac[n-1] == '0' {
		n--
	}
	return frac[:n]
}

// groupThousands inserts ',' every three digits into the digit run of s,
// leaving leading padding spaces in place.
func groupThousands(s string) string {
	lead := len(s) - len(strings.TrimLeft(s, " "))
	digits := s[lead:]
	if len(digits) <= 3 {
		return s
	}
	var sb strings.Builder
	sb.WriteString(s[:lead])
	first := len(digits) % 3
	if first == 0 {
		first = 3
	}
	sb.WriteString(digits[:first])
	for i := first; i < len(digits); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// decimalExpansion returns the 15 significant digits of x ≥ 0 and the
// position of the decimal point relative to the first digit.
func decimalExpansion(x float64) (string, int) {
	s := strconv.FormatFloat(x, 'e', 14, 64)
	e := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[e+1:])
	return s[:1] + s[2:e], exp + 1
}

// roundExpansion rounds the digit string with the decimal point at point
// to frac decimal places, half-up.  The integer part is returned without
// leading zeros ("" for zero) and the fraction part with exactly frac
// digits.
func roundExpansion(digits string, point, frac int) (string, string) {
	if point < 0 {
		digits = strings.Repeat("0", -point) + digits
		point = 0
	}
	if point > len(digits) {
		digits += strings.Repeat("0", point-len(digits))
	}
	keep := point + frac
	b := []byte(digits)
	switch {
	case keep < len(b):
		up := b[keep] >= '5'
		b = b[:keep]
		if up {
			i := keep - 1
			for ; i >= 0; i-- {
				if b[i] != '9' {
					b[i]++
					break
				}
				b[i] = '0'
			}
			if i < 0 {
				b = append([]byte{'1'}, b...)
				point++
			}
		}
	case keep > len(b):
		b = append(b, strings.Repeat("0", keep-len(b))...)
	}
	return strings.TrimLeft(string(b[:point]), "0"), string(b[point:])
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
