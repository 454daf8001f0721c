package numfmt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// defaultExactDenominator replaces an explicit denominator of 0.
	defaultExactDenominator = 100
	// maxDenominatorDigits caps a placeholder-run denominator at 10^4.
	maxDenominatorDigits = 4

	fractionEpsilon    = 1e-12
	fractionIterations = 100
)

// FractionResult is a numerator/denominator pair.
type FractionResult struct {
	Numerator   int
	Denominator int
}

// fractionPattern picks the whole, numerator and denominator groups out of
// a fraction pattern reduced to placeholders, digits, spaces and '/'.
var fractionPattern = regexp.MustCompile(`(?:([#\d]+)\s+)?([#\d]+)\s*/\s*([#\d]+)`)

// fractionFormat is a compiled fraction section.
type fractionFormat struct {
	whole string // whole-part template; empty for improper fractions
	denom string // denominator spec
}

// compileFraction extracts the whole-part template and denominator spec
// from a normalized fraction section.  '?' counts as '#'; quoted text,
// escapes and other literals are ignored.
func compileFraction(p string) (fractionFormat, error) {
	var sb strings.Builder
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '"':
			end := strings.IndexByte(p[i+1:], '"')
			if end < 0 {
				i = len(p)
				continue
			}
			i += end + 1
		case c == '\\' || c == '_' || c == '*':
			i++
		case c == '?':
			sb.WriteByte('#')
		case c == '#' || c == '/' || c == ' ' || isDigit(c):
			sb.WriteByte(c)
		}
	}
	m := fractionPattern.FindStringSubmatch(sb.String())
	if m == nil {
		return fractionFormat{}, fmt.Errorf("%w: no fraction in %q", ErrMalformedTemplate, p)
	}
	return fractionFormat{whole: m[1], denom: m[3]}, nil
}

// format renders v, falling back to the plain decimal spelling when the
// approximation overflows.
func (ff fractionFormat) format(v float64) string {
	s, err := RenderFraction(v, ff.whole, ff.denom)
	if err != nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return s
}

// RenderFraction renders value as a fraction.
//
// denominatorSpec is either an explicit integer (the exact denominator; 0
// means 100) or a run of placeholders whose length n caps the denominator
// below 10^n, with n at most 4.  An empty wholePartTemplate folds the
// integer part into the numerator.  The result is "{sign}{whole}
// {num}/{den}" with the whole part omitted when zero; a numerator of zero
// yields the integer part alone.
func RenderFraction(value float64, wholePartTemplate, denominatorSpec string) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: cannot approximate %v", ErrFractionOverflow, value)
	}
	exact, maxDenom := parseDenominator(denominatorSpec)

	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := math.Abs(value)
	whole := math.Floor(abs)
	frac := abs - whole
	if abs == 0 {
		return "0", nil
	}

	limit := float64(max(exact, maxDenom))
	if frac*limit < 0.5 {
		return sign + formatWhole(whole), nil
	}

	r, err := Fraction(frac, exact, maxDenom)
	if err != nil {
		return "", err
	}
	switch {
	case r.Numerator == 0:
		return sign + formatWhole(whole), nil
	case r.Numerator == r.Denominator:
		return sign + formatWhole(whole+1), nil
	}

	if wholePartTemplate == "" {
		num := whole*float64(r.Denominator) + float64(r.Numerator)
		if num > math.MaxInt32 {
			return "", fmt.Errorf("%w: numerator %v", ErrFractionOverflow, num)
		}
		return fmt.Sprintf("%s%d/%d", sign, int64(num), r.Denominator), nil
	}
	if whole == 0 {
		return fmt.Sprintf("%s%d/%d", sign, r.Numerator, r.Denominator), nil
	}
	return fmt.Sprintf("%s%s %d/%d", sign, formatWhole(whole), r.Numerator, r.Denominator), nil
}

// parseDenominator interprets a denominator spec.  Exactly one of the
// results is non-zero.
func parseDenominator(spec string) (exact, maxDenom int) {
	if n, err := strconv.Atoi(spec); err == nil && strings.Trim(spec, "0123456789") == "" {
		if n == 0 {
			n = defaultExactDenominator
		}
		return n, 0
	}
	digits := min(max(len(spec), 1), maxDenominatorDigits)
	maxDenom = 1
	for range digits {
		maxDenom *= 10
	}
	return 0, maxDenom
}

// Fraction approximates frac (0 ≤ frac < 1).  A non-zero exactDenom
// rounds to that denominator without reduction; otherwise a continued
// fraction finds the closest ratio with a denominator below maxDenom.
func Fraction(frac float64, exactDenom, maxDenom int) (FractionResult, error) {
	if exactDenom > 0 {
		return FractionResult{
			Numerator:   int(math.Floor(frac*float64(exactDenom) + 0.5)),
			Denominator: exactDenom,
		}, nil
	}
	return continuedFraction(frac, maxDenom)
}

// continuedFraction expands value into convergents p/q until one lies
// within fractionEpsilon of value or the next denominator reaches
// maxDenom.
func continuedFraction(value float64, maxDenom int) (FractionResult, error) {
	const overflow = math.MaxInt32

	a0 := math.Floor(value)
	if a0 > overflow {
		return FractionResult{}, fmt.Errorf("%w: %v", ErrFractionOverflow, value)
	}
	if math.Abs(a0-value) < fractionEpsilon {
		return FractionResult{Numerator: int(a0), Denominator: 1}, nil
	}

	p0, q0 := 1.0, 0.0
	p1, q1 := a0, 1.0
	r0 := value
	for n := 1; n <= fractionIterations; n++ {
		r1 := 1 / (r0 - a0)
		a1 := math.Floor(r1)
		p2 := a1*p1 + p0
		q2 := a1*q1 + q0
		if q2 >= float64(maxDenom) && q1 < float64(maxDenom) {
			return FractionResult{Numerator: int(p1), Denominator: int(q1)}, nil
		}
		if p2 > overflow || q2 > overflow {
			return FractionResult{}, fmt.Errorf("%w: %v", ErrFractionOverflow, value)
		}
		if math.Abs(p2/q2-value) <= fractionEpsilon {
			return FractionResult{Numerator: int(p2), Denominator: int(q2)}, nil
		}
		p0, p1 = p1, p2
		q0, q1 = q1, q2
		a0, r0 = a1, r1
	}
	return FractionResult{}, fmt.Errorf("%w: no convergence for %v", ErrFractionOverflow, value)
}

func formatWhole(w float64) string {
	return strconv.FormatFloat(w, 'f', 0, 64)
}
