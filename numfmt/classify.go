package numfmt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/nfp"

	"github.com/TsubasaBE/go-cellfmt/internal/dateformat"
)

// Classify decides which render template a single format section compiles
// to.  Built-in date indices are dates whatever the pattern says; an empty
// or "General" pattern is General, "@" is text.  Anything else is
// normalized, stripped of its condition and inspected for date material,
// a fraction construct, or digit placeholders, in that order.
//
// A pattern that matches none of them fails with ErrUnrecognizedFormat;
// the returned category is then CategoryGeneralNumber.
func Classify(formatIndex int, rawPattern string) (Category, error) {
	if dateformat.IsBuiltInDateID(formatIndex) {
		return CategoryDate, nil
	}

	trimmed := strings.TrimSpace(rawPattern)
	switch {
	case trimmed == "", strings.EqualFold(trimmed, "General"):
		return CategoryGeneralNumber, nil
	case trimmed == "@":
		return CategoryGeneralText, nil
	}

	p, _ := extractCondition(Normalize(rawPattern))
	switch t := strings.TrimSpace(p); {
	case strings.EqualFold(t, "General"):
		return CategoryGeneralNumber, nil
	case t == "@":
		return CategoryGeneralText, nil
	}

	switch {
	case indexGeneral(p) >= 0:
		return CategoryGeneralNumber, nil
	case dateformat.IsDatePattern(p):
		return CategoryDate, nil
	case hasFraction(p):
		return CategoryFraction, nil
	case hasToken(p, nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder):
		return CategoryNumber, nil
	}
	return CategoryGeneralNumber, fmt.Errorf("%w %q", ErrUnrecognizedFormat, rawPattern)
}

// hasToken reports whether the tokenized pattern contains a token of one
// of the given types.
func hasToken(p string, types ...string) bool {
	ps := nfp.NumberFormatParser()
	for _, sec := range ps.Parse(p) {
		for _, tok := range sec.Items {
			if slices.Contains(types, tok.TType) {
				return true
			}
		}
	}
	return false
}

// hasFraction reports whether p contains a '/' outside quotes and escapes
// that is preceded by a digit placeholder and followed by a placeholder or
// a digit, ignoring spaces around the slash.
func hasFraction(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '"':
			end := strings.IndexByte(p[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '\\':
			i++
		case '/':
			before := strings.TrimRight(p[:i], " ")
			after := strings.TrimLeft(p[i+1:], " ")
			if before == "" || after == "" {
				continue
			}
			if isPlaceholder(before[len(before)-1]) && (isPlaceholder(after[0]) || isDigit(after[0])) {
				return true
			}
		}
	}
	return false
}

func isPlaceholder(c byte) bool { return c == '0' || c == '#' || c == '?' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsDateFormat reports whether the first section of a format classifies as
// a date or time.
func IsDateFormat(formatIndex int, rawPattern string) bool {
	secs := parseSections(Normalize(rawPattern))
	cat, err := Classify(formatIndex, secs[0].text)
	return err == nil && cat == CategoryDate
}
