package numfmt

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ElapsedToken identifies one of the bracketed elapsed-time tokens.
type ElapsedToken uint8

// Elapsed tokens: [h], [hh], [m], [mm], [s], [ss].
const (
	ElapsedH ElapsedToken = iota
	ElapsedHH
	ElapsedM
	ElapsedMM
	ElapsedS
	ElapsedSS
)

// elapsedBase is the first private-use rune; token t is rendered by the
// date template as elapsedBase+t and replaced afterwards.
const elapsedBase = '\uE000'

// Placeholder returns the rune that stands in for t in a rendered date
// template.
func (t ElapsedToken) Placeholder() rune { return elapsedBase + rune(t) }

func (t ElapsedToken) String() string {
	switch t {
	case ElapsedH:
		return "[h]"
	case ElapsedHH:
		return "[hh]"
	case ElapsedM:
		return "[m]"
	case ElapsedMM:
		return "[mm]"
	case ElapsedS:
		return "[s]"
	case ElapsedSS:
		return "[ss]"
	}
	return "[?]"
}

// elapsedTokenFor maps bracket content (h, HH, mm, …) to its token.
func elapsedTokenFor(content string) ElapsedToken {
	var t ElapsedToken
	switch content[0] | 0x20 {
	case 'h':
		t = ElapsedH
	case 'm':
		t = ElapsedM
	default:
		t = ElapsedS
	}
	if len(content) == 2 {
		t++
	}
	return t
}

// ElapsedSet is a set of elapsed tokens.
type ElapsedSet uint8

// Has reports whether t is in the set.
func (s ElapsedSet) Has(t ElapsedToken) bool { return s&(1<<t) != 0 }

func (s *ElapsedSet) add(t ElapsedToken) { *s |= 1 << t }

// PostProcessElapsed replaces elapsed placeholders in rendered with the
// total hours, minutes or seconds represented by value (a duration in
// days, sign ignored).  The value is rounded half-up to whole seconds
// first, and each total is truncated from there.  [h], [m] and [s] are
// unpadded; [hh], [mm] and [ss] are padded to two digits.
func PostProcessElapsed(rendered string, tokens ElapsedSet, value float64) string {
	return replaceElapsed(rendered, tokens, value, 0)
}

// replaceElapsed is PostProcessElapsed with value rounded to fracDigits
// decimal places of a second, the precision the clock fields of the
// same template are rendered at.  Whole units are truncated from there,
// so a shown fraction of a second never carries into [s], [m] or [h].
func replaceElapsed(rendered string, tokens ElapsedSet, value float64, fracDigits int) string {
	if tokens == 0 {
		return rendered
	}

	seconds := elapsedSeconds(value, fracDigits)
	totals := [...]int64{seconds / 3600, seconds / 60, seconds}

	var pairs []string
	for t := ElapsedH; t <= ElapsedSS; t++ {
		if !tokens.Has(t) {
			continue
		}
		n := strconv.FormatInt(totals[t/2], 10)
		if t%2 == 1 && len(n) < 2 {
			n = "0" + n
		}
		pairs = append(pairs, string(t.Placeholder()), n)
	}
	return strings.NewReplacer(pairs...).Replace(rendered)
}

// elapsedSeconds returns the whole seconds in value days, rounded the way
// serialToFrac rounds the time of day.
func elapsedSeconds(value float64, fracDigits int) int64 {
	x := math.Abs(value)
	switch {
	case math.IsNaN(x):
		return 0
	case x > maxSerial:
		x = maxSerial
	}
	frac, rollover := serialToFrac(x, fracDigits)
	return (int64(x)+int64(rollover))*86400 + int64(frac/time.Second)
}
