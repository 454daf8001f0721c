package numfmt

import (
	"math"
	"strconv"
)

// General and fallback templates.
var (
	generalDecimal    = internalTemplate("0.##########")
	generalScientific = internalTemplate("0.#####E+00")
	fallbackWhole     = internalTemplate("#")
	fallbackDecimal   = internalTemplate("#.##########")
)

func internalTemplate(tmpl string) *decimalFormat {
	d := mustCompileDecimal(tmpl)
	d.dropEmptyPoint = true
	return d
}

// renderGeneral renders v the way the General format does: integers up to
// 1e11 in full, other values with up to ten decimals, and very large or
// very small magnitudes in scientific notation.
func renderGeneral(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	a := math.Abs(v)
	switch {
	case a >= 1e11 || (a != 0 && a < 1e-9):
		return generalScientific.format(v)
	case v == math.Trunc(v):
		return strconv.FormatInt(int64(v), 10)
	}
	return generalDecimal.format(v)
}

// renderFallback renders v with the default numeric templates used when a
// pattern cannot be translated.
func renderFallback(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) {
		return fallbackWhole.format(v)
	}
	return fallbackDecimal.format(v)
}
