package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// maxSerial is one above the last valid 1900-system serial
	// (2,958,465 = 9999-12-31).
	maxSerial = 2_958_466
	// offset1904 is the number of days between the 1900 and 1904 epochs.
	offset1904 = 1462
	// roundEpsilon absorbs floating-point drift in the fractional day.
	roundEpsilon = 1e-9
)

// SerialToTime converts a spreadsheet date serial to a [time.Time] in UTC.
//
// In the 1900 system serial 0 is midnight on 1900-01-01 and serial 60 is
// the phantom 1900-02-29 that Lotus 1-2-3 invented: serials 1–60 count from
// 1899-12-31 and serials ≥ 61 are shifted back one day, so serial 60 yields
// 1900-03-01.  In the 1904 system serial 0 is 1904-01-01 with no
// correction.
//
// The time of day is rounded to fracDigits decimal places of a second
// (0–3); rounding into midnight rolls over to the next day.  NaN, ±Inf,
// negative serials and serials past 9999-12-31 fail with ErrInvalidSerial.
func SerialToTime(serial float64, date1904 bool, fracDigits int) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("%w: invalid value %v", ErrInvalidSerial, serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("%w: negative serial %v not supported", ErrInvalidSerial, serial)
	}
	limit := maxSerial
	if date1904 {
		limit -= offset1904
	}
	if serial > float64(limit) {
		return time.Time{}, fmt.Errorf("%w: serial %v exceeds maximum supported value %d", ErrInvalidSerial, serial, limit)
	}

	frac, rollover := serialToFrac(serial, fracDigits)
	days := int(serial) + rollover

	if date1904 {
		return time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days).Add(frac), nil
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	switch {
	case days == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(frac), nil
	case days >= 61:
		return base.AddDate(0, 0, days-1).Add(frac), nil
	}
	return base.AddDate(0, 0, days).Add(frac), nil
}

// serialToFrac converts the fractional-day part of a serial to a duration
// within the day, rounded to fracDigits decimal places of a second, plus a
// day-rollover count (0 or 1).
//
// roundEpsilon is added to the fractional day, the result is converted to
// nanoseconds and rounded to the nearest unit (strictly more than half a
// unit rounds up).  A result of exactly 24h rolls over to the next day.
func serialToFrac(serial float64, fracDigits int) (time.Duration, int) {
	fracDigits = min(max(fracDigits, 0), maxFracDigits)
	unit := time.Second
	for range fracDigits {
		unit /= 10
	}

	fracDay := (serial - math.Trunc(serial)) + roundEpsilon
	const nanosInADay = float64(24 * time.Hour)
	d := time.Duration(fracDay * nanosInADay)
	n := d / unit
	if d%unit > unit/2 {
		n++
	}
	if n < 0 {
		n = 0
	}
	perDay := 24 * time.Hour / unit
	return (n % perDay) * unit, int(n / perDay)
}

// Render converts serial to a time and renders it through the template.
// Elapsed placeholders are replaced with the totals for serial.  Invalid
// serials fail with ErrInvalidSerial.
func (t DateTemplate) Render(serial float64, date1904 bool) (string, error) {
	tm, err := SerialToTime(serial, date1904, t.fracDigits)
	if err != nil {
		return "", err
	}
	return replaceElapsed(t.format(tm), t.Elapsed, serial, t.fracDigits), nil
}

// format renders tm through the template, leaving elapsed placeholders in
// place.
func (t DateTemplate) format(tm time.Time) string {
	var sb strings.Builder
	for _, tok := range t.tokens {
		switch tok.kind {
		case dateLiteral, dateElapsed:
			sb.WriteString(tok.lit)
		case dateYear:
			if tok.width == 2 {
				writePadded(&sb, tm.Year()%100, 2)
			} else {
				writePadded(&sb, tm.Year(), 4)
			}
		case dateMonth:
			name := tm.Month().String()
			switch tok.width {
			case 1, 2:
				writePadded(&sb, int(tm.Month()), tok.width)
			case 3:
				sb.WriteString(name[:3])
			case 4:
				sb.WriteString(name)
			default:
				sb.WriteString(name[:1])
			}
		case dateDay:
			writePadded(&sb, tm.Day(), tok.width)
		case dateWeekday:
			name := tm.Weekday().String()
			if tok.width == 3 {
				name = name[:3]
			}
			sb.WriteString(name)
		case dateHour:
			h := tm.Hour()
			if t.hour12 {
				h %= 12
				if h == 0 {
					h = 12
				}
			}
			writePadded(&sb, h, tok.width)
		case dateMinute:
			writePadded(&sb, tm.Minute(), tok.width)
		case dateSecond:
			writePadded(&sb, tm.Second(), tok.width)
		case dateFraction:
			div := 1
			for range 9 - tok.width {
				div *= 10
			}
			writePadded(&sb, tm.Nanosecond()/div, tok.width)
		case dateAMPM:
			if tm.Hour() < 12 {
				sb.WriteString(tok.lit)
			} else {
				sb.WriteString(tok.alt)
			}
		}
	}
	return sb.String()
}

// writePadded writes n in decimal, left-padded with zeros to width digits.
func writePadded(sb *strings.Builder, n, width int) {
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		sb.WriteByte('0')
	}
	sb.WriteString(s)
}
