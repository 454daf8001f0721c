package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalFormat(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		v    float64
		want string
	}{
		{"fixed", "0.00", 303.6, "303.60"},
		{"half up", "0.00", 2.675, "2.68"},
		{"half up integer", "0", 2.5, "3"},
		{"negative", "0.00", -1.234, "-1.23"},
		{"negative rounds to zero", "0.00", -0.001, "0.00"},
		{"optional decimals", "0.##", 1.5, "1.5"},
		{"point always shown", "0.##", 2, "2."},
		{"padding decimals", "0.0??", 1.5, "1.5  "},
		{"padding integer", "???0", 12, "  12"},
		{"hash zero", "#", 0, ""},
		{"hash fraction zero", "#.##", 0, "."},
		{"hash point zero", "#.0", 0, ".0"},
		{"zero point zero", "0.0", 0, "0.0"},
		{"hash leading", "#.00", 0.5, ".50"},
		{"overflowing integer", "00", 12345, "12345"},
		{"min integer digits", "0000", 42, "0042"},
		{"grouping", "#,##0", 1234567, "1,234,567"},
		{"grouping small", "#,##0", 999, "999"},
		{"grouping zero", "#,##0", 0, "0"},
		{"grouping decimals", "#,##0.00", -1234.5, "-1,234.50"},
		{"scale thousands", "#,##0,", 1234567, "1,235"},
		{"scale millions", "0.0,,", 1234567, "1.2"},
		{"percent", "0%", 0.75, "75%"},
		{"percent decimals", "0.00%", 0.1234, "12.34%"},
		{"literal", "$#,##0.00", 1234.5, "$1,234.50"},
		{"quoted literal", "0' kg'", 18000, "18000 kg"},
		{"quote escape", "0''", 5, "5'"},
		{"ssn", "000-00-0000", 123456789, "123-45-6789"},
		{"scientific", "0.00E00", 12345, "1.23E+04"},
		{"scientific small", "0.00E00", 0.00012345, "1.23E-04"},
		{"scientific zero", "0.00E00", 0, "0.00E+00"},
		{"scientific negative", "0.00E00", -12345, "-1.23E+04"},
		{"scientific lower e", "0.0e0", 12345, "1.2E4"},
		{"scientific lower e negative exponent", "0.0e0", 0.012, "1.2E-2"},
		{"scientific rounding carries", "0.00E00", 9.999, "1.00E+01"},
		{"engineering", "##0.0E0", 12345, "12.3E+3"},
		{"engineering small", "##0.0E0", 0.0012345, "1.2E-3"},
		{"engineering exact", "##0.0E0", 1000, "1.0E+3"},
		{"huge", "0", 1e20, "100000000000000000000"},
		{"nan", "0.00", math.NaN(), "NaN"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := compileDecimal(tc.tmpl)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.format(tc.v))
		})
	}
}

func TestCompileDecimalErrors(t *testing.T) {
	for _, tmpl := range []string{"abc", "'unterminated", "0E", "0E0E0", ""} {
		_, err := compileDecimal(tmpl)
		assert.ErrorIs(t, err, ErrMalformedTemplate, "template %q", tmpl)
	}
}

func TestRoundExpansion(t *testing.T) {
	tests := []struct {
		digits          string
		point, frac     int
		wantInt, wantFr string
	}{
		{"123450000000000", 3, 1, "123", "5"},
		{"999500000000000", 3, 0, "1000", ""},
		{"500000000000000", 0, 0, "1", ""},
		{"400000000000000", 0, 0, "", ""},
		{"123000000000000", -2, 4, "", "0012"},
	}
	for _, tc := range tests {
		i, f := roundExpansion(tc.digits, tc.point, tc.frac)
		assert.Equal(t, tc.wantInt, i, "%v", tc)
		assert.Equal(t, tc.wantFr, f, "%v", tc)
	}
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1,234", groupThousands("1234"))
	assert.Equal(t, "123,456", groupThousands("123456"))
	assert.Equal(t, "  1,234", groupThousands("  1234"))
	assert.Equal(t, "12", groupThousands("12"))
}
