package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderGeneral(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{3.14, "3.14"},
		{-3.5, "-3.5"},
		{0.1 + 0.2, "0.3"},
		{1.0 / 3, "0.3333333333"},
		{2.0 / 3, "0.6666666667"},
		{99999999999, "99999999999"},
		{1e11, "1E+11"},
		{123456789012, "1.23457E+11"},
		{1e-10, "1E-10"},
		{-2.5e-12, "-2.5E-12"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, renderGeneral(tc.v), "renderGeneral(%v)", tc.v)
	}
}

func TestRenderFallback(t *testing.T) {
	assert.Equal(t, "42", renderFallback(42))
	assert.Equal(t, "-1", renderFallback(-1))
	assert.Equal(t, "0", renderFallback(0))
	assert.Equal(t, ".5", renderFallback(0.5))
	assert.Equal(t, "-1.25", renderFallback(-1.25))
	assert.Equal(t, "3000000", renderFallback(3e6))
}

func TestRenderText(t *testing.T) {
	assert.Equal(t, "Text: abc", renderText(`"Text: "@`, "abc"))
	assert.Equal(t, "abc!", renderText(`@"!"`, "abc"))
	assert.Equal(t, "abc", renderText(`_(@_)`, "abc"))
	assert.Equal(t, "", renderText("", "abc"))
}

func TestLiteralText(t *testing.T) {
	assert.Equal(t, "-", literalText(`_(* "-"_)`))
	assert.Equal(t, "$-", literalText(`_("$"* "-"_)`))
	assert.Equal(t, "a;b", literalText(`"a;b"`))
	assert.Equal(t, "x", literalText(`[Red]\x`))
	assert.Equal(t, "n/a", literalText("n/a"))
}

func TestGeneralSection(t *testing.T) {
	assert.Equal(t, "(5)", generalSection("(General)")(5))
	assert.Equal(t, "5 units", generalSection(`General" units"`)(5))
	assert.Equal(t, "1.5", generalSection("0.00")(1.5))
}
