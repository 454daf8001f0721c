package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-cellfmt/condition"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"0", []string{"0"}},
		{"0;(0)", []string{"0", "(0)"}},
		{`0;"a;b";\;x`, []string{"0", `"a;b"`, `\;x`}},
		{";;", []string{"", "", ""}},
		{`0"unterminated;`, []string{`0"unterminated;`}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, splitSections(tc.pattern), "pattern %q", tc.pattern)
	}
}

func TestParseSectionsCapsAtFour(t *testing.T) {
	secs := parseSections("0;1;2;@;extra")
	assert.Len(t, secs, maxSections)
	assert.Equal(t, "@", secs[3].text)
}

func TestExtractCondition(t *testing.T) {
	text, cond := extractCondition("[>=100]0.0")
	assert.Equal(t, "0.0", text)
	require.NotNil(t, cond)
	assert.Equal(t, condition.Rule{Op: condition.OpGreaterEqual, Operand: 100}, *cond)

	text, cond = extractCondition("[Red][<-2.5]0")
	assert.Equal(t, "[Red]0", text)
	require.NotNil(t, cond)
	assert.Equal(t, condition.Rule{Op: condition.OpLess, Operand: -2.5}, *cond)

	text, cond = extractCondition(`"[>1]"0`)
	assert.Equal(t, `"[>1]"0`, text)
	assert.Nil(t, cond)

	text, cond = extractCondition("[h]:mm")
	assert.Equal(t, "[h]:mm", text)
	assert.Nil(t, cond)

	text, cond = extractCondition("[>abc]0")
	assert.Equal(t, "[>abc]0", text)
	assert.Nil(t, cond)
}

func TestPickSection(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		v       float64
		wantIdx int
		wantV   float64
	}{
		{"single", "0.00", -3, 0, -3},
		{"single condition passes", "[>100]0", 150, 0, 150},
		{"single condition fails", "[>100]0", 5, sectionGeneral, 5},
		{"two positive", "0;(0)", 3, 0, 3},
		{"two zero", "0;(0)", 0, 0, 0},
		{"two negative gets abs", "0;(0)", -3, 1, 3},
		{"two conditional first", "[<1]0.0;0", -3, 0, -3},
		{"two conditional second", "[>100]0;[<0]0", -3, 1, -3},
		{"two conditional overflow", "[>100]0;[<0]0", 50, sectionOverflow, 50},
		{"three positive", "0;(0);-", 3, 0, 3},
		{"three negative", "0;(0);-", -3, 1, 3},
		{"three zero", "0;(0);-", 0, 2, 0},
		{"four ignores text", "0;(0);-;@", 0, 2, 0},
		{"three conditional", "[>100]0.0;[<=-100]0.00;0", -150, 1, -150},
		{"three conditional falls through", "[>100]0.0;[<=-100]0.00;0", 50, 2, 50},
		{"three conditional falls through negative", "[>100]0.0;[<=-100]0.00;0", -50, 2, -50},
		{"empty", "", 1, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx, v := pickSection(parseSections(tc.pattern), tc.v)
			assert.Equal(t, tc.wantIdx, idx)
			assert.Equal(t, tc.wantV, v)
		})
	}
}

func TestTextSectionIndex(t *testing.T) {
	assert.Equal(t, 3, textSectionIndex(parseSections(`0;-0;0;"Text: "@`)))
	assert.Equal(t, 0, textSectionIndex(parseSections(`"Name: "@`)))
	assert.Equal(t, -1, textSectionIndex(parseSections(`"@"0`)))
	assert.Equal(t, -1, textSectionIndex(parseSections("0;-0")))
}
