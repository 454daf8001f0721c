package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateDate(t *testing.T) {
	h := string(ElapsedH.Placeholder())
	ss := string(ElapsedSS.Placeholder())
	tests := []struct {
		pattern string
		want    string
	}{
		{"m/d/yy", "M/d/yy"},
		{"mm/dd/yyyy", "MM/dd/yyyy"},
		{"MM-DD-YY", "MM-dd-yy"},
		{"d-mmm-yy", "d-MMM-yy"},
		{"mmmm d, yyyy", "MMMM d, yyyy"},
		{"mmmmm", "MMMMM"},
		{"mmmmmmm", "MMMMM"},
		{"dddd, mmmm d, yyyy", "EEEE, MMMM d, yyyy"},
		{"ddd", "EEE"},
		{"y", "yy"},
		{"yyy", "yyyy"},
		{"h:mm:ss", "H:mm:ss"},
		{"hh:mm", "HH:mm"},
		{"h:mm AM/PM", "h:mm a"},
		{"h:mm:ss am/pm", "h:mm:ss a"},
		{"h A/P", "h A"},
		{"mm:ss", "mm:ss"},
		{"mm:ss.0", "mm:ss.S"},
		{"h:mm:ss.000", "H:mm:ss.SSS"},
		{"ss.00000", "ss.SSS"},
		{"[h]:mm", h + ":mm"},
		{"[ss].00", ss + ".SS"},
		{"[h]:mm:ss.0", h + ":mm:ss.S"},
		{"[ss].", ss + "."},
		{`d "of" mmmm`, "d' of 'MMMM"},
		{`yyyy"年"m"月"`, "yyyy年M月"},
		{`dd\/mm`, "dd/MM"},
		{"[$-409]m/d", "M/d"},
	}
	for _, tc := range tests {
		tmpl, err := TranslateDate(tc.pattern)
		require.NoError(t, err, "pattern %q", tc.pattern)
		assert.Equal(t, tc.want, tmpl.String(), "pattern %q", tc.pattern)
	}
}

func TestTranslateDateMinuteAdjacency(t *testing.T) {
	// m after an hour is a minute; m before seconds is a minute; otherwise a month.
	tmpl, err := TranslateDate("h m")
	require.NoError(t, err)
	assert.Equal(t, "H m", tmpl.String())

	tmpl, err = TranslateDate("m s")
	require.NoError(t, err)
	assert.Equal(t, "m s", tmpl.String())

	tmpl, err = TranslateDate("yyyy m")
	require.NoError(t, err)
	assert.Equal(t, "yyyy M", tmpl.String())

	tmpl, err = TranslateDate("[h] mm")
	require.NoError(t, err)
	assert.Equal(t, string(ElapsedH.Placeholder())+" mm", tmpl.String())

	tmpl, err = TranslateDate("mm [ss]")
	require.NoError(t, err)
	assert.Equal(t, "mm "+string(ElapsedSS.Placeholder()), tmpl.String())
}

func TestTranslateDateElapsedSet(t *testing.T) {
	tmpl, err := TranslateDate("[h]:[mm]:[ss]")
	require.NoError(t, err)
	assert.True(t, tmpl.Elapsed.Has(ElapsedH))
	assert.True(t, tmpl.Elapsed.Has(ElapsedMM))
	assert.True(t, tmpl.Elapsed.Has(ElapsedSS))
	assert.False(t, tmpl.Elapsed.Has(ElapsedHH))
}

func TestTranslateDateRejectsLiteralOnly(t *testing.T) {
	for _, p := range []string{"0.00", `"text"`, ""} {
		_, err := TranslateDate(p)
		assert.ErrorIs(t, err, ErrMalformedTemplate, "pattern %q", p)
	}
}
