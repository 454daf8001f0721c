package dateformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBuiltInDateID(t *testing.T) {
	for id := 0; id < 164; id++ {
		want := (id >= 14 && id <= 22) || id == 45 || id == 46 || id == 47
		assert.Equal(t, want, IsBuiltInDateID(id), "id %d", id)
	}
}

func TestIsElapsedToken(t *testing.T) {
	for _, s := range []string{"h", "H", "hh", "hH", "m", "mm", "s", "SS"} {
		assert.True(t, IsElapsedToken(s), s)
	}
	for _, s := range []string{"", "hm", "hhh", "Red", "$-409", "d", ">5"} {
		assert.False(t, IsElapsedToken(s), s)
	}
}

func TestIsDatePattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"m/d/yy", true},
		{"yyyy-mm-dd hh:mm:ss", true},
		{"d-mmm-yy", true},
		{"h:mm AM/PM", true},
		{"h:mm a/p", true},
		{"[h]:mm:ss", true},
		{"[mm]:ss", true},
		{"mm:ss.0", true},
		{"ss.000", true},
		{`yyyy"年"m"月"d"日"`, true},
		{`dd\/mm\/yyyy`, true},
		{"DDDD, MMMM D, YYYY", true},
		{"0.00", false},
		{"#,##0", false},
		{"m.0", false},
		{"0", false},
		{"-/:", false},
		{"[Red]d", false},
		{"[>1]d", false},
		{"General", false},
		{`"unterminated`, false},
		{"d E", false},
	}
	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDatePattern(tc.pattern))
		})
	}
}
