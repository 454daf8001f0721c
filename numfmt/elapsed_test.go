package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElapsedTokenFor(t *testing.T) {
	tests := map[string]ElapsedToken{
		"h": ElapsedH, "HH": ElapsedHH,
		"m": ElapsedM, "mm": ElapsedMM,
		"S": ElapsedS, "ss": ElapsedSS,
	}
	for content, want := range tests {
		assert.Equal(t, want, elapsedTokenFor(content), "content %q", content)
	}
	assert.Equal(t, "[mm]", ElapsedMM.String())
}

func TestPostProcessElapsed(t *testing.T) {
	var set ElapsedSet
	set.add(ElapsedH)
	assert.Equal(t, "36:00", PostProcessElapsed(string(ElapsedH.Placeholder())+":00", set, 1.5))

	set = 0
	set.add(ElapsedHH)
	assert.Equal(t, "02", PostProcessElapsed(string(ElapsedHH.Placeholder()), set, 0.1))

	set = 0
	set.add(ElapsedM)
	set.add(ElapsedSS)
	got := PostProcessElapsed(string(ElapsedM.Placeholder())+"|"+string(ElapsedSS.Placeholder()), set, 1.5/24)
	assert.Equal(t, "90|5400", got)

	// Sign is ignored.
	set = 0
	set.add(ElapsedH)
	assert.Equal(t, "12", PostProcessElapsed(string(ElapsedH.Placeholder()), set, -0.5))
}

func TestPostProcessElapsedRounding(t *testing.T) {
	var set ElapsedSet
	set.add(ElapsedM)
	// 59.6 seconds rounds to a full minute before truncation.
	assert.Equal(t, "1", PostProcessElapsed(string(ElapsedM.Placeholder()), set, 59.6/86400))
	// 89 seconds truncates to one minute.
	assert.Equal(t, "1", PostProcessElapsed(string(ElapsedM.Placeholder()), set, 89.0/86400))
}

func TestReplaceElapsedFractionalSeconds(t *testing.T) {
	var set ElapsedSet
	set.add(ElapsedS)
	s := string(ElapsedS.Placeholder())
	// Shown tenths keep 59.6 seconds below a whole minute.
	assert.Equal(t, "59", replaceElapsed(s, set, 59.6/86400, 1))
	assert.Equal(t, "60", replaceElapsed(s, set, 59.6/86400, 0))
	assert.Equal(t, "60", replaceElapsed(s, set, 59.96/86400, 1))
	assert.Equal(t, "59", replaceElapsed(s, set, 59.96/86400, 2))
}

func TestElapsedSeconds(t *testing.T) {
	assert.Equal(t, int64(129600), elapsedSeconds(1.5, 0))
	assert.Equal(t, int64(193365), elapsedSeconds(2.23802615740741, 2))
	assert.Equal(t, int64(0), elapsedSeconds(math.NaN(), 0))
	assert.Equal(t, int64(maxSerial)*86400, elapsedSeconds(1e300, 0))
}

func TestPostProcessElapsedNoTokens(t *testing.T) {
	assert.Equal(t, "12:00", PostProcessElapsed("12:00", 0, 3))
}
