package healthscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMagnitudeUnit(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		unit  string
		ok    bool
	}{
		{"12.5 kg", 12.5, "kg", true},
		{"3 yrs", 3, "yrs", true},
		{"8 mos", 8, "mos", true},
		{"4,2kg", 4.2, "kg", true},
		{"  7  ", 7, "", true},
		{"approx 30 LBS", 30, "lbs", true},
		{"-1 yrs", -1, "yrs", true},
		{"-0,5 kg", -0.5, "kg", true},
		{"", 0, "", false},
		{"unknown", 0, "", false},
	}
	for _, tc := range tests {
		m, ok := ParseMagnitudeUnit(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.value, m.Value, 1e-9, "input %q", tc.in)
			assert.Equal(t, tc.unit, m.Unit, "input %q", tc.in)
		}
	}
}

func TestMentionsHeuristics(t *testing.T) {
	assert.True(t, MentionsWeight("Body WEIGHT 12kg"))
	assert.False(t, MentionsWeight("temperature"))
	assert.True(t, MentionsVisit("Vet Visit"))
	assert.False(t, MentionsVisit("Grooming"))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2025-06-01", "2025-06-01T10:00:00Z", "2025-06-01 10:00:00", "2025-06-01T10:00:00"} {
		_, ok := ParseDate(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"", "garbage", "2025-13-45", "01/06/2025"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, s)
	}
}
