package healthscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHealthLabel_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
		tone  Tone
	}{
		{100, "Excellent", ToneSuccess},
		{90, "Excellent", ToneSuccess},
		{89, "Good", ToneInfo},
		{75, "Good", ToneInfo},
		{74, "Fair", ToneWarning},
		{60, "Fair", ToneWarning},
		{59, "Needs Attention", ToneDanger},
		{0, "Needs Attention", ToneDanger},
		{-10, "Needs Attention", ToneDanger},
		{150, "Excellent", ToneSuccess},
	}
	for _, tc := range tests {
		got := ResolveHealthLabel(tc.score)
		assert.Equal(t, tc.want, got.Text, "score %d", tc.score)
		assert.Equal(t, tc.tone, got.Tone, "score %d", tc.score)
	}
}
