package healthscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStatusMismatch_Asymmetric(t *testing.T) {
	assert.True(t, DetectStatusMismatch(StatusHealthy, StatusCheckup))
	assert.False(t, DetectStatusMismatch(StatusCheckup, StatusHealthy))
	assert.False(t, DetectStatusMismatch(StatusHealthy, StatusHealthy))
	assert.False(t, DetectStatusMismatch(StatusCheckup, StatusCheckup))
	assert.False(t, DetectStatusMismatch("", StatusCheckup))
}

func TestSuggestStatus(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		vaccines []Vaccine
		want     PetStatus
	}{
		{"high score clean vaccines", 95, []Vaccine{{Status: VaccineValid}}, StatusHealthy},
		{"threshold is healthy", CheckupBelow, nil, StatusHealthy},
		{"below threshold", CheckupBelow - 1, nil, StatusCheckup},
		{"overdue vaccine overrides score", 100, []Vaccine{{Status: VaccineValid}, {Status: VaccineOverdue}}, StatusCheckup},
		{"expiring soon is not overdue", 80, []Vaccine{{Status: VaccineExpiringSoon}}, StatusHealthy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SuggestStatus(tc.score, tc.vaccines))
		})
	}
}

func TestSuggestStatus_FeedsMismatch(t *testing.T) {
	pet := Profile{Name: "Milo", Status: StatusHealthy}
	score := ComputeHealthScore(pet, nil, nil, nil, fixedNow)
	suggested := SuggestStatus(score, nil)

	assert.Equal(t, StatusCheckup, suggested)
	assert.True(t, DetectStatusMismatch(pet.Status, suggested))
}
