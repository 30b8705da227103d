package medications

import "time"

type Medication struct {
	ID    string
	PetID string

	Name      string
	Dosage    string // "5 mg"
	Frequency string // "cada 12 h"

	StartDate time.Time
	// EndDate nil = tratamiento sin fecha de fin.
	EndDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive: sin fecha de fin, o con fecha de fin posterior a now.
func (m Medication) IsActive(now time.Time) bool {
	return m.EndDate == nil || m.EndDate.After(now)
}
