package insights

import (
	"time"

	"pet-health/internal/domain/activities"
	"pet-health/internal/domain/healthscore"
	"pet-health/internal/domain/medications"
	"pet-health/internal/domain/pets"
	"pet-health/internal/domain/vaccines"
)

// Conversión de los registros persistidos al formato de entrada del score.
// Las fechas viajan como RFC3339; Active se resuelve contra now.

func toProfile(p pets.Pet) healthscore.Profile {
	return healthscore.Profile{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		Weight:      p.Weight,
		Age:         p.Age,
		MicrochipID: p.Microchip,
		Status:      healthscore.PetStatus(p.Status),
	}
}

func toVaccines(list []vaccines.Vaccine) []healthscore.Vaccine {
	out := make([]healthscore.Vaccine, 0, len(list))
	for _, v := range list {
		hv := healthscore.Vaccine{
			ID:               v.ID,
			PetID:            v.PetID,
			Name:             v.Name,
			Type:             v.Type,
			DateAdministered: formatTime(v.AdministeredAt),
			Status:           healthscore.VaccineStatus(v.Status),
		}
		if v.NextDue != nil {
			hv.NextDue = formatTime(*v.NextDue)
		}
		out = append(out, hv)
	}
	return out
}

func toMedications(list []medications.Medication, now time.Time) []healthscore.Medication {
	out := make([]healthscore.Medication, 0, len(list))
	for _, m := range list {
		hm := healthscore.Medication{
			ID:        m.ID,
			PetID:     m.PetID,
			Name:      m.Name,
			StartDate: formatTime(m.StartDate),
			Frequency: m.Frequency,
			Active:    m.IsActive(now),
		}
		if m.EndDate != nil {
			hm.EndDate = formatTime(*m.EndDate)
		}
		out = append(out, hm)
	}
	return out
}

func toActivities(list []activities.Activity) []healthscore.Activity {
	out := make([]healthscore.Activity, 0, len(list))
	for _, a := range list {
		out = append(out, healthscore.Activity{
			ID:          a.ID,
			PetID:       a.PetID,
			Type:        healthscore.ActivityType(a.Type),
			Title:       a.Title,
			Description: a.Description,
			Date:        formatTime(a.OccurredAt),
		})
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
