package healthscore

import "strings"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// NotificationTypeGap marca las notificaciones generadas por datos faltantes.
const NotificationTypeGap = "gap"

// Reglas de gaps; forman parte de la clave de deduplicación.
const (
	GapMissingWeight    = "missing_weight"
	GapMissingMicrochip = "missing_microchip"
	GapMissingRabies    = "missing_rabies"
)

// NotificationIntent describe una notificación a entregar. No se persiste aquí:
// la capa externa decide cómo guardarla, enviarla y deduplicarla (por Key).
type NotificationIntent struct {
	Key         string   `json:"key"`
	Rule        string   `json:"rule"`
	PetID       string   `json:"pet_id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	ActionPath  string   `json:"action_path"`
	ActionLabel string   `json:"action_label"`
	Priority    Priority `json:"priority"`
}

// ComputeHealthGaps evalúa cada regla por separado; pueden dispararse varias.
func ComputeHealthGaps(pet Profile, vaccines []Vaccine) []NotificationIntent {
	name := strings.TrimSpace(pet.Name)
	if name == "" {
		name = "your pet"
	}

	out := make([]NotificationIntent, 0, 3)

	if strings.TrimSpace(pet.Weight) == "" {
		out = append(out, newGap(pet, GapMissingWeight, PriorityHigh,
			"Log "+name+"'s weight",
			"No weight on file. Regular weigh-ins keep the health score accurate.",
			"/pets/"+pet.ID+"/activities", "Log weight"))
	}

	if strings.TrimSpace(pet.MicrochipID) == "" {
		out = append(out, newGap(pet, GapMissingMicrochip, PriorityMedium,
			"Add "+name+"'s microchip",
			"The passport has no microchip ID. Add it so "+name+" can be identified if lost.",
			"/pets/"+pet.ID, "Update passport"))
	}

	if !hasRabies(vaccines) && ageValue(pet.Age) > 0 {
		out = append(out, newGap(pet, GapMissingRabies, PriorityHigh,
			"Rabies vaccine missing",
			"There is no rabies vaccination on record for "+name+".",
			"/pets/"+pet.ID+"/vaccines", "Add rabies vaccine"))
	}

	return out
}

func newGap(pet Profile, rule string, p Priority, title, msg, path, action string) NotificationIntent {
	return NotificationIntent{
		Key:         GapKey(pet.ID, rule),
		Rule:        rule,
		PetID:       pet.ID,
		Type:        NotificationTypeGap,
		Title:       title,
		Message:     msg,
		ActionPath:  path,
		ActionLabel: action,
		Priority:    p,
	}
}

// GapKey es estable por (mascota, regla).
func GapKey(petID, rule string) string {
	return NotificationTypeGap + ":" + petID + ":" + rule
}

func hasRabies(vaccines []Vaccine) bool {
	for _, v := range vaccines {
		if strings.Contains(strings.ToLower(v.Name), "rabies") ||
			strings.Contains(strings.ToLower(v.Type), "rabies") {
			return true
		}
	}
	return false
}

func ageValue(age string) float64 {
	m, ok := ParseMagnitudeUnit(age)
	if !ok {
		return 0
	}
	return m.Value
}
