package healthscore

import "strings"

// CheckupBelow: por debajo de este score se sugiere control veterinario.
const CheckupBelow = 60

// SuggestStatus deriva un estado grueso a partir del score y de las vacunas.
// Es independiente de la etiqueta de 4 tramos.
func SuggestStatus(score int, vaccines []Vaccine) PetStatus {
	if clamp(score) < CheckupBelow {
		return StatusCheckup
	}
	for _, v := range vaccines {
		if strings.EqualFold(strings.TrimSpace(string(v.Status)), string(VaccineOverdue)) {
			return StatusCheckup
		}
	}
	return StatusHealthy
}

// DetectStatusMismatch avisa solo en una dirección: la mascota figura como
// Healthy pero los datos sugieren otra cosa. Lo inverso no genera alerta.
func DetectStatusMismatch(stored, suggested PetStatus) bool {
	return isHealthy(stored) && !isHealthy(suggested)
}

func isHealthy(s PetStatus) bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(StatusHealthy))
}
