// Package healthscore calcula el Pet Health Score (0-100) y las señales que se
// derivan de él: etiqueta, estado sugerido y alertas de datos faltantes.
//
// Todo el paquete es puro: no hace I/O y "now" siempre llega como parámetro.
package healthscore

import (
	"strings"
	"time"
)

// Component identifica cada parte ponderada del score.
type Component string

const (
	ComponentVaccination   Component = "vaccination"
	ComponentBodyCondition Component = "body_condition"
	ComponentVetVisit      Component = "vet_visit"
	ComponentMedication    Component = "medication"
	ComponentAge           Component = "age"
	ComponentProfile       Component = "profile"
)

// Pesos en puntos porcentuales; suman 100.
var weights = []struct {
	component Component
	weight    int
}{
	{ComponentVaccination, 30},
	{ComponentBodyCondition, 20},
	{ComponentVetVisit, 15},
	{ComponentMedication, 15},
	{ComponentAge, 10},
	{ComponentProfile, 10},
}

// ComponentScore es el valor normalizado (0-100) de un componente y su peso.
type ComponentScore struct {
	Component Component `json:"component"`
	Weight    int       `json:"weight"`
	Score     int       `json:"score"`
}

// Breakdown es el resultado completo de un cálculo.
type Breakdown struct {
	Score      int              `json:"score"`
	Components []ComponentScore `json:"components"`
}

// ComputeHealthScore devuelve el score ponderado en [0,100].
func ComputeHealthScore(pet Profile, vaccines []Vaccine, medications []Medication, activities []Activity, now time.Time) int {
	return Evaluate(Snapshot{
		Pet:         pet,
		Vaccines:    vaccines,
		Medications: medications,
		Activities:  activities,
	}, now).Score
}

// Evaluate calcula el score exponiendo cada componente.
func Evaluate(s Snapshot, now time.Time) Breakdown {
	raw := map[Component]int{
		ComponentVaccination:   vaccinationScore(s.Vaccines),
		ComponentBodyCondition: bodyConditionScore(s.Pet, s.Activities, now),
		ComponentVetVisit:      vetVisitScore(s.Activities, now),
		ComponentMedication:    medicationScore(s.Medications),
		ComponentAge:           100,
		ComponentProfile:       profileScore(s.Pet),
	}

	out := Breakdown{Components: make([]ComponentScore, 0, len(weights))}
	total := 0
	for _, w := range weights {
		v := clamp(raw[w.component])
		total += v * w.weight
		out.Components = append(out.Components, ComponentScore{
			Component: w.component,
			Weight:    w.weight,
			Score:     v,
		})
	}

	// total está en centésimas; +50 redondea al entero más cercano.
	out.Score = clamp((total + 50) / 100)
	return out
}

func vaccinationScore(vaccines []Vaccine) int {
	valid := 0
	for _, v := range vaccines {
		if strings.EqualFold(strings.TrimSpace(string(v.Status)), string(VaccineValid)) {
			valid++
		}
	}
	switch {
	case valid >= 2:
		return 100
	case valid == 1:
		return 50
	default:
		return 0
	}
}

func bodyConditionScore(pet Profile, activities []Activity, now time.Time) int {
	last, ok := mostRecent(activities, func(a Activity) bool {
		return isType(a, ActivityVitals) && MentionsWeight(a.Description)
	})
	if ok {
		switch {
		case withinMonths(last, now, 1):
			return 100
		case withinMonths(last, now, 3):
			return 70
		case withinMonths(last, now, 6):
			return 40
		default:
			return 0
		}
	}

	if strings.TrimSpace(pet.Weight) != "" {
		return 50
	}
	return 0
}

func vetVisitScore(activities []Activity, now time.Time) int {
	last, ok := mostRecent(activities, func(a Activity) bool {
		return isType(a, ActivityCheckup) || MentionsVisit(a.Title)
	})
	if !ok {
		return 0
	}
	switch {
	case withinMonths(last, now, 6):
		return 100
	case withinMonths(last, now, 12):
		return 80
	default:
		return 40
	}
}

// medicationScore: hoy no hay señal de no-adherencia en los datos, así que
// cualquier caso puntúa 100. Se mantiene así hasta que producto defina la regla.
func medicationScore(medications []Medication) int {
	active := 0
	for _, m := range medications {
		if m.Active {
			active++
		}
	}
	if active == 0 {
		return 100
	}
	return 100
}

func profileScore(pet Profile) int {
	fields := []string{pet.Name, pet.Breed, pet.Weight, pet.Age, pet.MicrochipID}
	score := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			score += 20
		}
	}
	return score
}

// mostRecent devuelve la fecha más reciente entre las entradas que cumplen match.
// Las entradas con fecha inválida se ignoran.
func mostRecent(activities []Activity, match func(Activity) bool) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, a := range activities {
		if !match(a) {
			continue
		}
		d, ok := ParseDate(a.Date)
		if !ok {
			continue
		}
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

// withinMonths: una entrada de hace exactamente n meses todavía cuenta.
func withinMonths(d, now time.Time, n int) bool {
	return !d.Before(now.AddDate(0, -n, 0))
}

func isType(a Activity, t ActivityType) bool {
	return strings.EqualFold(strings.TrimSpace(string(a.Type)), string(t))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
