package activities

import "time"

// Type etiqueta la entrada; el score usa vitals y checkup.
type Type string

const (
	TypeVitals     Type = "vitals"
	TypeCheckup    Type = "checkup"
	TypeMedication Type = "medication"
	TypeNote       Type = "note"
	TypeAllergy    Type = "allergy"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVitals, TypeCheckup, TypeMedication, TypeNote, TypeAllergy:
		return true
	}
	return false
}

// Source indica cómo llegó la entrada al historial.
type Source string

const (
	SourceManual      Source = "manual"
	SourceExtraction  Source = "extraction"
	SourceIntegration Source = "integration"
)

// Activity es una entrada libre del historial de la mascota
// (pesaje, visita al veterinario, nota médica, alergia...).
type Activity struct {
	ID    string
	PetID string

	Type Type

	Title       string
	Description string

	OccurredAt time.Time
	RecordedAt time.Time

	ActorID string
	Source  Source
}
