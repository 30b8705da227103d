package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Status es el estado de salud declarado (por el dueño o el sistema).
// Puede quedar desfasado respecto al score calculado.
type Status string

const (
	StatusHealthy Status = "Healthy"
	StatusCheckup Status = "Check-up"
)

// Pet representa el perfil de una mascota registrada en el sistema.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	// Texto libre con unidad, tal como lo carga el dueño: "12.5 kg", "3 yrs".
	Weight string
	Age    string

	Microchip string
	Status    Status

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
