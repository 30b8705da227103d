package healthscore

// VaccineStatus es el estado de una vacuna tal como lo guarda la capa de datos.
type VaccineStatus string

const (
	VaccineValid        VaccineStatus = "Valid"
	VaccineExpiringSoon VaccineStatus = "Expiring Soon"
	VaccineOverdue      VaccineStatus = "Overdue"
)

// ActivityType etiqueta una entrada del historial.
type ActivityType string

const (
	ActivityVitals     ActivityType = "vitals"
	ActivityCheckup    ActivityType = "checkup"
	ActivityMedication ActivityType = "medication"
	ActivityNote       ActivityType = "note"
	ActivityAllergy    ActivityType = "allergy"
)

// PetStatus es el estado de salud guardado en el perfil.
type PetStatus string

const (
	StatusHealthy PetStatus = "Healthy"
	StatusCheckup PetStatus = "Check-up"
)

// Profile es el perfil de la mascota visto por el calculador.
// Weight y Age son texto libre con unidad ("12.5 kg", "3 yrs").
type Profile struct {
	ID          string    `json:"id" yaml:"id"`
	OwnerUserID string    `json:"owner_user_id,omitempty" yaml:"owner_user_id"`
	Name        string    `json:"name" yaml:"name"`
	Species     string    `json:"species" yaml:"species"`
	Breed       string    `json:"breed" yaml:"breed"`
	Weight      string    `json:"weight" yaml:"weight"`
	Age         string    `json:"age" yaml:"age"`
	MicrochipID string    `json:"microchip_id" yaml:"microchip_id"`
	Status      PetStatus `json:"status" yaml:"status"`
}

type Vaccine struct {
	ID               string        `json:"id,omitempty" yaml:"id"`
	PetID            string        `json:"pet_id,omitempty" yaml:"pet_id"`
	Name             string        `json:"name" yaml:"name"`
	Type             string        `json:"type" yaml:"type"`
	DateAdministered string        `json:"date_administered,omitempty" yaml:"date_administered"`
	NextDue          string        `json:"next_due,omitempty" yaml:"next_due"`
	Status           VaccineStatus `json:"status" yaml:"status"`
}

type Medication struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	PetID     string `json:"pet_id,omitempty" yaml:"pet_id"`
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"start_date,omitempty" yaml:"start_date"`
	EndDate   string `json:"end_date,omitempty" yaml:"end_date"`
	Frequency string `json:"frequency,omitempty" yaml:"frequency"`
	Active    bool   `json:"active" yaml:"active"`
}

// Activity es una entrada libre del historial (peso, visita, nota...).
// Date llega como texto; si no parsea, la entrada no cuenta para recencia.
type Activity struct {
	ID          string       `json:"id,omitempty" yaml:"id"`
	PetID       string       `json:"pet_id,omitempty" yaml:"pet_id"`
	Type        ActivityType `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Date        string       `json:"date" yaml:"date"`
}

// Snapshot agrupa todos los registros de una mascota para un cálculo.
type Snapshot struct {
	Pet         Profile      `json:"pet" yaml:"pet"`
	Vaccines    []Vaccine    `json:"vaccines" yaml:"vaccines"`
	Medications []Medication `json:"medications" yaml:"medications"`
	Activities  []Activity   `json:"activities" yaml:"activities"`
}
