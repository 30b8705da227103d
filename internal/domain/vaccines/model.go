package vaccines

import "time"

// Status es el estado de vigencia de la vacuna. Se deriva de NextDue
// (ver DeriveStatus) y se persiste para listados rápidos.
// @Enum Valid, Expiring Soon, Overdue
type Status string

const (
	StatusValid        Status = "Valid"
	StatusExpiringSoon Status = "Expiring Soon"
	StatusOverdue      Status = "Overdue"
)

// ExpiringWindow: una vacuna vence "pronto" si su próxima dosis cae dentro de esta ventana.
const ExpiringWindow = 30 * 24 * time.Hour

type Vaccine struct {
	ID    string
	PetID string

	Name string
	// Type es la categoría libre ("core", "rabies", "lifestyle"...).
	Type string

	AdministeredAt time.Time
	NextDue        *time.Time

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
