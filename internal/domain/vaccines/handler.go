package vaccines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, owners middleware.PetOwnerLookup) {
	r.Route("/pets/{petID}/vaccines", func(vr chi.Router) {
		vr.Post("/", createVaccineHandler(svc, owners))
		vr.Get("/", listVaccinesHandler(svc, owners))
		vr.Post("/refresh", refreshVaccinesHandler(svc, owners))
		vr.Delete("/{vaccineID}", deleteVaccineHandler(svc, owners))
	})
}

type createVaccineRequest struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	DateAdministered string `json:"date_administered"` // YYYY-MM-DD o RFC3339
	NextDue          string `json:"next_due"`          // opcional
}

type vaccineResponse struct {
	ID               string     `json:"id"`
	PetID            string     `json:"pet_id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	DateAdministered time.Time  `json:"date_administered"`
	NextDue          *time.Time `json:"next_due,omitempty"`
	Status           Status     `json:"status"`
}

type refreshResponse struct {
	Updated int `json:"updated"`
}

// createVaccineHandler godoc
// @Summary Registrar vacuna
// @Description El estado (Valid / Expiring Soon / Overdue) se deriva de next_due.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body createVaccineRequest true "Vacuna"
// @Success 201 {object} vaccineResponse
// @Failure 400 {string} string "invalid json / fecha inválida / reglas de negocio"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccines [post]
func createVaccineHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		var req createVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		administered, err := parseDate(req.DateAdministered)
		if err != nil {
			http.Error(w, "date_administered must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		in := CreateInput{Name: req.Name, Type: req.Type, AdministeredAt: administered}
		if strings.TrimSpace(req.NextDue) != "" {
			due, err := parseDate(req.NextDue)
			if err != nil {
				http.Error(w, "next_due must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.NextDue = &due
		}

		v, err := svc.Create(r.Context(), petID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toVaccineResponse(v))
	}
}

// listVaccinesHandler godoc
// @Summary Listar vacunas
// @Tags vaccines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} vaccineResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccines [get]
func listVaccinesHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		list, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]vaccineResponse, 0, len(list))
		for _, v := range list {
			out = append(out, toVaccineResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// refreshVaccinesHandler godoc
// @Summary Recalcular estados de vacunas
// @Description Vuelve a derivar el estado de cada vacuna contra la fecha actual.
// @Tags vaccines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} refreshResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccines/refresh [post]
func refreshVaccinesHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		n, err := svc.RefreshStatuses(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{Updated: n})
	}
}

// deleteVaccineHandler godoc
// @Summary Borrar vacuna
// @Tags vaccines
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param vaccineID path string true "ID de la vacuna"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "vaccine not found"
// @Router /pets/{petID}/vaccines/{vaccineID} [delete]
func deleteVaccineHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		err := svc.Delete(r.Context(), petID, chi.URLParam(r, "vaccineID"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "vaccine not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toVaccineResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:               v.ID,
		PetID:            v.PetID,
		Name:             v.Name,
		Type:             v.Type,
		DateAdministered: v.AdministeredAt,
		NextDue:          v.NextDue,
		Status:           v.Status,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
