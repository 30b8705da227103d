package medications

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
	r.Route("/pets/{petID}/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc, owners))
		mr.Get("/", listMedicationsHandler(svc, owners))
		mr.Post("/{medicationID}/stop", stopMedicationHandler(svc, owners))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc, owners))
	})
}

type createMedicationRequest struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"` // YYYY-MM-DD o RFC3339
	EndDate   string `json:"end_date"`   // opcional
}

type medicationResponse struct {
	ID        string     `json:"id"`
	PetID     string     `json:"pet_id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Active    bool       `json:"active"`
}

// createMedicationHandler godoc
// @Summary Registrar tratamiento
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body createMedicationRequest true "Tratamiento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / fecha inválida / reglas de negocio"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/medications [post]
func createMedicationHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := parseDate(req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		in := CreateInput{Name: req.Name, Dosage: req.Dosage, Frequency: req.Frequency, StartDate: start}
		if strings.TrimSpace(req.EndDate) != "" {
			end, err := parseDate(req.EndDate)
			if err != nil {
				http.Error(w, "end_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.EndDate = &end
		}

		m, err := svc.Create(r.Context(), petID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toMedicationResponse(m, time.Now()))
	}
}

// listMedicationsHandler godoc
// @Summary Listar tratamientos
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param active query bool false "Solo tratamientos activos"
// @Success 200 {array} medicationResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/medications [get]
func listMedicationsHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
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

		onlyActive := r.URL.Query().Get("active") == "true"
		now := time.Now()
		out := make([]medicationResponse, 0, len(list))
		for _, m := range list {
			if onlyActive && !m.IsActive(now) {
				continue
			}
			out = append(out, toMedicationResponse(m, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// stopMedicationHandler godoc
// @Summary Finalizar tratamiento
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param medicationID path string true "ID del tratamiento"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "medication already ended"
// @Router /pets/{petID}/medications/{medicationID}/stop [post]
func stopMedicationHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		m, err := svc.Stop(r.Context(), petID, chi.URLParam(r, "medicationID"))
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, toMedicationResponse(m, time.Now()))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "medication not found", http.StatusNotFound)
		case errors.Is(err, ErrAlreadyEnded):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// deleteMedicationHandler godoc
// @Summary Borrar tratamiento
// @Tags medications
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param medicationID path string true "ID del tratamiento"
// @Success 204
// @Failure 404 {string} string "medication not found"
// @Router /pets/{petID}/medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		err := svc.Delete(r.Context(), petID, chi.URLParam(r, "medicationID"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "medication not found", http.StatusNotFound)
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

func toMedicationResponse(m Medication, now time.Time) medicationResponse {
	return medicationResponse{
		ID:        m.ID,
		PetID:     m.PetID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Active:    m.IsActive(now),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
