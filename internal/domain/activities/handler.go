package activities

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, owners middleware.PetOwnerLookup) {
	r.Route("/pets/{petID}/activities", func(ar chi.Router) {
		ar.Post("/", createActivityHandler(svc, owners))
		ar.Get("/", listActivitiesHandler(svc, owners))
		ar.Delete("/{activityID}", deleteActivityHandler(svc, owners))
	})
}

// createActivityRequest es el cuerpo para registrar una entrada en el historial.
type createActivityRequest struct {
	Type        Type   `json:"type" enums:"vitals,checkup,medication,note,allergy"`
	OccurredAt  string `json:"date"` // RFC3339 o YYYY-MM-DD
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      Source `json:"source"` // opcional
}

type activityResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"date"`
	RecordedAt  time.Time `json:"recorded_at"`
	ActorID     string    `json:"actor_id"`
	Source      Source    `json:"source"`
}

// createActivityHandler godoc
// @Summary Registrar actividad
// @Description Agrega una entrada al historial (pesaje, control, nota...). Las entradas "vitals" que mencionan el peso y los "checkup" alimentan el health score.
// @Tags activities
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body createActivityRequest true "Entrada; date en RFC3339 o YYYY-MM-DD"
// @Success 201 {object} activityResponse
// @Failure 400 {string} string "invalid json / date inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/activities [post]
func createActivityHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		claims, ok := middleware.AuthorizePetOwner(w, r, owners, petID)
		if !ok {
			return
		}

		var req createActivityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		at, err := parseDate(req.OccurredAt)
		if err != nil {
			http.Error(w, "date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), petID, claims.UserID, CreateInput{
			Type:        req.Type,
			OccurredAt:  at,
			Title:       req.Title,
			Description: req.Description,
			Source:      req.Source,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toActivityResponse(a))
	}
}

// listActivitiesHandler godoc
// @Summary Listar historial
// @Tags activities
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Param types query string false "CSV de tipos (ej: vitals,checkup)"
// @Param from query string false "Fecha mínima (RFC3339 o YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (RFC3339 o YYYY-MM-DD)"
// @Param q query string false "Texto libre en título/descripción"
// @Success 200 {array} activityResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/activities [get]
func listActivitiesHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]activityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toActivityResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deleteActivityHandler godoc
// @Summary Borrar actividad
// @Tags activities
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param activityID path string true "ID de la actividad"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "activity not found"
// @Router /pets/{petID}/activities/{activityID} [delete]
func deleteActivityHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		err := svc.Delete(r.Context(), petID, chi.URLParam(r, "activityID"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
			http.Error(w, "activity not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	filter := ListFilter{Limit: 50}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxLimit {
			filter.Limit = n
		}
	}

	// types=vitals,checkup
	if v := strings.TrimSpace(q.Get("types")); v != "" {
		for _, p := range strings.Split(v, ",") {
			t := Type(strings.ToLower(strings.TrimSpace(p)))
			if t == "" {
				continue
			}
			if !t.Valid() {
				return ListFilter{}, errors.New("unknown activity type: " + string(t))
			}
			filter.Types = append(filter.Types, t)
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339 or YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339 or YYYY-MM-DD")
		}
		filter.To = &t
	}

	filter.Query = strings.TrimSpace(q.Get("q"))
	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toActivityResponse(a Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		OccurredAt:  a.OccurredAt,
		RecordedAt:  a.RecordedAt,
		ActorID:     a.ActorID,
		Source:      a.Source,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
