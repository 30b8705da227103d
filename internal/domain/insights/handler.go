package insights

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-health/internal/domain/healthscore"
	"pet-health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, owners middleware.PetOwnerLookup) {
	r.Get("/pets/{petID}/health", petHealthHandler(svc, owners))
	r.Post("/pets/{petID}/health/gaps/sync", syncGapsHandler(svc, owners))
	r.Get("/me/health", myHealthHandler(svc))
}

type syncGapsResponse struct {
	Created []createdNotification `json:"created"`
}

type createdNotification struct {
	ID       string               `json:"id"`
	Key      string               `json:"key"`
	Title    string               `json:"title"`
	Priority healthscore.Priority `json:"priority"`
	Created  time.Time            `json:"created_at"`
}

// petHealthHandler godoc
// @Summary Health score de la mascota
// @Description Score 0-100 con desglose por componente, etiqueta, estado sugerido y datos faltantes.
// @Tags health
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} Report
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/health [get]
func petHealthHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		report, err := svc.Evaluate(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// syncGapsHandler godoc
// @Summary Publicar gaps como notificaciones
// @Description Crea una notificación por cada dato faltante que el dueño no tenga ya pendiente.
// @Tags health
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} syncGapsResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/health/gaps/sync [post]
func syncGapsHandler(svc *Service, owners middleware.PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.AuthorizePetOwner(w, r, owners, petID); !ok {
			return
		}

		created, err := svc.SyncGaps(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := syncGapsResponse{Created: make([]createdNotification, 0, len(created))}
		for _, n := range created {
			out.Created = append(out.Created, createdNotification{
				ID:       n.ID,
				Key:      n.Key,
				Title:    n.Title,
				Priority: n.Priority,
				Created:  n.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// myHealthHandler godoc
// @Summary Health score de todas mis mascotas
// @Tags health
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} Report
// @Failure 401 {string} string "unauthorized"
// @Router /me/health [get]
func myHealthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		reports, err := svc.EvaluateOwner(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reports)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "pet not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
