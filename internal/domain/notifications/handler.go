package notifications

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

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/notifications", listMyNotificationsHandler(svc))
	r.Post("/notifications/{notificationID}/read", markReadHandler(svc))
}

type notificationResponse struct {
	ID          string               `json:"id"`
	PetID       string               `json:"pet_id"`
	Key         string               `json:"key"`
	Type        string               `json:"type"`
	Title       string               `json:"title"`
	Message     string               `json:"message"`
	ActionPath  string               `json:"action_path"`
	ActionLabel string               `json:"action_label"`
	Priority    healthscore.Priority `json:"priority"`
	Read        bool                 `json:"read"`
	ReadAt      *time.Time           `json:"read_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// listMyNotificationsHandler godoc
// @Summary Mis notificaciones
// @Tags notifications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param unread query bool false "Solo no leídas"
// @Success 200 {array} notificationResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/notifications [get]
func listMyNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		unreadOnly := r.URL.Query().Get("unread") == "true"
		list, err := svc.ListByOwner(r.Context(), claims.UserID, unreadOnly)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]notificationResponse, 0, len(list))
		for _, n := range list {
			out = append(out, toNotificationResponse(n))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// markReadHandler godoc
// @Summary Marcar notificación como leída
// @Tags notifications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param notificationID path string true "ID de la notificación"
// @Success 200 {object} notificationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "notification not found"
// @Router /notifications/{notificationID}/read [post]
func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, err := svc.MarkRead(r.Context(), claims.UserID, chi.URLParam(r, "notificationID"))
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, toNotificationResponse(n))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "notification not found", http.StatusNotFound)
		case errors.Is(err, ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func toNotificationResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		PetID:       n.PetID,
		Key:         n.Key,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		ActionPath:  n.ActionPath,
		ActionLabel: n.ActionLabel,
		Priority:    n.Priority,
		Read:        n.Read,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
