package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-health/internal/ports/auth"
)

// PetOwnerLookup evita que cada módulo importe pets (rompe ciclos).
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// AuthorizePetOwner exige claims y que el usuario sea dueño de petID.
// Si falla, ya escribió 401/404/403 y devuelve ok=false.
func AuthorizePetOwner(w http.ResponseWriter, r *http.Request, owners PetOwnerLookup, petID string) (auth.Claims, bool) {
	claims, ok := GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}

	ownerID, err := owners.OwnerOf(r.Context(), petID)
	if err != nil || strings.TrimSpace(ownerID) == "" {
		http.Error(w, "pet not found", http.StatusNotFound)
		return auth.Claims{}, false
	}
	if ownerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}
