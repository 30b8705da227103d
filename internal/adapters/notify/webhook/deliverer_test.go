package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-health/internal/domain/healthscore"
	"pet-health/internal/domain/notifications"
	"pet-health/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverer_PostsPayload(t *testing.T) {
	var (
		got     payload
		gotPath string
		gotKey  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotKey = r.Header.Get("X-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d, err := New(Config{URL: srv.URL + "/hooks/pets?source=health", APIKey: "k"})
	require.NoError(t, err)

	err = d.Deliver(context.Background(), notifications.Notification{
		ID:          "n-1",
		OwnerUserID: "owner-1",
		Key:         "gap:pet-1:missing_weight",
		Priority:    healthscore.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, "/hooks/pets?source=health", gotPath)
	assert.Equal(t, "k", gotKey)
	assert.Equal(t, "n-1", got.ID)
	assert.Equal(t, "high", got.Priority)
}

func TestDeliverer_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	d, err := New(Config{URL: srv.URL})
	require.NoError(t, err)

	err = d.Deliver(context.Background(), notifications.Notification{ID: "n-1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, httpclient.StatusCode(err))
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(Config{URL: "not a url"})
	assert.Error(t, err)
}
