// Package webhook entrega notificaciones haciendo POST JSON a una URL externa.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-health/internal/domain/notifications"
	"pet-health/internal/platform/httpclient"
)

type Config struct {
	URL     string
	APIKey  string // opcional, va en X-Api-Key
	Timeout time.Duration

	Transport http.RoundTripper
}

type Deliverer struct {
	http *httpclient.Client
	path string
}

type payload struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	PetID       string    `json:"pet_id"`
	Key         string    `json:"key"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ActionPath  string    `json:"action_path"`
	ActionLabel string    `json:"action_label"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// New separa la URL en base + path para reutilizar httpclient.
func New(cfg Config) (*Deliverer, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("webhook: invalid url %q", cfg.URL)
	}

	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	u.Path, u.RawPath, u.RawQuery = "", "", ""

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   u.String(),
		Timeout:   cfg.Timeout,
		Headers:   map[string]string{"X-Api-Key": cfg.APIKey},
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("webhook: %w", err)
	}
	return &Deliverer{http: hc, path: path}, nil
}

func (d *Deliverer) Deliver(ctx context.Context, n notifications.Notification) error {
	body := payload{
		ID:          n.ID,
		OwnerUserID: n.OwnerUserID,
		PetID:       n.PetID,
		Key:         n.Key,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		ActionPath:  n.ActionPath,
		ActionLabel: n.ActionLabel,
		Priority:    string(n.Priority),
		CreatedAt:   n.CreatedAt,
	}
	if err := d.http.DoJSON(ctx, http.MethodPost, d.path, nil, body, nil); err != nil {
		return fmt.Errorf("webhook deliver %s: %w", n.ID, err)
	}
	return nil
}
