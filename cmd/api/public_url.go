package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dinner-scheduler/config"
	pkgCalendly "dinner-scheduler/pkg/calendly"
	"dinner-scheduler/pkg/log"
)

const (
	calendlyWebhookPath = "/webhooks/calendly"

	ngrokAttempts = 10
	ngrokBackoff  = 3 * time.Second
)

type ngrokTunnels struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// publicURL returns the configured public base URL, or the HTTPS tunnel of a
// local ngrok agent when none is configured.
func publicURL(ctx context.Context, l log.Logger, cfg config.WebhookConfig) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	if cfg.NgrokAPIURL == "" {
		return ""
	}

	url, err := detectNgrokURL(ctx, cfg.NgrokAPIURL, ngrokAttempts, ngrokBackoff)
	if err != nil {
		l.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		return ""
	}
	l.Infof(ctx, "Auto-detected ngrok URL: %s", url)
	return url
}

// detectNgrokURL polls the ngrok local API until a tunnel shows up.
// HTTPS tunnels win over plain HTTP ones.
func detectNgrokURL(ctx context.Context, apiBase string, attempts int, backoff time.Duration) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	endpoint := strings.TrimRight(apiBase, "/") + "/api/tunnels"

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		url, err := fetchTunnel(ctx, client, endpoint)
		if err != nil {
			lastErr = err
			continue
		}
		if url != "" {
			return url, nil
		}
		lastErr = fmt.Errorf("no active tunnels")
	}

	return "", fmt.Errorf("ngrok not ready after %d attempts: %w", attempts, lastErr)
}

func fetchTunnel(ctx context.Context, client *http.Client, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body ngrokTunnels
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range body.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(body.Tunnels) > 0 {
		return body.Tunnels[0].PublicURL, nil
	}
	return "", nil
}

// webhookRegistrar is the subset of the Calendly client used at startup.
type webhookRegistrar interface {
	CurrentUser(ctx context.Context) (*pkgCalendly.User, error)
	CreateWebhookSubscription(ctx context.Context, req pkgCalendly.WebhookSubscriptionRequest) (*pkgCalendly.WebhookSubscription, error)
}

// registerCalendlyWebhook subscribes baseURL+/webhooks/calendly to invitee
// created and canceled events.
func registerCalendlyWebhook(ctx context.Context, client webhookRegistrar, cfg config.CalendlyConfig, baseURL string) (*pkgCalendly.WebhookSubscription, error) {
	org, user := cfg.OrganizationURI, cfg.UserURI
	if org == "" || user == "" {
		me, err := client.CurrentUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("registerCalendlyWebhook: %w", err)
		}
		if org == "" {
			org = me.CurrentOrganization
		}
		if user == "" {
			user = me.URI
		}
	}

	return client.CreateWebhookSubscription(ctx, pkgCalendly.WebhookSubscriptionRequest{
		URL:          strings.TrimRight(baseURL, "/") + calendlyWebhookPath,
		Events:       []string{"invitee.created", "invitee.canceled"},
		Organization: org,
		User:         user,
		Scope:        "user",
		SigningKey:   cfg.WebhookSigningKey,
	})
}
