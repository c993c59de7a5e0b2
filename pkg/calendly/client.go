package calendly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the public Calendly v2 API base.
const DefaultAPIURL = "https://api.calendly.com"

// maxPages bounds pagination so a misbehaving cursor cannot loop forever.
const maxPages = 50

// Client is the HTTP wrapper for the Calendly REST API.
type Client struct {
	accessToken string
	apiURL      string
	httpClient  *http.Client
}

// NewClient creates a new Calendly client authenticated with a personal access token.
func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		apiURL:      DefaultAPIURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAPIURL overrides the default Calendly API URL for testing purposes.
// Resource URIs returned by the API that point at the default host are
// rewritten to the override as well.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = strings.TrimRight(url, "/")
}

// CurrentUser calls GET /users/me.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out resourceResponse[User]
	if err := c.get(ctx, c.apiURL+"/users/me", &out); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &out.Resource, nil
}

// ListScheduledEvents calls GET /scheduled_events and follows pagination.next_page.
func (c *Client) ListScheduledEvents(ctx context.Context, req ListEventsRequest) ([]ScheduledEvent, error) {
	params := url.Values{}
	params.Set("sort", "start_time:asc")
	if req.UserURI != "" {
		params.Set("user", req.UserURI)
	}
	if req.Status != "" {
		params.Set("status", req.Status)
	}
	if !req.MinStartTime.IsZero() {
		params.Set("min_start_time", req.MinStartTime.UTC().Format(time.RFC3339))
	}
	if !req.MaxStartTime.IsZero() {
		params.Set("max_start_time", req.MaxStartTime.UTC().Format(time.RFC3339))
	}
	if req.Count > 0 {
		params.Set("count", strconv.Itoa(req.Count))
	}

	next := c.apiURL + "/scheduled_events?" + params.Encode()
	var events []ScheduledEvent
	for page := 0; next != "" && page < maxPages; page++ {
		var out collectionResponse[ScheduledEvent]
		if err := c.get(ctx, next, &out); err != nil {
			return nil, fmt.Errorf("failed to list scheduled events: %w", err)
		}
		events = append(events, out.Collection...)
		next = out.Pagination.NextPage
	}
	return events, nil
}

// ListInvitees calls GET {eventURI}/invitees and follows pagination.next_page.
func (c *Client) ListInvitees(ctx context.Context, eventURI string) ([]Invitee, error) {
	if eventURI == "" {
		return nil, fmt.Errorf("event uri is required")
	}

	next := strings.TrimRight(eventURI, "/") + "/invitees"
	var invitees []Invitee
	for page := 0; next != "" && page < maxPages; page++ {
		var out collectionResponse[Invitee]
		if err := c.get(ctx, next, &out); err != nil {
			return nil, fmt.Errorf("failed to list invitees: %w", err)
		}
		invitees = append(invitees, out.Collection...)
		next = out.Pagination.NextPage
	}
	return invitees, nil
}

// GetInvitee fetches a single invitee by its URI.
func (c *Client) GetInvitee(ctx context.Context, inviteeURI string) (*Invitee, error) {
	var out resourceResponse[Invitee]
	if err := c.get(ctx, inviteeURI, &out); err != nil {
		return nil, fmt.Errorf("failed to get invitee: %w", err)
	}
	return &out.Resource, nil
}

// GetScheduledEvent fetches a single scheduled event by its URI.
func (c *Client) GetScheduledEvent(ctx context.Context, eventURI string) (*ScheduledEvent, error) {
	var out resourceResponse[ScheduledEvent]
	if err := c.get(ctx, eventURI, &out); err != nil {
		return nil, fmt.Errorf("failed to get scheduled event: %w", err)
	}
	return &out.Resource, nil
}

// CreateWebhookSubscription calls POST /webhook_subscriptions.
func (c *Client) CreateWebhookSubscription(ctx context.Context, req WebhookSubscriptionRequest) (*WebhookSubscription, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook subscription: %w", err)
	}

	var out resourceResponse[WebhookSubscription]
	if err := c.do(ctx, http.MethodPost, c.apiURL+"/webhook_subscriptions", bytes.NewReader(body), &out); err != nil {
		return nil, fmt.Errorf("failed to create webhook subscription: %w", err)
	}
	return &out.Resource, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	return c.do(ctx, http.MethodGet, rawURL, nil, out)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.resolve(rawURL), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call calendly API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || (apiErr.Message == "" && apiErr.Title == "") {
			apiErr.Message = string(raw)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode calendly response: %w", err)
	}
	return nil
}

// resolve points absolute API URIs at the configured host.
func (c *Client) resolve(rawURL string) string {
	if c.apiURL != DefaultAPIURL && strings.HasPrefix(rawURL, DefaultAPIURL) {
		return c.apiURL + strings.TrimPrefix(rawURL, DefaultAPIURL)
	}
	return rawURL
}
