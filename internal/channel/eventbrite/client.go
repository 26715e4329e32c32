package eventbrite

import (
	"context"
	"fmt"

	"eventcast/internal/infra/httpx"
	"eventcast/internal/pkg/config"
)

// EventParams describes one listing. Publish=false creates the
// lighter-weight draft resource instead of a live listing.
type EventParams struct {
	Title       string
	Description string
	StartLocal  string
	EndLocal    string
	Timezone    string
	VenueName   string
	Address     string
	City        string
	State       string
	Publish     bool
}

type CreatedEvent struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type createResponse struct {
	CreatedEvent
	// Error envelope fields; populated only on failure.
	StatusCode  int    `json:"status_code"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

// Client speaks to the Eventbrite v3 API for one organization.
type Client struct {
	http  *httpx.Client
	base  string
	orgID string
	token string
}

func NewClient(cfg config.EventbriteConfig, hc *httpx.Client) *Client {
	return &Client{
		http:  hc,
		base:  cfg.BaseURL,
		orgID: cfg.OrganizationID,
		token: cfg.Token,
	}
}

// CreateEvent creates a listing under the organization and returns its id
// and public URL. The listing goes live when p.Publish is set; otherwise it
// stays a draft.
func (c *Client) CreateEvent(ctx context.Context, p EventParams) (CreatedEvent, error) {
	body := map[string]any{
		"event": map[string]any{
			"name":        map[string]string{"html": p.Title},
			"description": map[string]string{"html": p.Description},
			"start":       map[string]string{"timezone": p.Timezone, "local": p.StartLocal},
			"end":         map[string]string{"timezone": p.Timezone, "local": p.EndLocal},
			"venue": map[string]string{
				"name":    p.VenueName,
				"address": p.Address,
				"city":    p.City,
				"region":  p.State,
			},
			"currency": "USD",
			"publish":  p.Publish,
		},
	}

	endpoint := fmt.Sprintf("%s/organizations/%s/events/", c.base, c.orgID)
	headers := map[string]string{"Authorization": "Bearer " + c.token}

	var resp createResponse
	if _, err := c.http.PostJSON(ctx, endpoint, headers, body, &resp); err != nil {
		return CreatedEvent{}, err
	}
	if resp.Code != "" {
		return CreatedEvent{}, &APIError{
			StatusCode:  resp.StatusCode,
			Code:        resp.Code,
			Description: resp.Description,
		}
	}
	return resp.CreatedEvent, nil
}
