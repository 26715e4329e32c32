package facebook

import (
	"context"
	"fmt"
	"net/url"

	"eventcast/internal/infra/httpx"
	"eventcast/internal/pkg/config"
)

// PageEventParams is the primary posting strategy payload: a timed event
// on the configured page.
type PageEventParams struct {
	Name        string
	Description string
	StartLocal  string
	EndLocal    string
	Timezone    string
	Location    string
	CoverURL    string
}

// FeedPostParams is the reduced-capability fallback payload.
type FeedPostParams struct {
	Message string
	LinkURL string
}

type graphResponse struct {
	ID    string      `json:"id"`
	Error *GraphError `json:"error"`
}

// Client speaks to the Graph API for one page. It resolves its API version
// once at construction; credentials come from process configuration.
type Client struct {
	http    *httpx.Client
	base    string
	version string
	pageID  string
	token   string
}

func NewClient(cfg config.FacebookConfig, hc *httpx.Client) *Client {
	return &Client{
		http:    hc,
		base:    cfg.BaseURL,
		version: ResolveVersion(cfg.GraphVersion),
		pageID:  cfg.PageID,
		token:   cfg.AccessToken,
	}
}

func (c *Client) Version() string {
	return c.version
}

// CreatePageEvent creates a timed event on the page and returns its id.
func (c *Client) CreatePageEvent(ctx context.Context, p PageEventParams) (string, error) {
	form := url.Values{}
	form.Set("name", p.Name)
	form.Set("description", p.Description)
	form.Set("start_time", p.StartLocal)
	form.Set("end_time", p.EndLocal)
	form.Set("timezone", p.Timezone)
	form.Set("location", p.Location)
	if p.CoverURL != "" {
		form.Set("cover_url", p.CoverURL)
	}
	form.Set("access_token", c.token)

	return c.post(ctx, c.endpoint("events"), form)
}

// CreateFeedPost publishes a plain post on the page feed and returns its id.
func (c *Client) CreateFeedPost(ctx context.Context, p FeedPostParams) (string, error) {
	form := url.Values{}
	form.Set("message", p.Message)
	if p.LinkURL != "" {
		form.Set("link", p.LinkURL)
	}
	form.Set("access_token", c.token)

	return c.post(ctx, c.endpoint("feed"), form)
}

func (c *Client) post(ctx context.Context, rawURL string, form url.Values) (string, error) {
	var resp graphResponse
	if _, err := c.http.PostForm(ctx, rawURL, form, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error
	}
	return resp.ID, nil
}

func (c *Client) endpoint(edge string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.base, c.version, c.pageID, edge)
}
