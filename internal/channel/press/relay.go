package press

import (
	"context"
	"fmt"

	"eventcast/internal/channel"
	"eventcast/internal/infra/httpx"
	"eventcast/internal/pkg/config"
	"eventcast/internal/pkg/errs"
)

// Blast is one outbound mailing to the configured press list.
type Blast struct {
	Subject    string
	HTML       string
	Text       string
	Recipients []string
}

// RelayError is the mail relay's decoded error envelope.
type RelayError struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message"`
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("relay error %d: %s", e.StatusCode, e.Message)
}

// relayErrorRules: credential failures are terminal; content rejections
// (relay plan without HTML templates, payload too rich) justify retrying
// the blast as plain text.
var relayErrorRules = []channel.Rule{
	{CodeMin: 401, CodeMax: 401, Sentinel: errs.ErrAuthentication},
	{Substr: "api key", Sentinel: errs.ErrAuthentication},
	{Substr: "unauthorized", Sentinel: errs.ErrAuthentication},
	{CodeMin: 403, CodeMax: 403, Eligible: true, Sentinel: errs.ErrCapability},
	{CodeMin: 422, CodeMax: 422, Eligible: true, Sentinel: errs.ErrCapability},
	{Substr: "html", Eligible: true, Sentinel: errs.ErrCapability},
	{Substr: "content type", Eligible: true, Sentinel: errs.ErrCapability},
}

// Classify resolves a relay failure: whether the plain-text fallback applies,
// and which failure-class sentinel to mark the error with.
func Classify(statusCode int, message string) (eligible bool, sentinel error) {
	return channel.Classify(relayErrorRules, statusCode, message)
}

type relayResponse struct {
	MessageID string `json:"message_id"`
	Status    int    `json:"status"`
	Message   string `json:"message"`
}

// RelayClient sends blasts through the configured HTTP mail relay.
type RelayClient struct {
	http      *httpx.Client
	url       string
	apiKey    string
	fromName  string
	fromEmail string
}

func NewRelayClient(cfg config.PressConfig, hc *httpx.Client) *RelayClient {
	return &RelayClient{
		http:      hc,
		url:       cfg.RelayURL,
		apiKey:    cfg.APIKey,
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}
}

// Send delivers one blast and returns the relay's message id.
func (c *RelayClient) Send(ctx context.Context, b Blast) (string, error) {
	body := map[string]any{
		"from":    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		"to":      b.Recipients,
		"subject": b.Subject,
	}
	if b.HTML != "" {
		body["html"] = b.HTML
	} else {
		body["text"] = b.Text
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var resp relayResponse
	if _, err := c.http.PostJSON(ctx, c.url, headers, body, &resp); err != nil {
		return "", err
	}
	if resp.MessageID == "" {
		return "", &RelayError{StatusCode: resp.Status, Message: resp.Message}
	}
	return resp.MessageID, nil
}
