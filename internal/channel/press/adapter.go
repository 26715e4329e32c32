package press

import (
	"context"
	"fmt"

	"eventcast/internal/channel"
	"eventcast/internal/domain/distribution"
	"eventcast/internal/infra/httpx"
	"eventcast/internal/pkg/config"
	"eventcast/internal/pkg/errs"
)

// Relay is the slice of the relay client the adapter needs.
type Relay interface {
	Send(ctx context.Context, b Blast) (string, error)
}

// Adapter blasts one announcement to the configured press list. Primary
// strategy: the HTML body. Fallback, when the relay rejects the content:
// a plain-text rendering of the same announcement. Stateless per call.
type Adapter struct {
	relay Relay
	cfg   config.PressConfig
}

func NewAdapter(relay Relay, cfg config.PressConfig) *Adapter {
	return &Adapter{relay: relay, cfg: cfg}
}

func (a *Adapter) Name() channel.Name {
	return channel.Press
}

func (a *Adapter) Readiness() channel.Readiness {
	var missing []string
	if a.cfg.RelayURL == "" {
		missing = append(missing, "PRESS_RELAY_URL")
	}
	if a.cfg.APIKey == "" {
		missing = append(missing, "PRESS_API_KEY")
	}
	if a.cfg.FromEmail == "" {
		missing = append(missing, "PRESS_FROM_EMAIL")
	}
	if len(a.cfg.Recipients) == 0 {
		missing = append(missing, "PRESS_RECIPIENTS")
	}
	return channel.Readiness{Ready: len(missing) == 0, Missing: missing}
}

// Fingerprint keys the event identity on the press list itself, so editing
// the blast copy never re-sends the announcement.
func (a *Adapter) Fingerprint(req channel.Request) string {
	return distribution.Fingerprint(req.Event, req.Venue, "press:"+a.cfg.FromEmail)
}

func (a *Adapter) Distribute(ctx context.Context, req channel.Request) channel.Result {
	subject := fmt.Sprintf("%s — %s", req.Event.Title(), req.Event.Date().String())

	blast := Blast{
		Subject:    subject,
		HTML:       req.Content.HTML,
		Text:       textBody(req),
		Recipients: a.cfg.Recipients,
	}

	id, err := a.relay.Send(ctx, blast)
	if err == nil {
		return channel.Result{Channel: a.Name(), Success: true, ExternalID: id}
	}

	if httpx.IsTimeout(ctx, err) {
		return channel.Failure(a.Name(), errs.Mark(err, errs.ErrChannelTimeout), false)
	}

	var re *RelayError
	if !errs.As(err, &re) {
		return channel.Failure(a.Name(), err, false)
	}
	eligible, sentinel := Classify(re.StatusCode, re.Message)
	if sentinel != nil {
		err = errs.Mark(err, sentinel)
	}
	if blast.HTML == "" || !eligible {
		return channel.Failure(a.Name(), err, false)
	}

	// One fallback attempt: the same blast, plain text only.
	blast.HTML = ""
	id, err = a.relay.Send(ctx, blast)
	if err != nil {
		if httpx.IsTimeout(ctx, err) {
			err = errs.Mark(err, errs.ErrChannelTimeout)
		}
		return channel.Failure(a.Name(), err, true)
	}
	return channel.Result{Channel: a.Name(), Success: true, ExternalID: id, UsedFallback: true}
}

func textBody(req channel.Request) string {
	v := req.Venue
	return fmt.Sprintf("%s\n%s at %s\n%s, %s, %s, %s\n\n%s",
		req.Event.Title(),
		req.Event.Date().String(),
		req.Event.StartTime(),
		v.Name(), v.Address(), v.City(), v.State(),
		req.Content.Body,
	)
}
