package eventbrite

import (
	"context"

	"eventcast/internal/channel"
	"eventcast/internal/domain/distribution"
	"eventcast/internal/domain/schedule"
	"eventcast/internal/infra/httpx"
	"eventcast/internal/pkg/config"
	"eventcast/internal/pkg/errs"
)

// API is the slice of the Eventbrite client the adapter needs.
type API interface {
	CreateEvent(ctx context.Context, p EventParams) (CreatedEvent, error)
}

// Adapter creates one listing per event. Primary strategy: a live
// published listing. Fallback, after a capability/permission failure: the
// same listing as an unpublished draft. Stateless per call.
type Adapter struct {
	api       API
	cfg       config.EventbriteConfig
	scheduler *schedule.Normalizer
}

func NewAdapter(api API, cfg config.EventbriteConfig, scheduler *schedule.Normalizer) *Adapter {
	return &Adapter{api: api, cfg: cfg, scheduler: scheduler}
}

func (a *Adapter) Name() channel.Name {
	return channel.Eventbrite
}

func (a *Adapter) Readiness() channel.Readiness {
	var missing []string
	if a.cfg.Token == "" {
		missing = append(missing, "EVENTBRITE_TOKEN")
	}
	if a.cfg.OrganizationID == "" {
		missing = append(missing, "EVENTBRITE_ORGANIZATION_ID")
	}
	return channel.Readiness{Ready: len(missing) == 0, Missing: missing}
}

func (a *Adapter) Fingerprint(req channel.Request) string {
	return distribution.Fingerprint(req.Event, req.Venue, a.cfg.OrganizationID)
}

func (a *Adapter) Distribute(ctx context.Context, req channel.Request) channel.Result {
	sched, err := a.scheduler.Normalize(req.Event, req.Venue)
	if err != nil {
		return channel.Failure(a.Name(), err, false)
	}

	params := a.eventParams(req, sched)
	params.Publish = true

	created, err := a.api.CreateEvent(ctx, params)
	if err == nil {
		return a.success(created, false)
	}

	if httpx.IsTimeout(ctx, err) {
		return channel.Failure(a.Name(), errs.Mark(err, errs.ErrChannelTimeout), false)
	}

	var ae *APIError
	if !errs.As(err, &ae) {
		return channel.Failure(a.Name(), err, false)
	}
	eligible, sentinel := Classify(ae.StatusCode, ae.Code+" "+ae.Description)
	if sentinel != nil {
		err = errs.Mark(err, sentinel)
	}
	if !eligible {
		return channel.Failure(a.Name(), err, false)
	}

	// One fallback attempt: the draft resource needs no publish capability.
	params.Publish = false
	created, err = a.api.CreateEvent(ctx, params)
	if err != nil {
		if httpx.IsTimeout(ctx, err) {
			err = errs.Mark(err, errs.ErrChannelTimeout)
		}
		return channel.Failure(a.Name(), err, true)
	}
	return a.success(created, true)
}

func (a *Adapter) success(created CreatedEvent, usedFallback bool) channel.Result {
	id := created.ID
	if id == "" {
		id = ExtractEventID(created.URL)
	}
	return channel.Result{
		Channel:      a.Name(),
		Success:      true,
		ExternalID:   id,
		URL:          created.URL,
		UsedFallback: usedFallback,
	}
}

func (a *Adapter) eventParams(req channel.Request, sched schedule.Schedule) EventParams {
	description := req.Content.HTML
	if description == "" {
		description = req.Content.Body
	}
	return EventParams{
		Title:       req.Event.Title(),
		Description: description,
		StartLocal:  sched.StartLocal,
		EndLocal:    sched.EndLocal,
		Timezone:    sched.Timezone,
		VenueName:   req.Venue.Name(),
		Address:     req.Venue.Address(),
		City:        req.Venue.City(),
		State:       req.Venue.State(),
	}
}
