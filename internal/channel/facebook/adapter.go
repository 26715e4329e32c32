package facebook

import (
	"context"
	"fmt"

	"eventcast/internal/channel"
	"eventcast/internal/domain/distribution"
	"eventcast/internal/domain/schedule"
	"eventcast/internal/infra/httpx"
	"eventcast/internal/pkg/config"
	"eventcast/internal/pkg/errs"
)

// GraphAPI is the slice of the Graph client the adapter needs.
type GraphAPI interface {
	CreatePageEvent(ctx context.Context, p PageEventParams) (string, error)
	CreateFeedPost(ctx context.Context, p FeedPostParams) (string, error)
}

// Adapter posts one event to the configured Facebook page. Primary
// strategy: a timed page event. Fallback, after a capability/permission
// failure: a plain feed post. Stateless per call.
type Adapter struct {
	api       GraphAPI
	cfg       config.FacebookConfig
	scheduler *schedule.Normalizer
}

func NewAdapter(api GraphAPI, cfg config.FacebookConfig, scheduler *schedule.Normalizer) *Adapter {
	return &Adapter{api: api, cfg: cfg, scheduler: scheduler}
}

func (a *Adapter) Name() channel.Name {
	return channel.Facebook
}

func (a *Adapter) Readiness() channel.Readiness {
	var missing []string
	if a.cfg.PageID == "" {
		missing = append(missing, "FACEBOOK_PAGE_ID")
	}
	if a.cfg.AccessToken == "" {
		missing = append(missing, "FACEBOOK_ACCESS_TOKEN")
	}
	return channel.Readiness{Ready: len(missing) == 0, Missing: missing}
}

// Fingerprint keys the event identity on this page: the same event posted
// to a different page is a different distribution.
func (a *Adapter) Fingerprint(req channel.Request) string {
	return distribution.Fingerprint(req.Event, req.Venue, a.cfg.PageID)
}

func (a *Adapter) Distribute(ctx context.Context, req channel.Request) channel.Result {
	sched, err := a.scheduler.Normalize(req.Event, req.Venue)
	if err != nil {
		return channel.Failure(a.Name(), err, false)
	}

	cover := ""
	if len(req.Content.ImageURLs) > 0 {
		cover = req.Content.ImageURLs[0]
	}

	id, err := a.api.CreatePageEvent(ctx, PageEventParams{
		Name:        req.Event.Title(),
		Description: req.Content.Body,
		StartLocal:  sched.StartLocal,
		EndLocal:    sched.EndLocal,
		Timezone:    sched.Timezone,
		Location:    venueLine(req),
		CoverURL:    cover,
	})
	if err == nil {
		return channel.Result{Channel: a.Name(), Success: true, ExternalID: id}
	}

	if httpx.IsTimeout(ctx, err) {
		return channel.Failure(a.Name(), errs.Mark(err, errs.ErrChannelTimeout), false)
	}

	var ge *GraphError
	if !errs.As(err, &ge) {
		return channel.Failure(a.Name(), err, false)
	}
	eligible, sentinel := Classify(ge.Code, ge.Message)
	if sentinel != nil {
		err = errs.Mark(err, sentinel)
	}
	if !eligible {
		return channel.Failure(a.Name(), err, false)
	}

	// One reduced-capability attempt: a plain feed post carrying the event
	// details in the message body.
	fallbackID, fbErr := a.api.CreateFeedPost(ctx, FeedPostParams{
		Message: feedMessage(req, sched),
	})
	if fbErr != nil {
		if httpx.IsTimeout(ctx, fbErr) {
			fbErr = errs.Mark(fbErr, errs.ErrChannelTimeout)
		}
		return channel.Failure(a.Name(), fbErr, true)
	}
	return channel.Result{Channel: a.Name(), Success: true, ExternalID: fallbackID, UsedFallback: true}
}

func venueLine(req channel.Request) string {
	v := req.Venue
	return fmt.Sprintf("%s, %s, %s, %s", v.Name(), v.Address(), v.City(), v.State())
}

func feedMessage(req channel.Request, sched schedule.Schedule) string {
	return fmt.Sprintf("%s\n%s at %s\n%s\n\n%s",
		req.Event.Title(),
		req.Event.Date().String(),
		req.Event.StartTime(),
		venueLine(req),
		req.Content.Body,
	)
}
