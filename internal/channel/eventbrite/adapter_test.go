//go:build unit

package eventbrite_test

import (
	"context"
	"testing"
	"time"

	"eventcast/internal/channel"
	"eventcast/internal/channel/eventbrite"
	"eventcast/internal/domain/event"
	"eventcast/internal/domain/schedule"
	"eventcast/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	results []struct {
		created eventbrite.CreatedEvent
		err     error
	}
	calls  int
	params []eventbrite.EventParams
}

func (s *stubAPI) queue(created eventbrite.CreatedEvent, err error) {
	s.results = append(s.results, struct {
		created eventbrite.CreatedEvent
		err     error
	}{created, err})
}

func (s *stubAPI) CreateEvent(_ context.Context, p eventbrite.EventParams) (eventbrite.CreatedEvent, error) {
	s.params = append(s.params, p)
	r := s.results[s.calls]
	s.calls++
	return r.created, r.err
}

func testRequest(t *testing.T) channel.Request {
	t.Helper()
	d, err := event.NewDate("2026-03-12")
	require.NoError(t, err)
	e, err := event.NewEvent("Spring Showcase", d, "8 PM", "11:00 PM", "doors at 7")
	require.NoError(t, err)
	v, err := event.NewVenue("The Parish", "214 E 6th St", "Austin", "TX")
	require.NoError(t, err)
	return channel.Request{Event: e, Venue: v, Content: channel.Content{Body: "Come see us", HTML: "<p>Come see us</p>"}}
}

func newAdapter(api eventbrite.API) *eventbrite.Adapter {
	cfg := config.EventbriteConfig{Token: "tok", OrganizationID: "org-77"}
	return eventbrite.NewAdapter(api, cfg, schedule.NewNormalizer("TX"))
}

func TestAdapterDistribute(t *testing.T) {
	t.Run("live listing on first attempt", func(t *testing.T) {
		stub := &stubAPI{}
		stub.queue(eventbrite.CreatedEvent{ID: "123456789", URL: "https://www.eventbrite.com/e/spring-showcase-tickets-123456789"}, nil)

		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.True(t, res.Success)
		assert.Equal(t, "123456789", res.ExternalID)
		assert.False(t, res.UsedFallback)
		require.Equal(t, 1, stub.calls)
		assert.True(t, stub.params[0].Publish)
		assert.Equal(t, "2026-03-12T20:00:00", stub.params[0].StartLocal)
		assert.Equal(t, "<p>Come see us</p>", stub.params[0].Description)
	})

	t.Run("publish rejection falls back to draft", func(t *testing.T) {
		stub := &stubAPI{}
		stub.queue(eventbrite.CreatedEvent{}, &eventbrite.APIError{
			StatusCode: 400, Code: "CANNOT_PUBLISH", Description: "The event cannot be published without ticket classes",
		})
		stub.queue(eventbrite.CreatedEvent{ID: "123456789", URL: "https://www.eventbrite.com/e/123456789"}, nil)

		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.True(t, res.Success)
		assert.True(t, res.UsedFallback)
		require.Equal(t, 2, stub.calls)
		assert.True(t, stub.params[0].Publish)
		assert.False(t, stub.params[1].Publish)
	})

	t.Run("missing scope falls back to draft", func(t *testing.T) {
		stub := &stubAPI{}
		stub.queue(eventbrite.CreatedEvent{}, &eventbrite.APIError{
			StatusCode: 403, Code: "NOT_AUTHORIZED", Description: "Organization is missing the publish permission",
		})
		stub.queue(eventbrite.CreatedEvent{URL: "https://www.eventbrite.com/myevent?eid=123456789"}, nil)

		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.True(t, res.Success)
		assert.True(t, res.UsedFallback)
		// Id recovered from the URL when the envelope omits it.
		assert.Equal(t, "123456789", res.ExternalID)
	})

	t.Run("invalid token is terminal", func(t *testing.T) {
		stub := &stubAPI{}
		stub.queue(eventbrite.CreatedEvent{}, &eventbrite.APIError{
			StatusCode: 401, Code: "INVALID_AUTH", Description: "The OAuth token you provided was invalid",
		})

		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.False(t, res.Success)
		assert.False(t, res.UsedFallback)
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("timeout is terminal without fallback", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		stub := &stubAPI{}
		stub.queue(eventbrite.CreatedEvent{}, context.DeadlineExceeded)

		res := newAdapter(stub).Distribute(ctx, testRequest(t))

		assert.False(t, res.Success)
		assert.False(t, res.UsedFallback)
		assert.Contains(t, res.Error, "deadline exceeded")
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("failed draft fallback carries the last error", func(t *testing.T) {
		stub := &stubAPI{}
		stub.queue(eventbrite.CreatedEvent{}, &eventbrite.APIError{StatusCode: 403, Code: "NOT_AUTHORIZED", Description: "missing permission"})
		stub.queue(eventbrite.CreatedEvent{}, &eventbrite.APIError{StatusCode: 400, Code: "ARGUMENTS_ERROR", Description: "venue is invalid"})

		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.False(t, res.Success)
		assert.True(t, res.UsedFallback)
		assert.Contains(t, res.Error, "ARGUMENTS_ERROR")
		assert.Equal(t, 2, stub.calls)
	})
}

func TestAdapterReadiness(t *testing.T) {
	ready := newAdapter(&stubAPI{})
	assert.True(t, ready.Readiness().Ready)

	bare := eventbrite.NewAdapter(&stubAPI{}, config.EventbriteConfig{}, schedule.NewNormalizer("TX"))
	r := bare.Readiness()
	assert.False(t, r.Ready)
	assert.ElementsMatch(t, []string{"EVENTBRITE_TOKEN", "EVENTBRITE_ORGANIZATION_ID"}, r.Missing)
}
