//go:build unit

package facebook_test

import (
	"context"
	"testing"
	"time"

	"eventcast/internal/channel"
	"eventcast/internal/channel/facebook"
	"eventcast/internal/domain/event"
	"eventcast/internal/domain/schedule"
	"eventcast/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGraph struct {
	eventID    string
	eventErr   error
	postID     string
	postErr    error
	eventCalls int
	postCalls  int
	lastEvent  facebook.PageEventParams
}

func (s *stubGraph) CreatePageEvent(_ context.Context, p facebook.PageEventParams) (string, error) {
	s.eventCalls++
	s.lastEvent = p
	return s.eventID, s.eventErr
}

func (s *stubGraph) CreateFeedPost(_ context.Context, _ facebook.FeedPostParams) (string, error) {
	s.postCalls++
	return s.postID, s.postErr
}

func testRequest(t *testing.T) channel.Request {
	t.Helper()
	d, err := event.NewDate("2026-03-12")
	require.NoError(t, err)
	e, err := event.NewEvent("Spring Showcase", d, "8 PM", "11:00 PM", "doors at 7")
	require.NoError(t, err)
	v, err := event.NewVenue("The Parish", "214 E 6th St", "Austin", "TX")
	require.NoError(t, err)
	return channel.Request{Event: e, Venue: v, Content: channel.Content{Body: "Come see us"}}
}

func newAdapter(api facebook.GraphAPI) *facebook.Adapter {
	cfg := config.FacebookConfig{PageID: "1812", AccessToken: "token"}
	return facebook.NewAdapter(api, cfg, schedule.NewNormalizer("TX"))
}

func TestAdapterDistribute(t *testing.T) {
	t.Run("primary success", func(t *testing.T) {
		stub := &stubGraph{eventID: "ev_1"}
		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.True(t, res.Success)
		assert.Equal(t, "ev_1", res.ExternalID)
		assert.False(t, res.UsedFallback)
		assert.Equal(t, 1, stub.eventCalls)
		assert.Zero(t, stub.postCalls)
		assert.Equal(t, "2026-03-12T20:00:00", stub.lastEvent.StartLocal)
		assert.Equal(t, "America/Chicago", stub.lastEvent.Timezone)
	})

	t.Run("capability error falls back to feed post", func(t *testing.T) {
		stub := &stubGraph{
			eventErr: &facebook.GraphError{Code: 3, Message: "Capability not available"},
			postID:   "post_1",
		}
		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.True(t, res.Success)
		assert.Equal(t, "post_1", res.ExternalID)
		assert.True(t, res.UsedFallback)
		assert.Equal(t, 1, stub.eventCalls)
		assert.Equal(t, 1, stub.postCalls)
	})

	t.Run("auth error is terminal without fallback", func(t *testing.T) {
		stub := &stubGraph{
			eventErr: &facebook.GraphError{Code: 190, Type: "OAuthException", Message: "Error validating access token"},
		}
		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.False(t, res.Success)
		assert.False(t, res.UsedFallback)
		assert.Contains(t, res.Error, "access token")
		assert.Zero(t, stub.postCalls)
	})

	t.Run("timeout is terminal without fallback", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		stub := &stubGraph{eventErr: context.DeadlineExceeded}
		res := newAdapter(stub).Distribute(ctx, testRequest(t))

		assert.False(t, res.Success)
		assert.False(t, res.UsedFallback)
		assert.Contains(t, res.Error, "deadline exceeded")
		assert.Equal(t, 1, stub.eventCalls)
		assert.Zero(t, stub.postCalls)
	})

	t.Run("failed fallback carries the last error", func(t *testing.T) {
		stub := &stubGraph{
			eventErr: &facebook.GraphError{Code: 200, Message: "Permissions error"},
			postErr:  &facebook.GraphError{Code: 10, Message: "Permission denied"},
		}
		res := newAdapter(stub).Distribute(context.Background(), testRequest(t))

		assert.False(t, res.Success)
		assert.True(t, res.UsedFallback)
		assert.Contains(t, res.Error, "Permission denied")
		// Exactly one fallback attempt, never a loop.
		assert.Equal(t, 1, stub.postCalls)
	})

	t.Run("invalid time format fails before any outbound call", func(t *testing.T) {
		req := testRequest(t)
		d, err := event.NewDate("2026-03-12")
		require.NoError(t, err)
		badEvent, err := event.NewEvent("Spring Showcase", d, "around eightish", "", "")
		require.NoError(t, err)
		req.Event = badEvent

		stub := &stubGraph{eventID: "ev_1"}
		res := newAdapter(stub).Distribute(context.Background(), req)

		assert.False(t, res.Success)
		assert.Zero(t, stub.eventCalls)
		assert.Zero(t, stub.postCalls)
	})
}

func TestAdapterReadiness(t *testing.T) {
	t.Run("ready when credentials present", func(t *testing.T) {
		a := facebook.NewAdapter(&stubGraph{}, config.FacebookConfig{PageID: "1812", AccessToken: "token"}, schedule.NewNormalizer("TX"))
		assert.True(t, a.Readiness().Ready)
	})

	t.Run("missing credentials reported by name", func(t *testing.T) {
		a := facebook.NewAdapter(&stubGraph{}, config.FacebookConfig{}, schedule.NewNormalizer("TX"))
		r := a.Readiness()
		assert.False(t, r.Ready)
		assert.ElementsMatch(t, []string{"FACEBOOK_PAGE_ID", "FACEBOOK_ACCESS_TOKEN"}, r.Missing)
	})
}

func TestAdapterFingerprint(t *testing.T) {
	a := newAdapter(&stubGraph{})
	req := testRequest(t)

	first := a.Fingerprint(req)
	second := a.Fingerprint(req)
	assert.Equal(t, first, second)

	other := facebook.NewAdapter(&stubGraph{}, config.FacebookConfig{PageID: "1813", AccessToken: "token"}, schedule.NewNormalizer("TX"))
	assert.NotEqual(t, first, other.Fingerprint(req))
}
