//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventcast/internal/channel"
	"eventcast/internal/domain/event"
	"eventcast/internal/infra"
	"eventcast/internal/infra/repository"
	"eventcast/internal/pkg/clock"
	"eventcast/internal/pkg/config"
	"eventcast/internal/pkg/errs"
	"eventcast/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAdapter is a scripted channel: the result it returns is fixed up
// front, and calls are counted so tests can assert isolation.
type stubAdapter struct {
	name   channel.Name
	ready  bool
	result channel.Result

	mu    sync.Mutex
	calls int
}

func (a *stubAdapter) Name() channel.Name { return a.name }

func (a *stubAdapter) Readiness() channel.Readiness {
	if a.ready {
		return channel.Readiness{Ready: true}
	}
	return channel.Readiness{Ready: false, Missing: []string{"STUB_TOKEN"}}
}

func (a *stubAdapter) Fingerprint(_ channel.Request) string {
	return "fp-" + string(a.name)
}

func (a *stubAdapter) Distribute(_ context.Context, _ channel.Request) channel.Result {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	res := a.result
	res.Channel = a.name
	return res
}

func (a *stubAdapter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// stubStore is an in-memory FingerprintStore. Concurrency-safe because the
// coordinator claims fingerprints from fan-out goroutines.
type stubStore struct {
	mu        sync.Mutex
	records   map[string]*repository.FingerprintRecord
	claimErr  error
	released  []string
	completed []string
}

func newStubStore() *stubStore {
	return &stubStore{records: map[string]*repository.FingerprintRecord{}}
}

func (s *stubStore) SetIfAbsent(_ context.Context, fingerprint, channelName string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return false, s.claimErr
	}
	if _, ok := s.records[fingerprint]; ok {
		return false, nil
	}
	s.records[fingerprint] = &repository.FingerprintRecord{
		Fingerprint: fingerprint,
		Channel:     channelName,
		Status:      repository.StatusPending,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (s *stubStore) Get(_ context.Context, fingerprint string) (*repository.FingerprintRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[fingerprint]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "fingerprint not found", nil)
	}
	cp := *rec
	return &cp, nil
}

func (s *stubStore) MarkCompleted(_ context.Context, fingerprint, externalID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[fingerprint]; ok {
		rec.Status = repository.StatusCompleted
		rec.ExternalID = externalID
		rec.ExpiresAt = expiresAt
	}
	s.completed = append(s.completed, fingerprint)
	return nil
}

func (s *stubStore) Release(_ context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, fingerprint)
	s.released = append(s.released, fingerprint)
	return nil
}

type noopMetrics struct{}

func (noopMetrics) Distribution(string, string) {}
func (noopMetrics) Fallback(string)             {}

func testRequest(t *testing.T) channel.Request {
	t.Helper()
	date, err := event.NewDate("2026-03-12")
	require.NoError(t, err)
	ev, err := event.NewEvent("Spring Gala", date, "8 PM", "11:00 PM", "Annual fundraiser")
	require.NoError(t, err)
	venue, err := event.NewVenue("Paramount Theatre", "713 Congress Ave", "Austin", "TX")
	require.NoError(t, err)
	return channel.Request{Event: ev, Venue: venue, Content: channel.Content{Body: "Doors at 7."}}
}

func newCoordinator(adapters []channel.Adapter, store commands.FingerprintStore) commands.DistributionCommands {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return commands.NewDistributionCommands(adapters, store, noopMetrics{}, clk, config.NewTestConfig())
}

func TestDistributeAll_OneFailingChannelDoesNotAbortSiblings(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	eb := &stubAdapter{name: channel.Eventbrite, ready: true, result: channel.Result{Error: "internal server error"}}
	pr := &stubAdapter{name: channel.Press, ready: true, result: channel.Result{Success: true, ExternalID: "msg-1"}}

	store := newStubStore()
	uc := newCoordinator([]channel.Adapter{fb, eb, pr}, store)

	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)

	// Results keep the resolved channel order.
	assert.Equal(t, channel.Facebook, report.Results[0].Channel)
	assert.Equal(t, channel.Eventbrite, report.Results[1].Channel)
	assert.Equal(t, channel.Press, report.Results[2].Channel)

	assert.True(t, report.Results[0].Success)
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, "internal server error", report.Results[1].Error)
	assert.True(t, report.Results[2].Success)

	assert.Equal(t, 1, fb.callCount())
	assert.Equal(t, 1, eb.callCount())
	assert.Equal(t, 1, pr.callCount())
}

func TestDistributeAll_AllSentinelSkipsUnreadyChannels(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	eb := &stubAdapter{name: channel.Eventbrite, ready: false}

	uc := newCoordinator([]channel.Adapter{fb, eb}, newStubStore())

	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{
		Event:    testRequest(t),
		Channels: []string{"all"},
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, channel.Facebook, report.Results[0].Channel)
	assert.Equal(t, 0, eb.callCount())
}

func TestDistributeAll_NoRunnableChannelsIsHardError(t *testing.T) {
	eb := &stubAdapter{name: channel.Eventbrite, ready: false}
	uc := newCoordinator([]channel.Adapter{eb}, newStubStore())

	_, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrNoChannels))
}

func TestDistributeAll_ExplicitUnknownChannelBecomesFailedResult(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	uc := newCoordinator([]channel.Adapter{fb}, newStubStore())

	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{
		Event:    testRequest(t),
		Channels: []string{"facebook", "myspace"},
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, 1, report.Succeeded)
	assert.True(t, report.Results[0].Success)
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, channel.Name("myspace"), report.Results[1].Channel)
	assert.Contains(t, report.Results[1].Error, "unknown channel")
}

func TestDistributeAll_ExplicitUnconfiguredChannelBecomesFailedResult(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	pr := &stubAdapter{name: channel.Press, ready: false}
	uc := newCoordinator([]channel.Adapter{fb, pr}, newStubStore())

	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{
		Event:    testRequest(t),
		Channels: []string{"facebook", "press"},
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[1].Success)
	assert.Contains(t, report.Results[1].Error, "not configured")
	// The unconfigured adapter is never invoked.
	assert.Equal(t, 0, pr.callCount())
}

func TestDistributeAll_SuccessMarksFingerprintCompleted(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	store := newStubStore()
	uc := newCoordinator([]channel.Adapter{fb}, store)

	_, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), "fp-facebook")
	require.NoError(t, err)
	assert.Equal(t, repository.StatusCompleted, rec.Status)
	assert.Equal(t, "fb-1", rec.ExternalID)
}

func TestDistributeAll_FailureReleasesFingerprintClaim(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Error: "boom"}}
	store := newStubStore()
	uc := newCoordinator([]channel.Adapter{fb}, store)

	_, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)

	assert.Equal(t, []string{"fp-facebook"}, store.released)
	// A retry after a failure gets a fresh attempt.
	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)
	assert.False(t, report.Results[0].Replayed)
	assert.Equal(t, 2, fb.callCount())
}

func TestDistributeAll_CompletedFingerprintReplaysWithoutOutboundCall(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	store := newStubStore()
	uc := newCoordinator([]channel.Adapter{fb}, store)

	_, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)
	require.Equal(t, 1, fb.callCount())

	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Success)
	assert.True(t, report.Results[0].Replayed)
	assert.Equal(t, "fb-1", report.Results[0].ExternalID)
	assert.Equal(t, 1, fb.callCount())
}

func TestDistributeAll_PendingFingerprintReportsInProgress(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	store := newStubStore()
	// Simulate a concurrent request holding the claim.
	claimed, err := store.SetIfAbsent(context.Background(), "fp-facebook", "facebook", time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.True(t, claimed)

	uc := newCoordinator([]channel.Adapter{fb}, store)
	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Success)
	assert.Contains(t, report.Results[0].Error, "in progress")
	assert.Equal(t, 0, fb.callCount())
}

func TestDistributeAll_StoreErrorFailsChannelWithoutOutboundCall(t *testing.T) {
	fb := &stubAdapter{name: channel.Facebook, ready: true, result: channel.Result{Success: true, ExternalID: "fb-1"}}
	store := newStubStore()
	store.claimErr = errs.New("connection refused")
	uc := newCoordinator([]channel.Adapter{fb}, store)

	report, err := uc.DistributeAll(context.Background(), commands.DistributeCommand{Event: testRequest(t)})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Success)
	assert.Equal(t, 0, fb.callCount())
}
