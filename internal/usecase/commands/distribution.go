package commands

import (
	"context"
	"log/slog"
	"strings"

	"eventcast/internal/channel"
	"eventcast/internal/infra"
	"eventcast/internal/infra/metrics"
	"eventcast/internal/infra/repository"
	"eventcast/internal/pkg/clock"
	"eventcast/internal/pkg/config"
	"eventcast/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNoChannels             = errs.ErrNoChannels
	ErrIdempotencyCheckFailed = errs.ErrIdempotencyCheckFailed
)

// DistributeCommand is one distribution request: a single event/venue/
// content payload bound for a set of channels (or "all").
type DistributeCommand struct {
	Event    channel.Request
	Channels []string
}

// Report aggregates per-channel outcomes for one request. Results follow
// the resolved channel order; a failed channel still gets its entry.
type Report struct {
	Results   []channel.Result
	Succeeded int
	Total     int
}

type DistributionCommands interface {
	DistributeAll(ctx context.Context, cmd DistributeCommand) (*Report, error)
}

type distributionUseCaseImpl struct {
	adapters []channel.Adapter
	store    FingerprintStore
	metrics  MetricsRecorder
	clock    clock.Clock
	cfg      config.DistributionConfig
}

func NewDistributionCommands(
	adapters []channel.Adapter,
	store FingerprintStore,
	recorder MetricsRecorder,
	clk clock.Clock,
	cfg config.Config,
) DistributionCommands {
	return &distributionUseCaseImpl{
		adapters: adapters,
		store:    store,
		metrics:  recorder,
		clock:    clk,
		cfg:      cfg.Distribution,
	}
}

// slot is one entry of the resolved channel set: either a runnable adapter
// or a pre-resolved failure (unknown/unconfigured channel).
type slot struct {
	adapter channel.Adapter
	pre     *channel.Result
}

func (u *distributionUseCaseImpl) DistributeAll(ctx context.Context, cmd DistributeCommand) (*Report, error) {
	slots, err := u.resolve(cmd.Channels)
	if err != nil {
		return nil, err
	}

	results := make([]channel.Result, len(slots))

	// Fan-out: each goroutine owns exactly one result slot; outcomes are
	// merged only after Wait. A channel failure never aborts its siblings.
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range slots {
		if s.pre != nil {
			results[i] = *s.pre
			u.metrics.Distribution(string(s.pre.Channel), metrics.OutcomeSkipped)
			continue
		}
		g.Go(func() error {
			results[i] = u.distributeOne(gctx, s.adapter, cmd.Event)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Results: results, Total: len(results)}
	for _, r := range results {
		if r.Success {
			report.Succeeded++
		}
	}
	return report, nil
}

// resolve maps the requested channel identifiers onto adapters, preserving
// request order. Under the "all" sentinel unready channels are silently
// skipped; an explicitly named channel that is unknown or unconfigured
// becomes a pre-resolved failure instead. Zero runnable channels is the
// only request-level hard error.
func (u *distributionUseCaseImpl) resolve(requested []string) ([]slot, error) {
	if wantsAll(requested) {
		var slots []slot
		for _, ad := range u.adapters {
			if ad.Readiness().Ready {
				slots = append(slots, slot{adapter: ad})
			}
		}
		if len(slots) == 0 {
			return nil, ErrNoChannels
		}
		return slots, nil
	}

	byName := make(map[channel.Name]channel.Adapter, len(u.adapters))
	for _, ad := range u.adapters {
		byName[ad.Name()] = ad
	}

	slots := make([]slot, 0, len(requested))
	runnable := 0
	for _, name := range requested {
		normalized := channel.Name(strings.ToLower(strings.TrimSpace(name)))
		ad, ok := byName[normalized]
		switch {
		case !ok:
			pre := channel.Failure(normalized, errs.ErrUnknownChannel, false)
			slots = append(slots, slot{pre: &pre})
		case !ad.Readiness().Ready:
			pre := channel.Failure(normalized, errs.ErrChannelNotConfigured, false)
			slots = append(slots, slot{pre: &pre})
		default:
			slots = append(slots, slot{adapter: ad})
			runnable++
		}
	}
	if runnable == 0 {
		return nil, ErrNoChannels
	}
	return slots, nil
}

func wantsAll(requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	for _, name := range requested {
		if strings.EqualFold(strings.TrimSpace(name), channel.All) {
			return true
		}
	}
	return false
}

func (u *distributionUseCaseImpl) distributeOne(ctx context.Context, ad channel.Adapter, req channel.Request) channel.Result {
	name := string(ad.Name())
	fingerprint := ad.Fingerprint(req)

	claimed, err := u.store.SetIfAbsent(ctx, fingerprint, name, u.clock.Now().Add(u.cfg.PendingTTL))
	if err != nil {
		u.metrics.Distribution(name, metrics.OutcomeFailure)
		return channel.Failure(ad.Name(), errs.Mark(err, ErrIdempotencyCheckFailed), false)
	}
	if !claimed {
		return u.replay(ctx, ad, fingerprint)
	}

	// The envelope admits the primary attempt plus at most one fallback;
	// each individual network call is additionally bounded by the channel
	// client's own timeout.
	attemptCtx, cancel := context.WithTimeout(ctx, 2*u.cfg.ChannelTimeout)
	defer cancel()

	res := ad.Distribute(attemptCtx, req)

	if res.UsedFallback {
		u.metrics.Fallback(name)
	}

	if res.Success {
		u.metrics.Distribution(name, metrics.OutcomeSuccess)
		expires := u.clock.Now().Add(u.cfg.FingerprintTTL)
		if err := u.store.MarkCompleted(ctx, fingerprint, res.ExternalID, expires); err != nil {
			slog.Warn("failed to persist completed fingerprint", "channel", name, "error", err)
		}
		return res
	}

	u.metrics.Distribution(name, metrics.OutcomeFailure)
	if err := u.store.Release(ctx, fingerprint); err != nil {
		slog.Warn("failed to release fingerprint claim", "channel", name, "error", err)
	}
	return res
}

// replay resolves a lost claim: a completed record short-circuits into a
// replayed success carrying the original external id; a live pending claim
// means another request is mid-flight.
func (u *distributionUseCaseImpl) replay(ctx context.Context, ad channel.Adapter, fingerprint string) channel.Result {
	rec, err := u.store.Get(ctx, fingerprint)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// The claim raced away between SetIfAbsent and Get.
			u.metrics.Distribution(string(ad.Name()), metrics.OutcomeFailure)
			return channel.Failure(ad.Name(), errs.ErrDistributionInProgress, false)
		}
		u.metrics.Distribution(string(ad.Name()), metrics.OutcomeFailure)
		return channel.Failure(ad.Name(), errs.Mark(err, ErrIdempotencyCheckFailed), false)
	}

	if rec.Status == repository.StatusCompleted {
		u.metrics.Distribution(string(ad.Name()), metrics.OutcomeReplayed)
		return channel.Result{
			Channel:    ad.Name(),
			Success:    true,
			ExternalID: rec.ExternalID,
			Replayed:   true,
		}
	}

	u.metrics.Distribution(string(ad.Name()), metrics.OutcomeFailure)
	return channel.Failure(ad.Name(), errs.ErrDistributionInProgress, false)
}
