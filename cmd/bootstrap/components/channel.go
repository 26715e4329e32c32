package components

import (
	"eventcast/internal/channel"
	"eventcast/internal/channel/eventbrite"
	"eventcast/internal/channel/facebook"
	"eventcast/internal/channel/press"
	"eventcast/internal/domain/schedule"
	"eventcast/internal/infra/httpx"
	"eventcast/internal/pkg/config"

	"go.uber.org/fx"
)

var ChannelModule = fx.Module("channel",
	fx.Provide(
		NewOutboundClient,
		NewScheduleNormalizer,
		fx.Annotate(
			NewGraphClient,
			fx.As(new(facebook.GraphAPI)),
		),
		fx.Annotate(
			NewEventbriteClient,
			fx.As(new(eventbrite.API)),
		),
		fx.Annotate(
			NewPressRelay,
			fx.As(new(press.Relay)),
		),
		NewChannelAdapters,
	),
)

func NewOutboundClient(cfg config.Config) *httpx.Client {
	return httpx.New(cfg.Distribution.ChannelTimeout, cfg.Distribution.OutboundRPS)
}

func NewScheduleNormalizer(cfg config.Config) *schedule.Normalizer {
	return schedule.NewNormalizer(cfg.Distribution.DefaultRegion)
}

func NewGraphClient(cfg config.Config, hc *httpx.Client) *facebook.Client {
	return facebook.NewClient(cfg.Facebook, hc)
}

func NewEventbriteClient(cfg config.Config, hc *httpx.Client) *eventbrite.Client {
	return eventbrite.NewClient(cfg.Eventbrite, hc)
}

func NewPressRelay(cfg config.Config, hc *httpx.Client) *press.RelayClient {
	return press.NewRelayClient(cfg.Press, hc)
}

// Registration order fixes the channel order under the "all" selector.
func NewChannelAdapters(
	cfg config.Config,
	graph facebook.GraphAPI,
	eventbriteAPI eventbrite.API,
	relay press.Relay,
	scheduler *schedule.Normalizer,
) []channel.Adapter {
	return []channel.Adapter{
		facebook.NewAdapter(graph, cfg.Facebook, scheduler),
		eventbrite.NewAdapter(eventbriteAPI, cfg.Eventbrite, scheduler),
		press.NewAdapter(relay, cfg.Press),
	}
}
