package queries

import "eventcast/internal/channel"

// Read models (DTO for read side)
type ChannelStatusView struct {
	Provider string   `json:"provider"`
	Ready    bool     `json:"ready"`
	Missing  []string `json:"missing,omitempty"`
}

// DistributionQueries answers readiness questions without side effects:
// configuration presence only, never a live connectivity probe.
type DistributionQueries interface {
	CheckStatus() []ChannelStatusView
}

type distributionQueriesImpl struct {
	adapters []channel.Adapter
}

func NewDistributionQueries(adapters []channel.Adapter) DistributionQueries {
	return &distributionQueriesImpl{adapters: adapters}
}

func (q *distributionQueriesImpl) CheckStatus() []ChannelStatusView {
	views := make([]ChannelStatusView, 0, len(q.adapters))
	for _, ad := range q.adapters {
		r := ad.Readiness()
		views = append(views, ChannelStatusView{
			Provider: string(ad.Name()),
			Ready:    r.Ready,
			Missing:  r.Missing,
		})
	}
	return views
}
