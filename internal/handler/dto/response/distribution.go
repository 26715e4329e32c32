package response

import (
	"eventcast/internal/usecase/commands"
	"eventcast/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ChannelResultResponse struct {
	Channel      string `json:"channel"`
	Success      bool   `json:"success"`
	ExternalID   string `json:"external_id,omitempty"`
	URL          string `json:"url,omitempty"`
	Error        string `json:"error,omitempty"`
	UsedFallback bool   `json:"used_fallback"`
	Replayed     bool   `json:"replayed"`
}

type DistributionResponse struct {
	Succeeded int                     `json:"succeeded"`
	Total     int                     `json:"total"`
	Results   []ChannelResultResponse `json:"results"`
}

func FromReport(r *commands.Report) *DistributionResponse {
	results := make([]ChannelResultResponse, len(r.Results))
	for i, res := range r.Results {
		results[i] = ChannelResultResponse{
			Channel:      string(res.Channel),
			Success:      res.Success,
			ExternalID:   res.ExternalID,
			URL:          res.URL,
			Error:        res.Error,
			UsedFallback: res.UsedFallback,
			Replayed:     res.Replayed,
		}
	}
	return &DistributionResponse{
		Succeeded: r.Succeeded,
		Total:     r.Total,
		Results:   results,
	}
}

type ChannelStatusResponse struct {
	Provider string   `json:"provider"`
	Ready    bool     `json:"ready"`
	Missing  []string `json:"missing,omitempty"`
}

type StatusResponse struct {
	Channels []ChannelStatusResponse `json:"channels"`
}

func FromStatusViews(views []queries.ChannelStatusView) (*StatusResponse, error) {
	var channels []ChannelStatusResponse
	if err := copier.Copy(&channels, views); err != nil {
		return nil, err
	}
	return &StatusResponse{Channels: channels}, nil
}
