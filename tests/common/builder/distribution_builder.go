//go:build unit || e2e

package builder

import (
	"eventcast/internal/channel"
	"eventcast/internal/domain/event"
	reqdto "eventcast/internal/handler/dto/request"
	"eventcast/internal/usecase/commands"
)

type DistributionBuilder struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Description string
	VenueName   string
	Address     string
	City        string
	State       string
	Body        string
	HTML        string
	Channels    []string
}

func NewDistributionBuilder() *DistributionBuilder {
	return &DistributionBuilder{
		Title:       "Spring Gala",
		Date:        "2026-03-12",
		StartTime:   "8 PM",
		EndTime:     "11:00 PM",
		Description: "Annual fundraiser",
		VenueName:   "Paramount Theatre",
		Address:     "713 Congress Ave",
		City:        "Austin",
		State:       "TX",
		Body:        "Doors open at 7.",
		HTML:        "<p>Doors open at 7.</p>",
	}
}

func (b *DistributionBuilder) With(mutate func(*DistributionBuilder)) *DistributionBuilder {
	mutate(b)
	return b
}

func (b *DistributionBuilder) WithChannels(channels ...string) *DistributionBuilder {
	b.Channels = channels
	return b
}

// Build methods
func (b *DistributionBuilder) BuildRequestDTO() reqdto.DistributeRequest {
	return reqdto.DistributeRequest{
		Title:       b.Title,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Description: b.Description,
		Venue: reqdto.VenueRequest{
			Name:    b.VenueName,
			Address: b.Address,
			City:    b.City,
			State:   b.State,
		},
		Content: reqdto.ContentRequest{
			Body: b.Body,
			HTML: b.HTML,
		},
		Channels: b.Channels,
	}
}

func (b *DistributionBuilder) BuildChannelRequest() (channel.Request, error) {
	date, err := event.NewDate(b.Date)
	if err != nil {
		return channel.Request{}, err
	}
	ev, err := event.NewEvent(b.Title, date, b.StartTime, b.EndTime, b.Description)
	if err != nil {
		return channel.Request{}, err
	}
	venue, err := event.NewVenue(b.VenueName, b.Address, b.City, b.State)
	if err != nil {
		return channel.Request{}, err
	}
	return channel.Request{
		Event:   ev,
		Venue:   venue,
		Content: channel.Content{Body: b.Body, HTML: b.HTML},
	}, nil
}

func (b *DistributionBuilder) BuildReport(results ...channel.Result) *commands.Report {
	report := &commands.Report{Results: results, Total: len(results)}
	for _, r := range results {
		if r.Success {
			report.Succeeded++
		}
	}
	return report
}
