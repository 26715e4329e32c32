package request

import (
	"eventcast/internal/channel"
	"eventcast/internal/domain/event"
	"eventcast/internal/usecase/commands"
)

type DistributeRequest struct {
	Title       string         `json:"title" binding:"required,max=200"`
	Date        string         `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string         `json:"start_time" binding:"required"`
	EndTime     string         `json:"end_time"`
	Description string         `json:"description" binding:"max=10000"`
	Venue       VenueRequest   `json:"venue" binding:"required"`
	Content     ContentRequest `json:"content"`
	// Channels selects targets by name; empty or ["all"] means every
	// ready channel.
	Channels []string `json:"channels" binding:"omitempty,dive,min=1"`
}

type VenueRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"omitempty,len=2"`
}

type ContentRequest struct {
	Body      string   `json:"body" binding:"max=20000"`
	HTML      string   `json:"html" binding:"max=50000"`
	ImageURLs []string `json:"image_urls" binding:"omitempty,dive,url"`
}

func (r *DistributeRequest) ToCommand() (commands.DistributeCommand, error) {
	date, err := event.NewDate(r.Date)
	if err != nil {
		return commands.DistributeCommand{}, err
	}
	ev, err := event.NewEvent(r.Title, date, r.StartTime, r.EndTime, r.Description)
	if err != nil {
		return commands.DistributeCommand{}, err
	}
	venue, err := event.NewVenue(r.Venue.Name, r.Venue.Address, r.Venue.City, r.Venue.State)
	if err != nil {
		return commands.DistributeCommand{}, err
	}
	return commands.DistributeCommand{
		Event: channel.Request{
			Event: ev,
			Venue: venue,
			Content: channel.Content{
				Body:      r.Content.Body,
				HTML:      r.Content.HTML,
				ImageURLs: r.Content.ImageURLs,
			},
		},
		Channels: r.Channels,
	}, nil
}
