package event

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle       = errors.New("event title cannot be empty")
	ErrInvalidDate      = errors.New("invalid event date")
	ErrMissingStartTime = errors.New("event start time is required")
	ErrEmptyVenueName   = errors.New("venue name cannot be empty")
)

const dateLayout = "2006-01-02"

// Date is a calendar date without clock time or zone.
type Date struct {
	t time.Time
}

func NewDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Event is an immutable distribution input. The orchestrator never mutates
// it; anything derived (schedule, fingerprint) is computed per invocation.
type Event struct {
	title       string
	date        Date
	startTime   string
	endTime     string
	description string
}

func NewEvent(title string, date Date, startTime, endTime, description string) (Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Event{}, ErrEmptyTitle
	}
	if date.IsZero() {
		return Event{}, ErrInvalidDate
	}
	startTime = strings.TrimSpace(startTime)
	if startTime == "" {
		return Event{}, ErrMissingStartTime
	}
	return Event{
		title:       title,
		date:        date,
		startTime:   startTime,
		endTime:     strings.TrimSpace(endTime),
		description: description,
	}, nil
}

func (e Event) Title() string       { return e.title }
func (e Event) Date() Date          { return e.date }
func (e Event) StartTime() string   { return e.startTime }
func (e Event) EndTime() string     { return e.endTime }
func (e Event) Description() string { return e.description }

// Venue enriches fingerprints and channel payloads; immutable input.
type Venue struct {
	name    string
	address string
	city    string
	state   string
}

func NewVenue(name, address, city, state string) (Venue, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Venue{}, ErrEmptyVenueName
	}
	return Venue{
		name:    name,
		address: strings.TrimSpace(address),
		city:    strings.TrimSpace(city),
		state:   strings.ToUpper(strings.TrimSpace(state)),
	}, nil
}

func (v Venue) Name() string    { return v.name }
func (v Venue) Address() string { return v.address }
func (v Venue) City() string    { return v.city }
func (v Venue) State() string   { return v.state }
