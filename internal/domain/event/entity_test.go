//go:build unit

package event_test

import (
	"testing"

	"eventcast/internal/domain/event"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(event.Event{}, event.Venue{}, event.Date{}),
}

func TestNewDate(t *testing.T) {
	t.Run("parses ISO dates", func(t *testing.T) {
		d, err := event.NewDate("2026-03-12")
		require.NoError(t, err)
		assert.Equal(t, "2026-03-12", d.String())
		assert.False(t, d.IsZero())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, raw := range []string{"03/12/2026", "2026-3-12", "March 12, 2026", ""} {
			_, err := event.NewDate(raw)
			assert.ErrorIs(t, err, event.ErrInvalidDate, raw)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		d, err := event.NewDate("  2026-03-12  ")
		require.NoError(t, err)
		assert.Equal(t, "2026-03-12", d.String())
	})
}

func TestNewEvent(t *testing.T) {
	date, err := event.NewDate("2026-03-12")
	require.NoError(t, err)

	t.Run("builds a trimmed immutable value", func(t *testing.T) {
		actual, err := event.NewEvent("  Spring Gala  ", date, " 8 PM ", " 11:00 PM ", "Annual fundraiser")
		require.NoError(t, err)

		expected, err := event.NewEvent("Spring Gala", date, "8 PM", "11:00 PM", "Annual fundraiser")
		require.NoError(t, err)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("Event mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "Spring Gala", actual.Title())
		assert.Equal(t, "8 PM", actual.StartTime())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name      string
			title     string
			date      event.Date
			startTime string
			errIs     error
		}{
			{name: "empty title", title: "", date: date, startTime: "8 PM", errIs: event.ErrEmptyTitle},
			{name: "whitespace title", title: "   ", date: date, startTime: "8 PM", errIs: event.ErrEmptyTitle},
			{name: "zero date", title: "Spring Gala", date: event.Date{}, startTime: "8 PM", errIs: event.ErrInvalidDate},
			{name: "missing start time", title: "Spring Gala", date: date, startTime: "", errIs: event.ErrMissingStartTime},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := event.NewEvent(tc.title, tc.date, tc.startTime, "", "")
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestNewVenue(t *testing.T) {
	t.Run("uppercases state", func(t *testing.T) {
		actual, err := event.NewVenue("Paramount Theatre", "713 Congress Ave", "Austin", "tx")
		require.NoError(t, err)

		expected, err := event.NewVenue("Paramount Theatre", "713 Congress Ave", "Austin", "TX")
		require.NoError(t, err)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("Venue mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := event.NewVenue("  ", "713 Congress Ave", "Austin", "TX")
		assert.ErrorIs(t, err, event.ErrEmptyVenueName)
	})
}
