package command

import (
	"testing"
	"time"

	"labbot/internal/models"
	"labbot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookArgumentValidation(t *testing.T) {
	now := time.Date(2025, 5, 19, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		args     []string
		accepted bool
	}{
		{"all four args valid", []string{"Alice", "2025-05-20", "14:00", "chemistry"}, true},
		{"no args", nil, false},
		{"three args", []string{"Alice", "2025-05-20", "14:00"}, false},
		{"single digit month and day", []string{"Alice", "2025-5-1", "14:00", "chemistry"}, false},
		{"date not calendar validated", []string{"Alice", "2025-13-99", "14:00", "chemistry"}, true},
		{"single digit minute", []string{"Alice", "2025-05-20", "9:5", "chemistry"}, false},
		{"single digit hour", []string{"Alice", "2025-05-20", "9:05", "chemistry"}, true},
		{"two digit hour", []string{"Alice", "2025-05-20", "09:05", "chemistry"}, true},
		{"time not range validated", []string{"Alice", "2025-05-20", "25:99", "chemistry"}, true},
		{"date with slashes", []string{"Alice", "2025/05/20", "14:00", "chemistry"}, false},
		{"time with seconds", []string{"Alice", "2025-05-20", "14:00:00", "chemistry"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := store.Document{Bookings: []models.Booking{}}
			res := handleBook(&doc, tt.args, now)

			assert.Equal(t, tt.accepted, res.mutated)
			if tt.accepted {
				require.Len(t, doc.Bookings, 1)
				assert.Equal(t, models.StatusConfirmed, doc.Bookings[0].Status)
				assert.Equal(t, now, doc.Bookings[0].BookingTime)
			} else {
				assert.Empty(t, doc.Bookings)
			}
		})
	}
}

func TestBookExtraArgumentsIgnored(t *testing.T) {
	now := time.Now()
	doc := store.Document{}

	res := handleBook(&doc, []string{"Alice", "2025-05-20", "14:00", "chemistry", "trailing", "junk"}, now)
	require.True(t, res.mutated)
	require.Len(t, doc.Bookings, 1)
	assert.Equal(t, "chemistry", doc.Bookings[0].LabType)
}

func TestHandleCancelMutatesInPlace(t *testing.T) {
	doc := store.Document{Bookings: []models.Booking{
		{ID: "LAB000001", Status: models.StatusConfirmed},
		{ID: "LAB000002", Status: models.StatusConfirmed},
	}}

	res := handleCancel(&doc, []string{"LAB000002"}, time.Now())
	assert.True(t, res.mutated)
	assert.Equal(t, models.StatusConfirmed, doc.Bookings[0].Status)
	assert.Equal(t, models.StatusCancelled, doc.Bookings[1].Status)
}

func TestHandleStatusRendersBookingTime(t *testing.T) {
	booked := time.Date(2025, 5, 19, 10, 30, 0, 0, time.UTC)
	doc := store.Document{Bookings: []models.Booking{{
		ID:           "LAB000001",
		CustomerName: "Alice",
		Date:         "2025-05-20",
		Time:         "14:00",
		LabType:      "chemistry",
		Status:       models.StatusConfirmed,
		BookingTime:  booked,
	}}}

	res := handleStatus(&doc, []string{"LAB000001"}, time.Now())
	assert.False(t, res.mutated)
	assert.Contains(t, res.reply, booked.Local().Format(bookingTimeLayout))
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		token string
		want  Action
		ok    bool
	}{
		{"book", ActionBook, true},
		{"BOOK", ActionBook, true},
		{"View", ActionView, true},
		{"cancel", ActionCancel, true},
		{"status", ActionStatus, true},
		{"help", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAction(tt.token)
		assert.Equal(t, tt.ok, ok, "token %q", tt.token)
		if ok {
			assert.Equal(t, tt.want, got, "token %q", tt.token)
		}
	}
}

func TestHandlersCoverEveryAction(t *testing.T) {
	for _, a := range []Action{ActionBook, ActionView, ActionCancel, ActionStatus} {
		assert.NotNil(t, handlers[a], "missing handler for %s", a)
	}
}
