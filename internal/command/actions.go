package command

import (
	"regexp"
	"time"

	"labbot/internal/models"
	"labbot/internal/store"
)

// Format checks only. Dates are not calendar-validated and times are not
// range-validated, so 2025-13-99 and 25:99 both pass.
var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// result is what every action returns: the reply text, whether the document
// was mutated (and therefore must be saved), and the reply to use instead
// when that save fails.
type result struct {
	reply       string
	mutated     bool
	onSaveError string
	created     bool
	cancelled   bool
}

// handler is the uniform action contract: mutate the document in place,
// report the outcome. Handlers never touch the filesystem; the router owns
// the load-mutate-save cycle.
type handler func(doc *store.Document, args []string, now time.Time) result

// handlers must cover every Action constant.
var handlers = map[Action]handler{
	ActionBook:   handleBook,
	ActionView:   handleView,
	ActionCancel: handleCancel,
	ActionStatus: handleStatus,
}

// handleBook validates the four positional arguments, appends a confirmed
// record and asks the router to persist it.
func handleBook(doc *store.Document, args []string, now time.Time) result {
	if len(args) < 4 {
		return result{reply: bookUsage()}
	}

	name, date, timeOfDay, labType := args[0], args[1], args[2], args[3]

	if !dateRe.MatchString(date) {
		return result{reply: invalidDateMessage(date)}
	}
	if !timeRe.MatchString(timeOfDay) {
		return result{reply: invalidTimeMessage(timeOfDay)}
	}

	booking := models.Booking{
		ID:           models.NewBookingID(now),
		CustomerName: name,
		Date:         date,
		Time:         timeOfDay,
		LabType:      labType,
		Status:       models.StatusConfirmed,
		BookingTime:  now,
	}

	doc.Bookings = append(doc.Bookings, booking)

	return result{
		reply:       bookConfirmation(booking),
		mutated:     true,
		onSaveError: bookSaveFailed(),
		created:     true,
	}
}

// handleView renders every record in store order with 1-indexed numbering.
func handleView(doc *store.Document, args []string, now time.Time) result {
	if len(doc.Bookings) == 0 {
		return result{reply: noBookingsMessage()}
	}
	return result{reply: bookingList(doc.Bookings)}
}

// handleCancel flips the record's status to cancelled in place. Cancelling
// an already-cancelled booking is an idempotent no-op re-application; the
// save still runs and succeeds.
func handleCancel(doc *store.Document, args []string, now time.Time) result {
	if len(args) < 1 {
		return result{reply: cancelUsage()}
	}

	id := args[0]
	booking := doc.FindBooking(id)
	if booking == nil {
		return result{reply: notFoundMessage(id)}
	}

	booking.Status = models.StatusCancelled

	return result{
		reply:       cancelConfirmation(id),
		mutated:     true,
		onSaveError: cancelSaveFailed(),
		cancelled:   true,
	}
}

// handleStatus renders the full record, bookingTime included.
func handleStatus(doc *store.Document, args []string, now time.Time) result {
	if len(args) < 1 {
		return result{reply: statusUsage()}
	}

	id := args[0]
	booking := doc.FindBooking(id)
	if booking == nil {
		return result{reply: notFoundMessage(id)}
	}

	return result{reply: bookingDetail(*booking)}
}
