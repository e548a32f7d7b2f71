package command

import (
	"fmt"
	"strings"

	"labbot/internal/models"
)

// bookingTimeLayout is the human rendering of the creation instant shown by
// the status action. The instant itself is persisted as RFC 3339.
const bookingTimeLayout = "Mon, 02 Jan 2006 15:04:05"

func helpMessage() string {
	var b strings.Builder
	b.WriteString("🔬 LAB BOOKING SYSTEM\n\n")
	b.WriteString("Available commands:\n")
	b.WriteString("• lab book <name> <date> <time> <lab-type> — book a lab slot\n")
	b.WriteString("• lab view — list all bookings\n")
	b.WriteString("• lab cancel <booking-id> — cancel a booking\n")
	b.WriteString("• lab status <booking-id> — check a booking\n\n")
	b.WriteString("Example: lab book Alice 2025-05-20 14:00 chemistry")
	return b.String()
}

func unknownCommandMessage() string {
	return "❓ Unknown command. Send lab without arguments to see the available commands."
}

func genericErrorMessage() string {
	return "❌ An error occurred while processing your request. Please try again later."
}

func bookUsage() string {
	return "Usage: lab book <name> <date> <time> <lab-type>\nExample: lab book Alice 2025-05-20 14:00 chemistry"
}

func cancelUsage() string {
	return "Usage: lab cancel <booking-id>"
}

func statusUsage() string {
	return "Usage: lab status <booking-id>"
}

func invalidDateMessage(date string) string {
	return fmt.Sprintf("⚠️ Invalid date %q. Use the format YYYY-MM-DD, e.g. 2025-05-20.", date)
}

func invalidTimeMessage(timeOfDay string) string {
	return fmt.Sprintf("⚠️ Invalid time %q. Use the format HH:MM, e.g. 14:00.", timeOfDay)
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Booking with ID %s not found.", id)
}

func noBookingsMessage() string {
	return "No bookings found."
}

func bookConfirmation(b models.Booking) string {
	var sb strings.Builder
	sb.WriteString("✅ Lab booking confirmed!\n\n")
	sb.WriteString(fmt.Sprintf("ID: %s\n", b.ID))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", b.CustomerName))
	sb.WriteString(fmt.Sprintf("Date: %s\n", b.Date))
	sb.WriteString(fmt.Sprintf("Time: %s\n", b.Time))
	sb.WriteString(fmt.Sprintf("Lab type: %s\n", b.LabType))
	sb.WriteString(fmt.Sprintf("Status: %s", b.Status))
	return sb.String()
}

func bookSaveFailed() string {
	return "❌ Failed to save your booking. Please try again later."
}

func cancelConfirmation(id string) string {
	return fmt.Sprintf("✅ Booking %s has been cancelled.", id)
}

func cancelSaveFailed() string {
	return "❌ Failed to update the booking. Please try again later."
}

func bookingList(bookings []models.Booking) string {
	var sb strings.Builder
	sb.WriteString("📋 Lab bookings:\n")
	for i, b := range bookings {
		sb.WriteString(fmt.Sprintf("\n%d. %s — %s\n", i+1, b.ID, b.CustomerName))
		sb.WriteString(fmt.Sprintf("   %s %s | %s | %s\n", b.Date, b.Time, b.LabType, b.Status))
	}
	return sb.String()
}

func bookingDetail(b models.Booking) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔎 Booking %s\n\n", b.ID))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", b.CustomerName))
	sb.WriteString(fmt.Sprintf("Date: %s\n", b.Date))
	sb.WriteString(fmt.Sprintf("Time: %s\n", b.Time))
	sb.WriteString(fmt.Sprintf("Lab type: %s\n", b.LabType))
	sb.WriteString(fmt.Sprintf("Status: %s\n", b.Status))
	sb.WriteString(fmt.Sprintf("Booked at: %s", b.BookingTime.Local().Format(bookingTimeLayout)))
	return sb.String()
}
