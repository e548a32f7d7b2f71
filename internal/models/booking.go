package models

import "time"

// Booking is a single laboratory slot reservation. JSON tags match the
// persisted document contract, so renaming a field is a format change.
type Booking struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Date         string    `json:"date"` // YYYY-MM-DD, format-checked only
	Time         string    `json:"time"` // H:MM or HH:MM, format-checked only
	LabType      string    `json:"labType"`
	Status       string    `json:"status"` // confirmed, cancelled
	BookingTime  time.Time `json:"bookingTime"`
}

// NewBookingID derives an id from the creation instant: the LAB prefix plus
// the last six digits of the millisecond epoch. Two bookings created within
// an overlapping truncated-timestamp window collide; lookups still treat ids
// as unique. Known latent weakness, kept for compatibility with the persisted
// id format.
func NewBookingID(now time.Time) string {
	ms := now.UnixMilli()
	return BookingIDPrefix + lastDigits(ms, BookingIDDigits)
}

func lastDigits(n int64, count int) string {
	buf := make([]byte, count)
	for i := count - 1; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf)
}
