package models

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	// BookingIDPrefix prepended to every generated booking id.
	BookingIDPrefix = "LAB"

	// BookingIDDigits number of millisecond-epoch digits kept in the id.
	BookingIDDigits = 6
)

const (
	// BookingsFileName default name of the persisted document inside the data dir.
	BookingsFileName = "lab_bookings.json"

	// DefaultRedisTTL lifetime of rate-limit keys in Redis, seconds.
	DefaultRedisTTL = 24 * 60 * 60

	// RateLimitMessages commands allowed per window per user.
	RateLimitMessages = 20

	// RateLimitWindow rate-limit window, seconds.
	RateLimitWindow = 60

	// WorkerQueueSize size of the sheets mirror task queue.
	WorkerQueueSize = 256
)
