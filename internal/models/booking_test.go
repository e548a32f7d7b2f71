package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingID(t *testing.T) {
	now := time.Date(2025, 5, 19, 10, 30, 0, 0, time.UTC)

	id := NewBookingID(now)
	assert.Regexp(t, regexp.MustCompile(`^LAB\d{6}$`), id)

	// The suffix is the last six digits of the millisecond epoch.
	// 2025-05-19T10:30:00Z is 1747650600000 ms since the epoch.
	assert.Equal(t, "LAB600000", id)
}

func TestNewBookingIDCollides(t *testing.T) {
	// Ids repeat every 1000 seconds of epoch time. Documented, not defended.
	a := time.UnixMilli(1_000_123_456)
	b := time.UnixMilli(2_000_123_456)
	assert.Equal(t, NewBookingID(a), NewBookingID(b))
}
