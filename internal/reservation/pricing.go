package reservation

import "time"

const nightDuration = 24 * time.Hour

// Nights returns the number of billable nights between check-in and check-out.
// Partial days round up: any span that is not a whole number of days still
// counts the started night. Returns 0 for non-positive spans.
func Nights(checkIn, checkOut time.Time) int {
	span := checkOut.Sub(checkIn)
	if span <= 0 {
		return 0
	}
	nights := int(span / nightDuration)
	if span%nightDuration != 0 {
		nights++
	}
	return nights
}

// TotalPriceCents is nights * rate with no further rounding; the rate's own
// precision is the only precision there is.
func TotalPriceCents(nights int, nightlyRateCents int64) int64 {
	return int64(nights) * nightlyRateCents
}
