package reservation

import (
	"fmt"
	"time"
)

// CancellationPolicy decides whether a requester may still cancel.
type CancellationPolicy struct {
	// Notice is the minimum time before check-in at which cancellation is
	// still allowed.
	Notice time.Duration
}

// DefaultCancellationPolicy is the platform-wide 24 hour window.
func DefaultCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{Notice: 24 * time.Hour}
}

// Evaluate returns whether cancellation is permitted at the given reference
// time, plus a human-readable reason on denial. The reason is surfaced
// verbatim to the end user.
func (p CancellationPolicy) Evaluate(r *Reservation, now time.Time) (bool, string) {
	if r.Status.IsTerminal() {
		return false, fmt.Sprintf("reservation is already %s", r.Status)
	}
	if r.CheckIn.Sub(now) < p.Notice {
		return false, fmt.Sprintf("cancellation window has closed: check-in is less than %d hours away", int(p.Notice.Hours()))
	}
	return true, ""
}
