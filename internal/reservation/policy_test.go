package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancellationPolicy(t *testing.T) {
	policy := DefaultCancellationPolicy()
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Allowed Well Before Check-In", func(t *testing.T) {
		r := &Reservation{Status: StatusConfirmed, CheckIn: now.Add(72 * time.Hour)}
		allowed, reason := policy.Evaluate(r, now)
		assert.True(t, allowed)
		assert.Empty(t, reason)
	})

	t.Run("Exactly At The Window Boundary", func(t *testing.T) {
		r := &Reservation{Status: StatusConfirmed, CheckIn: now.Add(24 * time.Hour)}
		allowed, _ := policy.Evaluate(r, now)
		assert.True(t, allowed, "exactly 24h notice still qualifies")
	})

	t.Run("Denied Inside The Window", func(t *testing.T) {
		r := &Reservation{Status: StatusConfirmed, CheckIn: now.Add(23 * time.Hour)}
		allowed, reason := policy.Evaluate(r, now)
		assert.False(t, allowed)
		assert.Contains(t, reason, "cancellation window has closed")
	})

	t.Run("Denied After Check-In", func(t *testing.T) {
		r := &Reservation{Status: StatusConfirmed, CheckIn: now.Add(-48 * time.Hour)}
		allowed, _ := policy.Evaluate(r, now)
		assert.False(t, allowed)
	})

	t.Run("Denied On Terminal Status", func(t *testing.T) {
		r := &Reservation{Status: StatusCompleted, CheckIn: now.Add(72 * time.Hour)}
		allowed, reason := policy.Evaluate(r, now)
		assert.False(t, allowed)
		assert.Contains(t, reason, "already completed")
	})
}
