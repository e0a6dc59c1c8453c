package reservation

import (
	"fmt"
	"net/http"
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "reservation not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "check-out must be after check-in")
	ErrCheckInPast      = apperror.New(http.StatusBadRequest, "check-in cannot be in the past")
	ErrSpanTooLong      = apperror.New(http.StatusBadRequest, "stay cannot exceed 30 nights")
	ErrGuestCount       = apperror.New(http.StatusBadRequest, "guest count must be between 1 and 50")
	ErrSpotNotFound     = apperror.New(http.StatusNotFound, "spot not found")
	ErrSpotInactive     = apperror.New(http.StatusBadRequest, "spot is not accepting reservations")
	ErrCapacityExceeded = apperror.New(http.StatusBadRequest, "guest count exceeds spot capacity")
	ErrSelfBooking      = apperror.New(http.StatusBadRequest, "hosts cannot reserve their own spot")
	ErrInvalidPayment   = apperror.New(http.StatusBadRequest, "invalid payment status")
)

// MaxStayNights caps a single reservation; longer stays need separate bookings.
const MaxStayNights = 30

// MaxGuests is a platform-wide sanity cap independent of spot capacity.
const MaxGuests = 50

// Reservation is a single request to occupy a spot for a date range.
// Reservations are never deleted, only transitioned between statuses.
type Reservation struct {
	ID          string
	SpotID      string
	SpotName    string
	RequesterID string
	// OwnerID is snapshotted from the spot at creation so authorization and
	// notifications need no catalog lookup later.
	OwnerID string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	// TotalPriceCents is fixed at creation from the spot's rate at that
	// moment; later rate changes never touch it.
	TotalPriceCents int64
	Status          Status
	PaymentStatus   PaymentStatus
	Notes           *string
	HasReview       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Range returns the reservation's half-open [CheckIn, CheckOut) interval.
func (r *Reservation) Range() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// DateRange is a half-open [CheckIn, CheckOut) date interval. The end date is
// excluded so a stay ending on day D never conflicts with one starting on D.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// Overlaps implements the half-open interval rule:
// [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2.
func (d DateRange) Overlaps(o DateRange) bool {
	return d.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(d.CheckOut)
}

// SlotUnavailableError reports a date conflict, carrying the existing ranges
// that blocked the request so the caller can show them to the user.
type SlotUnavailableError struct {
	SpotID    string
	Conflicts []DateRange
}

func (e *SlotUnavailableError) Error() string {
	return "requested dates are unavailable"
}

// CancellationDeniedError carries the policy's human-readable denial reason;
// callers surface it verbatim.
type CancellationDeniedError struct {
	Reason string
}

func (e *CancellationDeniedError) Error() string {
	return e.Reason
}

// InvalidTransitionError reports a lifecycle change outside the transition
// table, naming both states and the unmet guard.
type InvalidTransitionError struct {
	From  Status
	To    Status
	Guard string
}

func (e *InvalidTransitionError) Error() string {
	if e.Guard != "" {
		return fmt.Sprintf("cannot move reservation from %s to %s: %s", e.From, e.To, e.Guard)
	}
	return fmt.Sprintf("cannot move reservation from %s to %s", e.From, e.To)
}

// Filter defines parameters for listing reservations.
type Filter struct {
	SpotID      string
	RequesterID string
	OwnerID     string
	Status      Status
	Page        int
	PageSize    int
}
