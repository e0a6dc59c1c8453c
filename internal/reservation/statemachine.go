package reservation

// Status is the lifecycle axis of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusRefunded  Status = "refunded"
)

// PaymentStatus is tracked independently from Status.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether p is a member of the closed enum.
// Inputs are validated here once at the boundary and never re-parsed.
func ValidPaymentStatus(p PaymentStatus) bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusRefunded:
		return true
	}
	return false
}

// validTransitions is the full lifecycle table. Creation enters at
// InitialStatus; terminal statuses have no outgoing edges.
var validTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true, // owner approves or payment captured
		StatusCancelled: true, // owner rejects or requester cancels
	},
	StatusConfirmed: {
		StatusCancelled: true, // requester cancels within policy
		StatusCompleted: true, // checkout date passed
	},
}

// InitialStatus returns the status an accepted request enters with.
func InitialStatus(instantBook bool) Status {
	if instantBook {
		return StatusConfirmed
	}
	return StatusPending
}

// CanTransition reports whether from -> to is in the lifecycle table.
func CanTransition(from, to Status) bool {
	return validTransitions[from][to]
}

// ApplyTransition moves the reservation to the requested status, or returns
// an *InvalidTransitionError when the move is outside the table.
func ApplyTransition(r *Reservation, to Status) error {
	if r.Status.IsTerminal() {
		return &InvalidTransitionError{From: r.Status, To: to, Guard: "status is terminal"}
	}
	if !CanTransition(r.Status, to) {
		return &InvalidTransitionError{From: r.Status, To: to}
	}
	r.Status = to
	return nil
}
