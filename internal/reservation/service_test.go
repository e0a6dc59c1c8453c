package reservation

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wildpitch/spot-booking-backend/internal/db"
	"github.com/wildpitch/spot-booking-backend/internal/notification"
	"github.com/wildpitch/spot-booking-backend/internal/spot"
)

// memoryRepository reproduces the conflict-checked insert of the real
// repository so the service can be exercised without a database. The mutex
// stands in for the per-spot advisory lock.
type memoryRepository struct {
	mu           sync.Mutex
	reservations map[string]*Reservation
	nextID       int
	createErr    error
	updateErr    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{reservations: make(map[string]*Reservation)}
}

func (m *memoryRepository) Create(ctx context.Context, r *Reservation) ([]DateRange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return nil, m.createErr
	}

	var conflicts []DateRange
	for _, existing := range m.reservations {
		if existing.SpotID != r.SpotID {
			continue
		}
		if existing.Status != StatusPending && existing.Status != StatusConfirmed {
			continue
		}
		if existing.Range().Overlaps(r.Range()) {
			conflicts = append(conflicts, existing.Range())
		}
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	m.nextID++
	r.ID = strconv.Itoa(m.nextID)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.reservations[r.ID] = r
	return nil, nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *memoryRepository) Update(ctx context.Context, r *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.reservations[r.ID]; !ok {
		return ErrNotFound
	}
	clone := *r
	m.reservations[r.ID] = &clone
	return nil
}

func (m *memoryRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Reservation
	for _, r := range m.reservations {
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.OwnerID != "" && r.OwnerID != filter.OwnerID {
			continue
		}
		clone := *r
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (m *memoryRepository) FindOverlapping(ctx context.Context, spotID string, checkIn, checkOut time.Time) ([]DateRange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	window := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	var ranges []DateRange
	for _, r := range m.reservations {
		if r.SpotID != spotID {
			continue
		}
		if r.Status != StatusPending && r.Status != StatusConfirmed {
			continue
		}
		if r.Range().Overlaps(window) {
			ranges = append(ranges, r.Range())
		}
	}
	return ranges, nil
}

func (m *memoryRepository) CompleteDue(ctx context.Context, now time.Time) ([]*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var completed []*Reservation
	for _, r := range m.reservations {
		if r.Status == StatusConfirmed && !r.CheckOut.After(now) {
			r.Status = StatusCompleted
			clone := *r
			completed = append(completed, &clone)
		}
	}
	return completed, nil
}

func (m *memoryRepository) SetReviewAttached(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return ErrNotFound
	}
	r.HasReview = true
	return nil
}

type memoryCatalog struct {
	spots map[string]*spot.Spot
}

func (c *memoryCatalog) GetByID(ctx context.Context, id string) (*spot.Spot, error) {
	sp, ok := c.spots[id]
	if !ok {
		return nil, spot.ErrNotFound
	}
	return sp, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Emit(e notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) kinds() []notification.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]notification.Kind, len(n.events))
	for i, e := range n.events {
		kinds[i] = e.Kind
	}
	return kinds
}

type fixture struct {
	repo     *memoryRepository
	catalog  *memoryCatalog
	notifier *recordingNotifier
	svc      *service
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newMemoryRepository()
	catalog := &memoryCatalog{spots: map[string]*spot.Spot{
		"spot-1": {
			ID:               "spot-1",
			OwnerID:          "host-1",
			Name:             "Riverbend Pines",
			Capacity:         6,
			NightlyRateCents: 4500,
			IsActive:         true,
		},
		"spot-instant": {
			ID:               "spot-instant",
			OwnerID:          "host-1",
			Name:             "Lakeside Meadow",
			Capacity:         4,
			NightlyRateCents: 6000,
			IsActive:         true,
			InstantBook:      true,
		},
		"spot-closed": {
			ID:      "spot-closed",
			OwnerID: "host-1",
			Name:    "Shuttered Grove",
		},
	}}
	notifier := &recordingNotifier{}

	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, catalog, notifier, zap.NewNop()).(*service)
	svc.now = func() time.Time { return now }

	return &fixture{repo: repo, catalog: catalog, notifier: notifier, svc: svc, now: now}
}

func (f *fixture) createRequest() CreateRequest {
	return CreateRequest{
		RequesterID: "guest-1",
		SpotID:      "spot-1",
		CheckIn:     date(2026, 7, 10),
		CheckOut:    date(2026, 7, 13),
		Guests:      2,
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Riverbend Pines", res.SpotName)
		assert.Equal(t, "host-1", res.OwnerID)
		assert.Equal(t, StatusPending, res.Status)
		assert.Equal(t, PaymentPending, res.PaymentStatus)
		assert.Equal(t, int64(3*4500), res.TotalPriceCents)
		assert.Equal(t, []notification.Kind{notification.KindReservationRequested}, f.notifier.kinds())
	})

	t.Run("Instant Book Confirms Immediately", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.SpotID = "spot-instant"

		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, res.Status)
		assert.Equal(t, []notification.Kind{notification.KindReservationConfirmed}, f.notifier.kinds())
	})

	t.Run("Dates Normalized To Midnight UTC", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.CheckIn = time.Date(2026, 7, 10, 18, 30, 0, 0, time.UTC)
		req.CheckOut = time.Date(2026, 7, 13, 9, 15, 0, 0, time.UTC)

		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 7, 10), res.CheckIn)
		assert.Equal(t, date(2026, 7, 13), res.CheckOut)
		assert.Equal(t, int64(3*4500), res.TotalPriceCents)
	})

	t.Run("Validation Failures", func(t *testing.T) {
		f := newFixture(t)

		cases := []struct {
			name   string
			mutate func(*CreateRequest)
			want   error
		}{
			{"Inverted Range", func(r *CreateRequest) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }, ErrInvalidDateRange},
			{"Zero Nights", func(r *CreateRequest) { r.CheckOut = r.CheckIn }, ErrInvalidDateRange},
			{"Past Check-In", func(r *CreateRequest) { r.CheckIn = date(2026, 6, 20); r.CheckOut = date(2026, 6, 22) }, ErrCheckInPast},
			{"Too Long", func(r *CreateRequest) { r.CheckOut = r.CheckIn.AddDate(0, 0, MaxStayNights+1) }, ErrSpanTooLong},
			{"Zero Guests", func(r *CreateRequest) { r.Guests = 0 }, ErrGuestCount},
			{"Too Many Guests", func(r *CreateRequest) { r.Guests = MaxGuests + 1 }, ErrGuestCount},
			{"Unknown Spot", func(r *CreateRequest) { r.SpotID = "nope" }, ErrSpotNotFound},
			{"Inactive Spot", func(r *CreateRequest) { r.SpotID = "spot-closed" }, ErrSpotInactive},
			{"Over Capacity", func(r *CreateRequest) { r.Guests = 7 }, ErrCapacityExceeded},
			{"Self Booking", func(r *CreateRequest) { r.RequesterID = "host-1" }, ErrSelfBooking},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := f.createRequest()
				tc.mutate(&req)
				_, err := f.svc.Create(context.Background(), req)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("Same-Day Turnover Allowed", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		req := f.createRequest()
		req.RequesterID = "guest-2"
		req.CheckIn = date(2026, 7, 13)
		req.CheckOut = date(2026, 7, 15)
		_, err = f.svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("Conflicting Dates Rejected With Ranges", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		req := f.createRequest()
		req.RequesterID = "guest-2"
		req.CheckIn = date(2026, 7, 12)
		req.CheckOut = date(2026, 7, 14)
		_, err = f.svc.Create(context.Background(), req)

		var slotErr *SlotUnavailableError
		require.ErrorAs(t, err, &slotErr)
		assert.Equal(t, "spot-1", slotErr.SpotID)
		require.Len(t, slotErr.Conflicts, 1)
		assert.Equal(t, date(2026, 7, 10), slotErr.Conflicts[0].CheckIn)
	})

	t.Run("Cancelled Reservation Frees The Dates", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), first.ID, "guest-1", false, "")
		require.NoError(t, err)

		req := f.createRequest()
		req.RequesterID = "guest-2"
		_, err = f.svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("Persistent Serialization Failure Reads As Unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.repo.createErr = fmt.Errorf("%w: serialization abort", db.ErrTransient)

		_, err := f.svc.Create(context.Background(), f.createRequest())

		var slotErr *SlotUnavailableError
		require.ErrorAs(t, err, &slotErr)
		assert.Empty(t, slotErr.Conflicts)
	})

	t.Run("Concurrent Requests For The Same Dates", func(t *testing.T) {
		f := newFixture(t)

		const attempts = 8
		errs := make(chan error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := f.createRequest()
				req.RequesterID = "guest-" + strconv.Itoa(i)
				_, err := f.svc.Create(context.Background(), req)
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)

		var succeeded, unavailable int
		for err := range errs {
			switch {
			case err == nil:
				succeeded++
			default:
				var slotErr *SlotUnavailableError
				require.ErrorAs(t, err, &slotErr)
				unavailable++
			}
		}
		assert.Equal(t, 1, succeeded, "exactly one request wins the dates")
		assert.Equal(t, attempts-1, unavailable)
	})
}

func TestServiceApprove(t *testing.T) {
	t.Run("Owner Approves Pending", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		approved, err := f.svc.Approve(context.Background(), res.ID, "host-1")
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, approved.Status)
		assert.Contains(t, f.notifier.kinds(), notification.KindReservationConfirmed)
	})

	t.Run("Non-Owner Cannot Approve", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.Approve(context.Background(), res.ID, "guest-1")
		var transErr *InvalidTransitionError
		require.ErrorAs(t, err, &transErr)
		assert.Contains(t, transErr.Guard, "owner")
	})

	t.Run("Cannot Approve Twice", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.Approve(context.Background(), res.ID, "host-1")
		require.NoError(t, err)

		_, err = f.svc.Approve(context.Background(), res.ID, "host-1")
		var transErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transErr)
	})
}

func TestServiceReject(t *testing.T) {
	t.Run("Owner Rejects Pending Without Window Check", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		// Check-in tomorrow: inside the requester's 24h window.
		req.CheckIn = date(2026, 7, 2)
		req.CheckOut = date(2026, 7, 4)
		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)

		rejected, err := f.svc.Reject(context.Background(), res.ID, "host-1", "maintenance")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, rejected.Status)
		require.NotNil(t, rejected.Notes)
		assert.Equal(t, "maintenance", *rejected.Notes)
	})

	t.Run("Only Pending Can Be Rejected", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)
		_, err = f.svc.Approve(context.Background(), res.ID, "host-1")
		require.NoError(t, err)

		_, err = f.svc.Reject(context.Background(), res.ID, "host-1", "")
		var transErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transErr)
	})

	t.Run("Requester Cannot Reject", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.Reject(context.Background(), res.ID, "guest-1", "")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestServiceCancel(t *testing.T) {
	t.Run("Requester Cancels Within Window", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(context.Background(), res.ID, "guest-1", false, "plans changed")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, PaymentPending, cancelled.PaymentStatus)
		assert.Contains(t, f.notifier.kinds(), notification.KindReservationCancelled)
	})

	t.Run("Requester Denied Inside The Window", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.CheckIn = date(2026, 7, 2)
		req.CheckOut = date(2026, 7, 4)
		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), res.ID, "guest-1", false, "")
		var deniedErr *CancellationDeniedError
		require.ErrorAs(t, err, &deniedErr)
		assert.Contains(t, deniedErr.Reason, "window has closed")
	})

	t.Run("Owner Bypasses The Window", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.CheckIn = date(2026, 7, 2)
		req.CheckOut = date(2026, 7, 4)
		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(context.Background(), res.ID, "host-1", false, "")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("Paid Reservation Is Refunded", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)
		_, err = f.svc.UpdatePaymentStatus(context.Background(), res.ID, "host-1", false, PaymentPaid)
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(context.Background(), res.ID, "guest-1", false, "")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, PaymentRefunded, cancelled.PaymentStatus)
	})

	t.Run("Stranger Cannot Cancel", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), res.ID, "stranger", false, "")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Terminal Reservation Cannot Be Cancelled Again", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)
		_, err = f.svc.Cancel(context.Background(), res.ID, "guest-1", false, "")
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), res.ID, "guest-1", false, "")
		var transErr *InvalidTransitionError
		assert.ErrorAs(t, err, &transErr)
	})
}

func TestServiceUpdatePaymentStatus(t *testing.T) {
	t.Run("Captured Payment Confirms Pending", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		updated, err := f.svc.UpdatePaymentStatus(context.Background(), res.ID, "host-1", false, PaymentPaid)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
		assert.Equal(t, PaymentPaid, updated.PaymentStatus)
		assert.Contains(t, f.notifier.kinds(), notification.KindReservationConfirmed)
	})

	t.Run("Failed Payment Leaves Status Alone", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		updated, err := f.svc.UpdatePaymentStatus(context.Background(), res.ID, "host-1", false, PaymentFailed)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, updated.Status)
		assert.Equal(t, PaymentFailed, updated.PaymentStatus)
	})

	t.Run("Admin May Record Payment", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		updated, err := f.svc.UpdatePaymentStatus(context.Background(), res.ID, "operator", true, PaymentPaid)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("Requester Cannot Touch Payment", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.UpdatePaymentStatus(context.Background(), res.ID, "guest-1", false, PaymentPaid)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		got, err := f.svc.GetByID(context.Background(), res.ID, "guest-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
		assert.Equal(t, PaymentPending, got.PaymentStatus)
	})

	t.Run("Stranger Cannot Touch Payment", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.UpdatePaymentStatus(context.Background(), res.ID, "stranger", false, PaymentRefunded)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Unknown Payment Status", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.UpdatePaymentStatus(context.Background(), "1", "host-1", false, "authorized")
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("No Confirmation Event When Update Fails", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)

		f.repo.updateErr = fmt.Errorf("connection reset")
		_, err = f.svc.UpdatePaymentStatus(context.Background(), res.ID, "host-1", false, PaymentPaid)
		require.Error(t, err)
		assert.NotContains(t, f.notifier.kinds(), notification.KindReservationConfirmed)
	})
}

func TestServiceCompleteDue(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	_, err = f.svc.Approve(context.Background(), res.ID, "host-1")
	require.NoError(t, err)

	pending := f.createRequest()
	pending.RequesterID = "guest-2"
	pending.CheckIn = date(2026, 8, 1)
	pending.CheckOut = date(2026, 8, 3)
	_, err = f.svc.Create(context.Background(), pending)
	require.NoError(t, err)

	t.Run("Nothing Due Yet", func(t *testing.T) {
		n, err := f.svc.CompleteDue(context.Background(), date(2026, 7, 12))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("Past Check-Out Completes Confirmed Only", func(t *testing.T) {
		n, err := f.svc.CompleteDue(context.Background(), date(2026, 7, 14))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := f.svc.GetByID(context.Background(), res.ID, "guest-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
		assert.Contains(t, f.notifier.kinds(), notification.KindReservationCompleted)
	})
}

func TestServiceAvailability(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	t.Run("Booked Ranges In The Window", func(t *testing.T) {
		ranges, err := f.svc.Availability(context.Background(), "spot-1", date(2026, 7, 1), date(2026, 8, 1))
		require.NoError(t, err)
		require.Len(t, ranges, 1)
		assert.Equal(t, date(2026, 7, 10), ranges[0].CheckIn)
	})

	t.Run("Window Outside The Booking", func(t *testing.T) {
		ranges, err := f.svc.Availability(context.Background(), "spot-1", date(2026, 8, 1), date(2026, 9, 1))
		require.NoError(t, err)
		assert.Empty(t, ranges)
	})

	t.Run("Inverted Window", func(t *testing.T) {
		_, err := f.svc.Availability(context.Background(), "spot-1", date(2026, 8, 1), date(2026, 7, 1))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("Unknown Spot", func(t *testing.T) {
		_, err := f.svc.Availability(context.Background(), "nope", date(2026, 7, 1), date(2026, 8, 1))
		assert.ErrorIs(t, err, ErrSpotNotFound)
	})
}

func TestServiceGetByID(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	t.Run("Requester And Owner And Admin See It", func(t *testing.T) {
		for _, actor := range []struct {
			id      string
			isAdmin bool
		}{{"guest-1", false}, {"host-1", false}, {"someone", true}} {
			_, err := f.svc.GetByID(context.Background(), res.ID, actor.id, actor.isAdmin)
			assert.NoError(t, err)
		}
	})

	t.Run("Strangers Denied", func(t *testing.T) {
		_, err := f.svc.GetByID(context.Background(), res.ID, "stranger", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		_, err := f.svc.GetByID(context.Background(), "missing", "guest-1", false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	require.Equal(t, StatusPending, res.Status)

	_, err = f.svc.UpdatePaymentStatus(context.Background(), res.ID, "host-1", false, PaymentPaid)
	require.NoError(t, err)

	n, err := f.svc.CompleteDue(context.Background(), date(2026, 7, 13))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, f.svc.AttachReview(context.Background(), res.ID))

	final, err := f.svc.GetByID(context.Background(), res.ID, "guest-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, final.Status)
	assert.Equal(t, PaymentPaid, final.PaymentStatus)
	assert.True(t, final.HasReview)

	assert.Equal(t, []notification.Kind{
		notification.KindReservationRequested,
		notification.KindReservationConfirmed,
		notification.KindReservationCompleted,
	}, f.notifier.kinds())
}
